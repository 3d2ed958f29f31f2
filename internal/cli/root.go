// Package cli implements the avicbot command surface: flag parsing, exit
// code mapping and the interrupt wiring for the supervisor loop.
package cli

import (
	stdcontext "context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/avicweb/avicbot/internal/cliutil"
	"github.com/avicweb/avicbot/internal/config"
	"github.com/avicweb/avicbot/internal/supervisor"
)

const version = "2026.02"

const (
	exitFatal = 1
	exitUsage = 2
)

// errUsage marks invocations that requested no bots at all.
var errUsage = errors.New("no bots requested, see usage")

type options struct {
	twitch     bool
	wikimedia  bool
	configFile string

	exitCode int
}

func newRootCommand() (*cobra.Command, *options) {
	opts := &options{}

	root := &cobra.Command{
		Use:     "avicbot",
		Short:   "Run the AvicBot Twitch and/or Wikimedia IRC bots from one entrypoint",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.twitch && !opts.wikimedia {
				cmd.SetOut(cmd.ErrOrStderr())
				_ = cmd.Help()
				return errUsage
			}

			baseDir, err := resolveBaseDir()
			if err != nil {
				return err
			}

			configPath := opts.configFile
			if configPath == "" {
				configPath = filepath.Join(baseDir, "avicbot.yaml")
			} else if _, err := os.Stat(configPath); err != nil {
				// Only the default manifest location may be absent.
				return fmt.Errorf("load config: %w", err)
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			code, err := supervisor.Run(cmd.Context(), cfg, supervisor.Options{
				Twitch:    opts.twitch,
				Wikimedia: opts.wikimedia,
				BaseDir:   baseDir,
				Environ:   os.Environ(),
				Logger:    cliutil.NewLogger(cmd.ErrOrStderr()),
			})
			if err != nil {
				return err
			}
			opts.exitCode = code
			return nil
		},
	}

	root.SetVersionTemplate("AvicBotChat {{.Version}}\n")

	flags := root.Flags()
	// The original flag spellings were --Twitch and --Wikimedia; lowercasing
	// flag names keeps both casings working.
	flags.SetNormalizeFunc(normalizeFlagName)
	flags.BoolVar(&opts.twitch, "twitch", false, "Run the Twitch IRC bot")
	flags.BoolVar(&opts.wikimedia, "wikimedia", false, "Run the Wikimedia IRC bot")
	flags.StringVar(&opts.configFile, "config", "", "Path to the avicbot.yaml manifest (default: next to the binary)")

	root.SilenceUsage = true
	root.SilenceErrors = true

	return root, opts
}

func normalizeFlagName(f *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ToLower(name))
}

func resolveBaseDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate supervisor binary: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// Execute runs the CLI entrypoint and returns the process exit code: 0 on
// success, the first failing bot's code otherwise, 2 for a usage error and
// 130 when the run was interrupted.
func Execute() int {
	ctx, stop := signal.NotifyContext(stdcontext.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, opts := newRootCommand()

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, errUsage) {
			return exitUsage
		}
		fmt.Fprintln(os.Stderr, err)
		return exitFatal
	}
	return opts.exitCode
}
