// Package supervisor runs the requested bots as child processes and folds
// their outcomes into a single exit code. It is a one-shot loop: bots are
// spawned once, waited on sequentially, and never restarted.
package supervisor

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"time"

	"github.com/avicweb/avicbot/internal/cliutil"
	"github.com/avicweb/avicbot/internal/config"
	"github.com/avicweb/avicbot/internal/envfile"
	"github.com/avicweb/avicbot/internal/metrics"
	"github.com/avicweb/avicbot/internal/process"
)

// ExitInterrupted is returned when the supervisor is interrupted while
// waiting on its bots, matching the conventional 128+SIGINT code.
const ExitInterrupted = 130

// ErrNoBots reports that the caller requested an empty bot set.
var ErrNoBots = errors.New("no bots requested")

// killFollowUpWait bounds how long the drain path waits for a bot's status
// to be collected after a forceful kill. The supervisor is already shutting
// down and must not hang on an unkillable process.
const killFollowUpWait = time.Second

// Options select which bots to run and where programs and the env file are
// resolved.
type Options struct {
	Twitch    bool
	Wikimedia bool

	// BaseDir is the supervisor binary's directory. Relative bot programs
	// and the env file resolve against it, and it becomes the bots' working
	// directory.
	BaseDir string

	// Environ is the base environment, usually os.Environ(). Variables from
	// the env file are merged in without overriding anything already set.
	Environ []string

	Logger *cliutil.Logger
}

// Run drives one supervision cycle: load the shared env file, spawn the
// requested bots in fixed order, wait for each in turn and aggregate their
// exit codes (first non-zero wins). Cancelling ctx diverts into draining:
// every bot's process group is asked to terminate, stragglers are killed
// after the configured grace period, and ExitInterrupted is returned.
//
// A missing bot program aborts the run immediately with an error wrapping
// fs.ErrNotExist; bots spawned before the failure are deliberately left
// running, since the condition is a deployment mistake the operator has to
// resolve anyway.
func Run(ctx context.Context, cfg *config.Config, opts Options) (int, error) {
	environ := envfile.Apply(opts.Environ, envfile.Load(filepath.Join(opts.BaseDir, cfg.EnvFile)))

	var requested []string
	if opts.Twitch {
		requested = append(requested, config.BotTwitch)
	}
	if opts.Wikimedia {
		requested = append(requested, config.BotWikimedia)
	}
	if len(requested) == 0 {
		return 0, ErrNoBots
	}

	children := make([]*process.Child, 0, len(requested))
	for _, bot := range requested {
		program := cfg.Program(bot)
		if !filepath.IsAbs(program) {
			program = filepath.Join(opts.BaseDir, program)
		}
		child, err := process.Start(bot, program, environ, opts.BaseDir)
		if err != nil {
			return 0, err
		}
		opts.Logger.Infof(bot, "bot started pid=%d program=%s", child.Pid(), program)
		metrics.SetChildRunning(bot, true)
		children = append(children, child)
	}

	aggregate := 0
	for _, child := range children {
		select {
		case <-ctx.Done():
			drain(children, cfg.GracePeriod.Duration, opts.Logger)
			return ExitInterrupted, nil
		case <-child.Done():
			code := child.ExitCode()
			metrics.SetChildRunning(child.Name, false)
			metrics.ObserveChildExit(child.Name, strconv.Itoa(code))
			opts.Logger.Infof(child.Name, "bot exited code=%d", code)
			if code != 0 && aggregate == 0 {
				aggregate = code
			}
		}
	}
	return aggregate, nil
}

// drain is the graceful-then-forceful shutdown cascade. Every bot's process
// group is asked to terminate first; each bot then gets its own grace period
// to exit before being killed. All signalling failures are swallowed: the
// supervisor is in its shutdown path and must not fail here.
func drain(children []*process.Child, grace time.Duration, logger *cliutil.Logger) {
	for _, child := range children {
		child.Terminate()
	}
	for _, child := range children {
		select {
		case <-child.Done():
		case <-time.After(grace):
			logger.Warnf(child.Name, "bot still running after %s, killing", grace)
			child.Kill()
			select {
			case <-child.Done():
			case <-time.After(killFollowUpWait):
			}
		}
	}
	for _, child := range children {
		metrics.SetChildRunning(child.Name, false)
		select {
		case <-child.Done():
			metrics.ObserveChildExit(child.Name, strconv.Itoa(child.ExitCode()))
			logger.Infof(child.Name, "bot stopped code=%d", child.ExitCode())
		default:
			logger.Warnf(child.Name, "bot did not confirm exit")
		}
	}
}
