// Package config loads the optional avicbot.yaml manifest that sits next to
// the supervisor binary. The manifest overrides the bot program paths, the
// shared env file name and the shutdown grace period; when it is absent the
// built-in defaults apply.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Bot names, fixed: they double as CLI flag names and metrics labels.
const (
	BotTwitch    = "twitch"
	BotWikimedia = "wikimedia"
)

const (
	defaultEnvFile     = ".env"
	defaultGracePeriod = 5 * time.Second

	defaultTwitchProgram    = "avicbot-twitch"
	defaultWikimediaProgram = "avicbot-wikimedia"
)

// Duration wraps time.Duration with YAML text unmarshalling.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a textual duration, accepting empty strings.
func (d *Duration) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		d.Duration = 0
		return nil
	}
	dur, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = dur
	return nil
}

// MarshalText renders the duration using time.Duration formatting.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Bot describes one supervised program.
type Bot struct {
	Program string `yaml:"program"`
}

// Config mirrors the avicbot.yaml document structure.
type Config struct {
	EnvFile     string   `yaml:"envFile"`
	GracePeriod Duration `yaml:"gracePeriod"`
	Bots        struct {
		Twitch    Bot `yaml:"twitch"`
		Wikimedia Bot `yaml:"wikimedia"`
	} `yaml:"bots"`
}

// Default returns the built-in configuration used when no manifest exists.
func Default() *Config {
	cfg := &Config{
		EnvFile:     defaultEnvFile,
		GracePeriod: Duration{Duration: defaultGracePeriod},
	}
	cfg.Bots.Twitch.Program = defaultTwitchProgram
	cfg.Bots.Wikimedia.Program = defaultWikimediaProgram
	return cfg
}

// Load reads the manifest at path. A missing manifest is not an error: the
// defaults are returned. Anything else wrong with the file, including unknown
// fields, is fatal.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	cfg := Default()
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: decode: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.EnvFile == "" {
		return errors.New("envFile must not be empty")
	}
	if c.GracePeriod.Duration <= 0 {
		return errors.New("gracePeriod must be positive")
	}
	if c.Bots.Twitch.Program == "" {
		return errors.New("bots.twitch.program must not be empty")
	}
	if c.Bots.Wikimedia.Program == "" {
		return errors.New("bots.wikimedia.program must not be empty")
	}
	return nil
}

// Program returns the configured program for the named bot.
func (c *Config) Program(bot string) string {
	switch bot {
	case BotTwitch:
		return c.Bots.Twitch.Program
	case BotWikimedia:
		return c.Bots.Wikimedia.Program
	default:
		return ""
	}
}
