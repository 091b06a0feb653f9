// Package config loads runtime configuration: a YAML file when present, with
// environment variables taking precedence.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config is the runtime configuration of the console.
type Config struct {
	APIURL   string        `env:"CAREDESK_API_URL" yaml:"api_url"`
	Token    string        `env:"CAREDESK_TOKEN" yaml:"token"`
	Timeout  time.Duration `env:"CAREDESK_TIMEOUT" yaml:"timeout"`
	LogLevel string        `env:"CAREDESK_LOG_LEVEL" yaml:"log_level"`
	LogFile  string        `env:"CAREDESK_LOG_FILE" yaml:"log_file"`
}

// Load reads the optional YAML file at path, then applies environment
// overrides. A missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing environment: %w", err)
	}

	// Defaults applied after the merge so neither source clobbers the other.
	if cfg.APIURL == "" {
		cfg.APIURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg, nil
}

// Logger builds the process logger. The TUI owns stdout, so logs go to the
// configured file or stderr.
func (c Config) Logger() zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	out := os.Stderr
	if c.LogFile != "" {
		if f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			out = f
		}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
