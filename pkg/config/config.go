package config

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/locparse/pkg/locfile"
	"github.com/dmitrymomot/locparse/pkg/logger"
	"github.com/dmitrymomot/locparse/pkg/redis"
)

// Config is the locparse tool configuration.
type Config struct {
	Env string `env:"LOCPARSE_ENV" envDefault:"development"`
	// LogLevel and LogFormat override the defaults derived from Env when set.
	LogLevel  string `env:"LOCPARSE_LOG_LEVEL"`
	LogFormat string `env:"LOCPARSE_LOG_FORMAT"`

	Newline               locfile.NewlineKind `env:"LOCPARSE_NEWLINE" envDefault:"none"`
	IgnoreMissingComments bool                `env:"LOCPARSE_IGNORE_MISSING_RESX_COMMENTS"`
	CacheSize             int                 `env:"LOCPARSE_CACHE_SIZE"` // 0 keeps every entry

	Redis redis.Config `envPrefix:"LOCPARSE_"`
}

// LoadConfig parses Config from the environment and validates it.
func LoadConfig(opts ...Option) (Config, error) {
	var cfg Config
	if err := Load(&cfg, opts...); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports inconsistent values that the env parser accepts.
func (c Config) Validate() error {
	if c.CacheSize < 0 {
		return errors.Join(ErrInvalidConfig, fmt.Errorf("cache size must not be negative, got %d", c.CacheSize))
	}
	if _, err := c.level(); err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}
	if c.LogFormat != "" {
		if _, err := logger.ParseFormat(c.LogFormat); err != nil {
			return errors.Join(ErrInvalidConfig, err)
		}
	}
	return nil
}

func (c Config) level() (*slog.Level, error) {
	if c.LogLevel == "" {
		return nil, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return &l, nil
}

// LoggerOptions maps the logging settings onto logger options. Invalid
// overrides are ignored; call Validate first to surface them.
func (c Config) LoggerOptions(component string) []logger.Option {
	opts := []logger.Option{logger.WithEnvironment(c.Env, component)}
	if l, err := c.level(); err == nil && l != nil {
		opts = append(opts, logger.WithLevel(*l))
	}
	if f, err := logger.ParseFormat(c.LogFormat); err == nil && c.LogFormat != "" {
		opts = append(opts, logger.WithFormat(f))
	}
	return opts
}
