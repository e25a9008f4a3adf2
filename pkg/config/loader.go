package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Option adjusts how the environment is parsed.
type Option func(*env.Options)

// WithEnvironment parses from vars instead of the process environment.
func WithEnvironment(vars map[string]string) Option {
	return func(o *env.Options) { o.Environment = vars }
}

// WithPrefix prepends prefix to every variable name.
func WithPrefix(prefix string) Option {
	return func(o *env.Options) { o.Prefix = prefix }
}

// LoadEnv loads .env files into the process environment without overriding
// variables that are already set. With no paths it loads ./.env and ignores
// its absence; explicit paths must exist.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return errors.Join(ErrLoadingEnvFile, err)
		}
		return nil
	}
	if err := godotenv.Load(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// MustLoadEnv works like LoadEnv but panics on failure.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(fmt.Sprintf("Failed to load env files: %v", err))
	}
}

// Load parses environment variables into v based on its `env` field tags.
//
// Example:
//
//	type RedisConfig struct {
//		URL string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
//	}
//
//	var cfg RedisConfig
//	if err := config.Load(&cfg); err != nil {
//		// Handle error
//	}
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	var o env.Options
	for _, opt := range opts {
		opt(&o)
	}
	if err := env.ParseWithOptions(v, o); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
}
