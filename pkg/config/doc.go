// Package config loads locparse configuration from the environment.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - LoadEnv reads one or more .env files into the process environment
//     (the default .env in the working directory when no path is given).
//   - Load parses the environment into any struct using `env` field tags.
//   - LoadConfig returns the tool's Config with defaults applied.
//
// Values already present in the environment take precedence over .env files.
//
// # Usage
//
//	if err := config.LoadEnv(); err != nil {
//		return err
//	}
//	cfg, err := config.LoadConfig()
//	if err != nil {
//		return err
//	}
//
// Tests can supply the environment explicitly instead of mutating the
// process environment:
//
//	cfg, err := config.LoadConfig(config.WithEnvironment(map[string]string{
//		"LOCPARSE_NEWLINE": "crlf",
//	}))
package config
