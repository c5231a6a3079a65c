// Package config loads the application settings, including the name bound
// under the appName qualifier.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrMissingAppName is returned when no source sets the application name.
var ErrMissingAppName = errors.New("appName is not configured")

// App holds the settings every service needs at boot.
type App struct {
	Name     string `env:"APP_NAME" yaml:"appName"`
	Env      string `env:"APP_ENV" yaml:"env"`
	LogLevel string `env:"LOG_LEVEL" yaml:"logLevel"`
}

// Default returns the built-in settings. Name has no default.
func Default() App {
	return App{
		Env:      "development",
		LogLevel: "info",
	}
}

// Options selects the sources Load reads besides the environment.
type Options struct {
	// File is an optional YAML file.
	File string
	// DotEnv lists .env files; missing ones are skipped.
	DotEnv []string
}

// Load layers defaults, .env files, the YAML file and the environment, in
// that order of increasing precedence.
func Load(opts Options) (*App, error) {
	cfg := Default()

	if err := loadDotEnv(opts.DotEnv); err != nil {
		return nil, err
	}
	if opts.File != "" {
		if err := LoadFile(opts.File, &cfg); err != nil {
			return nil, err
		}
	}
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}

	cfg.Name = strings.TrimSpace(cfg.Name)
	if cfg.Name == "" {
		return nil, ErrMissingAppName
	}
	return &cfg, nil
}

// LoadFile decodes the YAML file at path into target.
func LoadFile(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func loadDotEnv(paths []string) error {
	var present []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			present = append(present, p)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("load dotenv: %w", err)
	}
	return nil
}
