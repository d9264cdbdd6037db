// Package config loads application configuration from defaults, an optional
// YAML file, STUDYDASH_-prefixed environment variables and command-line
// flags, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config holds all application settings.
type Config struct {
	Listen             string `koanf:"listen" validate:"required"`
	DBPath             string `koanf:"db_path" validate:"required"`
	SessionsPath       string `koanf:"sessions_path" validate:"required"`
	ReposDir           string `koanf:"repos_dir" validate:"required"`
	UpcomingWindowDays int    `koanf:"upcoming_window_days" validate:"gt=0"`
}

// defaults are applied before any file, env or flag source.
var defaults = map[string]any{
	"listen":               ":8080",
	"db_path":              "studydash.db",
	"sessions_path":        "sessions.json",
	"repos_dir":            "repos",
	"upcoming_window_days": 7,
}

// Load builds the configuration. configPath may be empty; a missing config
// file is fine as long as the merged result validates. flags may be nil.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to set default %s: %w", key, err)
		}
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
			}
		}
	}

	if err := k.Load(env.Provider("STUDYDASH_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "STUDYDASH_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, fmt.Errorf("failed to load flag config: %w", err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}
