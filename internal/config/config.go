// Package config loads connection settings from an optional YAML file and
// the standard libpq environment variables.
package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the settings pgddl needs to reach a database.
// Environment variables override YAML values; command-line flags override both.
type Config struct {
	Host            string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port            int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	Database        string `yaml:"database" env:"PGDATABASE"`
	User            string `yaml:"user" env:"PGUSER"`
	Password        string `yaml:"password" env:"PGPASSWORD"`
	SSLMode         string `yaml:"sslmode" env:"PGSSLMODE" env-default:"prefer"`
	ApplicationName string `yaml:"application_name" env:"PGAPPNAME" env-default:"pgddl"`
	Schema          string `yaml:"schema" env:"PGDDL_SCHEMA" env-default:"public"`

	// ConstraintSource is "catalog" or "information-schema"
	ConstraintSource string `yaml:"constraint_source" env:"PGDDL_CONSTRAINT_SOURCE" env-default:"catalog"`
	Jobs             int    `yaml:"jobs" env:"PGDDL_JOBS" env-default:"4"`
}

// Load reads configuration from path when it is non-empty, then applies
// environment variables. Without a path only the environment and defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges. Required connection fields are checked after
// flags are applied, see RequireConnection.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	return nil
}

// RequireConnection checks that database and user are set
func (c *Config) RequireConnection() error {
	if c.Database == "" {
		return fmt.Errorf("database name is required (use --db flag, PGDATABASE environment variable or config file)")
	}
	if c.User == "" {
		return fmt.Errorf("database user is required (use --user flag, PGUSER environment variable or config file)")
	}
	return nil
}
