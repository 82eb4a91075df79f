package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Archive  ArchiveConfig  `yaml:"archive"`
}

type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type AuthConfig struct {
	Secret   string        `yaml:"secret"`
	TokenTTL time.Duration `yaml:"-"`
}

// UnmarshalYAML parses token_ttl as a Go duration string, leaving fields
// absent from the document at their defaults.
func (a *AuthConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Secret   string `yaml:"secret"`
		TokenTTL string `yaml:"token_ttl"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.Secret != "" {
		a.Secret = raw.Secret
	}
	if raw.TokenTTL != "" {
		d, err := time.ParseDuration(raw.TokenTTL)
		if err != nil {
			return fmt.Errorf("invalid token_ttl %q: %w", raw.TokenTTL, err)
		}
		a.TokenTTL = d
	}
	return nil
}

type ArchiveConfig struct {
	// Time is the local HH:MM at which completed tasks from previous days
	// are archived.
	Time string `yaml:"time"`
}

// Load reads the config file, filling in defaults for anything unset.
// A missing file yields the defaults. QUESTLOG_AUTH_SECRET overrides the
// auth secret so it can stay out of the file.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: 8080,
			Host: "0.0.0.0",
		},
		Database: DatabaseConfig{
			DSN: "questlog.db",
		},
		Auth: AuthConfig{
			TokenTTL: 24 * time.Hour,
		},
		Archive: ArchiveConfig{
			Time: "03:00",
		},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if secret := os.Getenv("QUESTLOG_AUTH_SECRET"); secret != "" {
		cfg.Auth.Secret = secret
	}

	return cfg, nil
}
