package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const FileName = "petseed.config.json"

var ErrNotInitialized = errors.New("petseed is not initialized, run 'petseed init' first")

var DefaultSpecies = []string{"Dog", "Cat", "Chicken", "Hamster", "Turtle"}

type Config struct {
	Version        string   `json:"version" mapstructure:"version"`
	MigrationsPath string   `json:"migrations_path" mapstructure:"migrations_path"`
	ExportPath     string   `json:"export_path" mapstructure:"export_path"`
	Database       Database `json:"database" mapstructure:"database"`
	Seed           Seed     `json:"seed" mapstructure:"seed"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
}

// Seed holds the defaults for the seed command; flags override them.
type Seed struct {
	Count   int      `json:"count" mapstructure:"count"`
	Species []string `json:"species" mapstructure:"species"`
	Fixture string   `json:"fixture,omitempty" mapstructure:"fixture"`
	Batch   int      `json:"batch,omitempty" mapstructure:"batch"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Version == "" {
		c.Version = "1"
	}
	if c.MigrationsPath == "" {
		c.MigrationsPath = "db/migrations"
	}
	if c.ExportPath == "" {
		c.ExportPath = "db/export"
	}
	if c.Database.Provider == "" {
		c.Database.Provider = "sqlite"
	}
	if c.Database.URLEnv == "" {
		c.Database.URLEnv = "DATABASE_URL"
	}
	if c.Seed.Count == 0 {
		c.Seed.Count = 10
	}
	if len(c.Seed.Species) == 0 {
		c.Seed.Species = append([]string(nil), DefaultSpecies...)
	}
	if c.Seed.Batch <= 0 {
		c.Seed.Batch = 100
	}
}

func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}

func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.MigrationsPath, c.ExportPath} {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

func (c *Config) Validate() error {
	if NormalizeProvider(c.Database.Provider) == "" {
		return fmt.Errorf("unsupported database provider: %s. Supported providers: %v",
			c.Database.Provider, []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3"})
	}

	if c.MigrationsPath == "" {
		return fmt.Errorf("migrations_path cannot be empty")
	}

	if c.ExportPath == "" {
		return fmt.Errorf("export_path cannot be empty")
	}

	if c.Seed.Count < 0 {
		return fmt.Errorf("seed.count cannot be negative: %d", c.Seed.Count)
	}

	for _, s := range c.Seed.Species {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("seed.species cannot contain empty values")
		}
	}

	return nil
}

// NormalizeProvider maps provider aliases onto postgresql, mysql or sqlite.
// It returns "" for anything else.
func NormalizeProvider(provider string) string {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "postgresql", "postgres":
		return "postgresql"
	case "mysql":
		return "mysql"
	case "sqlite", "sqlite3":
		return "sqlite"
	default:
		return ""
	}
}

func IsInitialized() bool {
	if used := viper.ConfigFileUsed(); used != "" {
		if _, err := os.Stat(used); err == nil {
			return true
		}
	}
	_, err := os.Stat(FileName)
	return err == nil
}
