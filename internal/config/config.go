// Package config resolves the transmute configuration from defaults,
// optional files, and environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config captures the resolved tmt configuration.
type Config struct {
	DataDir       string    `yaml:"data_dir"`
	DefaultFormat string    `yaml:"default_format"`
	Log           LogConfig `yaml:"log"`
}

// LogConfig controls structured logging output.
type LogConfig struct {
	Level       string         `yaml:"level"`
	Format      string         `yaml:"format"`
	Outputs     []string       `yaml:"outputs"`
	Development bool           `yaml:"development"`
	Rotation    RotationConfig `yaml:"rotation"`
}

// RotationConfig controls rotation of file log outputs.
type RotationConfig struct {
	Enable     bool   `yaml:"enable"`
	Filename   string `yaml:"filename"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// RecipesDir is where saved recipes live under the data directory.
func (c Config) RecipesDir() string { return filepath.Join(c.DataDir, "recipes") }

// CustomDir is where exported custom encoder tokens live.
func (c Config) CustomDir() string { return filepath.Join(c.DataDir, "custom") }

// ParamsPath is the persisted parameter bag location.
func (c Config) ParamsPath() string { return filepath.Join(c.DataDir, "params.json") }

// Default returns the built-in configuration.
func Default() Config {
	dataDir := ".tmt"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".tmt")
	}
	return Config{
		DataDir:       dataDir,
		DefaultFormat: "text",
		Log: LogConfig{
			Level:   "info",
			Format:  "console",
			Outputs: []string{"stderr"},
			Rotation: RotationConfig{
				MaxSizeMB:  10,
				MaxBackups: 3,
				MaxAgeDays: 14,
			},
		},
	}
}

// Load resolves the configuration using defaults, configuration files, and
// environment overrides. The lookup order for configuration files is:
//  1. ~/.tmt/config.yaml
//  2. ./tmt.yml
//
// Environment variables prefixed with TMT_ have the highest precedence.
func Load() (Config, error) {
	cfg := Default()

	if err := loadHomeConfig(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadLocalConfig(&cfg); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg)

	return cfg, nil
}

func loadHomeConfig(cfg *Config) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	path := filepath.Join(home, ".tmt", "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := applyFileConfig(cfg, data); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func loadLocalConfig(cfg *Config) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("determine working directory: %w", err)
	}
	path := filepath.Join(wd, "tmt.yml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := applyFileConfig(cfg, data); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// fileConfig mirrors Config with pointer fields so absent keys leave the
// current value untouched.
type fileConfig struct {
	DataDir       *string        `yaml:"data_dir"`
	DefaultFormat *string        `yaml:"default_format"`
	Log           *fileLogConfig `yaml:"log"`
}

type fileLogConfig struct {
	Level       *string             `yaml:"level"`
	Format      *string             `yaml:"format"`
	Outputs     []string            `yaml:"outputs"`
	Development *bool               `yaml:"development"`
	Rotation    *fileRotationConfig `yaml:"rotation"`
}

type fileRotationConfig struct {
	Enable     *bool   `yaml:"enable"`
	Filename   *string `yaml:"filename"`
	MaxSizeMB  *int    `yaml:"max_size_mb"`
	MaxBackups *int    `yaml:"max_backups"`
	MaxAgeDays *int    `yaml:"max_age_days"`
	Compress   *bool   `yaml:"compress"`
}

func applyFileConfig(cfg *Config, data []byte) error {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return err
	}

	if fc.DataDir != nil {
		cfg.DataDir = strings.TrimSpace(*fc.DataDir)
	}
	if fc.DefaultFormat != nil {
		cfg.DefaultFormat = strings.TrimSpace(*fc.DefaultFormat)
	}
	if fc.Log != nil {
		if fc.Log.Level != nil {
			cfg.Log.Level = strings.TrimSpace(*fc.Log.Level)
		}
		if fc.Log.Format != nil {
			cfg.Log.Format = strings.TrimSpace(*fc.Log.Format)
		}
		if fc.Log.Outputs != nil {
			cfg.Log.Outputs = fc.Log.Outputs
		}
		if fc.Log.Development != nil {
			cfg.Log.Development = *fc.Log.Development
		}
		if rot := fc.Log.Rotation; rot != nil {
			if rot.Enable != nil {
				cfg.Log.Rotation.Enable = *rot.Enable
			}
			if rot.Filename != nil {
				cfg.Log.Rotation.Filename = strings.TrimSpace(*rot.Filename)
			}
			if rot.MaxSizeMB != nil {
				cfg.Log.Rotation.MaxSizeMB = *rot.MaxSizeMB
			}
			if rot.MaxBackups != nil {
				cfg.Log.Rotation.MaxBackups = *rot.MaxBackups
			}
			if rot.MaxAgeDays != nil {
				cfg.Log.Rotation.MaxAgeDays = *rot.MaxAgeDays
			}
			if rot.Compress != nil {
				cfg.Log.Rotation.Compress = *rot.Compress
			}
		}
	}

	return nil
}

func applyEnvOverrides(cfg *Config) {
	if val := strings.TrimSpace(os.Getenv("TMT_DATA_DIR")); val != "" {
		cfg.DataDir = val
	}
	if val := strings.TrimSpace(os.Getenv("TMT_FORMAT")); val != "" {
		cfg.DefaultFormat = val
	}
	if val := strings.TrimSpace(os.Getenv("TMT_LOG_LEVEL")); val != "" {
		cfg.Log.Level = val
	}
	if val := strings.TrimSpace(os.Getenv("TMT_LOG_FORMAT")); val != "" {
		cfg.Log.Format = val
	}
	if val := strings.TrimSpace(os.Getenv("TMT_LOG_OUTPUTS")); val != "" {
		parts := strings.Split(val, ",")
		outputs := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				outputs = append(outputs, p)
			}
		}
		if len(outputs) > 0 {
			cfg.Log.Outputs = outputs
		}
	}
	if val := strings.TrimSpace(os.Getenv("TMT_LOG_DEV")); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			cfg.Log.Development = parsed
		}
	}
	if val := strings.TrimSpace(os.Getenv("TMT_LOG_ROTATE")); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			cfg.Log.Rotation.Enable = parsed
		}
	}
}
