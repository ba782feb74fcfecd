// Package config loads hsrsize settings from an optional YAML file, an
// optional .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/idelchi/hsrsize/internal/store"
)

// Environment variables consulted when neither flags nor the config file set a value.
const (
	EnvRoot        = "GAME_DIR"
	EnvDestination = "HSR_DESTINATION"
)

// DefaultEnvFile is the dotenv file loaded when present.
const DefaultEnvFile = ".env"

// Config represents the complete hsrsize configuration.
type Config struct {
	// Root is the directory to analyze.
	Root string `yaml:"root"`

	// Destination is the database file the analysis is written to.
	Destination string `yaml:"destination"`

	// Driver is sqlite or duckdb. Empty detects it from Destination.
	Driver string `yaml:"driver"`

	// Log configures logging.
	Log LogConfig `yaml:"log"`

	// Export configures optional file exports.
	Export ExportConfig `yaml:"export"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `yaml:"level"`

	// JSON switches to JSON output.
	JSON bool `yaml:"json"`
}

// ExportConfig configures optional file exports.
type ExportConfig struct {
	// Parquet is the path of a Parquet copy of the inventory. Empty disables it.
	Parquet string `yaml:"parquet"`

	// Compression is the Parquet compression codec.
	Compression string `yaml:"compression"`
}

// Default returns a Config with defaults applied.
func Default() *Config {
	return &Config{
		Destination: store.DefaultDestination,
		Log:         LogConfig{Level: "warn"},
		Export:      ExportConfig{Compression: "zstd"},
	}
}

// LoadEnv loads a dotenv file into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadEnv(path string) error {
	if path == "" {
		path = DefaultEnvFile
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("load env file %q: %w", path, err)
	}

	return nil
}

// Load builds a Config from defaults, the environment and, if path is not
// empty, the YAML file at path. Environment references inside the file are
// expanded before parsing. Values from the file win over the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if v := os.Getenv(EnvRoot); v != "" {
		cfg.Root = v
	}

	if v := os.Getenv(EnvDestination); v != "" {
		cfg.Destination = v
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Destination == "" {
		cfg.Destination = store.DefaultDestination
	}

	return cfg, nil
}
