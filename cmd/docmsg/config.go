package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/avolkov/docmsg/docname"
)

// Config holds the command's settings. All fields have working defaults;
// a YAML config file is optional.
type Config struct {
	LogLevel slog.Level `yaml:"log_level"`

	// DefaultFilename is used when no name can be derived from the
	// message text.
	DefaultFilename string `yaml:"default_filename"`

	// FilenameMaxLen bounds derived file names, in characters. Zero
	// disables truncation.
	FilenameMaxLen int `yaml:"filename_max_len"`

	// SplitLimit is the chunk size, in characters, used when splitting
	// rendered output. Zero disables splitting.
	SplitLimit int `yaml:"split_limit"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DefaultFilename, validation.Required),
		validation.Field(&c.FilenameMaxLen, validation.Min(0)),
		validation.Field(&c.SplitLimit, validation.Min(0)),
	)
}

// defaultConfig returns a Config with the stock settings.
func defaultConfig() *Config {
	return &Config{
		LogLevel:        slog.LevelInfo,
		DefaultFilename: docname.DefaultName,
		FilenameMaxLen:  docname.DefaultMaxLen,
		SplitLimit:      4096,
	}
}

// loadConfig fills cfg from a YAML file with environment variable
// expansion, then validates it. An empty path keeps the defaults; a
// missing file at an explicit path is an error.
func loadConfig(path string, cfg *Config) error {
	if path == "" {
		return cfg.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("config file not found: %s", path)
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
