// Package config loads booklet-maker's optional TOML settings file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	apperr "github.com/spookylukey/booklet-maker/pkg/errors"
)

const appName = "booklet-maker"

// Config holds defaults for a conversion. Command-line arguments override it.
type Config struct {
	Blanks          int    `toml:"blanks"`
	AllowMixedSizes bool   `toml:"allow_mixed_sizes"`
	Quiet           bool   `toml:"quiet"`
	LogLevel        string `toml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{LogLevel: "info"}
}

// Level returns the parsed log level.
func (c Config) Level() (log.Level, error) {
	if c.LogLevel == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return 0, apperr.Wrap(apperr.ErrCodeInvalidConfig, err, "log_level %q", c.LogLevel)
	}
	return lvl, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Blanks < 0 {
		return apperr.New(apperr.ErrCodeInvalidConfig, "blanks must not be negative, got %d", c.Blanks)
	}
	_, err := c.Level()
	return err
}

// Load reads the file at path on top of Default. Unknown keys are rejected so
// that typos do not silently fall back to defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, apperr.Wrap(apperr.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, apperr.Wrap(apperr.ErrCodeInvalidConfig, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, apperr.New(apperr.ErrCodeInvalidConfig, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// LoadDefault loads the file at DefaultPath if it exists, and returns the
// built-in settings otherwise.
func LoadDefault() (Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	if _, err := os.Stat(path); err != nil {
		return Default(), nil
	}
	return Load(path)
}

// DefaultPath returns the config file location using the XDG standard
// (~/.config/booklet-maker/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
