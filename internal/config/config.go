// Package config loads shell settings from an optional YAML file and
// GOSH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Default configuration values.
const (
	DefaultConfigDir  = "gosh"
	DefaultConfigFile = "config.yaml"
	DefaultPrompt     = "$ "
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "GOSH"

var validate = validator.New()

// Config represents the full shell configuration.
type Config struct {
	Prompt    string `mapstructure:"prompt"`
	Verbosity int    `mapstructure:"verbosity" validate:"gte=0,lte=2"`
}

// Validate checks the configuration for errors using struct tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// Loader provides configuration loading.
type Loader struct {
	v        *viper.Viper
	path     string
	explicit bool
}

// NewLoader creates a loader for path. An empty path selects the default
// location under the user config directory, which may be absent.
func NewLoader(path string) (*Loader, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	l := &Loader{
		v:        v,
		path:     path,
		explicit: explicit,
	}

	l.setDefaults()

	return l, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/gosh/config.yaml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, DefaultConfigDir, DefaultConfigFile), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".config", DefaultConfigDir, DefaultConfigFile), nil
}

func (l *Loader) setDefaults() {
	l.v.SetDefault("prompt", DefaultPrompt)
	l.v.SetDefault("verbosity", 0)
}

// Path returns the config file location.
func (l *Loader) Path() string {
	return l.path
}

// Load reads the config file if present and applies env overrides.
// A missing file is only an error when the path was given explicitly.
func (l *Loader) Load() (*Config, error) {
	_, statErr := os.Stat(l.path)
	switch {
	case statErr == nil:
		if err := l.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", l.path, err)
		}
	case !errors.Is(statErr, os.ErrNotExist) || l.explicit:
		return nil, fmt.Errorf("read config %s: %w", l.path, statErr)
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
