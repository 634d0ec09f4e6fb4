package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable that overrides the config location.
const EnvPath = "PNGME_CONFIG"

// Color modes for styled output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the settings read from the YAML config file.
type Config struct {
	// log what each command does to stderr
	Verbose bool `yaml:"verbose"`

	// permissions of output files that do not exist yet
	FileMode os.FileMode `yaml:"file_mode"`

	// styling of the inspect table: auto, always or never
	Color string `yaml:"color"`

	// print skips chunks whose data is not UTF-8 instead of failing
	SkipBinary bool `yaml:"skip_binary"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		FileMode: 0644,
		Color:    ColorAuto,
	}
}

// DefaultPath returns $PNGME_CONFIG, or config.yaml in the user's config
// directory.
func DefaultPath() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "pngme", "config.yaml")
}

// Load reads the config file at path over the defaults. An empty path means
// DefaultPath, and in that case a missing file is not an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every field holds a usable value.
func (c *Config) Validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color must be %s, %s or %s, got %q", ColorAuto, ColorAlways, ColorNever, c.Color)
	}
	if c.FileMode == 0 || c.FileMode&^fs.ModePerm != 0 {
		return fmt.Errorf("file_mode must be a permission between 0001 and 0777, got %#o", uint32(c.FileMode))
	}
	return nil
}
