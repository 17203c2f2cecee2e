// pkg/core/config.go
package core

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatCargo = "cargo"
	FormatCgo   = "cgo"
	FormatFlags = "flags"
)

// Config holds alsa-sys configuration
type Config struct {
	Format    string `yaml:"format"`     // cargo, cgo or flags
	Package   string `yaml:"package"`    // Go package name for the cgo format
	Library   string `yaml:"library"`    // registry entry to resolve
	PkgConfig string `yaml:"pkg_config"` // pkg-config module, overrides the registry
	EnvPrefix string `yaml:"env_prefix"` // prefix of the override variables
	Debug     bool   `yaml:"debug"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Format:    FormatCargo,
		Package:   "alsa",
		Library:   "alsa",
		PkgConfig: "",
		EnvPrefix: "ALSA",
		Debug:     false,
	}
}

// DefaultConfigPath returns $HOME/.config/alsa-sys/config.yaml
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "alsa-sys", "config.yaml")
}

// LoadConfig loads configuration from file. A missing file yields the
// defaults; keys absent from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
		if path == "" {
			return DefaultConfig(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig saves configuration to file
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = DefaultConfigPath()
		if path == "" {
			return fmt.Errorf("no config path")
		}
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Validate checks the format and required names
func (c *Config) Validate() error {
	switch c.Format {
	case FormatCargo, FormatCgo, FormatFlags:
	default:
		return fmt.Errorf("unknown format %q (want %s, %s or %s)", c.Format, FormatCargo, FormatCgo, FormatFlags)
	}
	if c.Library == "" {
		return fmt.Errorf("library must not be empty")
	}
	if c.EnvPrefix == "" {
		return fmt.Errorf("env_prefix must not be empty")
	}
	return nil
}
