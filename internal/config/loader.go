package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

const (
	configDir  = ".config/tada"
	configFile = "config.yaml"
)

var envPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path.
// If path is empty, uses ~/.config/tada/config.yaml. A missing file yields defaults.
// Files ending in .toml are parsed as TOML, everything else as YAML.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = ConfigPath()
		if path == "" {
			return finish(cfg)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return finish(cfg)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := expandEnvVars(string(data))
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(expanded, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	} else {
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}
	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	if cfg.Storage.MaxBytesRaw != "" {
		n, err := humanize.ParseBytes(cfg.Storage.MaxBytesRaw)
		if err != nil {
			return nil, fmt.Errorf("parsing storage.max_bytes %q: %w", cfg.Storage.MaxBytesRaw, err)
		}
		cfg.Storage.MaxBytes = int64(n)
	}
	cfg.Storage.Dir = ExpandPath(cfg.Storage.Dir)
	cfg.Export.Dir = ExpandPath(cfg.Export.Dir)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// Unset variables expand to the empty string.
func expandEnvVars(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(envPattern.FindStringSubmatch(match)[1])
	})
}

// Validate checks field values, filling in defaults where a zero value is unusable.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendJSON, BackendSQLite:
	case "":
		c.Storage.Backend = BackendJSON
	default:
		return fmt.Errorf("storage.backend must be %q or %q, got %q", BackendJSON, BackendSQLite, c.Storage.Backend)
	}
	if c.Storage.Dir == "" {
		return fmt.Errorf("storage.dir is required")
	}
	if c.Storage.MaxBytes < 0 {
		return fmt.Errorf("storage.max_bytes must not be negative")
	}

	switch c.Drag.Mode {
	case DragPointer, DragTouch:
	case "":
		c.Drag.Mode = DragPointer
	default:
		return fmt.Errorf("drag.mode must be %q or %q, got %q", DragPointer, DragTouch, c.Drag.Mode)
	}
	if c.Drag.TouchThreshold <= 0 {
		c.Drag.TouchThreshold = 10
	}

	switch c.UI.Theme {
	case ThemeLight, ThemeDark:
	case "":
		c.UI.Theme = ThemeLight
	default:
		return fmt.Errorf("ui.theme must be light or dark, got %q", c.UI.Theme)
	}

	if c.Export.Dir == "" {
		c.Export.Dir = "."
	}
	return nil
}

// ExpandPath expands a leading ~/ to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ConfigPath returns the path to the default config file.
// TADA_CONFIG overrides it.
func ConfigPath() string {
	if p := os.Getenv("TADA_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, configFile)
}
