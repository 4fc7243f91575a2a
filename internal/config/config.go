package config

import "log/slog"

// Storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Drag interaction modes.
const (
	DragPointer = "pointer"
	DragTouch   = "touch"
)

// Themes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Config is the root configuration structure.
type Config struct {
	Storage StorageConfig `yaml:"storage" toml:"storage"`
	Export  ExportConfig  `yaml:"export" toml:"export"`
	Drag    DragConfig    `yaml:"drag" toml:"drag"`
	UI      UIConfig      `yaml:"ui" toml:"ui"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// StorageConfig selects where the note slots live.
type StorageConfig struct {
	Backend string `yaml:"backend" toml:"backend"` // "json" or "sqlite"
	Dir     string `yaml:"dir" toml:"dir"`         // supports ~ expansion

	// MaxBytes caps the serialized note list; writes above it are refused.
	MaxBytes    int64  `yaml:"-" toml:"-"`
	MaxBytesRaw string `yaml:"max_bytes" toml:"max_bytes"` // e.g. "5MB"
}

// ExportConfig configures backup export.
type ExportConfig struct {
	Dir string `yaml:"dir" toml:"dir"`
}

// DragConfig configures reordering gestures in the TUI.
type DragConfig struct {
	Mode           string  `yaml:"mode" toml:"mode"`
	TouchThreshold float64 `yaml:"touch_threshold" toml:"touch_threshold"`
}

// UIConfig configures appearance.
type UIConfig struct {
	// Theme is used only until a preference has been stored.
	Theme string `yaml:"theme" toml:"theme"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level" toml:"level"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:     BackendJSON,
			Dir:         "~/.config/tada",
			MaxBytes:    5 * 1000 * 1000,
			MaxBytesRaw: "5MB",
		},
		Export: ExportConfig{
			Dir: ".",
		},
		Drag: DragConfig{
			Mode:           DragPointer,
			TouchThreshold: 10,
		},
		UI: UIConfig{
			Theme: ThemeLight,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// SlogLevel maps the configured level name to a slog level.
// Unknown names fall back to warn.
func (c *Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return slog.LevelWarn
	}
	return lvl
}
