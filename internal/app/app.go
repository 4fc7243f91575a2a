// Package app owns the state of one notes session: the slot store, the
// storage adapter and the registry built from it. The CLI and the TUI both
// drive the list through an App.
package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/registry"
	"github.com/idilsaglam/tada/internal/reorder"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/transfer"
)

// App is the controller for one session.
type App struct {
	cfg     *config.Config
	slots   store.Slots
	storage *store.Adapter
	reg     *registry.Registry
	logger  *slog.Logger
}

// Open builds the store selected by cfg and loads the registry from it.
func Open(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	slots, err := store.Open(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	storage := store.NewAdapter(slots, cfg.Storage.MaxBytes)
	a := &App{
		cfg:     cfg,
		slots:   slots,
		storage: storage,
		reg:     registry.New(storage, registry.WithLogger(logger.With("component", "registry"))),
		logger:  logger.With("component", "app"),
	}
	a.Reload()
	return a, nil
}

func (a *App) Close() error { return a.slots.Close() }

func (a *App) Registry() *registry.Registry { return a.reg }

func (a *App) Config() *config.Config { return a.cfg }

// Reload rebuilds the registry wholesale from storage.
func (a *App) Reload() {
	a.reg.Load(a.storage.Load())
	a.logger.Debug("registry loaded", "count", a.reg.Len(), "path", a.slots.Path())
}

// Export writes notes-backup.json into dir, or the configured export dir when dir is empty.
func (a *App) Export(dir string) (string, error) {
	if dir == "" {
		dir = a.cfg.Export.Dir
	}
	path, err := transfer.WriteBackup(dir, a.reg.Notes())
	if err != nil {
		return "", err
	}
	a.logger.Info("notes exported", "path", path, "count", a.reg.Len())
	return path, nil
}

// ExportTo writes the backup document to w.
func (a *App) ExportTo(w io.Writer) error {
	b, err := transfer.Export(a.reg.Notes())
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// Import replaces everything with the backup at path.
func (a *App) Import(path string) error {
	notes, err := transfer.ReadFile(path)
	if err != nil {
		a.logger.Warn("import rejected", "path", path, "err", err)
		return err
	}
	return a.replace(notes)
}

// ImportBytes validates data, overwrites the stored list with it and reloads.
// On any failure storage and registry are left as they were.
func (a *App) ImportBytes(data []byte) error {
	notes, err := transfer.Decode(data)
	if err != nil {
		a.logger.Warn("import rejected", "err", err)
		return err
	}
	return a.replace(notes)
}

func (a *App) replace(notes []model.Note) error {
	if err := a.storage.Save(notes); err != nil {
		return err
	}
	a.Reload()
	a.logger.Info("notes imported", "count", a.reg.Len())
	return nil
}

// Theme returns the stored theme preference, falling back to the configured default.
func (a *App) Theme() string {
	if t := a.storage.Theme(); t != "" {
		return t
	}
	return a.cfg.UI.Theme
}

func (a *App) SetTheme(name string) error { return a.storage.SetTheme(name) }

// ToggleTheme flips between light and dark and returns the new theme.
func (a *App) ToggleTheme() (string, error) {
	next := config.ThemeDark
	if a.Theme() == config.ThemeDark {
		next = config.ThemeLight
	}
	if err := a.storage.SetTheme(next); err != nil {
		return a.Theme(), err
	}
	return next, nil
}

// Usage reports stored bytes and the quota.
func (a *App) Usage() (used, limit int64) { return a.storage.Usage() }

// StorePath is the file holding the slots.
func (a *App) StorePath() string { return a.slots.Path() }

// DragMode maps the configured drag mode.
func (a *App) DragMode() reorder.Mode {
	if a.cfg.Drag.Mode == config.DragTouch {
		return reorder.Touch
	}
	return reorder.Pointer
}

// TouchThreshold is the classification distance for touch drags.
func (a *App) TouchThreshold() float64 { return a.cfg.Drag.TouchThreshold }
