package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/model"
)

// Slot keys. The theme slot belongs to the UI; Save never writes it.
const (
	NotesKey = "notes"
	ThemeKey = "theme"
)

// Adapter reads and writes the ordered note list to its slot.
type Adapter struct {
	slots    Slots
	maxBytes int64
	logger   *slog.Logger
}

// NewAdapter wraps slots. maxBytes <= 0 disables the quota check.
func NewAdapter(slots Slots, maxBytes int64) *Adapter {
	return &Adapter{
		slots:    slots,
		maxBytes: maxBytes,
		logger:   slog.Default().With("component", "storage"),
	}
}

// Save overwrites the notes slot with the full list.
func (a *Adapter) Save(notes []model.Note) error {
	if notes == nil {
		notes = []model.Note{}
	}
	b, err := json.Marshal(notes)
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if a.maxBytes > 0 && int64(len(b)) > a.maxBytes {
		return fmt.Errorf("%w: %s exceeds %s", ErrQuotaExceeded,
			humanize.Bytes(uint64(len(b))), humanize.Bytes(uint64(a.maxBytes)))
	}
	if err := a.slots.Put(NotesKey, b); err != nil {
		return fmt.Errorf("save notes: %w", err)
	}
	a.logger.Debug("notes saved", "count", len(notes), "bytes", len(b))
	return nil
}

// Load returns the saved list. Missing or unreadable data counts as no saved data.
func (a *Adapter) Load() []model.Note {
	b, err := a.slots.Get(NotesKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			a.logger.Warn("reading notes failed; starting empty", "err", err)
		}
		return []model.Note{}
	}
	var notes []model.Note
	if err := json.Unmarshal(b, &notes); err != nil {
		a.logger.Warn("saved notes are unparseable; starting empty", "err", err)
		return []model.Note{}
	}
	if notes == nil {
		notes = []model.Note{}
	}
	return notes
}

// Usage reports the size of the stored notes slot and the configured quota.
func (a *Adapter) Usage() (used, limit int64) {
	b, err := a.slots.Get(NotesKey)
	if err == nil {
		used = int64(len(b))
	}
	return used, a.maxBytes
}

// Theme returns the stored theme preference, or "" if none.
func (a *Adapter) Theme() string {
	b, err := a.slots.Get(ThemeKey)
	if err != nil {
		return ""
	}
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return ""
	}
	if name != config.ThemeLight && name != config.ThemeDark {
		return ""
	}
	return name
}

// SetTheme stores the theme preference ("light" or "dark").
func (a *Adapter) SetTheme(name string) error {
	if name != config.ThemeLight && name != config.ThemeDark {
		return fmt.Errorf("unknown theme %q", name)
	}
	b, _ := json.Marshal(name)
	if err := a.slots.Put(ThemeKey, b); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// Path is the file backing the slots.
func (a *Adapter) Path() string { return a.slots.Path() }
