// Package transfer exports the note list as a portable backup file and
// validates backups on the way back in.
package transfer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/idilsaglam/tada/internal/model"
)

// BackupFileName is the name of exported backups.
const BackupFileName = "notes-backup.json"

var ErrNothingToExport = errors.New("no notes to export")

// Export serializes notes in order as an indented JSON array.
// An empty list is refused rather than producing an empty file.
func Export(notes []model.Note) ([]byte, error) {
	if len(notes) == 0 {
		return nil, ErrNothingToExport
	}
	b, err := json.MarshalIndent(notes, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return append(b, '\n'), nil
}

// WriteBackup writes notes to dir/notes-backup.json and returns the path.
func WriteBackup(dir string, notes []model.Note) (string, error) {
	b, err := Export(notes)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}
	path := filepath.Join(dir, BackupFileName)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return path, nil
}

// Decode validates and parses a backup document.
// Validation errors wrap the model package's sentinel errors.
func Decode(data []byte) ([]model.Note, error) {
	if err := model.ValidateRecords(data); err != nil {
		return nil, fmt.Errorf("invalid backup: %w", err)
	}
	var notes []model.Note
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("invalid backup: %w: %v", model.ErrInvalidDocument, err)
	}
	if err := model.CheckIDs(notes); err != nil {
		return nil, fmt.Errorf("invalid backup: %w", err)
	}
	if notes == nil {
		notes = []model.Note{}
	}
	return notes, nil
}

// ReadFile reads and decodes the backup at path.
func ReadFile(path string) ([]model.Note, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return Decode(b)
}
