package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// JSON-backed slots. Single file, human-readable, portable.
// Values must themselves be valid JSON; they are embedded as-is.

var errCorrupt = errors.New("corrupt slot file")

// JSONFile stores all slots in one JSON object on disk.
type JSONFile struct {
	path string
}

func OpenJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

func (f *JSONFile) Path() string { return f.path }

func (f *JSONFile) Close() error { return nil }

func (f *JSONFile) Get(key string) ([]byte, error) {
	slots, err := f.read()
	if err != nil {
		return nil, err
	}
	v, ok := slots[key]
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

// Put rewrites the file with key set to value, leaving the other slots as they were.
// An unparseable file counts as empty and is replaced.
func (f *JSONFile) Put(key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("put %s: value is not valid JSON", key)
	}
	slots, err := f.read()
	if errors.Is(err, errCorrupt) {
		slots, err = map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return err
	}
	slots[key] = json.RawMessage(value)

	b, err := json.MarshalIndent(slots, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".notes-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(append(b, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

func (f *JSONFile) read() (map[string]json.RawMessage, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	slots := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &slots); err != nil {
		return nil, fmt.Errorf("%w: %v", errCorrupt, err)
	}
	return slots, nil
}
