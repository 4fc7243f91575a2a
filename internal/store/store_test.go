package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/model"
)

func backends(t *testing.T) map[string]Slots {
	t.Helper()
	dir := t.TempDir()

	sq, err := OpenSQLite(filepath.Join(dir, "nested", "notes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sq.Close() })

	return map[string]Slots{
		"json":   OpenJSONFile(filepath.Join(dir, "nested", "notes.json")),
		"sqlite": sq,
	}
}

func TestSlots_GetMissing(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get("nope")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestSlots_PutOverwrites(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Put("k", []byte(`[1]`)))
			require.NoError(t, s.Put("k", []byte(`[2]`)))
			require.NoError(t, s.Put("other", []byte(`"x"`)))

			v, err := s.Get("k")
			require.NoError(t, err)
			assert.JSONEq(t, `[2]`, string(v))

			v, err = s.Get("other")
			require.NoError(t, err)
			assert.JSONEq(t, `"x"`, string(v))
		})
	}
}

func TestJSONFile_RejectsInvalidValue(t *testing.T) {
	f := OpenJSONFile(filepath.Join(t.TempDir(), "notes.json"))
	assert.Error(t, f.Put("notes", []byte("{not json")))
}

func TestJSONFile_CorruptFileIsReplacedOnPut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))
	f := OpenJSONFile(path)

	_, err := f.Get("notes")
	require.Error(t, err)

	require.NoError(t, f.Put("notes", []byte(`[]`)))
	v, err := f.Get("notes")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(v))
}

func TestOpen_SelectsBackend(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(config.StorageConfig{Backend: config.BackendJSON, Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "notes.json"), s.Path())

	s, err = Open(config.StorageConfig{Backend: config.BackendSQLite, Dir: dir})
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, filepath.Join(dir, "notes.db"), s.Path())

	_, err = Open(config.StorageConfig{Backend: "redis", Dir: dir})
	assert.Error(t, err)
}

func TestAdapter_LoadEmpty(t *testing.T) {
	a := NewAdapter(OpenJSONFile(filepath.Join(t.TempDir(), "notes.json")), 0)
	notes := a.Load()
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}

func TestAdapter_SaveLoadPreservesOrder(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			a := NewAdapter(s, 0)
			in := []model.Note{
				{ID: "3", Text: "c", IsDone: true},
				{ID: "1", Text: "<i>a</i>"},
				{ID: "2", Text: "b"},
			}
			require.NoError(t, a.Save(in))
			assert.Equal(t, in, a.Load())
		})
	}
}

func TestAdapter_UnparseableSlotLoadsEmpty(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Put(NotesKey, []byte(`{"a":1}`)))
			assert.Empty(t, NewAdapter(s, 0).Load())
		})
	}
}

func TestAdapter_CorruptFileLoadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	require.NoError(t, os.WriteFile(path, []byte("{{{{"), 0o644))
	assert.Empty(t, NewAdapter(OpenJSONFile(path), 0).Load())
}

func TestAdapter_SaveLeavesThemeAlone(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			a := NewAdapter(s, 0)
			require.NoError(t, a.SetTheme("dark"))
			require.NoError(t, a.Save([]model.Note{{ID: "1", Text: "a"}}))
			require.NoError(t, a.Save(nil))

			assert.Equal(t, "dark", a.Theme())
			assert.Empty(t, a.Load())
		})
	}
}

func TestAdapter_Theme(t *testing.T) {
	a := NewAdapter(OpenJSONFile(filepath.Join(t.TempDir(), "notes.json")), 0)
	assert.Equal(t, "", a.Theme())
	assert.Error(t, a.SetTheme("neon"))
	require.NoError(t, a.SetTheme("light"))
	assert.Equal(t, "light", a.Theme())
}

func TestAdapter_QuotaExceeded(t *testing.T) {
	a := NewAdapter(OpenJSONFile(filepath.Join(t.TempDir(), "notes.json")), 64)
	require.NoError(t, a.Save([]model.Note{{ID: "1", Text: "short"}}))

	err := a.Save([]model.Note{{ID: "1", Text: "short"}, {ID: "2", Text: "this one pushes the payload over the limit"}})
	require.ErrorIs(t, err, ErrQuotaExceeded)

	// previous value intact
	assert.Equal(t, []model.Note{{ID: "1", Text: "short"}}, a.Load())

	used, limit := a.Usage()
	assert.Positive(t, used)
	assert.Equal(t, int64(64), limit)
}
