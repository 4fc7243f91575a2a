package transfer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/idilsaglam/tada/internal/model"
)

func TestExport_EmptyRefused(t *testing.T) {
	_, err := Export(nil)
	assert.ErrorIs(t, err, ErrNothingToExport)

	_, err = WriteBackup(t.TempDir(), []model.Note{})
	assert.ErrorIs(t, err, ErrNothingToExport)
}

func TestExport_PrettyPrinted(t *testing.T) {
	b, err := Export([]model.Note{{ID: "1", Text: "milk", IsDone: true}})
	require.NoError(t, err)

	want := `[
  {
    "id": "1",
    "text": "milk",
    "isDone": true
  }
]
`
	assert.Equal(t, want, string(b))
}

func TestWriteBackup(t *testing.T) {
	dir := t.TempDir()
	notes := []model.Note{{ID: "1", Text: "a"}, {ID: "2", Text: "b", IsDone: true}}

	path, err := WriteBackup(dir, notes)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "notes-backup.json"), path)

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, notes, got)
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"object", `{"a":1}`, model.ErrNotArray},
		{"not json", `hello`, model.ErrInvalidDocument},
		{"bad record", `[{"id":"1","text":"a"}]`, model.ErrInvalidRecord},
		{"duplicate", `[{"id":"1","text":"a","isDone":false},{"id":1,"text":"b","isDone":false}]`, model.ErrDuplicateID},
		{"repeated id key", `[{"id":"a","text":"a","isDone":false},{"id":"b","id":"a","text":"b","isDone":false}]`, model.ErrInvalidRecord},
		{"conflicting isDone", `[{"id":"1","text":"a","isDone":false,"isDone":"yes"}]`, model.ErrInvalidRecord},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.doc))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecode_UndecodableIsInvalidDocument(t *testing.T) {
	// Valid JSON nested past encoding/json's depth limit.
	deep := strings.Repeat("[", 10001) + strings.Repeat("]", 10001)
	doc := `[{"id":"1","text":"a","isDone":false,"extra":` + deep + `}]`

	_, err := Decode([]byte(doc))
	assert.ErrorIs(t, err, model.ErrInvalidDocument)
}

func TestDecode_LegacyNumericIDs(t *testing.T) {
	notes, err := Decode([]byte(`[{"id":1712345678901,"text":"old","isDone":true}]`))
	require.NoError(t, err)
	assert.Equal(t, []model.Note{{ID: "1712345678901", Text: "old", IsDone: true}}, notes)
}

func TestDecode_EmptyArray(t *testing.T) {
	notes, err := Decode([]byte(`[]`))
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExportDecode_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 20).Draw(t, "n")
		notes := make([]model.Note, n)
		for i := range notes {
			notes[i] = model.Note{
				ID:     fmt.Sprintf("id-%d", i),
				Text:   rapid.StringMatching(`[a-zA-Z0-9 <>&"'.,!?é☰]{0,40}`).Draw(t, "text"),
				IsDone: rapid.Bool().Draw(t, "done"),
			}
		}

		b, err := Export(notes)
		if err != nil {
			t.Fatalf("export: %v", err)
		}
		got, err := Decode(b)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(got) != len(notes) {
			t.Fatalf("got %d notes, want %d", len(got), len(notes))
		}
		for i := range notes {
			if got[i] != notes[i] {
				t.Fatalf("note %d: got %+v, want %+v", i, got[i], notes[i])
			}
		}
	})
}
