package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	ErrInvalidDocument = errors.New("not valid JSON")
	ErrNotArray        = errors.New("top-level value is not an array")
	ErrInvalidRecord   = errors.New("invalid note record")
	ErrDuplicateID     = errors.New("duplicate note id")
)

// RecordError reports which element of an import document failed the schema check.
type RecordError struct {
	Index  int
	Field  string
	Reason string
}

func (e *RecordError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("record %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("record %d: %s: %s", e.Index, e.Field, e.Reason)
}

func (e *RecordError) Unwrap() error { return ErrInvalidRecord }

// ValidateRecords checks the structure of a serialized note list without decoding it.
// Every element must be an object with a non-empty id (string or number),
// a string text and a boolean isDone. Ids must be unique.
func ValidateRecords(data []byte) error {
	if !gjson.ValidBytes(data) {
		return ErrInvalidDocument
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		return ErrNotArray
	}

	var err error
	seen := make(map[string]int)
	i := 0
	doc.ForEach(func(_, rec gjson.Result) bool {
		err = validateRecord(i, rec, seen)
		i++
		return err == nil
	})
	return err
}

func validateRecord(i int, rec gjson.Result, seen map[string]int) error {
	if !rec.IsObject() {
		return &RecordError{Index: i, Reason: "not an object"}
	}
	if k, ok := repeatedKey(rec); ok {
		return &RecordError{Index: i, Field: k, Reason: "repeated key"}
	}

	id := rec.Get("id")
	var key string
	switch id.Type {
	case gjson.String:
		key = id.String()
	case gjson.Number:
		key = id.Raw
	default:
		if !id.Exists() {
			return &RecordError{Index: i, Field: "id", Reason: "missing"}
		}
		return &RecordError{Index: i, Field: "id", Reason: "must be a string or number"}
	}
	if key == "" {
		return &RecordError{Index: i, Field: "id", Reason: "empty"}
	}
	if first, dup := seen[key]; dup {
		return fmt.Errorf("%w: %q at records %d and %d", ErrDuplicateID, key, first, i)
	}
	seen[key] = i

	if text := rec.Get("text"); text.Type != gjson.String {
		return &RecordError{Index: i, Field: "text", Reason: "must be a string"}
	}
	if done := rec.Get("isDone"); done.Type != gjson.True && done.Type != gjson.False {
		return &RecordError{Index: i, Field: "isDone", Reason: "must be a boolean"}
	}
	return nil
}

// repeatedKey finds a key that appears twice in an object. Keys compare
// case-folded because encoding/json matches field names that way.
func repeatedKey(rec gjson.Result) (string, bool) {
	var dup string
	var keys []string
	rec.ForEach(func(k, _ gjson.Result) bool {
		name := k.String()
		for _, prev := range keys {
			if strings.EqualFold(prev, name) {
				dup = name
				return false
			}
		}
		keys = append(keys, name)
		return true
	})
	return dup, dup != ""
}

// CheckIDs reports the first empty or repeated id in a decoded list.
func CheckIDs(notes []Note) error {
	seen := make(map[string]int, len(notes))
	for i, n := range notes {
		if n.ID == "" {
			return &RecordError{Index: i, Field: "id", Reason: "empty"}
		}
		if first, dup := seen[n.ID]; dup {
			return fmt.Errorf("%w: %q at records %d and %d", ErrDuplicateID, n.ID, first, i)
		}
		seen[n.ID] = i
	}
	return nil
}
