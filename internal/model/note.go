package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Note is the domain model for a single note entry.
// Text is kept verbatim; it is never re-escaped on reload.
type Note struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	IsDone bool   `json:"isDone"`
}

// UnmarshalJSON accepts the id as either a JSON string or a JSON number.
// Older backups carry creation timestamps as bare numbers.
func (n *Note) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID     json.RawMessage `json:"id"`
		Text   string          `json:"text"`
		IsDone bool            `json:"isDone"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	id, err := decodeID(raw.ID)
	if err != nil {
		return err
	}
	n.ID, n.Text, n.IsDone = id, raw.Text, raw.IsDone
	return nil
}

func decodeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("id: %w", err)
		}
		return s, nil
	}
	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		return "", fmt.Errorf("id: want string or number: %w", err)
	}
	return num.String(), nil
}
