// Package registry holds the session's ordered note list.
//
// The registry is the single source of truth for rendering and persistence.
// Position in the list is the note's rank; there is no separate sort key.
// Every successful mutation writes the full list through the Saver. A failed
// write rolls the mutation back so memory and storage never disagree.
package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/idilsaglam/tada/internal/model"
)

var (
	ErrEmptyText      = errors.New("note text is empty")
	ErrNotFound       = errors.New("note not found")
	ErrNotPermutation = errors.New("order is not a permutation of current notes")
)

// Saver persists the full ordered list.
type Saver interface {
	Save(notes []model.Note) error
}

// Registry is an ordered collection of notes.
type Registry struct {
	notes  []model.Note
	saver  Saver
	newID  func() string
	logger *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithIDFunc overrides id generation.
func WithIDFunc(fn func() string) Option {
	return func(r *Registry) { r.newID = fn }
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) { r.logger = l }
}

// New returns an empty registry writing through saver.
func New(saver Saver, opts ...Option) *Registry {
	r := &Registry{
		saver:  saver,
		newID:  newID,
		logger: slog.Default().With("component", "registry"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// newID returns a time-ordered UUID; two notes created in the same tick still differ.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Load replaces the whole list without writing it back.
// Empty or repeated ids get fresh ones so every note stays addressable.
func (r *Registry) Load(notes []model.Note) {
	r.notes = slices.Clone(notes)
	if r.notes == nil {
		r.notes = []model.Note{}
	}
	seen := make(map[string]bool, len(r.notes))
	for i := range r.notes {
		id := r.notes[i].ID
		if id == "" || seen[id] {
			r.notes[i].ID = r.newID()
			r.logger.Warn("reassigned note id on load", "index", i, "old", id, "new", r.notes[i].ID)
		}
		seen[r.notes[i].ID] = true
	}
}

// Notes returns a copy of the ordered list.
func (r *Registry) Notes() []model.Note {
	return slices.Clone(r.notes)
}

func (r *Registry) Len() int { return len(r.notes) }

func (r *Registry) Empty() bool { return len(r.notes) == 0 }

// IDs returns note ids in order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.notes))
	for i, n := range r.notes {
		ids[i] = n.ID
	}
	return ids
}

// Index returns the position of id, or -1.
func (r *Registry) Index(id string) int {
	return slices.IndexFunc(r.notes, func(n model.Note) bool { return n.ID == id })
}

func (r *Registry) Get(id string) (model.Note, bool) {
	i := r.Index(id)
	if i < 0 {
		return model.Note{}, false
	}
	return r.notes[i], true
}

// Add appends a note with a fresh id. Whitespace-only text is refused.
func (r *Registry) Add(text string) (model.Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Note{}, ErrEmptyText
	}
	n := model.Note{ID: r.newID(), Text: text}
	next := append(slices.Clone(r.notes), n)
	if err := r.commit(next); err != nil {
		return model.Note{}, err
	}
	r.logger.Debug("note added", "id", n.ID)
	return n, nil
}

// Toggle flips IsDone for id.
func (r *Registry) Toggle(id string) (model.Note, error) {
	i := r.Index(id)
	if i < 0 {
		return model.Note{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	next := slices.Clone(r.notes)
	next[i].IsDone = !next[i].IsDone
	if err := r.commit(next); err != nil {
		return model.Note{}, err
	}
	return next[i], nil
}

// Remove deletes the note with id.
func (r *Registry) Remove(id string) error {
	i := r.Index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	next := slices.Delete(slices.Clone(r.notes), i, i+1)
	if err := r.commit(next); err != nil {
		return err
	}
	r.logger.Debug("note removed", "id", id)
	return nil
}

// Reorder rearranges the list to match ids, which must name every current note exactly once.
// An unchanged order is not written.
func (r *Registry) Reorder(ids []string) error {
	if len(ids) != len(r.notes) {
		r.logger.Warn("reorder rejected", "want", len(r.notes), "got", len(ids))
		return fmt.Errorf("%w: want %d ids, got %d", ErrNotPermutation, len(r.notes), len(ids))
	}
	byID := make(map[string]model.Note, len(r.notes))
	for _, n := range r.notes {
		byID[n.ID] = n
	}
	next := make([]model.Note, 0, len(ids))
	for _, id := range ids {
		n, ok := byID[id]
		if !ok {
			r.logger.Warn("reorder rejected", "id", id)
			return fmt.Errorf("%w: unknown or repeated id %s", ErrNotPermutation, id)
		}
		delete(byID, id)
		next = append(next, n)
	}
	if slices.Equal(next, r.notes) {
		return nil
	}
	return r.commit(next)
}

// Move places id directly before beforeID; an empty beforeID moves it to the end.
func (r *Registry) Move(id, beforeID string) error {
	from := r.Index(id)
	if from < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if beforeID != "" && r.Index(beforeID) < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, beforeID)
	}
	if id == beforeID {
		return nil
	}
	n := r.notes[from]
	next := slices.Delete(slices.Clone(r.notes), from, from+1)
	to := len(next)
	if beforeID != "" {
		to = slices.IndexFunc(next, func(m model.Note) bool { return m.ID == beforeID })
	}
	next = slices.Insert(next, to, n)
	if slices.Equal(next, r.notes) {
		return nil
	}
	return r.commit(next)
}

// commit persists next and adopts it only if the write succeeds.
func (r *Registry) commit(next []model.Note) error {
	if r.saver != nil {
		if err := r.saver.Save(next); err != nil {
			r.logger.Error("persist failed; change discarded", "err", err)
			return fmt.Errorf("persist: %w", err)
		}
	}
	r.notes = next
	return nil
}
