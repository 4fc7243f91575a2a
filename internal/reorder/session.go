package reorder

import (
	"math"
	"slices"
)

// Mode is the kind of input driving a drag.
type Mode int

const (
	// Pointer drags reorder from the first move after the press.
	Pointer Mode = iota
	// Touch drags must first be classified by a Gesture.
	Touch
)

// DefaultTouchThreshold is the vertical travel a touch needs before it counts as a drag.
const DefaultTouchThreshold = 10

// Gesture tells a deliberate vertical drag apart from a scroll.
type Gesture struct {
	startX, startY float64
	threshold      float64
	dragging       bool
}

// NewGesture starts tracking a touch at (x, y).
func NewGesture(x, y, threshold float64) *Gesture {
	if threshold <= 0 {
		threshold = DefaultTouchThreshold
	}
	return &Gesture{startX: x, startY: y, threshold: threshold}
}

// Update feeds a new touch position and reports whether the gesture is a drag.
// Once classified, a gesture stays a drag until it ends.
func (g *Gesture) Update(x, y float64) bool {
	if g.dragging {
		return true
	}
	dy := math.Abs(y - g.startY)
	dx := math.Abs(x - g.startX)
	if dy > g.threshold && dy > dx {
		g.dragging = true
	}
	return g.dragging
}

func (g *Gesture) Dragging() bool { return g.dragging }

// Session is one drag of one item. It works on its own copy of the order;
// nothing is committed until Finish.
type Session struct {
	mode    Mode
	dragged string
	start   []string
	order   []string
	gesture *Gesture
}

// Start begins dragging id within order from position (x, y).
func Start(mode Mode, order []string, id string, x, y, threshold float64) *Session {
	s := &Session{
		mode:    mode,
		dragged: id,
		start:   slices.Clone(order),
		order:   slices.Clone(order),
	}
	if mode == Touch {
		s.gesture = NewGesture(x, y, threshold)
	}
	return s
}

// Dragged is the id being moved.
func (s *Session) Dragged() string { return s.dragged }

// Active reports whether the session has started reordering.
func (s *Session) Active() bool {
	return s.mode == Pointer || s.gesture.Dragging()
}

// Order is the live order, including moves not yet committed.
func (s *Session) Order() []string { return slices.Clone(s.order) }

// Move handles a pointer/touch move to (x, y) and reports whether the live order changed.
// The insertion point is computed against the current live layout.
func (s *Session) Move(x, y float64, layout Layout) bool {
	if s.gesture != nil && !s.gesture.Update(x, y) {
		return false
	}
	if len(s.order) < 2 || !slices.Contains(s.order, s.dragged) {
		return false
	}

	var others []Box
	for _, b := range layout.Boxes(s.order) {
		if b.ID != s.dragged {
			others = append(others, b)
		}
	}
	before, _ := InsertBefore(y, others)
	next := MoveBefore(s.order, s.dragged, before)
	if slices.Equal(next, s.order) {
		return false
	}
	s.order = next
	return true
}

// Finish ends the drag. changed is false when the final order equals the
// starting one, including unclassified touches.
func (s *Session) Finish() (order []string, changed bool) {
	if !s.Active() {
		return slices.Clone(s.start), false
	}
	return slices.Clone(s.order), !slices.Equal(s.order, s.start)
}
