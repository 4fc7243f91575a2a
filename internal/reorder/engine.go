// Package reorder computes drag-and-drop insertion points for a vertical list.
//
// The rule is the same for pointer and touch drags: the dragged item goes
// before the nearest item whose vertical midpoint the pointer has not yet
// passed, or to the end if there is none. Touch drags first have to be
// classified as drags (see Gesture) so that scrolling does not reorder.
package reorder

import (
	"math"
	"slices"
)

// Box is the vertical extent of one rendered item.
type Box struct {
	ID     string
	Top    float64
	Height float64
}

// Mid is the vertical midpoint of the box.
func (b Box) Mid() float64 { return b.Top + b.Height/2 }

// InsertBefore returns the id of the item the dragged one belongs in front of.
// ok is false when y is below every midpoint, meaning "append to the end".
// boxes must not include the dragged item.
func InsertBefore(y float64, boxes []Box) (id string, ok bool) {
	best := math.Inf(-1)
	for _, b := range boxes {
		offset := y - b.Mid()
		if offset < 0 && offset > best {
			best, id, ok = offset, b.ID, true
		}
	}
	return id, ok
}

// MoveBefore returns a copy of order with id moved in front of before.
// An empty before moves id to the end. Unknown ids leave the order unchanged.
func MoveBefore(order []string, id, before string) []string {
	out := slices.Clone(order)
	from := slices.Index(out, id)
	if from < 0 || id == before {
		return out
	}
	if before != "" && !slices.Contains(out, before) {
		return out
	}
	out = slices.Delete(out, from, from+1)
	to := len(out)
	if before != "" {
		to = slices.Index(out, before)
	}
	return slices.Insert(out, to, id)
}

// Layout projects an ordered list onto vertical boxes.
type Layout interface {
	Boxes(order []string) []Box
}

// RowLayout places items on fixed-height rows starting at Top.
// Offset is the index of the first visible item; earlier items land above Top.
type RowLayout struct {
	Top       float64
	RowHeight float64
	Offset    int
}

func (l RowLayout) Boxes(order []string) []Box {
	h := l.RowHeight
	if h <= 0 {
		h = 1
	}
	boxes := make([]Box, len(order))
	for i, id := range order {
		boxes[i] = Box{ID: id, Top: l.Top + float64(i-l.Offset)*h, Height: h}
	}
	return boxes
}

// RowAt returns the index of the row containing y, or -1.
func (l RowLayout) RowAt(y float64, n int) int {
	h := l.RowHeight
	if h <= 0 {
		h = 1
	}
	if y < l.Top {
		return -1
	}
	i := int((y-l.Top)/h) + l.Offset
	if i < 0 || i >= n {
		return -1
	}
	return i
}
