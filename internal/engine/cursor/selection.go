package cursor

import (
	"fmt"

	"github.com/dshills/vhdlalign/internal/engine/buffer"
)

// Point is an alias for buffer.Point.
type Point = buffer.Point

// Selection runs from Anchor to Head. Head is the cursor; when the two are
// equal the selection is a bare cursor. Commands act at Head only.
type Selection struct {
	Anchor Point
	Head   Point
}

// NewSelection creates a selection from anchor to head.
func NewSelection(anchor, head Point) Selection {
	return Selection{Anchor: anchor, Head: head}
}

// NewCursorSelection creates a bare cursor at p.
func NewCursorSelection(p Point) Selection {
	return Selection{Anchor: p, Head: p}
}

// IsEmpty reports whether the selection is a bare cursor.
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// Cursor returns the head position.
func (s Selection) Cursor() Point {
	return s.Head
}

func (s Selection) String() string {
	if s.IsEmpty() {
		return "cursor " + s.Head.String()
	}
	return fmt.Sprintf("selection %s-%s", s.Anchor, s.Head)
}
