package buffer

import (
	"cmp"
	"fmt"
	"sync/atomic"
)

// Point is a 0-based line and rune column in a document.
type Point struct {
	Line   uint32
	Column uint32
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

// Compare orders points by line and then column.
func (p Point) Compare(other Point) int {
	if c := cmp.Compare(p.Line, other.Line); c != 0 {
		return c
	}
	return cmp.Compare(p.Column, other.Column)
}

// Before reports whether p comes before other.
func (p Point) Before(other Point) bool { return p.Compare(other) < 0 }

// RevisionID identifies one state of a buffer's text. Edits made against a
// revision other than the current one are rejected.
type RevisionID uint64

var lastRevision atomic.Uint64

// NewRevisionID returns an identifier no buffer has used yet.
func NewRevisionID() RevisionID {
	return RevisionID(lastRevision.Add(1))
}
