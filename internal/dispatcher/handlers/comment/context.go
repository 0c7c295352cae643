package comment

import (
	"github.com/dshills/vhdlalign/internal/align"
	"github.com/dshills/vhdlalign/internal/engine/cursor"
)

// ContextKey is the key-binding condition that gates the aligner bindings.
const ContextKey = Namespace + ".cursorAtComment"

// Document is the read-only view of an editor the context flag needs.
type Document interface {
	LanguageID() string
	LineCount() uint32
	LineText(line uint32) string
	Selections() []cursor.Selection
}

// ConditionSetter receives the computed flag.
type ConditionSetter interface {
	SetCondition(name string, value bool)
}

// CursorAtComment reports whether doc is VHDL and at least one cursor sits
// exactly on a comment marker. A nil doc yields false.
func CursorAtComment(doc Document) bool {
	if doc == nil || !IsVHDL(doc.LanguageID()) {
		return false
	}
	n := doc.LineCount()
	for _, sel := range doc.Selections() {
		p := sel.Cursor()
		if p.Line >= n {
			continue
		}
		if align.AtComment(doc.LineText(p.Line), int(p.Column)) {
			return true
		}
	}
	return false
}

// Tracker keeps the context flag current for one key-binding context.
type Tracker struct {
	target ConditionSetter
	value  bool
}

// NewTracker creates a tracker publishing into target.
func NewTracker(target ConditionSetter) *Tracker {
	return &Tracker{target: target}
}

// Update recomputes the flag for doc and publishes it. It returns the new
// value and whether it changed.
func (t *Tracker) Update(doc Document) (value, changed bool) {
	value = CursorAtComment(doc)
	changed = value != t.value
	t.value = value
	t.target.SetCondition(ContextKey, value)
	return value, changed
}

// Value returns the last published flag.
func (t *Tracker) Value() bool {
	return t.value
}
