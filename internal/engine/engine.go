package engine

import (
	"fmt"
	"sync"

	"github.com/dshills/vhdlalign/internal/engine/buffer"
	"github.com/dshills/vhdlalign/internal/engine/cursor"
	"github.com/dshills/vhdlalign/internal/engine/history"
)

// Re-export commonly used types for convenience.
type (
	// Point represents a line/column position.
	Point = buffer.Point

	// LineEdit is a whole-line change.
	LineEdit = buffer.LineEdit

	// Selection represents a cursor selection.
	Selection = cursor.Selection

	// RevisionID uniquely identifies a buffer revision.
	RevisionID = buffer.RevisionID
)

// undoLimit is the number of undo steps an engine keeps.
const undoLimit = 1000

// Option configures an Engine during creation.
type Option func(*Engine)

// WithContent sets the initial text. Its line ending is detected and used
// again when the text is joined.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.initContent = content
	}
}

// WithReadOnly makes every edit, undo and redo fail with ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}

// Engine is the main facade for the document engine.
// All operations are thread-safe.
type Engine struct {
	mu sync.RWMutex

	buf     *buffer.Buffer
	cursors *cursor.CursorSet
	history *history.History

	readOnly      bool
	savedRevision RevisionID

	initContent string
}

// New creates an Engine with one cursor at the start of the document.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	e.buf = buffer.NewBufferFromString(e.initContent)
	e.cursors = cursor.NewCursorSetAt(Point{})
	e.history = history.NewHistory(undoLimit)
	e.savedRevision = e.buf.RevisionID()
	return e
}

// Text returns the full document.
func (e *Engine) Text() string {
	return e.buf.Text()
}

// LineCount returns the number of lines.
func (e *Engine) LineCount() uint32 {
	return e.buf.LineCount()
}

// LineText returns the text of line, or "" when it is out of range.
func (e *Engine) LineText(line uint32) string {
	return e.buf.LineText(line)
}

// LineLen returns the length of line in characters.
func (e *Engine) LineLen(line uint32) uint32 {
	return e.buf.LineLen(line)
}

// RevisionID returns the current revision.
func (e *Engine) RevisionID() RevisionID {
	return e.buf.RevisionID()
}

// IsReadOnly reports whether writes are rejected.
func (e *Engine) IsReadOnly() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.readOnly
}

// Selections returns all selections in the order they were added.
func (e *Engine) Selections() []Selection {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cursors.All()
}

// SetSelections replaces the selections, clamped to the document.
func (e *Engine) SetSelections(sels []Selection) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursors.SetAll(sels)
	e.cursors.Clamp(e.buf)
}

// ApplyLineEdits applies edits as one undo step and sets the selections.
//
// rev must equal the current revision. sels may be nil to keep the current
// selections, shifted by any inserted or deleted lines.
func (e *Engine) ApplyLineEdits(rev RevisionID, label string, edits []LineEdit, sels []Selection) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	if cur := e.buf.RevisionID(); rev != cur {
		return fmt.Errorf("%w: have %d, edit computed at %d", ErrStaleRevision, cur, rev)
	}
	if len(edits) == 0 {
		if sels != nil {
			e.cursors.SetAll(sels)
			e.cursors.Clamp(e.buf)
		}
		return nil
	}

	tx := history.NewTransaction(label, edits, e.cursors.All(), sels)
	return e.history.Execute(tx, e.buf, e.cursors)
}

// Undo reverts the most recent transaction.
func (e *Engine) Undo() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.readOnly {
		return ErrReadOnly
	}
	return e.history.Undo(e.buf, e.cursors)
}

// Redo re-applies the most recently undone transaction.
func (e *Engine) Redo() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.readOnly {
		return ErrReadOnly
	}
	return e.history.Redo(e.buf, e.cursors)
}

// CanUndo reports whether there is anything to undo.
func (e *Engine) CanUndo() bool {
	return e.history.CanUndo()
}

// UndoCount returns the number of undo steps available.
func (e *Engine) UndoCount() int {
	return e.history.UndoCount()
}

// UndoLabel names the edit Undo would revert, or "" if there is none.
func (e *Engine) UndoLabel() string {
	return e.history.UndoLabel()
}

// RedoLabel names the edit Redo would re-apply, or "" if there is none.
func (e *Engine) RedoLabel() string {
	return e.history.RedoLabel()
}

// IsModified reports whether the document changed since the last MarkSaved.
func (e *Engine) IsModified() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.RevisionID() != e.savedRevision
}

// MarkSaved records the current revision as saved.
func (e *Engine) MarkSaved() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.savedRevision = e.buf.RevisionID()
}
