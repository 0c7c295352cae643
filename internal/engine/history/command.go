package history

import (
	"fmt"

	"github.com/dshills/vhdlalign/internal/engine/buffer"
	"github.com/dshills/vhdlalign/internal/engine/cursor"
)

// Selection is an alias for cursor.Selection for convenience.
type Selection = cursor.Selection

// Command represents an edit action that can be executed and undone.
type Command interface {
	// Execute performs the command and returns an error if it fails.
	Execute(buf *buffer.Buffer, cursors *cursor.CursorSet) error

	// Undo reverses the command and returns an error if it fails.
	Undo(buf *buffer.Buffer, cursors *cursor.CursorSet) error

	// Description returns a human-readable description of the command.
	Description() string
}

// Transaction is a batch of line edits applied as a single undo step.
type Transaction struct {
	Label string

	Edits []buffer.LineEdit

	// CursorsBefore and CursorsAfter restore the selections on undo and redo.
	// A nil CursorsAfter leaves the selections transformed by the edits.
	CursorsBefore []Selection
	CursorsAfter  []Selection

	inverse []buffer.LineEdit
}

// NewTransaction creates a transaction; label names it in undo messages.
func NewTransaction(label string, edits []buffer.LineEdit, before, after []Selection) *Transaction {
	return &Transaction{
		Label:         label,
		Edits:         edits,
		CursorsBefore: before,
		CursorsAfter:  after,
	}
}

// Execute applies the edits and moves the cursors.
func (t *Transaction) Execute(buf *buffer.Buffer, cursors *cursor.CursorSet) error {
	inverse, err := buf.Apply(t.Edits)
	if err != nil {
		return fmt.Errorf("%s: %w", t.Label, err)
	}
	t.inverse = inverse

	if t.CursorsAfter != nil {
		cursors.SetAll(t.CursorsAfter)
	} else {
		cursors.Transform(t.Edits...)
	}
	cursors.Clamp(buf)
	return nil
}

// Undo reverts the edits and restores the cursors.
func (t *Transaction) Undo(buf *buffer.Buffer, cursors *cursor.CursorSet) error {
	if t.inverse == nil && len(t.Edits) > 0 {
		return fmt.Errorf("%s: %w", t.Label, ErrNotExecuted)
	}
	if _, err := buf.Apply(t.inverse); err != nil {
		return fmt.Errorf("undo %s: %w", t.Label, err)
	}
	if t.CursorsBefore != nil {
		cursors.SetAll(t.CursorsBefore)
	}
	cursors.Clamp(buf)
	return nil
}

// Description returns the transaction label.
func (t *Transaction) Description() string {
	return t.Label
}
