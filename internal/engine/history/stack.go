package history

import (
	"errors"
	"sync"

	"github.com/dshills/vhdlalign/internal/engine/buffer"
	"github.com/dshills/vhdlalign/internal/engine/cursor"
)

var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
	ErrNotExecuted   = errors.New("transaction was never executed")
)

// History keeps the executed commands of one buffer. A new command clears
// the redo stack; the oldest commands are dropped past the limit.
type History struct {
	mu    sync.Mutex
	undo  []Command
	redo  []Command
	limit int
}

// NewHistory creates a history holding at most limit undo steps.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = 1000
	}
	return &History{limit: limit}
}

// Execute runs cmd and records it. A failed command is not recorded.
func (h *History) Execute(cmd Command, buf *buffer.Buffer, cursors *cursor.CursorSet) error {
	if err := cmd.Execute(buf, cursors); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.undo = append(h.undo, cmd)
	h.redo = nil
	if over := len(h.undo) - h.limit; over > 0 {
		h.undo = h.undo[over:]
	}
	return nil
}

// Undo reverts the newest command and moves it to the redo stack.
func (h *History) Undo(buf *buffer.Buffer, cursors *cursor.CursorSet) error {
	return h.step(&h.undo, &h.redo, ErrNothingToUndo, func(cmd Command) error {
		return cmd.Undo(buf, cursors)
	})
}

// Redo re-runs the newest undone command.
func (h *History) Redo(buf *buffer.Buffer, cursors *cursor.CursorSet) error {
	return h.step(&h.redo, &h.undo, ErrNothingToRedo, func(cmd Command) error {
		return cmd.Execute(buf, cursors)
	})
}

// step pops from, runs apply and pushes onto to. The command stays on from
// when apply fails.
func (h *History) step(from, to *[]Command, empty error, apply func(Command) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := len(*from)
	if n == 0 {
		return empty
	}
	cmd := (*from)[n-1]
	if err := apply(cmd); err != nil {
		return err
	}
	*from = (*from)[:n-1]
	*to = append(*to, cmd)
	return nil
}

// CanUndo reports whether there is anything to undo.
func (h *History) CanUndo() bool {
	return h.UndoCount() > 0
}

// UndoCount returns the number of undo steps.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undo)
}

// UndoLabel describes the command Undo would revert, or "" if none.
func (h *History) UndoLabel() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return top(h.undo)
}

// RedoLabel describes the command Redo would re-run, or "" if none.
func (h *History) RedoLabel() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return top(h.redo)
}

func top(stack []Command) string {
	if len(stack) == 0 {
		return ""
	}
	return stack[len(stack)-1].Description()
}
