package engine

import (
	"errors"

	"github.com/dshills/vhdlalign/internal/engine/history"
)

// Errors returned by engine operations.
var (
	// ErrStaleRevision indicates an edit was computed against an old revision.
	ErrStaleRevision = errors.New("stale revision")

	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo indicates the redo stack is empty.
	ErrNothingToRedo = history.ErrNothingToRedo

	// ErrReadOnly indicates an operation was attempted on a read-only engine.
	ErrReadOnly = errors.New("engine is read-only")
)
