// Package engine provides the document engine behind an editor view.
//
// The engine combines a line buffer, a multi-cursor set and undo history
// behind one thread-safe API. Edits are submitted as batches of whole-line
// changes tagged with the revision they were computed against:
//
//	e := engine.New(engine.WithContent("a <= b; -- note"))
//
//	rev := e.RevisionID()
//	err := e.ApplyLineEdits(rev, "align comment",
//	    []engine.LineEdit{buffer.ReplaceLine(0, "a <= b;    -- note")},
//	    []engine.Selection{cursor.NewCursorSelection(engine.Point{Column: 11})},
//	)
//
//	e.Undo() // restores the line and the cursors in one step
//
// A batch computed against an older revision is rejected with
// ErrStaleRevision, so a command that read the document and then lost a race
// can fall back instead of corrupting it.
//
// # Error Handling
//
//   - ErrStaleRevision: the document changed since the edit was computed
//   - ErrReadOnly: write operation on a read-only engine
//   - ErrNothingToUndo, ErrNothingToRedo: empty history
package engine
