// Package cursor provides the cursors of a document.
//
// A Selection runs from an anchor to a head; the head is where commands
// act. CursorSet holds several selections at once. It keeps the order in
// which they were added so commands can report results per cursor.
// Identical selections are collapsed into one.
//
// Basic usage:
//
//	cs := cursor.NewCursorSetAt(buffer.Point{Line: 0, Column: 2})
//	cs.Add(cursor.NewCursorSelection(buffer.Point{Line: 1, Column: 2}))
//
//	// Keep cursors on the same rows after a line is inserted above them
//	cs.Transform(buffer.InsertLine(0, "library ieee;"))
package cursor
