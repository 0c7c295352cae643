// Package buffer provides a thread-safe, line-oriented text buffer.
//
// Text is held as a slice of lines without their terminators. Positions are
// Points: a 0-indexed line and a 0-indexed character column, where a
// character is a rune.
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("a <= b; -- note\n")
//
//	// Replace a line
//	inverse, err := buf.Apply([]buffer.LineEdit{
//	    buffer.ReplaceLine(0, "a <= b;   -- note"),
//	})
//
//	// Undo it
//	buf.Apply(inverse)
//
// Apply is atomic: either every edit in the batch lands or none do. Each
// successful Apply creates a new RevisionID.
package buffer
