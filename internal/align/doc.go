// Package align computes trailing comment alignment for VHDL source lines.
//
// A comment starts at the first "--" in a line. Everything before it is the
// code part, everything from it to the end of the line is the comment part.
// Alignment moves the comment part so that its marker starts at a configured
// visual column, where tabs expand to the next tab stop.
//
// # Commands
//
// Forward moves a comment that sits left of the target column out to it. It is
// what Tab does when the cursor is at or before the comment marker.
//
// Backward pulls a comment that sits right of the target column back to it. It
// is what Backspace does when the cursor is exactly at the comment marker.
//
// Both return an Outcome describing why a line was left alone, so callers can
// fall back to the editor's default key behavior.
//
// # Columns
//
// Columns handed to Options are 1-based, matching what editors show in their
// status line. Internally everything is 0-based.
//
// The package has no dependencies on any editor. Offsets are counted in
// characters (runes), not bytes.
package align
