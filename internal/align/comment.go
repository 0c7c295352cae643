package align

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Marker starts a VHDL comment.
const Marker = "--"

// FindComment returns the character index of the first comment marker.
//
// This is a plain substring search. A marker inside a string literal
// is reported like any other.
func FindComment(line string) (int, bool) {
	idx := strings.Index(line, Marker)
	if idx < 0 {
		return -1, false
	}
	return utf8.RuneCountInString(line[:idx]), true
}

// Split divides a line at the comment marker.
//
// code is the text before the marker with trailing whitespace removed. comment
// is the marker and everything after it, with surrounding whitespace removed.
// ok is false when the line has no comment.
func Split(line string) (code, comment string, ok bool) {
	idx := strings.Index(line, Marker)
	if idx < 0 {
		return line, "", false
	}
	code = strings.TrimRightFunc(line[:idx], unicode.IsSpace)
	comment = strings.TrimSpace(line[idx:])
	return code, comment, true
}

// AtComment reports whether cursor sits exactly on the comment marker.
func AtComment(line string, cursor int) bool {
	idx, ok := FindComment(line)
	return ok && cursor == idx
}

// IsTrailing reports whether the line has code before its comment.
// Full-line comments return false.
func IsTrailing(line string) bool {
	code, _, ok := Split(line)
	return ok && strings.TrimSpace(code) != ""
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
