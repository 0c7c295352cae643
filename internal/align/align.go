package align

import (
	"strings"
	"unicode/utf8"
)

// Default settings.
const (
	DefaultColumn  = 95
	DefaultTabSize = 4
)

// Options configures an alignment.
type Options struct {
	// Column is the 1-based column the comment marker should start at.
	Column int

	// TabSize is the width of a tab stop.
	TabSize int
}

// DefaultOptions returns options with the default column and tab size.
func DefaultOptions() Options {
	return Options{
		Column:  DefaultColumn,
		TabSize: DefaultTabSize,
	}
}

// Target returns the 0-based target column.
func (o Options) Target() int {
	if o.Column < 1 {
		return DefaultColumn - 1
	}
	return o.Column - 1
}

func (o Options) tabSize() int {
	if o.TabSize < 1 {
		return DefaultTabSize
	}
	return o.TabSize
}

// Direction selects which way a comment may move.
type Direction uint8

const (
	// Forward moves a comment right, out to the target column.
	Forward Direction = iota
	// Backward moves a comment left, back to the target column.
	Backward
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return "unknown"
	}
}

// Outcome explains the result of an alignment attempt.
type Outcome uint8

const (
	// Aligned means the returned Edit should be applied.
	Aligned Outcome = iota
	// NoComment means the line has no comment marker.
	NoComment
	// CursorPastComment means the cursor is inside or after the comment.
	CursorPastComment
	// CursorNotAtComment means the cursor is not exactly on the marker.
	CursorNotAtComment
	// AlreadyAligned means the comment is at or beyond the target (forward).
	AlreadyAligned
	// NotPastTarget means the comment is at or before the target (backward).
	NotPastTarget
	// CodePastTarget means the code alone reaches past the target column.
	CodePastTarget
)

// String returns a short description of the outcome.
func (o Outcome) String() string {
	switch o {
	case Aligned:
		return "aligned"
	case NoComment:
		return "no comment"
	case CursorPastComment:
		return "cursor past comment"
	case CursorNotAtComment:
		return "cursor not at comment"
	case AlreadyAligned:
		return "already aligned"
	case NotPastTarget:
		return "not past target"
	case CodePastTarget:
		return "code past target"
	default:
		return "unknown"
	}
}

// Edit is the result of aligning one line.
type Edit struct {
	// Text is the new line text.
	Text string

	// Cursor is the new cursor offset, immediately before the marker.
	Cursor int

	// From is the visual column the marker started at.
	From int

	// To is the visual column the marker starts at after the edit.
	To int
}

// Changed reports whether the edit alters the line.
func (e Edit) Changed(line string) bool {
	return e.Text != line
}

// Align runs Forward or Backward depending on dir.
func Align(dir Direction, line string, cursor int, opts Options) (Edit, Outcome) {
	if dir == Backward {
		return AlignBackward(line, cursor, opts)
	}
	return AlignForward(line, cursor, opts)
}

// AlignForward moves the comment out to the target column.
//
// The cursor must be at or before the marker and the marker must currently
// sit left of the target.
func AlignForward(line string, cursor int, opts Options) (Edit, Outcome) {
	idx, ok := FindComment(line)
	if !ok {
		return Edit{}, NoComment
	}
	if cursor > idx {
		return Edit{}, CursorPastComment
	}

	target := opts.Target()
	current := VisualColumn(line, idx, opts.tabSize())
	if current >= target {
		return Edit{}, AlreadyAligned
	}

	return realign(line, current, target, opts.tabSize())
}

// AlignBackward pulls the comment back to the target column.
//
// The cursor must be exactly on the marker and the marker must currently sit
// right of the target.
func AlignBackward(line string, cursor int, opts Options) (Edit, Outcome) {
	idx, ok := FindComment(line)
	if !ok {
		return Edit{}, NoComment
	}
	if cursor != idx {
		return Edit{}, CursorNotAtComment
	}

	target := opts.Target()
	current := VisualColumn(line, idx, opts.tabSize())
	if current <= target {
		return Edit{}, NotPastTarget
	}

	return realign(line, current, target, opts.tabSize())
}

// realign rebuilds line with the marker at target.
func realign(line string, current, target, tabSize int) (Edit, Outcome) {
	code, comment, _ := Split(line)
	codeLen := utf8.RuneCountInString(code)
	codeCol := LineWidth(code, tabSize)

	spaces := target - codeCol
	if spaces < 0 {
		return Edit{}, CodePastTarget
	}

	var sb strings.Builder
	sb.Grow(len(code) + spaces + len(comment))
	sb.WriteString(code)
	sb.WriteString(strings.Repeat(" ", spaces))
	sb.WriteString(comment)

	return Edit{
		Text:   sb.String(),
		Cursor: codeLen + spaces,
		From:   current,
		To:     target,
	}, Aligned
}
