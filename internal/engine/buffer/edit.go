package buffer

import "fmt"

// EditKind identifies what a LineEdit does.
type EditKind uint8

const (
	// EditReplace replaces the text of an existing line.
	EditReplace EditKind = iota
	// EditInsert inserts a new line before Line. Line may equal LineCount.
	EditInsert
	// EditDelete removes Line.
	EditDelete
)

// String returns the edit kind name.
func (k EditKind) String() string {
	switch k {
	case EditReplace:
		return "replace"
	case EditInsert:
		return "insert"
	case EditDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// LineEdit is a single whole-line change.
// Edits in a batch are applied in order, each against the result of the
// previous one.
type LineEdit struct {
	Kind EditKind
	Line uint32
	Text string
}

// ReplaceLine returns an edit that sets the text of line.
func ReplaceLine(line uint32, text string) LineEdit {
	return LineEdit{Kind: EditReplace, Line: line, Text: text}
}

// InsertLine returns an edit that inserts text as a new line before line.
func InsertLine(line uint32, text string) LineEdit {
	return LineEdit{Kind: EditInsert, Line: line, Text: text}
}

// DeleteLine returns an edit that removes line.
func DeleteLine(line uint32) LineEdit {
	return LineEdit{Kind: EditDelete, Line: line}
}

// String returns a short description of the edit.
func (e LineEdit) String() string {
	if e.Kind == EditDelete {
		return fmt.Sprintf("%s %d", e.Kind, e.Line)
	}
	return fmt.Sprintf("%s %d %q", e.Kind, e.Line, e.Text)
}

// applyEdits applies edits to lines and returns the new lines plus the
// inverse batch. lines is never modified.
func applyEdits(lines []string, edits []LineEdit) ([]string, []LineEdit, error) {
	out := make([]string, len(lines), len(lines)+len(edits))
	copy(out, lines)

	inverse := make([]LineEdit, 0, len(edits))
	for i, e := range edits {
		n := uint32(len(out))
		switch e.Kind {
		case EditReplace:
			if e.Line >= n {
				return nil, nil, fmt.Errorf("edit %d (%s): %w", i, e, ErrLineOutOfRange)
			}
			inverse = append(inverse, ReplaceLine(e.Line, out[e.Line]))
			out[e.Line] = e.Text
		case EditInsert:
			if e.Line > n {
				return nil, nil, fmt.Errorf("edit %d (%s): %w", i, e, ErrLineOutOfRange)
			}
			out = append(out, "")
			copy(out[e.Line+1:], out[e.Line:])
			out[e.Line] = e.Text
			inverse = append(inverse, DeleteLine(e.Line))
		case EditDelete:
			if e.Line >= n {
				return nil, nil, fmt.Errorf("edit %d (%s): %w", i, e, ErrLineOutOfRange)
			}
			if n == 1 {
				return nil, nil, fmt.Errorf("edit %d (%s): %w", i, e, ErrLastLine)
			}
			inverse = append(inverse, InsertLine(e.Line, out[e.Line]))
			out = append(out[:e.Line], out[e.Line+1:]...)
		default:
			return nil, nil, fmt.Errorf("edit %d: %w", i, ErrInvalidEdit)
		}
	}

	// The inverse runs in reverse order.
	for l, r := 0, len(inverse)-1; l < r; l, r = l+1, r-1 {
		inverse[l], inverse[r] = inverse[r], inverse[l]
	}
	return out, inverse, nil
}
