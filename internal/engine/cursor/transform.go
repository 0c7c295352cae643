package cursor

import "github.com/dshills/vhdlalign/internal/engine/buffer"

// TransformPoint updates p after a whole-line edit.
//
// Inserting a line at or above p pushes it down one row. Deleting a line
// above p pulls it up one row. Replacing a line leaves p where it is;
// callers clamp the column afterwards.
func TransformPoint(p Point, edit buffer.LineEdit) Point {
	switch edit.Kind {
	case buffer.EditInsert:
		if edit.Line <= p.Line {
			p.Line++
		}
	case buffer.EditDelete:
		if edit.Line < p.Line {
			p.Line--
		}
	}
	return p
}

// TransformSelection updates both ends of s after an edit.
func TransformSelection(s Selection, edit buffer.LineEdit) Selection {
	return Selection{
		Anchor: TransformPoint(s.Anchor, edit),
		Head:   TransformPoint(s.Head, edit),
	}
}

// Transform updates every selection after a batch of edits.
func (cs *CursorSet) Transform(edits ...buffer.LineEdit) {
	cs.MapInPlace(func(s Selection) Selection {
		for _, e := range edits {
			s = TransformSelection(s, e)
		}
		return s
	})
}
