package cursor

import (
	"testing"

	"github.com/dshills/vhdlalign/internal/engine/buffer"
)

func pt(line, col uint32) Point {
	return Point{Line: line, Column: col}
}

func TestSelection(t *testing.T) {
	tests := []struct {
		sel    Selection
		empty  bool
		cursor Point
		str    string
	}{
		{NewCursorSelection(pt(0, 4)), true, pt(0, 4), "cursor 1:5"},
		{NewSelection(pt(2, 4), pt(1, 0)), false, pt(1, 0), "selection 3:5-2:1"},
	}
	for _, tc := range tests {
		if tc.sel.IsEmpty() != tc.empty || tc.sel.Cursor() != tc.cursor || tc.sel.String() != tc.str {
			t.Errorf("%v: empty=%v cursor=%v", tc.sel, tc.sel.IsEmpty(), tc.sel.Cursor())
		}
	}
}

func TestCursorSetKeepsOrder(t *testing.T) {
	cs := NewCursorSetAt(pt(5, 0))
	cs.Add(NewCursorSelection(pt(1, 0)))
	cs.Add(NewCursorSelection(pt(3, 0)))
	cs.Add(NewCursorSelection(pt(1, 0)))

	all := cs.All()
	if len(all) != 3 {
		t.Fatalf("Count = %d, want 3", len(all))
	}
	want := []Point{pt(5, 0), pt(1, 0), pt(3, 0)}
	for i, p := range want {
		if all[i].Head != p {
			t.Errorf("selection %d = %v, want %v", i, all[i].Head, p)
		}
	}
}

func TestCursorSetSetAllEmpty(t *testing.T) {
	cs := NewCursorSetAt(pt(3, 3))
	cs.SetAll(nil)
	if all := cs.All(); len(all) != 1 || all[0].Head != pt(0, 0) {
		t.Errorf("SetAll(nil) left %v", cs.All())
	}
}

func TestCursorSetClamp(t *testing.T) {
	buf := buffer.NewBufferFromString("abc\nde")
	cs := NewCursorSetAt(pt(0, 10))
	cs.Add(NewCursorSelection(pt(9, 1)))
	cs.Add(NewCursorSelection(pt(1, 1)))
	cs.Clamp(buf)

	all := cs.All()
	if len(all) != 2 || all[0].Head != pt(0, 3) || all[1].Head != pt(1, 1) {
		t.Errorf("Clamp = %v", all)
	}
}

func TestTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		edit buffer.LineEdit
		want Point
	}{
		{"insert above", pt(2, 1), buffer.InsertLine(1, "x"), pt(3, 1)},
		{"insert at", pt(2, 1), buffer.InsertLine(2, "x"), pt(3, 1)},
		{"insert below", pt(2, 1), buffer.InsertLine(3, "x"), pt(2, 1)},
		{"delete above", pt(2, 1), buffer.DeleteLine(0), pt(1, 1)},
		{"delete at", pt(2, 1), buffer.DeleteLine(2), pt(2, 1)},
		{"replace", pt(2, 1), buffer.ReplaceLine(2, "x"), pt(2, 1)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := TransformPoint(tc.p, tc.edit); got != tc.want {
				t.Errorf("TransformPoint = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCursorSetTransform(t *testing.T) {
	cs := NewCursorSetAt(pt(0, 1))
	cs.Add(NewCursorSelection(pt(2, 0)))
	cs.Transform(buffer.InsertLine(1, "new"), buffer.DeleteLine(0))

	all := cs.All()
	if all[0].Head != pt(0, 1) || all[1].Head != pt(2, 0) {
		t.Errorf("Transform = %v", all)
	}
}
