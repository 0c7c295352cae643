package cursor_test

import (
	"testing"

	"github.com/dshills/vhdlalign/internal/dispatcher/execctx"
	"github.com/dshills/vhdlalign/internal/dispatcher/handler"
	cursorhandler "github.com/dshills/vhdlalign/internal/dispatcher/handlers/cursor"
	"github.com/dshills/vhdlalign/internal/engine"
	"github.com/dshills/vhdlalign/internal/engine/buffer"
	"github.com/dshills/vhdlalign/internal/engine/cursor"
	"github.com/dshills/vhdlalign/internal/input"
)

type testEditor struct {
	*engine.Engine
}

func (e *testEditor) LanguageID() string          { return "vhdl" }
func (e *testEditor) FilePath() string            { return "top.vhd" }
func (e *testEditor) Revision() buffer.RevisionID { return e.RevisionID() }

const doc = "entity top is\nend;\n\nport (clk : in std_logic);"

func pt(line, col uint32) cursor.Point {
	return cursor.Point{Line: line, Column: col}
}

func TestMovements(t *testing.T) {
	tests := []struct {
		action string
		from   cursor.Point
		want   cursor.Point
	}{
		{cursorhandler.ActionMoveLeft, pt(0, 3), pt(0, 2)},
		{cursorhandler.ActionMoveLeft, pt(1, 0), pt(0, 13)},
		{cursorhandler.ActionMoveLeft, pt(0, 0), pt(0, 0)},
		{cursorhandler.ActionMoveRight, pt(0, 3), pt(0, 4)},
		{cursorhandler.ActionMoveRight, pt(1, 4), pt(2, 0)},
		{cursorhandler.ActionMoveRight, pt(3, 26), pt(3, 26)},
		{cursorhandler.ActionMoveUp, pt(1, 3), pt(0, 3)},
		{cursorhandler.ActionMoveUp, pt(0, 5), pt(0, 0)},
		{cursorhandler.ActionMoveDown, pt(0, 10), pt(1, 4)},
		{cursorhandler.ActionMoveDown, pt(3, 2), pt(3, 26)},
		{cursorhandler.ActionMoveLineStart, pt(3, 7), pt(3, 0)},
		{cursorhandler.ActionMoveLineEnd, pt(0, 1), pt(0, 13)},
		{cursorhandler.ActionMoveFirstLine, pt(3, 7), pt(0, 0)},
		{cursorhandler.ActionMoveLastLine, pt(0, 7), pt(3, 0)},
	}

	h := cursorhandler.NewHandler()
	for _, tc := range tests {
		t.Run(tc.action+" "+tc.from.String(), func(t *testing.T) {
			eng := engine.New(engine.WithContent(doc))
			eng.SetSelections([]cursor.Selection{cursor.NewCursorSelection(tc.from)})
			ctx := execctx.New().WithEditor(&testEditor{eng})

			h.HandleAction(input.Action{Name: tc.action}, ctx)

			if got := eng.Selections()[0].Cursor(); got != tc.want {
				t.Errorf("cursor = %v, want %v", got, tc.want)
			}
			if eng.CanUndo() {
				t.Error("movement created an undo step")
			}
		})
	}
}

func TestMoveCollapsesSelection(t *testing.T) {
	eng := engine.New(engine.WithContent(doc))
	eng.SetSelections([]cursor.Selection{cursor.NewSelection(pt(0, 0), pt(0, 4))})
	ctx := execctx.New().WithEditor(&testEditor{eng})

	r := cursorhandler.NewHandler().HandleAction(input.Action{Name: cursorhandler.ActionMoveRight}, ctx)
	if !r.IsOK() {
		t.Fatalf("result = %v", r.Status)
	}
	sel := eng.Selections()[0]
	if !sel.IsEmpty() || sel.Cursor() != pt(0, 5) {
		t.Errorf("selection = %v", sel)
	}
}

func TestAddBelowAndSingle(t *testing.T) {
	eng := engine.New(engine.WithContent(doc))
	eng.SetSelections([]cursor.Selection{cursor.NewCursorSelection(pt(0, 10))})
	ctx := execctx.New().WithEditor(&testEditor{eng})
	h := cursorhandler.NewHandler()

	add := input.Action{Name: cursorhandler.ActionAddBelow}
	for i := 0; i < 3; i++ {
		if r := h.HandleAction(add, ctx); !r.IsOK() {
			t.Fatalf("addBelow %d = %v", i, r.Status)
		}
	}
	if r := h.HandleAction(add, ctx); r.Status != handler.StatusNoOp {
		t.Errorf("addBelow past end = %v", r.Status)
	}

	want := []cursor.Point{pt(0, 10), pt(1, 4), pt(2, 0), pt(3, 0)}
	sels := eng.Selections()
	if len(sels) != len(want) {
		t.Fatalf("selections = %v", sels)
	}
	for i, sel := range sels {
		if sel.Cursor() != want[i] {
			t.Errorf("cursor %d = %v, want %v", i, sel.Cursor(), want[i])
		}
	}

	h.HandleAction(input.Action{Name: cursorhandler.ActionSingle}, ctx)
	if got := eng.Selections(); len(got) != 1 || got[0].Cursor() != pt(0, 10) {
		t.Errorf("single = %v", got)
	}
	if r := h.HandleAction(input.Action{Name: cursorhandler.ActionSingle}, ctx); r.Status != handler.StatusNoOp {
		t.Errorf("single twice = %v", r.Status)
	}
}

func TestRequiresEditor(t *testing.T) {
	r := cursorhandler.NewHandler().HandleAction(input.Action{Name: cursorhandler.ActionMoveLeft}, execctx.New())
	if !r.IsError() {
		t.Errorf("result = %v", r.Status)
	}
}
