package cursor

import (
	"github.com/dshills/vhdlalign/internal/dispatcher/execctx"
	"github.com/dshills/vhdlalign/internal/dispatcher/handler"
	"github.com/dshills/vhdlalign/internal/engine/cursor"
	"github.com/dshills/vhdlalign/internal/input"
)

// Action names for cursor movements.
const (
	ActionMoveLeft      = "cursor.moveLeft"
	ActionMoveRight     = "cursor.moveRight"
	ActionMoveUp        = "cursor.moveUp"
	ActionMoveDown      = "cursor.moveDown"
	ActionMoveLineStart = "cursor.moveLineStart"
	ActionMoveLineEnd   = "cursor.moveLineEnd"
	ActionMoveFirstLine = "cursor.moveFirstLine"
	ActionMoveLastLine  = "cursor.moveLastLine"
	ActionAddBelow      = "cursor.addBelow"
	ActionSingle        = "cursor.single"
)

// Handler implements namespace-based cursor movement handling.
type Handler struct{}

// NewHandler creates a new cursor handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the cursor namespace.
func (h *Handler) Namespace() string {
	return "cursor"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionMoveLeft, ActionMoveRight, ActionMoveUp, ActionMoveDown,
		ActionMoveLineStart, ActionMoveLineEnd, ActionMoveFirstLine, ActionMoveLastLine,
		ActionAddBelow, ActionSingle:
		return true
	}
	return false
}

// HandleAction processes a cursor action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}

	ed := ctx.Editor

	switch action.Name {
	case ActionMoveLeft:
		return h.move(ed, func(p cursor.Point) cursor.Point { return left(ed, p) })
	case ActionMoveRight:
		return h.move(ed, func(p cursor.Point) cursor.Point { return right(ed, p) })
	case ActionMoveUp:
		return h.move(ed, func(p cursor.Point) cursor.Point {
			if p.Line == 0 {
				return cursor.Point{}
			}
			return clampTo(ed, p.Line-1, p.Column)
		})
	case ActionMoveDown:
		return h.move(ed, func(p cursor.Point) cursor.Point {
			if p.Line+1 >= ed.LineCount() {
				return cursor.Point{Line: p.Line, Column: ed.LineLen(p.Line)}
			}
			return clampTo(ed, p.Line+1, p.Column)
		})
	case ActionMoveLineStart:
		return h.move(ed, func(p cursor.Point) cursor.Point { return cursor.Point{Line: p.Line} })
	case ActionMoveLineEnd:
		return h.move(ed, func(p cursor.Point) cursor.Point {
			return cursor.Point{Line: p.Line, Column: ed.LineLen(p.Line)}
		})
	case ActionMoveFirstLine:
		return h.move(ed, func(cursor.Point) cursor.Point { return cursor.Point{} })
	case ActionMoveLastLine:
		return h.move(ed, func(cursor.Point) cursor.Point {
			return cursor.Point{Line: ed.LineCount() - 1}
		})
	case ActionAddBelow:
		return h.addBelow(ed)
	case ActionSingle:
		return h.single(ed)
	default:
		return handler.Errorf("unknown cursor action: %s", action.Name)
	}
}

// move maps every cursor through f, collapsing selections.
func (h *Handler) move(ed execctx.EditorInterface, f func(cursor.Point) cursor.Point) handler.Result {
	sels := ed.Selections()
	out := make([]cursor.Selection, len(sels))
	changed := false
	for i, sel := range sels {
		p := f(sel.Cursor())
		out[i] = cursor.NewCursorSelection(p)
		if out[i] != sel {
			changed = true
		}
	}
	if !changed {
		return handler.NoOp()
	}
	ed.SetSelections(out)
	return handler.Success().WithRedraw()
}

// addBelow adds a cursor one line below the last one.
func (h *Handler) addBelow(ed execctx.EditorInterface) handler.Result {
	sels := ed.Selections()
	if len(sels) == 0 {
		return handler.NoOp()
	}
	last := sels[len(sels)-1].Cursor()
	if last.Line+1 >= ed.LineCount() {
		return handler.NoOpWithMessage("no line below")
	}

	next := clampTo(ed, last.Line+1, last.Column)
	ed.SetSelections(append(sels, cursor.NewCursorSelection(next)))
	return handler.Success().WithRedraw()
}

// single keeps only the primary cursor.
func (h *Handler) single(ed execctx.EditorInterface) handler.Result {
	sels := ed.Selections()
	if len(sels) <= 1 {
		return handler.NoOp()
	}
	ed.SetSelections(sels[:1])
	return handler.Success().WithRedraw()
}

func left(ed execctx.EditorInterface, p cursor.Point) cursor.Point {
	if p.Column > 0 {
		return cursor.Point{Line: p.Line, Column: min(p.Column, ed.LineLen(p.Line)) - 1}
	}
	if p.Line == 0 {
		return p
	}
	return cursor.Point{Line: p.Line - 1, Column: ed.LineLen(p.Line - 1)}
}

func right(ed execctx.EditorInterface, p cursor.Point) cursor.Point {
	if p.Column < ed.LineLen(p.Line) {
		return cursor.Point{Line: p.Line, Column: p.Column + 1}
	}
	if p.Line+1 >= ed.LineCount() {
		return p
	}
	return cursor.Point{Line: p.Line + 1}
}

func clampTo(ed execctx.EditorInterface, line, col uint32) cursor.Point {
	return cursor.Point{Line: line, Column: min(col, ed.LineLen(line))}
}
