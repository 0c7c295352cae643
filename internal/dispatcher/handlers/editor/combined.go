// Package editor provides handlers for text editing operations.
package editor

import (
	"strings"

	"github.com/dshills/vhdlalign/internal/align"
	"github.com/dshills/vhdlalign/internal/dispatcher/execctx"
	"github.com/dshills/vhdlalign/internal/dispatcher/handler"
	"github.com/dshills/vhdlalign/internal/engine/cursor"
	"github.com/dshills/vhdlalign/internal/input"
)

// Action names for editing operations. ActionTab and ActionDeleteLeft are
// the default key commands other handlers fall back to, so they carry no
// namespace.
const (
	ActionTab         = "tab"
	ActionDeleteLeft  = "deleteLeft"
	ActionDeleteRight = "deleteRight"
	ActionInsertChar  = "editor.insertChar"
	ActionInsertText  = "editor.insertText"
	ActionNewline     = "editor.newline"
	ActionUndo        = "editor.undo"
	ActionRedo        = "editor.redo"
)

// Setting keys read by the editor handlers.
const (
	SettingTabSize      = "editor.tabSize"
	SettingInsertSpaces = "editor.insertSpaces"
)

// Handler handles all editing operations.
type Handler struct{}

// NewHandler creates a new editor handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the editor namespace.
func (h *Handler) Namespace() string {
	return "editor"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionTab, ActionDeleteLeft, ActionDeleteRight, ActionInsertChar,
		ActionInsertText, ActionNewline, ActionUndo, ActionRedo:
		return true
	}
	return false
}

// Handle lets the handler be registered by exact name for the
// unnamespaced default commands.
func (h *Handler) Handle(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	return h.HandleAction(action, ctx)
}

// DefaultKeyActions lists the unnamespaced actions the handler serves.
func DefaultKeyActions() []string {
	return []string{ActionTab, ActionDeleteLeft, ActionDeleteRight}
}

// HandleAction processes an editor action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	switch action.Name {
	case ActionUndo:
		return h.undo(ctx)
	case ActionRedo:
		return h.redo(ctx)
	}

	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}

	switch action.Name {
	case ActionTab:
		return h.tab(ctx)
	case ActionDeleteLeft:
		return h.deleteLeft(ctx)
	case ActionDeleteRight:
		return h.deleteRight(ctx)
	case ActionInsertChar, ActionInsertText:
		return h.insertText(ctx, action.Args.Text)
	case ActionNewline:
		return h.newline(ctx)
	default:
		return handler.Errorf("unknown editor action: %s", action.Name)
	}
}

// tab inserts a tab, or spaces up to the next tab stop, at every cursor.
func (h *Handler) tab(ctx *execctx.ExecutionContext) handler.Result {
	tabSize := ctx.ConfigInt(SettingTabSize, align.DefaultTabSize)
	if tabSize < 1 {
		tabSize = align.DefaultTabSize
	}
	spaces := ctx.ConfigBool(SettingInsertSpaces, true)

	return h.apply(ctx, "tab", func(ws *workspace, i int, p cursor.Point) {
		if !spaces {
			ws.insertText(i, p, "\t")
			return
		}
		col := align.VisualColumn(ws.lines[p.Line], int(p.Column), tabSize)
		n := tabSize - col%tabSize
		ws.insertText(i, p, strings.Repeat(" ", n))
	})
}

// insertText inserts text at every cursor. Newlines in text split lines.
func (h *Handler) insertText(ctx *execctx.ExecutionContext, text string) handler.Result {
	if text == "" {
		return handler.NoOp()
	}

	return h.apply(ctx, "insert", func(ws *workspace, i int, p cursor.Point) {
		parts := splitNewlines(text)
		// Insert the parts last to first so p stays valid.
		for j := len(parts) - 1; j >= 0; j-- {
			if parts[j] != "" {
				ws.insertText(i, p, parts[j])
			}
			if j > 0 {
				ws.splitLine(i, p)
			}
		}
		// Land after the inserted text.
		last := parts[len(parts)-1]
		n := uint32(len([]rune(last)))
		if len(parts) == 1 {
			ws.points[i] = cursor.Point{Line: p.Line, Column: p.Column + n}
		} else {
			ws.points[i] = cursor.Point{Line: p.Line + uint32(len(parts)-1), Column: n}
		}
	})
}

// newline splits the line at every cursor.
func (h *Handler) newline(ctx *execctx.ExecutionContext) handler.Result {
	return h.apply(ctx, "newline", func(ws *workspace, i int, p cursor.Point) {
		ws.splitLine(i, p)
	})
}

// deleteLeft removes the character before every cursor.
func (h *Handler) deleteLeft(ctx *execctx.ExecutionContext) handler.Result {
	return h.apply(ctx, "deleteLeft", func(ws *workspace, i int, p cursor.Point) {
		ws.deleteLeft(i, p)
	})
}

// deleteRight removes the character under every cursor.
func (h *Handler) deleteRight(ctx *execctx.ExecutionContext) handler.Result {
	return h.apply(ctx, "deleteRight", func(ws *workspace, i int, p cursor.Point) {
		ws.deleteRight(i, p)
	})
}

// apply runs fn for each cursor against one snapshot and commits the
// result as a single undo step.
func (h *Handler) apply(ctx *execctx.ExecutionContext, label string, fn func(ws *workspace, i int, p cursor.Point)) handler.Result {
	ed := ctx.Editor
	rev := ed.Revision()
	ws := newWorkspace(ed, ed.Selections())

	ws.each(func(i int, p cursor.Point) {
		fn(ws, i, p)
	})

	if len(ws.edits) == 0 {
		return handler.NoOp()
	}
	if err := ed.ApplyLineEdits(rev, label, ws.edits, ws.selections()); err != nil {
		return handler.Error(err)
	}
	return handler.Success().WithEdits(ws.edits).WithRedraw()
}

func (h *Handler) undo(ctx *execctx.ExecutionContext) handler.Result {
	if ctx.History == nil {
		return handler.Error(execctx.ErrMissingHistory)
	}
	label := ctx.History.UndoLabel()
	if !ctx.History.CanUndo() {
		return handler.NoOpWithMessage("nothing to undo")
	}
	if err := ctx.History.Undo(); err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWithMessage("undo " + label).WithRedraw()
}

func (h *Handler) redo(ctx *execctx.ExecutionContext) handler.Result {
	if ctx.History == nil {
		return handler.Error(execctx.ErrMissingHistory)
	}
	label := ctx.History.RedoLabel()
	if label == "" {
		return handler.NoOpWithMessage("nothing to redo")
	}
	if err := ctx.History.Redo(); err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWithMessage("redo " + label).WithRedraw()
}

func splitNewlines(text string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			parts = append(parts, trimCR(text[start:i]))
			start = i + 1
		}
	}
	return append(parts, text[start:])
}

func trimCR(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\r' {
		return s[:n-1]
	}
	return s
}
