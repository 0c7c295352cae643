// Package comment provides the VHDL comment alignment handlers.
package comment

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/vhdlalign/internal/align"
	"github.com/dshills/vhdlalign/internal/dispatcher/execctx"
	"github.com/dshills/vhdlalign/internal/dispatcher/handler"
	"github.com/dshills/vhdlalign/internal/engine/buffer"
	"github.com/dshills/vhdlalign/internal/engine/cursor"
	"github.com/dshills/vhdlalign/internal/input"
)

// Namespace is the command and setting prefix of the aligner.
const Namespace = "vhdlCommentAligner"

// Action names.
const (
	ActionAlignOnTab          = Namespace + ".alignCommentOnTab"
	ActionDeIndentOnBackspace = Namespace + ".deIndentCommentOnBackspace"
)

// Default key commands the aligner falls back to.
const (
	FallbackTab       = "tab"
	FallbackBackspace = "deleteLeft"
)

// DataAligned is the result data key holding the number of comments moved.
const DataAligned = "aligned"

// ArgColumn is the keybinding argument that overrides the comment column
// for one invocation.
const ArgColumn = "column"

// Setting keys.
const (
	SettingCommentColumn = Namespace + ".commentColumn"
	SettingTabStop       = Namespace + ".tabStop"
	SettingTabSize       = "editor.tabSize"
)

// DefaultTabStop is the default of the legacy tabStop setting.
const DefaultTabStop = 100

// LanguageID is the language the aligner is active for.
const LanguageID = "vhdl"

// Handler implements the vhdlCommentAligner namespace.
type Handler struct{}

// NewHandler creates a new comment aligner handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the aligner namespace.
func (h *Handler) Namespace() string {
	return Namespace
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	return actionName == ActionAlignOnTab || actionName == ActionDeIndentOnBackspace
}

// HandleAction processes an aligner action. Anything that keeps the aligner
// from acting defers to the default key command.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	switch action.Name {
	case ActionAlignOnTab:
		return h.run(ctx, action, align.Forward, FallbackTab)
	case ActionDeIndentOnBackspace:
		return h.run(ctx, action, align.Backward, FallbackBackspace)
	default:
		return handler.Errorf("unknown aligner action: %s", action.Name)
	}
}

// Options reads the alignment settings fresh from ctx.
func Options(ctx *execctx.ExecutionContext) align.Options {
	column := align.DefaultColumn
	switch {
	case ctx.ConfigHas(SettingCommentColumn):
		column = ctx.ConfigInt(SettingCommentColumn, align.DefaultColumn)
	case ctx.ConfigHas(SettingTabStop):
		column = ctx.ConfigInt(SettingTabStop, DefaultTabStop)
	}
	return align.Options{
		Column:  column,
		TabSize: ctx.ConfigInt(SettingTabSize, align.DefaultTabSize),
	}
}

// IsVHDL reports whether languageID names VHDL.
func IsVHDL(languageID string) bool {
	return strings.EqualFold(languageID, LanguageID)
}

// lineResult is the aligned text of one snapshot line.
type lineResult struct {
	edit align.Edit
}

func (h *Handler) run(ctx *execctx.ExecutionContext, action input.Action, dir align.Direction, fallback string) handler.Result {
	deferTo := func(reason string) handler.Result {
		return handler.DeferWithMessage(fallback, reason)
	}

	ed := ctx.Editor
	if ed == nil {
		return deferTo("no active editor")
	}
	if !IsVHDL(ed.LanguageID()) {
		return deferTo("language is " + ed.LanguageID())
	}
	if ed.IsReadOnly() {
		return deferTo("document is read-only")
	}

	opts := Options(ctx)
	if col := action.Args.GetInt(ArgColumn); col > 0 {
		opts.Column = col
	}
	rev := ed.Revision()
	sels := ed.Selections()

	// Every cursor is judged against the text as it was before any edit.
	snapshot := make(map[uint32]string)
	results := make(map[uint32]lineResult)
	out := make([]cursor.Selection, len(sels))
	var edits []buffer.LineEdit
	aligned := 0
	multi := len(sels) > 1

	for i, sel := range sels {
		out[i] = sel
		p := sel.Cursor()
		if p.Line >= ed.LineCount() {
			continue
		}
		line, seen := snapshot[p.Line]
		if !seen {
			line = ed.LineText(p.Line)
			snapshot[p.Line] = line
		}

		// With several cursors only those sitting on a marker take part.
		if multi && !align.AtComment(line, int(p.Column)) {
			ctx.Logger.Debug("%s %s: line %d: cursor not on the marker", Namespace, dir, p.Line+1)
			continue
		}

		edit, outcome := align.Align(dir, line, int(p.Column), opts)
		if outcome != align.Aligned {
			ctx.Logger.Debug("%s %s: line %d: %s", Namespace, dir, p.Line+1, outcome)
			continue
		}

		if _, done := results[p.Line]; !done {
			results[p.Line] = lineResult{edit: edit}
			edits = append(edits, buffer.ReplaceLine(p.Line, edit.Text))
		}
		out[i] = cursor.NewCursorSelection(cursor.Point{Line: p.Line, Column: uint32(edit.Cursor)})
		aligned++
	}

	if aligned == 0 {
		return deferTo("no cursor qualifies")
	}

	// Cursors left in place must still fit their rewritten line.
	for i, sel := range out {
		out[i] = cursor.NewSelection(clampPoint(sel.Anchor, results), clampPoint(sel.Head, results))
	}

	if err := ed.ApplyLineEdits(rev, "align comment", edits, out); err != nil {
		return deferTo("edit failed: " + err.Error())
	}

	return handler.Success().
		WithEdits(edits).
		WithData(DataAligned, aligned).
		WithRedrawLines(editedLines(edits)...)
}

// clampPoint limits p to the length of its line when that line was rewritten.
func clampPoint(p cursor.Point, results map[uint32]lineResult) cursor.Point {
	r, ok := results[p.Line]
	if !ok {
		return p
	}
	if n := uint32(utf8.RuneCountInString(r.edit.Text)); p.Column > n {
		p.Column = n
	}
	return p
}

func editedLines(edits []buffer.LineEdit) []uint32 {
	lines := make([]uint32, len(edits))
	for i, e := range edits {
		lines[i] = e.Line
	}
	return lines
}
