package lua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/vhdlalign/internal/align"
)

// ModuleName is the name scripts pass to require.
const ModuleName = "vhdlalign"

// Module exposes the aligner to Lua.
type Module struct {
	defaults align.Options
}

// NewModule creates a module whose functions fall back to defaults when a
// script passes no options table.
func NewModule(defaults align.Options) *Module {
	return &Module{defaults: defaults}
}

// Loader is the lua.LGFunction given to PreloadModule.
func (m *Module) Loader(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"visual_column":  m.visualColumn,
		"find_comment":   m.findComment,
		"at_comment":     m.atComment,
		"align_forward":  m.alignForward,
		"align_backward": m.alignBackward,
		"align_text":     m.alignText,
		"scan":           m.scan,
	})
	L.SetField(mod, "DEFAULT_COLUMN", lua.LNumber(align.DefaultColumn))
	L.SetField(mod, "DEFAULT_TAB_SIZE", lua.LNumber(align.DefaultTabSize))
	L.SetField(mod, "column", lua.LNumber(m.defaults.Column))
	L.SetField(mod, "tab_size", lua.LNumber(m.defaults.TabSize))
	L.Push(mod)
	return 1
}

// options reads an optional { column = n, tab_size = n } table at idx.
func (m *Module) options(L *lua.LState, idx int) align.Options {
	opts := m.defaults
	t := L.OptTable(idx, nil)
	if t == nil {
		return opts
	}
	b := NewBridge(L)
	if n, ok := b.TableInt(t, "column"); ok {
		if n < 1 {
			L.ArgError(idx, "column must be at least 1")
		}
		opts.Column = n
	}
	if n, ok := b.TableInt(t, "tab_size"); ok {
		if n < 1 {
			L.ArgError(idx, "tab_size must be at least 1")
		}
		opts.TabSize = n
	}
	return opts
}

// visual_column(line, index [, tab_size]) -> column
func (m *Module) visualColumn(L *lua.LState) int {
	line := L.CheckString(1)
	idx := L.CheckInt(2)
	tab := L.OptInt(3, m.defaults.TabSize)
	if tab < 1 {
		L.ArgError(3, "tab_size must be at least 1")
	}
	L.Push(lua.LNumber(align.VisualColumn(line, idx, tab)))
	return 1
}

// find_comment(line) -> index | nil
func (m *Module) findComment(L *lua.LState) int {
	if idx, ok := align.FindComment(L.CheckString(1)); ok {
		L.Push(lua.LNumber(idx))
	} else {
		L.Push(lua.LNil)
	}
	return 1
}

// at_comment(line, cursor) -> bool
func (m *Module) atComment(L *lua.LState) int {
	L.Push(lua.LBool(align.AtComment(L.CheckString(1), L.CheckInt(2))))
	return 1
}

func (m *Module) alignForward(L *lua.LState) int {
	return m.alignLine(L, align.Forward)
}

func (m *Module) alignBackward(L *lua.LState) int {
	return m.alignLine(L, align.Backward)
}

// align_forward / align_backward(line, cursor [, opts])
// -> new_line, new_cursor | nil, reason
func (m *Module) alignLine(L *lua.LState, dir align.Direction) int {
	line := L.CheckString(1)
	cur := L.CheckInt(2)
	opts := m.options(L, 3)

	edit, outcome := align.Align(dir, line, cur, opts)
	if outcome != align.Aligned {
		L.Push(lua.LNil)
		L.Push(lua.LString(outcome.String()))
		return 2
	}
	L.Push(lua.LString(edit.Text))
	L.Push(lua.LNumber(edit.Cursor))
	return 2
}

// align_text(text [, opts]) -> text, changed
func (m *Module) alignText(L *lua.LState) int {
	text := L.CheckString(1)
	out, changed := align.AlignText(text, m.options(L, 2))
	L.Push(lua.LString(out))
	L.Push(lua.LNumber(changed))
	return 2
}

// scan(text [, opts]) -> { { line, column, outcome, text }, ... }
// Line numbers in the result are 1-based.
func (m *Module) scan(L *lua.LState) int {
	reports := align.Scan(L.CheckString(1), m.options(L, 2))

	b := NewBridge(L)
	list := make([]any, 0, len(reports))
	for _, r := range reports {
		entry := map[string]any{
			"line":    r.Line + 1,
			"column":  r.Column + 1,
			"outcome": r.Outcome.String(),
		}
		if r.Misaligned() {
			entry["text"] = r.Edit.Text
		}
		list = append(list, entry)
	}
	L.Push(b.ToLuaValue(list))
	return 1
}
