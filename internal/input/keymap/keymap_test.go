package keymap

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/vhdlalign/internal/input/key"
)

const alignWhen = "editorTextFocus && resourceLangId == vhdl && vhdlCommentAligner.cursorAtComment"

func vhdlContext(atComment bool) *LookupContext {
	ctx := NewLookupContext()
	ctx.FileType = "vhdl"
	ctx.Conditions["editorTextFocus"] = true
	ctx.Conditions["vhdlCommentAligner.cursorAtComment"] = atComment
	ctx.Variables["resourceLangId"] = "vhdl"
	return ctx
}

func TestParseCondition(t *testing.T) {
	ctx := NewLookupContext()
	ctx.Conditions["a"] = true
	ctx.Conditions["b"] = false
	ctx.Variables["lang"] = "vhdl"
	ctx.Variables["empty"] = ""

	tests := []struct {
		expr string
		want bool
	}{
		{"", true},
		{"a", true},
		{"b", false},
		{"missing", false},
		{"!a", false},
		{"!b", true},
		{"a && b", false},
		{"a || b", true},
		{"!a || !b", true},
		{"a && !b", true},
		{"lang == vhdl", true},
		{"lang == 'vhdl'", true},
		{`lang == "verilog"`, false},
		{"lang != verilog", true},
		{"lang", true},
		{"empty", false},
		{"b == false", true},
		{"a == true", true},
		{"(a || b) && lang == vhdl", true},
		{"!(a && lang == vhdl)", false},
		{"b || a && b", false},
		{"a || b && b", true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			c, err := ParseCondition(tt.expr)
			if err != nil {
				t.Fatalf("ParseCondition(%q) error: %v", tt.expr, err)
			}
			if got := c.Eval(ctx); got != tt.want {
				t.Errorf("Eval(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestParseConditionErrors(t *testing.T) {
	for _, expr := range []string{"a &&", "&& a", "(a", "a)", "lang ==", "a b", "!"} {
		if _, err := ParseCondition(expr); !errors.Is(err, ErrBadCondition) {
			t.Errorf("ParseCondition(%q) error = %v, want ErrBadCondition", expr, err)
		}
	}
}

func TestKeymapValidate(t *testing.T) {
	if err := DefaultKeymap().Validate(); err != nil {
		t.Fatalf("default keymap invalid: %v", err)
	}

	bad := NewKeymap("bad").Add("NoSuchKey", "x")
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unknown key")
	}

	noAction := NewKeymap("bad").Add("Tab", "")
	if err := noAction.Validate(); err == nil {
		t.Error("expected error for empty action")
	}

	badWhen := NewKeymap("bad").AddBinding(NewBinding("Tab", "tab").WithWhen("a &&"))
	if err := badWhen.Validate(); err == nil {
		t.Error("expected error for bad condition")
	}
}

func TestRegistryDuplicate(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(NewKeymap("a").Add("Tab", "tab")); err != nil {
		t.Fatal(err)
	}
	err := r.Register(NewKeymap("a").Add("Tab", "tab"))
	if !errors.Is(err, ErrKeymapExists) {
		t.Errorf("error = %v, want ErrKeymapExists", err)
	}
}

func TestRegistryAlignerOverride(t *testing.T) {
	r := NewRegistry()
	if err := LoadDefaults(r); err != nil {
		t.Fatal(err)
	}
	aligner := NewKeymap("aligner").WithPriority(5).
		AddBinding(NewBinding("Tab", "vhdlCommentAligner.alignCommentOnTab").WithWhen(alignWhen)).
		AddBinding(NewBinding("BS", "vhdlCommentAligner.deIndentCommentOnBackspace").WithWhen(alignWhen))
	if err := r.Register(aligner); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		spec string
		ctx  *LookupContext
		want string
	}{
		{"tab at comment", "Tab", vhdlContext(true), "vhdlCommentAligner.alignCommentOnTab"},
		{"tab elsewhere", "Tab", vhdlContext(false), "tab"},
		{"bs at comment", "<BS>", vhdlContext(true), "vhdlCommentAligner.deIndentCommentOnBackspace"},
		{"bs elsewhere", "Backspace", vhdlContext(false), "deleteLeft"},
		{"other language", "Tab", func() *LookupContext {
			c := vhdlContext(true)
			c.Variables["resourceLangId"] = "go"
			return c
		}(), "tab"},
		{"undo", "Ctrl+Z", vhdlContext(true), "editor.undo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := r.Lookup(mustKey(t, tt.spec), tt.ctx)
			if b == nil {
				t.Fatalf("no binding for %s", tt.spec)
			}
			if b.Action != tt.want {
				t.Errorf("action = %q, want %q", b.Action, tt.want)
			}
		})
	}

	if b := r.Lookup(mustKey(t, "Tab"), NewLookupContext()); b != nil {
		t.Errorf("unfocused Tab = %q, want nil", b.Action)
	}

	if got := strings.Join(r.AllKeymaps(), ","); got != "aligner,default" {
		t.Errorf("AllKeymaps() = %s, want aligner,default", got)
	}
}

func TestRegistryFileTypeAndOrder(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(NewKeymap("global").Add("C-k", "global"))
	_ = r.Register(NewKeymap("vhdl").ForFileType("vhdl").Add("C-k", "vhdl"))
	_ = r.Register(NewKeymap("later").Add("C-j", "first").Add("C-j", "second"))

	ctx := NewLookupContext()
	if b := r.Lookup(mustKey(t, "C-k"), ctx); b.Action != "global" {
		t.Errorf("no filetype: %q", b.Action)
	}
	ctx.FileType = "vhdl"
	if b := r.Lookup(mustKey(t, "C-k"), ctx); b.Action != "vhdl" {
		t.Errorf("vhdl filetype: %q", b.Action)
	}
	if got := len(r.LookupAll(mustKey(t, "C-k"), ctx)); got != 2 {
		t.Errorf("LookupAll = %d matches, want 2", got)
	}
	if b := r.Lookup(mustKey(t, "C-j"), ctx); b.Action != "second" {
		t.Errorf("equal score: %q, want later registration", b.Action)
	}
	if got := r.AllKeymaps(); strings.Join(got, ",") != "global,later,vhdl" {
		t.Errorf("AllKeymaps = %v", got)
	}
}

func TestParseKeybindings(t *testing.T) {
	data := []byte(`[
		{"key": "ctrl+alt+a", "command": "vhdlCommentAligner.alignCommentOnTab", "when": "editorTextFocus"},
		{"key": "tab", "command": "-tab"},
		{"key": "ctrl+k", "command": "demo", "args": {"column": 40}}
	]`)

	km, err := ParseKeybindings(data)
	if err != nil {
		t.Fatalf("ParseKeybindings: %v", err)
	}
	if len(km.Bindings) != 2 {
		t.Fatalf("bindings = %d, want 2", len(km.Bindings))
	}
	if km.Bindings[0].Keys != "C-A-a" {
		t.Errorf("keys = %q, want canonical C-A-a", km.Bindings[0].Keys)
	}
	if km.Bindings[0].When != "editorTextFocus" {
		t.Errorf("when = %q", km.Bindings[0].When)
	}
	if v, ok := km.Bindings[1].Args["column"].(float64); !ok || v != 40 {
		t.Errorf("args = %v", km.Bindings[1].Args)
	}

	r := NewRegistry()
	if err := r.Register(km); err != nil {
		t.Fatal(err)
	}
	ctx := NewLookupContext()
	ctx.Conditions["editorTextFocus"] = true
	b := r.Lookup(mustKey(t, "C-A-a"), ctx)
	if b == nil || b.Action != "vhdlCommentAligner.alignCommentOnTab" {
		t.Errorf("lookup = %v", b)
	}
}

func TestParseKeybindingsErrors(t *testing.T) {
	tests := []string{
		`{"key": "tab"}`,
		`not json`,
		`[{"key": "tab"}]`,
		`[{"key": "Ctrl+Nope", "command": "x"}]`,
	}
	for _, data := range tests {
		if _, err := ParseKeybindings([]byte(data)); !errors.Is(err, ErrInvalidKeybindings) {
			t.Errorf("ParseKeybindings(%s) err = %v, want ErrInvalidKeybindings", data, err)
		}
	}
	if _, err := LoadKeybindings(strings.NewReader(`[]`)); err != nil {
		t.Errorf("empty array: %v", err)
	}
}

func mustKey(t *testing.T, spec string) key.Event {
	t.Helper()
	ev, err := key.Parse(spec)
	if err != nil {
		t.Fatalf("key.Parse(%q): %v", spec, err)
	}
	return ev
}
