package lua

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dshills/vhdlalign/internal/align"
)

func newTestState(t *testing.T, opts ...StateOption) (*State, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	s := NewState(append([]StateOption{WithOutput(&out)}, opts...)...)
	t.Cleanup(s.Close)
	return s, &out
}

func TestModuleFunctions(t *testing.T) {
	pad := func(n int) string { return strings.Repeat(" ", n) }

	tests := []struct {
		name string
		code string
		want string
	}{
		{"visual column tab", `print(va.visual_column("\tx", 1))`, "4"},
		{"visual column tab size", `print(va.visual_column("ab\tx", 3, 8))`, "8"},
		{"visual column plain", `print(va.visual_column("abc", 3))`, "3"},
		{"find comment", `print(va.find_comment("a -- b"))`, "2"},
		{"find comment missing", `print(va.find_comment("abc"))`, "nil"},
		{"at comment", `print(va.at_comment("a -- b", 2), va.at_comment("a -- b", 1))`, "true\tfalse"},
		{
			"align forward",
			`print(va.align_forward("x -- c", 2, { column = 10 }))`,
			"x" + pad(8) + "-- c\t9",
		},
		{
			"align forward cursor before marker",
			`print(va.align_forward("x -- c", 0, { column = 10 }))`,
			"x" + pad(8) + "-- c\t9",
		},
		{
			"align forward past comment",
			`print(va.align_forward("x -- c", 5, { column = 10 }))`,
			"nil\tcursor past comment",
		},
		{
			"align forward already aligned",
			`print(va.align_forward("x" .. string.rep(" ", 8) .. "-- c", 9, { column = 10 }))`,
			"nil\talready aligned",
		},
		{
			"align backward",
			`print(va.align_backward("x" .. string.rep(" ", 20) .. "-- c", 21, { column = 10 }))`,
			"x" + pad(8) + "-- c\t9",
		},
		{
			"align backward not at marker",
			`print(va.align_backward("x" .. string.rep(" ", 20) .. "-- c", 20, { column = 10 }))`,
			"nil\tcursor not at comment",
		},
		{
			"align text",
			`print(va.align_text("a -- 1\n-- full\nb" .. string.rep(" ", 12) .. "-- 2", { column = 6 }))`,
			"a    -- 1\n-- full\nb    -- 2\t2",
		},
		{"defaults exposed", `print(va.DEFAULT_COLUMN, va.DEFAULT_TAB_SIZE)`, "95\t4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, out := newTestState(t)
			if err := s.DoString(`va = require("vhdlalign")` + "\n" + tt.code); err != nil {
				t.Fatalf("DoString: %v", err)
			}
			if got := strings.TrimSuffix(out.String(), "\n"); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestModuleUsesDefaults(t *testing.T) {
	s, out := newTestState(t, WithDefaults(align.Options{Column: 6, TabSize: 2}))
	code := `
local va = require("vhdlalign")
print(va.column, va.tab_size)
print(va.align_forward("a -- x", 2))
print(va.visual_column("\tx", 1))
`
	if err := s.DoString(code); err != nil {
		t.Fatalf("DoString: %v", err)
	}
	want := "6\t2\na    -- x\t5\n2\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestModuleRejectsBadOptions(t *testing.T) {
	s, _ := newTestState(t)
	err := s.DoString(`require("vhdlalign").align_text("a -- b", { column = 0 })`)
	if err == nil || !strings.Contains(err.Error(), "column must be at least 1") {
		t.Errorf("err = %v, want column error", err)
	}
}

func TestScan(t *testing.T) {
	s, _ := newTestState(t)
	code := `
local va = require("vhdlalign")
reports = va.scan("a -- 1\nb    -- 2\n-- full", { column = 6 })
`
	if err := s.DoString(code); err != nil {
		t.Fatalf("DoString: %v", err)
	}

	reports, ok := s.GetGlobal("reports").([]any)
	if !ok || len(reports) != 2 {
		t.Fatalf("reports = %#v, want two entries", s.GetGlobal("reports"))
	}
	first := reports[0].(map[string]any)
	if first["line"] != int64(1) || first["outcome"] != "aligned" || first["text"] != "a    -- 1" {
		t.Errorf("first report = %#v", first)
	}
	second := reports[1].(map[string]any)
	if second["outcome"] != "already aligned" {
		t.Errorf("second report = %#v", second)
	}
	if _, ok := second["text"]; ok {
		t.Error("aligned line should carry no text")
	}
}

func TestSandbox(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"require os", `require("os")`},
		{"require io", `require("io")`},
		{"io global", `io.write("x")`},
		{"os global", `os.exit(1)`},
		{"dofile", `dofile("/etc/passwd")`},
		{"load", `load("return 1")`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestState(t)
			if err := s.DoString(tt.code); err == nil {
				t.Errorf("DoString(%q) succeeded, want error", tt.code)
			}
		})
	}

	s, _ := newTestState(t)
	if err := s.DoString(`assert(require("string").upper("a") == "A")`); err != nil {
		t.Errorf("require string: %v", err)
	}
}

func TestCall(t *testing.T) {
	s, _ := newTestState(t)
	code := `
function realign(line, col)
	local va = require("vhdlalign")
	return va.align_forward(line, 0, { column = col })
end
answer = 42
`
	if err := s.DoString(code); err != nil {
		t.Fatalf("DoString: %v", err)
	}

	got, err := s.Call("realign", "x -- c", 6)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if len(got) != 2 || got[0] != "x    -- c" || got[1] != int64(5) {
		t.Errorf("Call = %#v", got)
	}

	if _, err := s.Call("answer"); !errors.Is(err, ErrNotFunction) {
		t.Errorf("Call(answer) err = %v, want ErrNotFunction", err)
	}

	s.SetGlobal("name", "top.vhd")
	if got := s.GetGlobal("name"); got != "top.vhd" {
		t.Errorf("GetGlobal(name) = %#v", got)
	}
}

func TestExecutionTimeout(t *testing.T) {
	s, _ := newTestState(t, WithExecutionTimeout(50*time.Millisecond))
	err := s.DoString(`while true do end`)
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Errorf("err = %v, want ErrExecutionTimeout", err)
	}
}

func TestClosedState(t *testing.T) {
	s := NewState()
	s.Close()
	s.Close()

	if err := s.DoString(`x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString after Close = %v, want ErrStateClosed", err)
	}
	if s.GetGlobal("x") != nil {
		t.Error("GetGlobal after Close should return nil")
	}
}
