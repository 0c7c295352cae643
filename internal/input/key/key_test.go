package key

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{"a", "a"},
		{"A", "A"},
		{"Tab", "Tab"},
		{"tab", "Tab"},
		{"<Tab>", "Tab"},
		{"Backspace", "BS"},
		{"BS", "BS"},
		{"<BS>", "BS"},
		{"Enter", "Enter"},
		{"<CR>", "Enter"},
		{"Ctrl+Z", "C-z"},
		{"ctrl+z", "C-z"},
		{"C-z", "C-z"},
		{"<C-s>", "C-s"},
		{"Shift+Tab", "S-Tab"},
		{"S-Tab", "S-Tab"},
		{"Ctrl+Shift+Up", "C-S-Up"},
		{"Space", "Space"},
		{"C--", "C--"},
		{"Ctrl++", "C-+"},
		{"-", "-"},
		{"Left", "Left"},
	}

	for _, tc := range tests {
		ev, err := Parse(tc.spec)
		if err != nil {
			t.Errorf("Parse(%q): %v", tc.spec, err)
			continue
		}
		if got := ev.String(); got != tc.want {
			t.Errorf("Parse(%q).String() = %q, want %q", tc.spec, got, tc.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse(""); !errors.Is(err, ErrEmptySpec) {
		t.Errorf("Parse(\"\") err = %v", err)
	}
	for _, spec := range []string{"Hyper+a", "Ctrl+Foo", "abc"} {
		if _, err := Parse(spec); !errors.Is(err, ErrInvalidSpec) {
			t.Errorf("Parse(%q) err = %v, want ErrInvalidSpec", spec, err)
		}
	}
}

func TestEventMatches(t *testing.T) {
	ev := NewSpecialEvent(KeyBackspace, ModNone)
	if !ev.Matches("Backspace") || !ev.Matches("<BS>") {
		t.Error("backspace should match its aliases")
	}
	if ev.Matches("Tab") {
		t.Error("backspace should not match Tab")
	}

	shifted := NewRuneEvent('A', ModShift)
	if !shifted.Matches("A") {
		t.Error("shifted rune should match the plain character")
	}
}

func TestEventIsChar(t *testing.T) {
	tests := []struct {
		ev   Event
		want bool
	}{
		{NewRuneEvent('x', ModNone), true},
		{NewRuneEvent('X', ModShift), true},
		{NewRuneEvent('z', ModCtrl), false},
		{NewSpecialEvent(KeyTab, ModNone), false},
	}
	for _, tc := range tests {
		if got := tc.ev.IsChar(); got != tc.want {
			t.Errorf("%#v.IsChar() = %v, want %v", tc.ev, got, tc.want)
		}
	}
}

func TestNormalizeSpec(t *testing.T) {
	got, err := NormalizeSpec("Control+Q")
	if err != nil {
		t.Fatal(err)
	}
	if got != "C-q" {
		t.Errorf("NormalizeSpec = %q, want C-q", got)
	}
}

func TestModifierString(t *testing.T) {
	tests := []struct {
		mod  Modifier
		want string
	}{
		{ModNone, ""},
		{ModCtrl | ModShift, "Ctrl+Shift"},
		{ModShift | ModMeta | ModAlt, "Alt+Meta+Shift"},
	}
	for _, tc := range tests {
		if got := tc.mod.String(); got != tc.want {
			t.Errorf("%d.String() = %q, want %q", tc.mod, got, tc.want)
		}
	}
}

func TestModifierFromName(t *testing.T) {
	tests := []struct {
		name string
		want Modifier
	}{
		{"Ctrl", ModCtrl},
		{" control ", ModCtrl},
		{"cmd", ModMeta},
		{"OPTION", ModAlt},
		{"S", ModShift},
		{"hyper", ModNone},
	}
	for _, tc := range tests {
		if got := ModifierFromName(tc.name); got != tc.want {
			t.Errorf("ModifierFromName(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestEventStringModifierOrder(t *testing.T) {
	ev, err := Parse("shift+meta+ctrl+Up")
	if err != nil {
		t.Fatal(err)
	}
	if got := ev.String(); got != "C-M-S-Up" {
		t.Errorf("String() = %q, want C-M-S-Up", got)
	}
	if !ev.Modifiers.IsChord() || ModShift.IsChord() {
		t.Error("IsChord mismatch")
	}
}
