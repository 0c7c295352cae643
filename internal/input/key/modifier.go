package key

import "strings"

// Modifier is a set of modifier keys held during a key press.
type Modifier uint8

// Modifier keys. Meta is Cmd on macOS and the Windows key elsewhere.
const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModMeta

	ModNone Modifier = 0
)

// modifiers lists every modifier in canonical order with its long and
// short names.
var modifiers = []struct {
	mod   Modifier
	long  string
	short string
}{
	{ModCtrl, "Ctrl", "C"},
	{ModAlt, "Alt", "A"},
	{ModMeta, "Meta", "M"},
	{ModShift, "Shift", "S"},
}

// Has reports whether m includes mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// IsChord reports whether m holds Ctrl, Alt or Meta. Shift alone does not
// make a chord.
func (m Modifier) IsChord() bool {
	return m.Has(ModCtrl | ModAlt | ModMeta)
}

// String returns the long form, such as "Ctrl+Shift".
func (m Modifier) String() string {
	var parts []string
	for _, d := range modifiers {
		if m.Has(d.mod) {
			parts = append(parts, d.long)
		}
	}
	return strings.Join(parts, "+")
}

// shortNames returns the short names of m in canonical order. Shift is
// left out when withShift is false.
func (m Modifier) shortNames(withShift bool) []string {
	var parts []string
	for _, d := range modifiers {
		if m.Has(d.mod) && (withShift || d.mod != ModShift) {
			parts = append(parts, d.short)
		}
	}
	return parts
}

// modifierNames maps lowercase names to modifiers. It accepts the Vim
// short names and the VS Code keybinding names.
var modifierNames = map[string]Modifier{
	"c": ModCtrl, "ctrl": ModCtrl, "control": ModCtrl,
	"a": ModAlt, "alt": ModAlt, "option": ModAlt, "opt": ModAlt,
	"s": ModShift, "shift": ModShift,
	"m": ModMeta, "d": ModMeta, "meta": ModMeta, "cmd": ModMeta, "win": ModMeta, "super": ModMeta,
}

// ModifierFromName returns the modifier named name, ignoring case, or
// ModNone when the name is unknown.
func ModifierFromName(name string) Modifier {
	return modifierNames[strings.ToLower(strings.TrimSpace(name))]
}
