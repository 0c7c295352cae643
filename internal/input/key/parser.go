package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into an Event.
//
// Supported formats:
//   - Single character: "a", "A", "1", "@"
//   - Special keys: "Enter", "Escape", "Tab", "Backspace", "Space"
//   - With modifiers: "Ctrl+S", "ctrl+z", "Shift+Tab"
//   - Vim-style: "C-s", "<C-s>", "<CR>", "<BS>"
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	if len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		spec = spec[1 : len(spec)-1]
	}

	parts := splitSpec(spec)
	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods |= mod
	}
	return parseKey(parts[len(parts)-1], mods)
}

// splitSpec splits "Ctrl+Shift+Tab" or "C-S-Tab" into its parts.
// A trailing separator is the key itself, as in "C--" or "Ctrl++".
func splitSpec(spec string) []string {
	sep := ""
	switch {
	case strings.Contains(spec[:len(spec)-1], "+"):
		sep = "+"
	case len(spec) > 1 && strings.Contains(spec[:len(spec)-1], "-"):
		sep = "-"
	default:
		return []string{spec}
	}

	last := strings.LastIndex(spec[:len(spec)-1], sep)
	keyPart := spec[last+1:]
	if keyPart == "" {
		keyPart = sep
	}
	mods := strings.Split(spec[:last], sep)
	return append(mods, keyPart)
}

// parseKey parses a key part with already-known modifiers.
func parseKey(keyPart string, mods Modifier) (Event, error) {
	keyPart = strings.TrimSpace(keyPart)
	if keyPart == "" {
		return Event{}, ErrInvalidSpec
	}

	switch strings.ToLower(keyPart) {
	case "space":
		return NewRuneEvent(' ', mods), nil
	case "lt":
		return NewRuneEvent('<', mods), nil
	case "gt":
		return NewRuneEvent('>', mods), nil
	}

	if k := KeyFromName(keyPart); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}

	runes := []rune(keyPart)
	if len(runes) != 1 {
		return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
	}

	r := runes[0]
	if mods.IsChord() {
		// Command chords are case-insensitive.
		r = unicode.ToLower(r)
	}
	return NewRuneEvent(r, mods), nil
}

// NormalizeSpec parses and re-formats a key specification to its canonical form.
func NormalizeSpec(spec string) (string, error) {
	event, err := Parse(spec)
	if err != nil {
		return "", err
	}
	return event.String(), nil
}
