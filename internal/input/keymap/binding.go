package keymap

import (
	"github.com/dshills/vhdlalign/internal/input/key"
)

// Binding represents a single key-to-action mapping.
type Binding struct {
	// Keys is the key that triggers this binding.
	// Formats: "Tab", "C-s", "<BS>", "Ctrl+Shift+A"
	Keys string

	// Action is the command to execute.
	// Examples: "cursor.down", "file.save", "tab"
	Action string

	// Args are fixed arguments for the action.
	Args map[string]any

	// When is a condition expression that must be true for this binding.
	// Examples: "editorTextFocus", "!editorReadonly", "resourceLangId == vhdl"
	When string

	// Description provides documentation for the binding.
	Description string

	// Priority determines precedence when multiple bindings match.
	// Higher priority wins. Default is 0.
	Priority int
}

// NewBinding creates a new binding with the given keys and action.
func NewBinding(keys, action string) Binding {
	return Binding{
		Keys:   keys,
		Action: action,
	}
}

// WithWhen sets the condition for this binding.
func (b Binding) WithWhen(when string) Binding {
	b.When = when
	return b
}

// WithDescription sets the description for this binding.
func (b Binding) WithDescription(desc string) Binding {
	b.Description = desc
	return b
}

// WithPriority sets the priority for this binding.
func (b Binding) WithPriority(priority int) Binding {
	b.Priority = priority
	return b
}

// ParsedBinding is a binding with a pre-parsed key and condition.
type ParsedBinding struct {
	Binding
	Event key.Event
	cond  Condition
}

// BindingMatch represents a matched binding with its context.
type BindingMatch struct {
	*ParsedBinding

	// Keymap is the keymap containing the binding.
	Keymap *Keymap

	// Score is used for sorting matches by priority.
	Score int

	order int
}

// CalculateScore calculates the priority score for this match.
func (bm *BindingMatch) CalculateScore() {
	if bm.Keymap == nil || bm.ParsedBinding == nil {
		bm.Score = 0
		return
	}

	bm.Score = bm.Keymap.Priority*100 + bm.ParsedBinding.Priority

	if bm.Keymap.FileType != "" {
		bm.Score += 25
	}
}

// Less returns true if this match should come before another.
func (bm BindingMatch) Less(other BindingMatch) bool {
	if bm.Score != other.Score {
		return bm.Score > other.Score
	}
	return bm.order > other.order
}
