// Package key provides key event types and parsing for the input system.
//
//   - Key: identifies a keyboard key (a special key or a rune)
//   - Modifier: modifier keys (Ctrl, Alt, Shift, Meta)
//   - Event: a single key press with modifiers
//
// # Key Specifications
//
// Bindings name keys in any of these formats:
//
//   - Simple keys: "a", "Enter", "Tab", "Backspace"
//   - With modifiers: "Ctrl+Z", "ctrl+s", "Shift+Tab"
//   - Vim-style: "C-z", "<C-s>", "<BS>", "<CR>"
//
// Every format parses to the same Event, and Event.String gives one
// canonical spelling used as a lookup key.
package key
