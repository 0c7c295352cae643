// Package keymap provides key binding management.
//
// Keymap: A named collection of bindings, optionally restricted to a
// language.
//
// Binding: Maps a key to an action with an optional "when" condition.
//
// Registry: Central registry that manages all keymaps and provides lookup.
//
// # Binding Precedence
//
// When multiple bindings match a key, precedence is determined by:
//  1. Keymap priority, then binding priority (higher wins)
//  2. Specificity (language-specific > global)
//  3. Registration order (later wins)
//
// # Conditional Bindings
//
// Bindings can have conditions that must be met:
//
//	binding := Binding{
//	    Keys:   "Tab",
//	    Action: "vhdlCommentAligner.alignCommentOnTab",
//	    When:   "editorTextFocus && resourceLangId == vhdl && vhdlCommentAligner.cursorAtComment",
//	}
//
// A condition is a boolean expression over context keys using !, &&, ||,
// == and != with parentheses. A bare key is true when its condition flag is
// set, or when it names a non-empty variable.
//
// # Usage
//
//	registry := keymap.NewRegistry()
//	keymap.LoadDefaults(registry)
//
//	ev, _ := key.Parse("Tab")
//	binding := registry.Lookup(ev, ctx)
//	if binding != nil {
//	    // Execute binding.Action
//	}
package keymap
