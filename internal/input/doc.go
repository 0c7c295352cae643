// Package input turns key events into editor actions.
//
// The Handler resolves each key against the keymap registry using the
// current Context (language, condition flags and variables). Printable
// characters without a binding become "editor.insertChar" actions.
// Resolution is synchronous; the caller dispatches the returned Action.
//
// # Usage
//
//	h := input.NewHandler(input.DefaultConfig())
//	h.Context().UpdateFromEditor(editor)
//
//	if action, ok := h.HandleKeyEvent(ev); ok {
//	    dispatcher.DispatchWithContext(action, h.Context())
//	}
package input
