// Package editor provides handlers for text editing operations.
//
// Every operation runs once per cursor against a single snapshot of the
// document and is committed as one undo step:
//   - tab: insert spaces to the next tab stop (or a tab character when
//     editor.insertSpaces is false)
//   - deleteLeft, deleteRight: delete one character, joining lines at the
//     line boundary
//   - editor.insertChar, editor.insertText: insert text
//   - editor.newline: split the line
//   - editor.undo, editor.redo: step through history
//
// Selections are treated as their cursor position.
//
// # Usage
//
//	h := editor.NewHandler()
//	dispatcher.RegisterNamespace(h)
//	for _, name := range editor.DefaultKeyActions() {
//	    dispatcher.RegisterHandler(name, h)
//	}
package editor
