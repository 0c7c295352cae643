// Package renderer draws an editor view onto a terminal.
//
// The renderer is responsible for:
//   - Laying out lines with tab expansion and wide characters
//   - Syntax highlighting through the highlight package
//   - Drawing every cursor, with the primary cursor as the terminal cursor
//   - Marking the target comment column with a ruler
//   - The status line
//
// Architecture:
//
//	┌─────────────────────────────────────────┐
//	│           Renderer (Facade)             │
//	├─────────────────────────────────────────┤
//	│  highlight (chroma) │ statusline        │
//	├─────────────────────────────────────────┤
//	│           Backend Abstraction           │
//	├─────────────────────────────────────────┤
//	│  Terminal (tcell)                       │
//	└─────────────────────────────────────────┘
//
// Usage:
//
//	term, _ := backend.NewTerminal()
//	r := renderer.New(term, renderer.DefaultOptions())
//	r.SetHighlighter(highlight.ForFile(path))
//	r.Render(doc)
package renderer
