// Package backend provides the terminal abstraction for the renderer.
package backend

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/vhdlalign/internal/input/key"
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	// EventClosed is returned once the screen has been shut down.
	EventClosed
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventKey:
		return "key"
	case EventResize:
		return "resize"
	case EventClosed:
		return "closed"
	default:
		return "none"
	}
}

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key is set for EventKey.
	Key key.Event

	// Width and Height are set for EventResize.
	Width, Height int
}

// Backend is the drawing surface used by the renderer.
type Backend interface {
	// Init prepares the terminal for drawing.
	Init() error

	// Shutdown restores the terminal.
	Shutdown()

	// Size returns the terminal size in cells.
	Size() (width, height int)

	// SetCell draws r at (x, y). Out-of-range positions are ignored.
	SetCell(x, y int, r rune, style tcell.Style)

	// Clear blanks the whole screen.
	Clear()

	// Show flushes pending changes to the terminal.
	Show()

	// ShowCursor places the terminal cursor.
	ShowCursor(x, y int)

	// HideCursor hides the terminal cursor.
	HideCursor()

	// PollEvent blocks until the next event.
	PollEvent() Event

	// Beep rings the terminal bell.
	Beep()
}
