// Package statusline provides the status line UI component.
package statusline

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/vhdlalign/internal/renderer/backend"
)

// StatusLine renders the bottom line: language badge, file, cursor
// position and comment alignment state. A message replaces the file
// section until it is cleared.
type StatusLine struct {
	// Display state
	language  string // Language badge (e.g., "VHDL")
	filename  string // Current filename (empty for scratch)
	modified  bool   // Buffer has unsaved changes
	line      uint32 // Current line (1-indexed for display)
	col       uint32 // Current visual column (1-indexed for display)
	cursors   int    // Number of cursors
	column    int    // Target comment column
	atComment bool   // A cursor sits at a comment marker

	// Message display
	message     string
	messageType MessageType

	width int
}

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageWarning
	MessageError
)

var (
	barStyle     = tcell.StyleDefault.Background(tcell.ColorGray).Foreground(tcell.ColorWhite)
	badgeStyle   = tcell.StyleDefault.Bold(true).Background(tcell.ColorBlue).Foreground(tcell.ColorWhite)
	plainBadge   = tcell.StyleDefault.Bold(true).Background(tcell.ColorDarkGray).Foreground(tcell.ColorWhite)
	commentStyle = tcell.StyleDefault.Bold(true).Background(tcell.ColorGreen).Foreground(tcell.ColorBlack)
)

// New creates a new status line.
func New() *StatusLine {
	return &StatusLine{cursors: 1}
}

// SetLanguage updates the language badge.
func (s *StatusLine) SetLanguage(language string) {
	s.language = language
}

// SetFilename updates the displayed filename.
func (s *StatusLine) SetFilename(filename string) {
	s.filename = filename
}

// SetModified updates the modified indicator.
func (s *StatusLine) SetModified(modified bool) {
	s.modified = modified
}

// SetPosition updates the cursor position (1-indexed).
func (s *StatusLine) SetPosition(line, col uint32) {
	s.line = line
	s.col = col
}

// SetCursorCount updates the number of cursors shown.
func (s *StatusLine) SetCursorCount(n int) {
	s.cursors = n
}

// SetCommentColumn updates the target comment column.
func (s *StatusLine) SetCommentColumn(column int) {
	s.column = column
}

// SetAtComment updates the comment indicator.
func (s *StatusLine) SetAtComment(at bool) {
	s.atComment = at
}

// SetMessage displays a status message.
func (s *StatusLine) SetMessage(msg string, msgType MessageType) {
	s.message = msg
	s.messageType = msgType
}

// ClearMessage clears the status message.
func (s *StatusLine) ClearMessage() {
	s.message = ""
	s.messageType = MessageNone
}

// Message returns the current message.
func (s *StatusLine) Message() string {
	return s.message
}

// Resize updates the status line width.
func (s *StatusLine) Resize(width int) {
	s.width = width
}

// Render draws the status line to the backend at the given row.
func (s *StatusLine) Render(b backend.Backend, row int) {
	for x := 0; x < s.width; x++ {
		b.SetCell(x, row, ' ', barStyle)
	}

	col := 0
	badge := " " + s.badge() + " "
	style := plainBadge
	if strings.EqualFold(s.language, "vhdl") {
		style = badgeStyle
	}
	col = s.put(b, row, col, badge, style)
	col = s.put(b, row, col, " ", barStyle)

	right := s.Right()
	limit := s.width - runewidth.StringWidth(right) - 1
	left := s.Left()
	if w := limit - col; w > 0 {
		msgStyle := barStyle
		switch s.messageType {
		case MessageError:
			msgStyle = barStyle.Foreground(tcell.ColorRed).Bold(true)
		case MessageWarning:
			msgStyle = barStyle.Foreground(tcell.ColorYellow)
		}
		s.put(b, row, col, runewidth.Truncate(left, w, "…"), msgStyle)
	}

	if start := s.width - runewidth.StringWidth(right); start > col {
		x := start
		if s.atComment {
			x = s.put(b, row, x, "--", commentStyle)
			right = right[2:]
		}
		s.put(b, row, x, right, barStyle)
	}
}

func (s *StatusLine) put(b backend.Backend, row, col int, text string, style tcell.Style) int {
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if col+w > s.width {
			break
		}
		b.SetCell(col, row, r, style)
		col += w
	}
	return col
}

func (s *StatusLine) badge() string {
	if s.language == "" {
		return "TEXT"
	}
	return strings.ToUpper(s.language)
}

// Left returns the file section, or the message when one is set.
func (s *StatusLine) Left() string {
	if s.message != "" {
		return s.message
	}
	name := s.filename
	if name == "" {
		name = "[No Name]"
	}
	if s.modified {
		name += " [+]"
	}
	return name
}

// Right returns the position section: "-- Ln 3, Col 12 | 2 cursors | @95 ".
func (s *StatusLine) Right() string {
	line, col := s.line, s.col
	if line == 0 {
		line = 1
	}
	if col == 0 {
		col = 1
	}

	var sb strings.Builder
	if s.atComment {
		sb.WriteString("-- ")
	}
	sb.WriteString("Ln ")
	sb.WriteString(strconv.FormatUint(uint64(line), 10))
	sb.WriteString(", Col ")
	sb.WriteString(strconv.FormatUint(uint64(col), 10))
	if s.cursors > 1 {
		sb.WriteString(" | ")
		sb.WriteString(strconv.Itoa(s.cursors))
		sb.WriteString(" cursors")
	}
	if s.column > 0 {
		sb.WriteString(" | @")
		sb.WriteString(strconv.Itoa(s.column))
	}
	sb.WriteByte(' ')
	return sb.String()
}
