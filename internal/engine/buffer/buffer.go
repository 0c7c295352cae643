package buffer

import (
	"errors"
	"strings"
	"sync"
	"unicode/utf8"
)

// Errors returned by buffer operations.
var (
	ErrLineOutOfRange = errors.New("line out of range")
	ErrInvalidEdit    = errors.New("invalid edit")
	ErrLastLine       = errors.New("cannot delete the only line")
)

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// Buffer holds the lines of a document.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	lines      []string
	revisionID RevisionID
	lineEnding LineEnding
}

// NewBufferFromString creates a buffer from text. The most common line
// ending in text is used again when the lines are joined.
func NewBufferFromString(text string) *Buffer {
	return &Buffer{
		lines:      SplitLines(text),
		revisionID: NewRevisionID(),
		lineEnding: DetectLineEnding(text),
	}
}

// SplitLines splits text into lines, dropping LF, CRLF and CR terminators.
// The result always holds at least one line.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// Text returns the full content joined with the buffer's line ending.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return strings.Join(b.lines, b.lineEnding.Sequence())
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() uint32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return uint32(len(b.lines))
}

// LineText returns the text of line without its terminator.
// Returns an empty string if line is out of range.
func (b *Buffer) LineText(line uint32) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line >= uint32(len(b.lines)) {
		return ""
	}
	return b.lines[line]
}

// LineLen returns the length of line in characters.
func (b *Buffer) LineLen(line uint32) uint32 {
	return uint32(utf8.RuneCountInString(b.LineText(line)))
}

// RevisionID returns the current revision.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// Apply applies edits atomically and returns the batch that reverses them.
// If any edit is invalid the buffer is left unchanged.
func (b *Buffer) Apply(edits []LineEdit) ([]LineEdit, error) {
	if len(edits) == 0 {
		return nil, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	lines, inverse, err := applyEdits(b.lines, edits)
	if err != nil {
		return nil, err
	}
	b.lines = lines
	b.revisionID = NewRevisionID()
	return inverse, nil
}

// DetectLineEnding returns a LineEnding based on the most common line ending in the text.
// Returns LineEndingLF if no line endings are found.
func DetectLineEnding(text string) LineEnding {
	var lfCount, crlfCount, crCount int

	i := 0
	for i < len(text) {
		if i+1 < len(text) && text[i] == '\r' && text[i+1] == '\n' {
			crlfCount++
			i += 2
		} else if text[i] == '\r' {
			crCount++
			i++
		} else if text[i] == '\n' {
			lfCount++
			i++
		} else {
			i++
		}
	}

	switch {
	case crlfCount > 0 && crlfCount >= lfCount && crlfCount >= crCount:
		return LineEndingCRLF
	case crCount > lfCount:
		return LineEndingCR
	default:
		return LineEndingLF
	}
}
