package renderer

import (
	"strconv"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/vhdlalign/internal/engine/cursor"
	"github.com/dshills/vhdlalign/internal/renderer/backend"
	"github.com/dshills/vhdlalign/internal/renderer/highlight"
	"github.com/dshills/vhdlalign/internal/renderer/statusline"
)

// View provides the document content to draw.
type View interface {
	LineCount() uint32
	LineText(line uint32) string
	Selections() []cursor.Selection
}

// Options configures the renderer.
type Options struct {
	// TabSize is the tab stop width in cells.
	TabSize int

	// RulerColumn marks a 1-based column; 0 disables the ruler.
	RulerColumn int

	// ShowLineNumbers draws a line number gutter.
	ShowLineNumbers bool

	// Theme styles highlighted tokens. Nil uses the plain theme.
	Theme *highlight.Theme
}

// DefaultOptions returns the default renderer options.
func DefaultOptions() Options {
	return Options{
		TabSize:         4,
		ShowLineNumbers: true,
		Theme:           highlight.NewTheme(highlight.DefaultThemeName),
	}
}

var (
	gutterStyle    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	rulerStyle     = tcell.StyleDefault.Background(tcell.ColorDarkSlateGray)
	secondaryStyle = tcell.StyleDefault.Reverse(true)
)

// Renderer draws views to a backend.
type Renderer struct {
	mu sync.Mutex

	backend     backend.Backend
	opts        Options
	highlighter *highlight.Highlighter
	status      *statusline.StatusLine

	topLine uint32
}

// New creates a renderer drawing to b.
func New(b backend.Backend, opts Options) *Renderer {
	if opts.TabSize <= 0 {
		opts.TabSize = 4
	}
	if opts.Theme == nil {
		opts.Theme = highlight.Plain()
	}
	return &Renderer{
		backend: b,
		opts:    opts,
		status:  statusline.New(),
	}
}

// Backend returns the renderer's backend.
func (r *Renderer) Backend() backend.Backend {
	return r.backend
}

// Status returns the status line component.
func (r *Renderer) Status() *statusline.StatusLine {
	return r.status
}

// SetHighlighter sets the highlighter; nil disables highlighting.
func (r *Renderer) SetHighlighter(h *highlight.Highlighter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.highlighter = h
}

// SetTabSize sets the tab stop width.
func (r *Renderer) SetTabSize(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n > 0 {
		r.opts.TabSize = n
	}
}

// SetRulerColumn sets the 1-based ruler column; 0 disables it.
func (r *Renderer) SetRulerColumn(col int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opts.RulerColumn = col
	r.status.SetCommentColumn(col)
}

// Render draws v and the status line, then flushes the backend.
func (r *Renderer) Render(v View) {
	r.mu.Lock()
	defer r.mu.Unlock()

	width, height := r.backend.Size()
	if width <= 0 || height <= 0 {
		return
	}
	r.backend.Clear()

	rows := height - 1
	sels := v.Selections()
	var primary cursor.Point
	if len(sels) > 0 {
		primary = sels[0].Cursor()
	}
	r.scrollTo(primary.Line, rows)

	gutter := r.gutterWidth(v.LineCount())
	heads := make(map[cursor.Point]bool, len(sels))
	for _, s := range sels[min(1, len(sels)):] {
		heads[s.Cursor()] = true
	}

	for row := 0; row < rows; row++ {
		line := r.topLine + uint32(row)
		if line >= v.LineCount() {
			r.backend.SetCell(0, row, '~', gutterStyle)
			continue
		}
		if gutter > 0 {
			r.drawGutter(row, line, gutter)
		}
		r.drawLine(row, line, v.LineText(line), gutter, width, heads)
	}

	r.status.Resize(width)
	r.status.SetPosition(primary.Line+1, 0)
	r.status.SetCursorCount(len(sels))
	if int(primary.Line) < int(v.LineCount()) {
		text := v.LineText(primary.Line)
		r.status.SetPosition(primary.Line+1, uint32(ScreenColumn(text, int(primary.Column), r.opts.TabSize))+1)
		x := gutter + ScreenColumn(text, int(primary.Column), r.opts.TabSize)
		y := int(primary.Line - r.topLine)
		if x < width && y < rows {
			r.backend.ShowCursor(x, y)
		} else {
			r.backend.HideCursor()
		}
	} else {
		r.backend.HideCursor()
	}
	r.status.Render(r.backend, height-1)
	r.backend.Show()
}

// scrollTo keeps line within the visible rows.
func (r *Renderer) scrollTo(line uint32, rows int) {
	if rows <= 0 {
		return
	}
	if line < r.topLine {
		r.topLine = line
	}
	if line >= r.topLine+uint32(rows) {
		r.topLine = line - uint32(rows) + 1
	}
}

func (r *Renderer) gutterWidth(lines uint32) int {
	if !r.opts.ShowLineNumbers {
		return 0
	}
	return len(strconv.FormatUint(uint64(max(lines, 1)), 10)) + 1
}

func (r *Renderer) drawGutter(row int, line uint32, width int) {
	num := strconv.FormatUint(uint64(line+1), 10)
	x := width - 1 - len(num)
	for _, ch := range num {
		r.backend.SetCell(x, row, ch, gutterStyle)
		x++
	}
}

func (r *Renderer) drawLine(row int, line uint32, text string, gutter, width int, heads map[cursor.Point]bool) {
	var tokens []highlight.Token
	if r.highlighter != nil {
		tokens = r.highlighter.HighlightLine(text)
	}

	ruler := -1
	if r.opts.RulerColumn > 0 {
		ruler = gutter + r.opts.RulerColumn - 1
		if ruler < width {
			r.backend.SetCell(ruler, row, ' ', rulerStyle)
		}
	}

	col := 0
	for i, ch := range []rune(text) {
		style := r.opts.Theme.Style(highlight.TypeAt(tokens, i))
		if heads[cursor.Point{Line: line, Column: uint32(i)}] {
			style = secondaryStyle
		}

		if ch == '\t' {
			next := nextTabStop(col, r.opts.TabSize)
			for ; col < next; col++ {
				r.put(row, gutter+col, ' ', style, ruler, width)
			}
			continue
		}

		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		r.put(row, gutter+col, ch, style, ruler, width)
		col += w
	}

	if heads[cursor.Point{Line: line, Column: uint32(len([]rune(text)))}] {
		r.put(row, gutter+col, ' ', secondaryStyle, -1, width)
	}
}

func (r *Renderer) put(row, x int, ch rune, style tcell.Style, ruler, width int) {
	if x >= width {
		return
	}
	if x == ruler && ch == ' ' && style == r.opts.Theme.Default {
		style = rulerStyle
	}
	r.backend.SetCell(x, row, ch, style)
}

// ScreenColumn returns the cell offset of rune index charIndex in line.
// Tabs advance to the next multiple of tabSize and wide runes take two
// cells.
func ScreenColumn(line string, charIndex, tabSize int) int {
	col := 0
	for i, ch := range []rune(line) {
		if i >= charIndex {
			break
		}
		if ch == '\t' {
			col = nextTabStop(col, tabSize)
			continue
		}
		col += runewidth.RuneWidth(ch)
	}
	return col
}

func nextTabStop(col, tabSize int) int {
	if tabSize <= 0 {
		return col + 1
	}
	return (col/tabSize + 1) * tabSize
}
