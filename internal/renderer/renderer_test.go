package renderer

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/vhdlalign/internal/engine/cursor"
	"github.com/dshills/vhdlalign/internal/renderer/backend"
	"github.com/dshills/vhdlalign/internal/renderer/highlight"
)

type testView struct {
	lines []string
	sels  []cursor.Selection
}

func (v *testView) LineCount() uint32              { return uint32(len(v.lines)) }
func (v *testView) LineText(line uint32) string    { return v.lines[line] }
func (v *testView) Selections() []cursor.Selection { return v.sels }

func at(line, col uint32) cursor.Selection {
	return cursor.NewCursorSelection(cursor.Point{Line: line, Column: col})
}

func newSim(t *testing.T, w, h int) (*backend.Terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	term := backend.NewTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(term.Shutdown)
	screen.SetSize(w, h)
	return term, screen
}

func rowText(screen tcell.SimulationScreen, row int) string {
	cells, w, _ := screen.GetContents()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		c := cells[row*w+x]
		if len(c.Runes) == 0 {
			sb.WriteByte(' ')
			continue
		}
		sb.WriteRune(c.Runes[0])
	}
	return strings.TrimRight(sb.String(), " ")
}

func TestScreenColumn(t *testing.T) {
	tests := []struct {
		line  string
		index int
		tab   int
		want  int
	}{
		{"abc", 3, 4, 3},
		{"\tx", 1, 4, 4},
		{"ab\tx", 3, 4, 4},
		{"abcd\tx", 5, 4, 8},
		{"\t\t", 2, 8, 16},
		{"日本", 2, 4, 4},
		{"abc", 10, 4, 3},
	}
	for _, tt := range tests {
		if got := ScreenColumn(tt.line, tt.index, tt.tab); got != tt.want {
			t.Errorf("ScreenColumn(%q, %d, %d) = %d, want %d", tt.line, tt.index, tt.tab, got, tt.want)
		}
	}
}

func TestRenderLines(t *testing.T) {
	term, screen := newSim(t, 30, 4)
	r := New(term, Options{TabSize: 4, ShowLineNumbers: true})

	v := &testView{
		lines: []string{"a <= b; -- x", "\tc <= d;"},
		sels:  []cursor.Selection{at(1, 1)},
	}
	r.Render(v)

	if got := rowText(screen, 0); got != "1 a <= b; -- x" {
		t.Errorf("row 0 = %q", got)
	}
	if got := rowText(screen, 1); got != "2     c <= d;" {
		t.Errorf("row 1 = %q", got)
	}
	if got := rowText(screen, 2); got != "~" {
		t.Errorf("row 2 = %q, want ~", got)
	}

	x, y, visible := screen.GetCursor()
	if !visible || x != 6 || y != 1 {
		t.Errorf("cursor = (%d,%d,%v), want (6,1,true)", x, y, visible)
	}
	if got := rowText(screen, 3); !strings.HasSuffix(got, "Ln 2, Col 5") {
		t.Errorf("status = %q, want position Ln 2, Col 5", got)
	}
}

func TestRenderScrollsToCursor(t *testing.T) {
	term, screen := newSim(t, 20, 3)
	r := New(term, Options{TabSize: 4})

	v := &testView{
		lines: []string{"l0", "l1", "l2", "l3", "l4"},
		sels:  []cursor.Selection{at(4, 0)},
	}
	r.Render(v)
	if got := rowText(screen, 0); got != "l3" {
		t.Errorf("row 0 = %q, want l3", got)
	}

	v.sels = []cursor.Selection{at(3, 0)}
	r.Render(v)
	if got := rowText(screen, 0); got != "l3" {
		t.Errorf("row 0 = %q with cursor still visible, want l3", got)
	}

	v.sels = []cursor.Selection{at(0, 0)}
	r.Render(v)
	if got := rowText(screen, 0); got != "l0" {
		t.Errorf("row 0 = %q after moving up, want l0", got)
	}
}

func TestRenderSecondaryCursors(t *testing.T) {
	term, screen := newSim(t, 40, 3)
	r := New(term, Options{TabSize: 4})

	v := &testView{
		lines: []string{"abc", "de"},
		sels:  []cursor.Selection{at(0, 0), at(1, 2)},
	}
	r.Render(v)

	cells, w, _ := screen.GetContents()
	_, _, attrs := cells[1*w+2].Style.Decompose()
	if attrs&tcell.AttrReverse == 0 {
		t.Error("secondary cursor at end of line should be drawn reversed")
	}
	if got := rowText(screen, 2); !strings.Contains(got, "2 cursors") {
		t.Errorf("status = %q, want cursor count", got)
	}
}

func TestRenderRuler(t *testing.T) {
	term, screen := newSim(t, 20, 2)
	r := New(term, Options{TabSize: 4})
	r.SetRulerColumn(10)

	r.Render(&testView{lines: []string{"ab"}, sels: []cursor.Selection{at(0, 0)}})

	cells, w, _ := screen.GetContents()
	_, bg, _ := cells[0*w+9].Style.Decompose()
	if bg != tcell.ColorDarkSlateGray {
		t.Errorf("ruler background = %v, want dark slate gray", bg)
	}
}

func TestRenderHighlights(t *testing.T) {
	term, screen := newSim(t, 30, 2)
	h, err := highlight.New("vhdl")
	if err != nil {
		t.Fatal(err)
	}
	theme := highlight.NewTheme(highlight.DefaultThemeName)
	r := New(term, Options{TabSize: 4, Theme: theme})
	r.SetHighlighter(h)

	r.Render(&testView{lines: []string{"signal a; -- c"}, sels: []cursor.Selection{at(0, 0)}})

	cells, w, _ := screen.GetContents()
	if cells[0*w+11].Style != theme.Style(highlight.TokenComment) {
		t.Error("comment cell not styled as a comment")
	}
	if cells[0*w+0].Style != theme.Style(highlight.TokenKeyword) {
		t.Error("keyword cell not styled as a keyword")
	}
}
