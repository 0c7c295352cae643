package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newSimTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(term.Shutdown)
	screen.SetSize(20, 4)
	return term, screen
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		mod  tcell.ModMask
		want string
	}{
		{"rune", tcell.KeyRune, 'a', tcell.ModNone, "a"},
		{"space", tcell.KeyRune, ' ', tcell.ModNone, "Space"},
		{"tab", tcell.KeyTab, 0, tcell.ModNone, "Tab"},
		{"backspace", tcell.KeyBackspace, 0, tcell.ModNone, "BS"},
		{"backspace2", tcell.KeyBackspace2, 0, tcell.ModNone, "BS"},
		{"enter", tcell.KeyEnter, 0, tcell.ModNone, "Enter"},
		{"ctrl z", tcell.KeyCtrlZ, 0, tcell.ModCtrl, "C-z"},
		{"ctrl d", tcell.KeyCtrlD, 0, tcell.ModCtrl, "C-d"},
		{"left", tcell.KeyLeft, 0, tcell.ModNone, "Left"},
		{"alt x", tcell.KeyRune, 'x', tcell.ModAlt, "A-x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := tcell.NewEventKey(tt.key, tt.r, tt.mod)
			got, ok := ConvertKey(ev)
			if !ok {
				t.Fatal("ConvertKey returned false")
			}
			if got.String() != tt.want {
				t.Errorf("ConvertKey = %q, want %q", got.String(), tt.want)
			}
		})
	}
}

func TestConvertKeyUnknown(t *testing.T) {
	if _, ok := ConvertKey(tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone)); ok {
		t.Error("F5 should not convert")
	}
}

func TestPollEvent(t *testing.T) {
	term, screen := newSimTerminal(t)

	screen.InjectKey(tcell.KeyF5, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyTab, 0, tcell.ModNone)

	for {
		ev := term.PollEvent()
		if ev.Type == EventResize {
			continue
		}
		if ev.Type != EventKey {
			t.Fatalf("event type = %v, want key", ev.Type)
		}
		if ev.Key.String() != "Tab" {
			t.Errorf("key = %q, want Tab", ev.Key.String())
		}
		break
	}
}

func TestSetCell(t *testing.T) {
	term, screen := newSimTerminal(t)

	style := tcell.StyleDefault.Bold(true)
	term.SetCell(2, 1, 'x', style)
	term.SetCell(-1, 0, 'y', style)
	term.SetCell(99, 0, 'y', style)
	term.ShowCursor(3, 1)
	term.Show()

	cells, w, _ := screen.GetContents()
	cell := cells[1*w+2]
	if len(cell.Runes) != 1 || cell.Runes[0] != 'x' {
		t.Errorf("cell runes = %q, want x", cell.Runes)
	}
	if _, _, attrs := cell.Style.Decompose(); attrs&tcell.AttrBold == 0 {
		t.Error("cell style not applied")
	}
	x, y, visible := screen.GetCursor()
	if x != 3 || y != 1 || !visible {
		t.Errorf("cursor = (%d,%d,%v), want (3,1,true)", x, y, visible)
	}

	if w, h := term.Size(); w != 20 || h != 4 {
		t.Errorf("Size = %dx%d, want 20x4", w, h)
	}
}
