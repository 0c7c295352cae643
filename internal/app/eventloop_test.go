package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/vhdlalign/internal/input/key"
	"github.com/dshills/vhdlalign/internal/renderer/backend"
)

// scriptedBackend draws to a simulation screen and replays a fixed list
// of events, then reports the terminal closed.
type scriptedBackend struct {
	*backend.Terminal

	mu     sync.Mutex
	events []backend.Event
	frames []string
}

func newScriptedBackend(keys ...key.Event) *scriptedBackend {
	screen := tcell.NewSimulationScreen("UTF-8")
	b := &scriptedBackend{Terminal: backend.NewTerminalWithScreen(screen)}
	for _, k := range keys {
		b.events = append(b.events, backend.Event{Type: backend.EventKey, Key: k})
	}
	return b
}

func (b *scriptedBackend) Init() error {
	if err := b.Terminal.Init(); err != nil {
		return err
	}
	b.Terminal.Screen().(tcell.SimulationScreen).SetSize(60, 5)
	return nil
}

func (b *scriptedBackend) PollEvent() backend.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.events) == 0 {
		return backend.Event{Type: backend.EventClosed}
	}
	ev := b.events[0]
	b.events = b.events[1:]
	return ev
}

// Show records the top row of every frame.
func (b *scriptedBackend) Show() {
	b.Terminal.Show()

	sim := b.Terminal.Screen().(tcell.SimulationScreen)
	cells, w, _ := sim.GetContents()
	var sb strings.Builder
	for x := 0; x < w && x < len(cells); x++ {
		if len(cells[x].Runes) > 0 {
			sb.WriteRune(cells[x].Runes[0])
		}
	}
	b.mu.Lock()
	b.frames = append(b.frames, sb.String())
	b.mu.Unlock()
}

func TestRun_AlignsAndQuits(t *testing.T) {
	app, doc, _ := newTestApp(t, "alu.vhd", "x -- c", Options{Column: 12})

	// The trailing Backspace must never run.
	b := newScriptedBackend(keyRight, keyRight, keyTab, ctrl('q'), keyBS)
	if err := app.SetBackend(b); err != nil {
		t.Fatal(err)
	}

	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := "x" + strings.Repeat(" ", 10) + "-- c"
	if got := doc.LineText(0); got != want {
		t.Errorf("line = %q, want %q", got, want)
	}
	if app.IsRunning() {
		t.Error("still running after Run returned")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.frames) < 4 {
		t.Fatalf("rendered %d frames, want one per event plus the first", len(b.frames))
	}
	if last := b.frames[len(b.frames)-1]; !strings.HasPrefix(last, "1 "+want) {
		t.Errorf("last frame top row = %q", last)
	}
}

func TestRun_TerminalClosed(t *testing.T) {
	app, _, _ := newTestApp(t, "alu.vhd", "x", Options{})
	if err := app.SetBackend(newScriptedBackend()); err != nil {
		t.Fatal(err)
	}
	if err := app.Run(context.Background()); err != nil {
		t.Errorf("Run = %v, want nil when the terminal closes", err)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	app, _, _ := newTestApp(t, "alu.vhd", "x", Options{})
	if err := app.SetBackend(newScriptedBackend()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := app.Run(ctx); err != nil {
		t.Errorf("Run = %v, want nil on cancel", err)
	}
}

func TestRun_NoBackend(t *testing.T) {
	app, _, _ := newTestApp(t, "alu.vhd", "x", Options{})
	if err := app.Run(context.Background()); !errors.Is(err, ErrNoBackend) {
		t.Errorf("Run = %v, want ErrNoBackend", err)
	}
}
