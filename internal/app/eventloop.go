package app

import (
	"context"
	"errors"

	"github.com/dshills/vhdlalign/internal/dispatcher/handler"
	"github.com/dshills/vhdlalign/internal/renderer"
	"github.com/dshills/vhdlalign/internal/renderer/backend"
	"github.com/dshills/vhdlalign/internal/renderer/statusline"
)

// SetBackend sets the terminal backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.IsRunning() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// IsRunning reports whether the event loop is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Run initializes the backend and processes terminal events until app.quit
// runs, the terminal closes or ctx is cancelled.
func (app *Application) Run(ctx context.Context) error {
	app.mu.RLock()
	b := app.backend
	app.mu.RUnlock()
	if b == nil {
		return ErrNoBackend
	}

	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer b.Shutdown()

	app.mu.Lock()
	app.renderer = renderer.New(b, renderer.DefaultOptions())
	app.mu.Unlock()
	defer func() {
		app.mu.Lock()
		app.renderer = nil
		app.mu.Unlock()
	}()

	app.configureRenderer()
	app.renderer.Status().SetMessage(app.Notice(), statusline.MessageInfo)
	if doc := app.documents.Active(); doc != nil {
		app.Activate(doc)
	}

	// PollEvent blocks, so it runs on its own goroutine.
	events := make(chan backend.Event)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := b.PollEvent()
			select {
			case events <- ev:
			case <-done:
				return
			}
			if ev.Type == backend.EventClosed {
				return
			}
		}
	}()

	app.render()
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()

		case ev := <-events:
			if err := app.handleBackendEvent(ev); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}
			app.render()
		}
	}
}

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		if r := app.currentRenderer(); r != nil {
			r.Status().ClearMessage()
		}
		app.HandleKey(ev.Key)
		if app.QuitRequested() {
			return ErrQuit
		}
	case backend.EventClosed:
		return ErrQuit
	}
	// Resizes need no work: every render reads the current size.
	return nil
}

// render draws the active document.
func (app *Application) render() {
	r := app.currentRenderer()
	doc := app.documents.Active()
	if r == nil || doc == nil {
		return
	}
	app.updateStatus()
	r.Render(doc)
}

func (app *Application) currentRenderer() *renderer.Renderer {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.renderer
}

// configureRenderer applies the aligner settings to the ruler and tabs.
func (app *Application) configureRenderer() {
	r := app.currentRenderer()
	if r == nil {
		return
	}
	column, tabSize := app.AlignOptions()
	r.SetRulerColumn(column)
	r.SetTabSize(tabSize)
}

// updateStatus copies document state into the status line.
func (app *Application) updateStatus() {
	r := app.currentRenderer()
	if r == nil {
		return
	}
	status := r.Status()
	status.SetAtComment(app.CursorAtComment())
	if doc := app.documents.Active(); doc != nil {
		status.SetModified(doc.IsModified())
	}
}

// setStatusMessage shows a handler message, as an error when it failed.
func (app *Application) setStatusMessage(result handler.Result) {
	r := app.currentRenderer()
	if r == nil {
		return
	}
	msg, kind := result.Message, statusline.MessageInfo
	if result.IsError() {
		kind = statusline.MessageError
		if msg == "" && result.Error != nil {
			msg = result.Error.Error()
		}
	}
	r.Status().SetMessage(msg, kind)
}
