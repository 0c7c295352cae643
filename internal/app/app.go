// Package app provides the main application structure and coordination
// for the vhdlalign terminal host. It wires the document engine, the
// key-binding layer, the dispatcher and the comment aligner together and
// runs the terminal event loop.
package app

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/dshills/vhdlalign/internal/config"
	"github.com/dshills/vhdlalign/internal/dispatcher"
	"github.com/dshills/vhdlalign/internal/dispatcher/handler"
	"github.com/dshills/vhdlalign/internal/dispatcher/handlers/comment"
	"github.com/dshills/vhdlalign/internal/engine/buffer"
	"github.com/dshills/vhdlalign/internal/engine/cursor"
	"github.com/dshills/vhdlalign/internal/event"
	"github.com/dshills/vhdlalign/internal/event/topic"
	"github.com/dshills/vhdlalign/internal/input"
	"github.com/dshills/vhdlalign/internal/input/key"
	"github.com/dshills/vhdlalign/internal/renderer"
	"github.com/dshills/vhdlalign/internal/renderer/backend"
)

// ActivationNotice is shown once when the aligner is registered.
const ActivationNotice = "VHDL Comment Aligner activated!"

// Application actions.
const (
	ActionQuit         = "app.quit"
	ActionNextDocument = "app.nextDocument"
)

// eventSource tags events the application publishes.
const eventSource = "app"

// Application is the central coordinator for all components.
type Application struct {
	mu sync.RWMutex

	// Core infrastructure
	bus    event.Bus
	config *config.Config
	logger *Logger

	// Editor components
	input      *input.Handler
	dispatcher *dispatcher.Dispatcher
	tracker    *comment.Tracker
	documents  *DocumentManager

	// Terminal host
	backend  backend.Backend
	renderer *renderer.Renderer

	subs   *subscriptionManager
	notice string

	running atomic.Bool
	quit    atomic.Bool

	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the TOML configuration file.
	ConfigPath string

	// SettingsPath is a VS Code style settings.json file.
	SettingsPath string

	// KeybindingsPath is a keybindings.json file layered over the defaults.
	KeybindingsPath string

	// Files are files to open on startup. A scratch buffer is created
	// when empty.
	Files []string

	// Language overrides the detected language of opened files.
	Language string

	// LogLevel sets the logging verbosity; empty uses logging.level.
	LogLevel string

	// ReadOnly opens files in read-only mode.
	ReadOnly bool

	// Column and TabSize override the configured values when positive.
	Column  int
	TabSize int

	// Watch reloads configuration files when they change on disk.
	Watch bool

	// Logger receives log output; nil uses the process-wide logger.
	Logger *Logger

	// Env looks up environment variables; nil uses the process environment.
	Env func(string) (string, bool)
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:   opts,
		logger: opts.Logger,
	}
	if app.logger == nil {
		app.logger = GetLogger()
	}

	if err := newBootstrapper(app, opts).bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// Config returns the configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Input returns the key-binding handler.
func (app *Application) Input() *input.Handler {
	return app.input
}

// Dispatcher returns the action dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher {
	return app.dispatcher
}

// Documents returns the document manager.
func (app *Application) Documents() *DocumentManager {
	return app.documents
}

// Notice returns the activation notice, or "" before activation.
func (app *Application) Notice() string {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.notice
}

// CursorAtComment returns the current value of the aligner context flag.
func (app *Application) CursorAtComment() bool {
	return app.input.Context().GetCondition(comment.ContextKey)
}

// QuitRequested reports whether app.quit has run.
func (app *Application) QuitRequested() bool {
	return app.quit.Load()
}

// AlignOptions returns the aligner settings as handlers currently see them.
func (app *Application) AlignOptions() (column, tabSize int) {
	o := AlignSettings(app.config)
	return o.Column, o.TabSize
}

// Activate makes doc the active editor and publishes the change.
func (app *Application) Activate(doc *Document) {
	if doc == nil {
		app.dispatcher.SetEditor(nil)
		app.dispatcher.SetHistory(nil)
		app.publish(event.TopicEditorChanged, event.EditorChanged{})
		return
	}
	if doc.IsScratch() {
		app.logger.Debug("activated scratch buffer %s", doc.Name())
	} else {
		app.logger.Debug("activated %s", doc.FilePath())
	}
	app.dispatcher.SetEditor(doc)
	app.dispatcher.SetHistory(doc.Engine)
	app.publish(event.TopicEditorChanged, event.EditorChanged{
		Path:       doc.FilePath(),
		LanguageID: doc.LanguageID(),
	})
}

// HandleKey resolves a key through the key bindings and executes the
// resulting action. Unbound keys are a no-op.
func (app *Application) HandleKey(ev key.Event) handler.Result {
	app.refreshContext()

	action, ok := app.input.HandleKeyEvent(ev)
	if !ok {
		app.logger.Debug("unbound key %s", ev)
		return handler.NoOp()
	}
	return app.Execute(action)
}

// Execute dispatches action against the active document and publishes
// the selection and edit events it caused.
func (app *Application) Execute(action input.Action) handler.Result {
	doc := app.documents.Active()

	var (
		rev  buffer.RevisionID
		sels []cursor.Selection
	)
	if doc != nil {
		rev = doc.Revision()
		sels = doc.Selections()
	}

	result := app.dispatcher.DispatchWithContext(action, app.input.Context())
	if result.IsError() {
		app.logger.Warn("%s: %v", action.Name, result.Error)
	}
	if n := result.GetDataInt(comment.DataAligned); n > 0 {
		app.logger.Debug("%s moved %d comments", action.Name, n)
	}

	if doc != nil {
		if doc.Revision() != rev {
			app.publish(event.TopicDocumentEdited, event.DocumentEdited{
				Path:   doc.FilePath(),
				Label:  result.Message,
				Action: action.Name,
			})
		}
		if after := doc.Selections(); !slices.Equal(sels, after) {
			app.publish(event.TopicSelectionChanged, event.SelectionChanged{
				Path:       doc.FilePath(),
				Selections: after,
			})
		}
	}

	if result.Message != "" || result.IsError() {
		app.setStatusMessage(result)
	}
	return result
}

// refreshContext updates the key-binding context from the active document.
func (app *Application) refreshContext() {
	doc := app.documents.Active()
	if doc == nil {
		app.input.UpdateFromEditor(nil)
		app.tracker.Update(nil)
		return
	}
	app.input.UpdateFromEditor(doc)
	app.tracker.Update(doc)
}

// publish sends a payload on the bus. Delivery errors are logged.
func (app *Application) publish(t topic.Topic, payload any) {
	if app.bus == nil {
		return
	}
	var ev any
	switch p := payload.(type) {
	case event.EditorChanged:
		ev = event.NewEvent(t, p, eventSource)
	case event.SelectionChanged:
		ev = event.NewEvent(t, p, eventSource)
	case event.DocumentEdited:
		ev = event.NewEvent(t, p, eventSource)
	case event.ConfigChanged:
		ev = event.NewEvent(t, p, eventSource)
	default:
		ev = event.NewEvent(t, payload, eventSource)
	}
	if err := app.bus.Publish(context.Background(), ev); err != nil {
		app.logger.Warn("publish %s: %v", t, err)
	}
}

// Close releases the configuration watcher and input handler.
func (app *Application) Close() {
	if app.subs != nil {
		app.subs.close()
	}
	if app.config != nil {
		app.config.Close()
	}
	if app.input != nil {
		app.input.Close()
	}
}
