package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/dshills/vhdlalign/internal/align"
	"github.com/dshills/vhdlalign/internal/config"
	"github.com/dshills/vhdlalign/internal/dispatcher"
	"github.com/dshills/vhdlalign/internal/dispatcher/execctx"
	"github.com/dshills/vhdlalign/internal/dispatcher/handler"
	"github.com/dshills/vhdlalign/internal/dispatcher/handlers/comment"
	cursorhandler "github.com/dshills/vhdlalign/internal/dispatcher/handlers/cursor"
	editorhandler "github.com/dshills/vhdlalign/internal/dispatcher/handlers/editor"
	filehandler "github.com/dshills/vhdlalign/internal/dispatcher/handlers/file"
	"github.com/dshills/vhdlalign/internal/engine"
	"github.com/dshills/vhdlalign/internal/event"
	"github.com/dshills/vhdlalign/internal/input"
	"github.com/dshills/vhdlalign/internal/input/keymap"
)

// bootstrapper handles component initialization with proper cleanup on failure.
type bootstrapper struct {
	app       *Application
	opts      Options
	initOrder []string
}

// newBootstrapper creates a new bootstrapper for the application.
func newBootstrapper(app *Application, opts Options) *bootstrapper {
	return &bootstrapper{
		app:       app,
		opts:      opts,
		initOrder: make([]string, 0, 8),
	}
}

// bootstrap initializes all components in dependency order.
// On failure, it cleans up already-initialized components.
func (b *bootstrapper) bootstrap() error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"event bus", b.initEventBus},
		{"config", b.initConfig},
		{"input", b.initInput},
		{"dispatcher", b.initDispatcher},
		{"subscriptions", b.initSubscriptions},
		{"documents", b.initDocuments},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			b.cleanup()
			return &InitError{Component: step.name, Err: err}
		}
		b.initOrder = append(b.initOrder, step.name)
	}

	b.activate()
	return nil
}

// initEventBus initializes the event bus.
func (b *bootstrapper) initEventBus() error {
	b.app.bus = event.NewBus(event.WithPanicHandler(func(ev any, recovered any) {
		b.app.logger.Error("event handler panic: %v", recovered)
	}))
	return nil
}

// initConfig loads the configuration layers.
func (b *bootstrapper) initConfig() error {
	cfg, err := LoadConfig(b.opts, b.app.logger)
	if err != nil {
		return err
	}
	b.app.config = cfg
	b.app.logger.SetLevel(ParseLogLevel(cfg.GetString(config.KeyLogLevel, "info")))
	return nil
}

// LoadConfig builds the layered configuration for opts and stores the
// command-line overrides in the flags layer. Watcher errors go to logger.
func LoadConfig(opts Options, logger *Logger) (*config.Config, error) {
	if logger == nil {
		logger = GetLogger()
	}
	cfgOpts := []config.Option{
		config.WithWatcher(opts.Watch),
		config.WithErrorHandler(func(err error) {
			logger.WithComponent("config").Warn("%v", err)
		}),
	}
	if opts.ConfigPath != "" {
		cfgOpts = append(cfgOpts, config.WithConfigFile(opts.ConfigPath))
	}
	if opts.SettingsPath != "" {
		cfgOpts = append(cfgOpts, config.WithSettingsFile(opts.SettingsPath))
	}
	if opts.Language != "" {
		cfgOpts = append(cfgOpts, config.WithLanguage(opts.Language))
	}
	if opts.Env != nil {
		cfgOpts = append(cfgOpts, config.WithEnvLookup(opts.Env))
	}

	cfg := config.New(cfgOpts...)
	if err := cfg.Load(context.Background()); err != nil {
		return nil, err
	}
	if err := applyFlags(cfg, opts); err != nil {
		cfg.Close()
		return nil, err
	}
	return cfg, nil
}

// applyFlags stores command-line overrides in the flags layer.
func applyFlags(cfg *config.Config, opts Options) error {
	flags := []struct {
		key   string
		value any
		set   bool
	}{
		{config.KeyCommentColumn, opts.Column, opts.Column > 0},
		{config.KeyTabSize, opts.TabSize, opts.TabSize > 0},
		{config.KeyLogLevel, opts.LogLevel, opts.LogLevel != ""},
	}
	for _, f := range flags {
		if !f.set {
			continue
		}
		if err := cfg.SetFlag(f.key, f.value); err != nil {
			return fmt.Errorf("flag %s: %w", f.key, err)
		}
	}
	return nil
}

// AlignSettings returns the aligner options cfg currently resolves to.
func AlignSettings(cfg execctx.ConfigReader) align.Options {
	return comment.Options(execctx.New().WithConfig(cfg))
}

// initInput creates the key-binding handler with the default keymap, the
// aligner keymap and any user keybindings.
func (b *bootstrapper) initInput() error {
	h := input.NewHandler(input.DefaultConfig())
	if err := h.Registry().Register(comment.Keymap()); err != nil {
		return err
	}
	if b.opts.KeybindingsPath != "" {
		km, err := keymap.LoadKeybindingsFile(b.opts.KeybindingsPath)
		if err != nil {
			return err
		}
		if err := h.Registry().Register(km); err != nil {
			return err
		}
	}
	b.app.logger.Debug("keymaps: %s", strings.Join(h.Registry().AllKeymaps(), ", "))
	b.app.input = h
	b.app.tracker = comment.NewTracker(h)
	return nil
}

// initDispatcher creates the dispatcher and registers every handler.
func (b *bootstrapper) initDispatcher() error {
	d := dispatcher.New(dispatcher.DefaultConfig().WithPanicRecovery(true))
	d.SetConfig(b.app.config)
	d.SetLogger(b.app.logger.WithComponent("dispatcher"))

	RegisterHandlers(d)
	d.RegisterHandlerFunc(ActionQuit, func(input.Action, *execctx.ExecutionContext) handler.Result {
		if b.app.documents.HasDirty() {
			b.app.logger.Warn("quitting with unsaved changes")
		}
		b.app.quit.Store(true)
		return handler.Success()
	})
	d.RegisterHandlerFunc(ActionNextDocument, func(input.Action, *execctx.ExecutionContext) handler.Result {
		doc := b.app.documents.Next()
		if doc == nil {
			return handler.NoOp()
		}
		b.app.Activate(doc)
		return handler.SuccessWithMessage(doc.Name())
	})

	d.RegisterPreHook(dispatcher.NewLoggingHook())
	d.RegisterPostHook(dispatcher.NewLoggingHook())
	d.RegisterPreHook(&dispatcher.ReadOnlyHook{Editing: IsEditingAction})

	b.app.dispatcher = d
	return nil
}

// initSubscriptions wires bus and config subscriptions.
func (b *bootstrapper) initSubscriptions() error {
	b.app.subs = newSubscriptionManager(b.app)
	return b.app.subs.setupSubscriptions()
}

// initDocuments opens the startup files, or a scratch buffer.
func (b *bootstrapper) initDocuments() error {
	var opts []engine.Option
	if b.opts.ReadOnly {
		opts = append(opts, engine.WithReadOnly())
	}
	b.app.documents = NewDocumentManager(opts...)

	var first *Document
	for _, path := range b.opts.Files {
		doc, err := b.app.documents.Open(path)
		if err != nil {
			return err
		}
		if first == nil {
			first = doc
		}
	}
	if first == nil {
		first = b.app.documents.CreateScratch()
	} else if err := b.app.documents.SetActive(first.FilePath()); err != nil {
		return err
	}

	if b.opts.Language != "" {
		for _, doc := range b.app.documents.All() {
			doc.SetLanguageID(b.opts.Language)
		}
	}
	return nil
}

// activate makes the first document active, computes the context flag and
// shows the activation notice.
func (b *bootstrapper) activate() {
	app := b.app
	app.Activate(app.documents.Active())
	app.refreshContext()

	app.mu.Lock()
	app.notice = ActivationNotice
	app.mu.Unlock()
	app.logger.Info("%s", ActivationNotice)
}

// cleanup releases components initialized so far, in reverse order.
func (b *bootstrapper) cleanup() {
	for i := len(b.initOrder) - 1; i >= 0; i-- {
		switch b.initOrder[i] {
		case "subscriptions":
			b.app.subs.close()
		case "input":
			b.app.input.Close()
		case "config":
			b.app.config.Close()
		}
	}
}

// RegisterHandlers registers all standard handlers with the dispatcher.
func RegisterHandlers(d *dispatcher.Dispatcher) {
	editor := editorhandler.NewHandler()
	d.RegisterNamespace(editor)
	for _, name := range editorhandler.DefaultKeyActions() {
		d.RegisterHandler(name, editor)
	}

	d.RegisterNamespace(cursorhandler.NewHandler())
	d.RegisterNamespace(filehandler.NewHandler())
	d.RegisterNamespace(comment.NewHandler())
}

// editingActions lists actions that modify document content.
var editingActions = map[string]bool{
	editorhandler.ActionTab:         true,
	editorhandler.ActionDeleteLeft:  true,
	editorhandler.ActionDeleteRight: true,
	editorhandler.ActionInsertChar:  true,
	editorhandler.ActionInsertText:  true,
	editorhandler.ActionNewline:     true,
	editorhandler.ActionUndo:        true,
	editorhandler.ActionRedo:        true,
}

// IsEditingAction reports whether an action modifies the document.
// The aligner actions are absent; they defer on a read-only document.
func IsEditingAction(name string) bool {
	return editingActions[name]
}
