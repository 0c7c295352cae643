package input

import (
	"sync"

	"github.com/dshills/vhdlalign/internal/input/key"
	"github.com/dshills/vhdlalign/internal/input/keymap"
)

// InsertCharAction is the action produced for unbound printable keys.
const InsertCharAction = "editor.insertChar"

// Config configures the input handler.
type Config struct {
	// LoadDefaults registers the built-in keymap.
	LoadDefaults bool

	// InsertUnbound turns unbound printable keys into InsertCharAction.
	InsertUnbound bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LoadDefaults:  true,
		InsertUnbound: true,
	}
}

// Handler is the main entry point for input processing.
// It resolves key events to actions using the keymap registry.
type Handler struct {
	mu sync.RWMutex

	config   Config
	registry *keymap.Registry
	context  *Context
	closed   bool
}

// NewHandler creates a new input handler.
func NewHandler(config Config) *Handler {
	h := &Handler{
		config:   config,
		registry: keymap.NewRegistry(),
		context:  NewContext(),
	}

	if config.LoadDefaults {
		// The built-in keymap is static; a parse failure is a programming error.
		if err := keymap.LoadDefaults(h.registry); err != nil {
			panic("input: default keymap: " + err.Error())
		}
	}

	return h
}

// Registry returns the keymap registry.
func (h *Handler) Registry() *keymap.Registry {
	return h.registry
}

// Context returns the live input context.
// Callers must not mutate it concurrently with HandleKeyEvent.
func (h *Handler) Context() *Context {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.context
}

// SetCondition sets a condition flag on the input context.
func (h *Handler) SetCondition(name string, value bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.context.SetCondition(name, value)
}

// UpdateFromEditor refreshes the input context from the editor.
func (h *Handler) UpdateFromEditor(editor EditorStateProvider) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.context.UpdateFromEditor(editor)
}

// HandleKeyEvent resolves a key event to an action.
// Returns false when the key has no binding and is not insertable.
func (h *Handler) HandleKeyEvent(event key.Event) (Action, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return Action{}, false
	}

	binding := h.registry.Lookup(event, h.context.LookupContext())
	if binding != nil {
		return h.buildAction(binding, event), true
	}

	if h.config.InsertUnbound && event.IsChar() {
		action := Action{Name: InsertCharAction, Source: SourceKeyboard, Key: event.String()}
		return action.WithText(string(event.Rune)), true
	}

	return Action{}, false
}

// buildAction creates an action from a binding.
func (h *Handler) buildAction(binding *keymap.Binding, event key.Event) Action {
	action := Action{
		Name:   binding.Action,
		Source: SourceKeyboard,
		Key:    event.String(),
	}

	for k, v := range binding.Args {
		action = action.WithExtra(k, v)
	}
	if text, ok := binding.Args["text"].(string); ok {
		action = action.WithText(text)
	}
	return action
}

// Close stops the handler from resolving further events.
func (h *Handler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
}
