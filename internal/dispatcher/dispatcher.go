// Package dispatcher routes actions to handlers and coordinates execution.
package dispatcher

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/dshills/vhdlalign/internal/dispatcher/execctx"
	"github.com/dshills/vhdlalign/internal/dispatcher/handler"
	"github.com/dshills/vhdlalign/internal/input"
)

// Dispatcher routes actions to handlers and coordinates execution.
type Dispatcher struct {
	mu sync.RWMutex

	routes *routes

	// Editor subsystems
	editor  execctx.EditorInterface
	history execctx.HistoryInterface
	config  execctx.ConfigReader
	logger  execctx.Logger

	// Configuration
	cfg Config

	// Hooks
	preHooks  []PreDispatchHook
	postHooks []PostDispatchHook
}

// New creates a new dispatcher with the given configuration.
func New(config Config) *Dispatcher {
	return &Dispatcher{
		routes: newRoutes(),
		cfg:    config,
		logger: execctx.NopLogger(),
	}
}

// SetEditor sets the active editor. A nil editor means none is open.
func (d *Dispatcher) SetEditor(editor execctx.EditorInterface) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.editor = editor
}

// SetHistory sets the history/undo manager.
func (d *Dispatcher) SetHistory(history execctx.HistoryInterface) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.history = history
}

// SetConfig sets the settings reader.
func (d *Dispatcher) SetConfig(cfg execctx.ConfigReader) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.config = cfg
}

// SetLogger sets the logger passed to handlers.
func (d *Dispatcher) SetLogger(logger execctx.Logger) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if logger == nil {
		logger = execctx.NopLogger()
	}
	d.logger = logger
}

// DispatchWithContext runs an action against the given input context,
// following a deferred result to its fallback. inputCtx may be nil.
func (d *Dispatcher) DispatchWithContext(action input.Action, inputCtx *input.Context) handler.Result {
	ctx := d.buildContext(inputCtx)

	if !d.runPreHooks(&action, ctx) {
		return handler.CancelledWithMessage("cancelled by hook")
	}

	result := d.execute(action, ctx)

	if result.IsDeferred() {
		result = d.runFallback(action, result, ctx)
	}

	d.runPostHooks(&action, ctx, &result)

	return result
}

// execute finds and runs the handler for an action.
func (d *Dispatcher) execute(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	h := d.routes.lookup(action.Name)
	if h == nil {
		return handler.Error(fmt.Errorf("%w: %s", ErrNoHandler, action.Name))
	}

	if d.cfg.RecoverFromPanic {
		return d.executeWithRecovery(h, action, ctx)
	}
	return h.Handle(action, ctx)
}

// runFallback runs the default action a handler deferred to.
// Fallbacks are followed at most MaxFallbackDepth times.
func (d *Dispatcher) runFallback(action input.Action, deferred handler.Result, ctx *execctx.ExecutionContext) handler.Result {
	result := deferred
	for depth := 0; result.IsDeferred(); depth++ {
		if result.Fallback == "" {
			return handler.NoOpWithMessage(result.Message)
		}
		if depth >= d.cfg.MaxFallbackDepth {
			return handler.Error(fmt.Errorf("%w: %s -> %s", ErrFallbackLoop, action.Name, result.Fallback))
		}

		ctx.Logger.Debug("%s deferred to %s: %s", action.Name, result.Fallback, result.Message)

		next := input.Action{
			Name:   result.Fallback,
			Args:   action.Args,
			Source: input.SourceFallback,
			Key:    action.Key,
		}
		action = next
		result = d.execute(next, ctx)
	}
	return result
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(h handler.Handler, action input.Action, ctx *execctx.ExecutionContext) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)

			ctx.Logger.Error("handler panic for %s: %v\n%s", action.Name, r, string(stack[:n]))
			result = handler.Error(fmt.Errorf("%w: %s: %v", ErrPanic, action.Name, r))
		}
	}()

	return h.Handle(action, ctx)
}

// buildContext builds an execution context from current state.
func (d *Dispatcher) buildContext(inputCtx *input.Context) *execctx.ExecutionContext {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return execctx.NewWithInputContext(inputCtx).
		WithEditor(d.editor).
		WithHistory(d.history).
		WithConfig(d.config).
		WithLogger(d.logger)
}

// RegisterHandler registers a handler for an exact action name.
func (d *Dispatcher) RegisterHandler(actionName string, h handler.Handler) {
	d.routes.addAction(actionName, h)
}

// RegisterHandlerFunc registers a handler function for an action name.
func (d *Dispatcher) RegisterHandlerFunc(actionName string, fn func(input.Action, *execctx.ExecutionContext) handler.Result) {
	d.routes.addAction(actionName, handler.HandlerFunc(fn))
}

// RegisterNamespace registers h for the actions under h.Namespace().
func (d *Dispatcher) RegisterNamespace(h handler.NamespaceHandler) {
	d.routes.addNamespace(h)
}

// RegisterPreHook registers a pre-dispatch hook.
func (d *Dispatcher) RegisterPreHook(hook PreDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.preHooks = append(d.preHooks, hook)
}

// RegisterPostHook registers a post-dispatch hook.
func (d *Dispatcher) RegisterPostHook(hook PostDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.postHooks = append(d.postHooks, hook)
}

// runPreHooks runs all pre-dispatch hooks.
// Returns false if any hook cancels the action.
func (d *Dispatcher) runPreHooks(action *input.Action, ctx *execctx.ExecutionContext) bool {
	d.mu.RLock()
	hooks := make([]PreDispatchHook, len(d.preHooks))
	copy(hooks, d.preHooks)
	d.mu.RUnlock()

	for _, h := range hooks {
		if !h.PreDispatch(action, ctx) {
			return false
		}
	}
	return true
}

// runPostHooks runs all post-dispatch hooks.
func (d *Dispatcher) runPostHooks(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	d.mu.RLock()
	hooks := make([]PostDispatchHook, len(d.postHooks))
	copy(hooks, d.postHooks)
	d.mu.RUnlock()

	for _, h := range hooks {
		h.PostDispatch(action, ctx, result)
	}
}
