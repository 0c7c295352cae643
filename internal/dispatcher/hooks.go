package dispatcher

import (
	"github.com/dshills/vhdlalign/internal/dispatcher/execctx"
	"github.com/dshills/vhdlalign/internal/dispatcher/handler"
	"github.com/dshills/vhdlalign/internal/input"
)

// PreDispatchHook is called before an action is dispatched.
// Returning false cancels the dispatch.
type PreDispatchHook interface {
	// PreDispatch is called before dispatch.
	// It may modify the action or context.
	// Returns false to cancel the dispatch.
	PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool
}

// PostDispatchHook is called after an action is dispatched, including any
// fallback it deferred to.
type PostDispatchHook interface {
	// PostDispatch is called after dispatch completes.
	// It may inspect or modify the result.
	PostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result)
}

// PreDispatchFunc is a function adapter for PreDispatchHook.
type PreDispatchFunc func(action *input.Action, ctx *execctx.ExecutionContext) bool

// PreDispatch implements PreDispatchHook.
func (f PreDispatchFunc) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	return f(action, ctx)
}

// PostDispatchFunc is a function adapter for PostDispatchHook.
type PostDispatchFunc func(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result)

// PostDispatch implements PostDispatchHook.
func (f PostDispatchFunc) PostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	f(action, ctx, result)
}

// LoggingHook logs every dispatch at debug level through the context logger.
type LoggingHook struct{}

// NewLoggingHook creates a new logging hook.
func NewLoggingHook() *LoggingHook {
	return &LoggingHook{}
}

// PreDispatch logs the action being dispatched.
func (h *LoggingHook) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	ctx.Logger.Debug("dispatching action: %s (source=%s, key=%s)", action.Name, action.Source, action.Key)
	return true
}

// PostDispatch logs the dispatch result.
func (h *LoggingHook) PostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	if result.IsError() {
		ctx.Logger.Warn("dispatch failed: %s: %v", action.Name, result.Error)
		return
	}
	if !result.IsOK() && result.Message != "" {
		ctx.Logger.Debug("dispatch complete: %s -> %s: %s", action.Name, result.Status, result.Message)
		return
	}
	ctx.Logger.Debug("dispatch complete: %s -> %s", action.Name, result.Status)
}

// ReadOnlyHook cancels editing actions when the active editor is read-only.
type ReadOnlyHook struct {
	// Editing reports whether an action modifies the document.
	Editing func(actionName string) bool
}

// PreDispatch cancels the action if it edits a read-only document.
func (h *ReadOnlyHook) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	if h.Editing == nil || !h.Editing(action.Name) {
		return true
	}
	return !ctx.IsReadOnly()
}
