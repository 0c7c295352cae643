// Package handler defines how actions are handled and what they report back.
package handler

import (
	"github.com/dshills/vhdlalign/internal/dispatcher/execctx"
	"github.com/dshills/vhdlalign/internal/input"
)

// Handler runs an action registered under an exact name.
type Handler interface {
	Handle(action input.Action, ctx *execctx.ExecutionContext) Result
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(action input.Action, ctx *execctx.ExecutionContext) Result

// Handle calls f.
func (f HandlerFunc) Handle(action input.Action, ctx *execctx.ExecutionContext) Result {
	if f == nil {
		return Errorf("handler function is nil")
	}
	return f(action, ctx)
}

// NamespaceHandler serves the actions sharing a prefix, the part of the
// action name before the first dot ("vhdlCommentAligner" in
// "vhdlCommentAligner.alignCommentOnTab").
type NamespaceHandler interface {
	// HandleAction runs an action CanHandle accepted.
	HandleAction(action input.Action, ctx *execctx.ExecutionContext) Result

	// CanHandle reports whether the action belongs to this handler.
	CanHandle(actionName string) bool

	// Namespace returns the prefix the handler is registered under.
	Namespace() string
}
