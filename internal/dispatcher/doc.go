// Package dispatcher routes input actions to handlers and coordinates execution.
//
// The dispatcher receives actions from the input system and routes them to
// handlers based on action names and namespace prefixes.
//
// # Architecture
//
// The dispatcher uses a two-tier routing system:
//
//  1. Namespace Router: Routes actions by namespace prefix (e.g.
//     "vhdlCommentAligner.alignCommentOnTab" is routed to the
//     "vhdlCommentAligner" namespace handler).
//
//  2. Handler Registry: Maps exact action names to handlers. Multiple handlers
//     can be registered for the same action, sorted by priority. Default key
//     commands such as "tab" and "deleteLeft" live here.
//
// # Handler Execution
//
// When an action is dispatched:
//
//  1. Pre-dispatch hooks are called (can modify or cancel the action)
//  2. An ExecutionContext is built with the editor, history, config and logger
//  3. The router finds the appropriate handler
//  4. The handler is executed (with optional panic recovery)
//  5. A deferred result runs its Fallback action in the same context
//  6. Post-dispatch hooks are called
//
// # Fallbacks
//
// A handler that declines an action returns handler.Defer with the name of
// the default command, for example:
//
//	return handler.DeferWithMessage("tab", "cursor past comment")
//
// The dispatcher then runs "tab" in the same context. Config.MaxFallbackDepth
// bounds the chain; past it the dispatch fails with ErrFallbackLoop.
package dispatcher
