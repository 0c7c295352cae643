package dispatcher

import (
	"strings"
	"sync"

	"github.com/dshills/vhdlalign/internal/dispatcher/execctx"
	"github.com/dshills/vhdlalign/internal/dispatcher/handler"
	"github.com/dshills/vhdlalign/internal/input"
)

// routes resolves action names to handlers. A namespace handler claims the
// actions under its prefix that it accepts and takes precedence over an
// exact-name handler for the same action.
type routes struct {
	mu         sync.RWMutex
	namespaces map[string]handler.NamespaceHandler
	actions    map[string]handler.Handler
}

func newRoutes() *routes {
	return &routes{
		namespaces: make(map[string]handler.NamespaceHandler),
		actions:    make(map[string]handler.Handler),
	}
}

// addNamespace registers h under its own namespace, replacing any previous one.
func (r *routes) addNamespace(h handler.NamespaceHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.namespaces[h.Namespace()] = h
}

// addAction registers h for the exact action name.
func (r *routes) addAction(name string, h handler.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[name] = h
}

// lookup returns the handler for name, or nil.
func (r *routes) lookup(name string) handler.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if ns, ok := r.namespaces[namespaceOf(name)]; ok && ns.CanHandle(name) {
		return namespaceRoute{ns}
	}
	return r.actions[name]
}

// namespaceOf returns the text before the first dot, or "" for a bare name.
func namespaceOf(name string) string {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return ""
}

type namespaceRoute struct {
	ns handler.NamespaceHandler
}

func (n namespaceRoute) Handle(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	return n.ns.HandleAction(action, ctx)
}
