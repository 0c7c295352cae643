package keymap

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/vhdlalign/internal/input/key"
)

// ErrKeymapExists is returned when registering a keymap whose name is taken.
var ErrKeymapExists = errors.New("keymap already registered")

// LookupContext provides context for binding lookup.
type LookupContext struct {
	// FileType is the language id of the active document.
	FileType string

	// Conditions holds boolean context keys.
	Conditions map[string]bool

	// Variables holds string context keys.
	Variables map[string]string
}

// NewLookupContext creates an empty lookup context.
func NewLookupContext() *LookupContext {
	return &LookupContext{
		Conditions: make(map[string]bool),
		Variables:  make(map[string]string),
	}
}

type entry struct {
	binding *ParsedBinding
	keymap  *Keymap
	order   int
}

// Registry manages all keymaps and provides efficient lookup.
type Registry struct {
	mu sync.RWMutex

	keymaps map[string]*ParsedKeymap

	// byKey indexes bindings by canonical key string.
	byKey map[string][]entry

	seq int
}

// NewRegistry creates a new keymap registry.
func NewRegistry() *Registry {
	return &Registry{
		keymaps: make(map[string]*ParsedKeymap),
		byKey:   make(map[string][]entry),
	}
}

// Register adds a keymap to the registry.
func (r *Registry) Register(km *Keymap) error {
	parsed, err := km.Parse()
	if err != nil {
		return fmt.Errorf("keymap %s: %w", km.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.keymaps[km.Name]; exists {
		return fmt.Errorf("%w: %s", ErrKeymapExists, km.Name)
	}
	r.keymaps[km.Name] = parsed

	for i := range parsed.ParsedBindings {
		pb := &parsed.ParsedBindings[i]
		k := pb.Event.String()
		r.seq++
		r.byKey[k] = append(r.byKey[k], entry{binding: pb, keymap: km, order: r.seq})
	}
	return nil
}

// Lookup finds the best binding for a key event in the given context.
// Returns nil if no binding matches.
func (r *Registry) Lookup(ev key.Event, ctx *LookupContext) *Binding {
	matches := r.LookupAll(ev, ctx)
	if len(matches) == 0 {
		return nil
	}
	return &matches[0].Binding
}

// LookupAll returns every binding matching the event, best first.
func (r *Registry) LookupAll(ev key.Event, ctx *LookupContext) []BindingMatch {
	if ctx == nil {
		ctx = NewLookupContext()
	}

	r.mu.RLock()
	entries := r.byKey[ev.String()]
	matches := make([]BindingMatch, 0, len(entries))
	for _, e := range entries {
		if e.keymap.FileType != "" && e.keymap.FileType != ctx.FileType {
			continue
		}
		if !e.binding.cond.Eval(ctx) {
			continue
		}
		m := BindingMatch{ParsedBinding: e.binding, Keymap: e.keymap, order: e.order}
		m.CalculateScore()
		matches = append(matches, m)
	}
	r.mu.RUnlock()

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Less(matches[j])
	})
	return matches
}

// AllKeymaps returns the names of all registered keymaps, sorted.
func (r *Registry) AllKeymaps() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.keymaps))
	for name := range r.keymaps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
