package app

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/go-enry/go-enry/v2"

	"github.com/dshills/vhdlalign/internal/engine"
	"github.com/dshills/vhdlalign/internal/engine/buffer"
	"github.com/dshills/vhdlalign/internal/engine/cursor"
)

// vhdlExtensions are always treated as VHDL, whatever the content says.
var vhdlExtensions = map[string]bool{
	".vhd":  true,
	".vhdl": true,
}

// DetectLanguage returns the lowercase language id for a file, or "" when
// it cannot be determined.
func DetectLanguage(path string, content []byte) string {
	if path == "" {
		return ""
	}
	if vhdlExtensions[strings.ToLower(filepath.Ext(path))] {
		return "vhdl"
	}
	lang, _ := enry.GetLanguageByExtension(path)
	if lang == "" {
		lang = enry.GetLanguage(filepath.Base(path), content)
	}
	return strings.ToLower(lang)
}

// Document represents an open file with its associated editor state.
// It implements execctx.EditorInterface for the active editor.
type Document struct {
	mu sync.RWMutex

	// Path is the absolute file path (empty for scratch buffers).
	path string

	// Name is the display name (filename or "Untitled").
	name string

	// Engine is the text buffer and editing engine.
	Engine *engine.Engine

	languageID string
}

// NewDocument creates a new document from a file path.
func NewDocument(path string, content []byte, opts ...engine.Option) *Document {
	name := filepath.Base(path)
	if path == "" {
		name = "Untitled"
	}

	opts = append([]engine.Option{engine.WithContent(string(content))}, opts...)
	return &Document{
		path:       path,
		name:       name,
		Engine:     engine.New(opts...),
		languageID: DetectLanguage(path, content),
	}
}

// NewScratchDocument creates a new scratch (unsaved) document.
func NewScratchDocument(opts ...engine.Option) *Document {
	return &Document{
		name:   "Untitled",
		Engine: engine.New(opts...),
	}
}

// Name returns the display name.
func (d *Document) Name() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.name
}

// FilePath returns the file path, or "" for a scratch buffer.
func (d *Document) FilePath() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.path
}

// LanguageID returns the detected language id.
func (d *Document) LanguageID() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.languageID
}

// SetLanguageID overrides the detected language.
func (d *Document) SetLanguageID(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.languageID = strings.ToLower(id)
}

// FileType returns the language id for key-binding conditions.
func (d *Document) FileType() string {
	return d.LanguageID()
}

// IsScratch returns true if this is a scratch buffer (no file path).
func (d *Document) IsScratch() bool {
	return d.FilePath() == ""
}

// IsModified returns true if the document has unsaved changes.
func (d *Document) IsModified() bool {
	return d.Engine.IsModified()
}

// IsReadOnly returns true if the document cannot be edited.
func (d *Document) IsReadOnly() bool {
	return d.Engine.IsReadOnly()
}

// HasSelection returns true if any selection spans text.
func (d *Document) HasSelection() bool {
	for _, sel := range d.Engine.Selections() {
		if sel.Anchor != sel.Head {
			return true
		}
	}
	return false
}

// LineCount returns the number of lines.
func (d *Document) LineCount() uint32 {
	return d.Engine.LineCount()
}

// LineText returns the text of a line without its terminator.
func (d *Document) LineText(line uint32) string {
	return d.Engine.LineText(line)
}

// LineLen returns the length of a line in characters.
func (d *Document) LineLen(line uint32) uint32 {
	return d.Engine.LineLen(line)
}

// Selections returns the selections, primary first.
func (d *Document) Selections() []cursor.Selection {
	return d.Engine.Selections()
}

// SetSelections replaces the selections.
func (d *Document) SetSelections(sels []cursor.Selection) {
	d.Engine.SetSelections(sels)
}

// Revision returns the current buffer revision.
func (d *Document) Revision() buffer.RevisionID {
	return d.Engine.RevisionID()
}

// ApplyLineEdits applies edits and selections as one undo step.
func (d *Document) ApplyLineEdits(rev buffer.RevisionID, label string, edits []buffer.LineEdit, sels []cursor.Selection) error {
	return d.Engine.ApplyLineEdits(rev, label, edits, sels)
}

// SaveTo writes the document to path and marks it saved. Saving a scratch
// buffer gives it the path.
func (d *Document) SaveTo(path string) error {
	content := d.Engine.Text()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return NewOperationError("save", path, err)
	}
	d.Engine.MarkSaved()

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.path == "" {
		d.path = path
		d.name = filepath.Base(path)
		d.languageID = DetectLanguage(path, []byte(content))
	}
	return nil
}

// DocumentManager manages all open documents.
type DocumentManager struct {
	mu        sync.RWMutex
	documents map[string]*Document // key -> document
	active    *Document
	order     []string // open order
	counter   int      // scratch buffer names
	opts      []engine.Option
}

// NewDocumentManager creates a new document manager. opts apply to every
// engine it creates.
func NewDocumentManager(opts ...engine.Option) *DocumentManager {
	return &DocumentManager{
		documents: make(map[string]*Document),
		opts:      opts,
	}
}

// Open opens a document from a file and makes it active. A file that does
// not exist yet opens as an empty document with that path. The existing
// document is returned if the file is already open.
func (dm *DocumentManager) Open(path string, opts ...engine.Option) (*Document, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}

	dm.mu.Lock()
	defer dm.mu.Unlock()

	if doc, exists := dm.documents[absPath]; exists {
		dm.active = doc
		return doc, nil
	}

	content, err := os.ReadFile(absPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, NewOperationError("open", absPath, err)
	}

	doc := NewDocument(absPath, content, append(append([]engine.Option{}, dm.opts...), opts...)...)
	dm.add(absPath, doc)
	return doc, nil
}

// CreateScratch creates a new scratch document and makes it active.
func (dm *DocumentManager) CreateScratch() *Document {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	dm.counter++
	doc := NewScratchDocument(dm.opts...)
	if dm.counter > 1 {
		doc.name = "Untitled-" + strconv.Itoa(dm.counter)
	}
	dm.add(scratchKey(dm.counter), doc)
	return doc
}

func (dm *DocumentManager) add(key string, doc *Document) {
	dm.documents[key] = doc
	dm.order = append(dm.order, key)
	dm.active = doc
}

// Close closes a document by key.
func (dm *DocumentManager) Close(key string) error {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	doc, exists := dm.documents[key]
	if !exists {
		return ErrDocumentNotFound
	}
	delete(dm.documents, key)

	for i, k := range dm.order {
		if k == key {
			dm.order = append(dm.order[:i], dm.order[i+1:]...)
			break
		}
	}

	if dm.active == doc {
		dm.active = nil
		if len(dm.order) > 0 {
			dm.active = dm.documents[dm.order[len(dm.order)-1]]
		}
	}
	return nil
}

// Active returns the currently active document.
func (dm *DocumentManager) Active() *Document {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.active
}

// SetActive sets the active document by key.
func (dm *DocumentManager) SetActive(key string) error {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	doc, exists := dm.documents[key]
	if !exists {
		return ErrDocumentNotFound
	}
	dm.active = doc
	return nil
}

// Get returns a document by key.
func (dm *DocumentManager) Get(key string) (*Document, bool) {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	doc, exists := dm.documents[key]
	return doc, exists
}

// All returns all open documents in open order.
func (dm *DocumentManager) All() []*Document {
	dm.mu.RLock()
	defer dm.mu.RUnlock()

	docs := make([]*Document, 0, len(dm.order))
	for _, key := range dm.order {
		docs = append(docs, dm.documents[key])
	}
	return docs
}

// HasDirty returns true if any document has unsaved changes.
func (dm *DocumentManager) HasDirty() bool {
	dm.mu.RLock()
	defer dm.mu.RUnlock()

	for _, doc := range dm.documents {
		if doc.IsModified() {
			return true
		}
	}
	return false
}

// Next activates and returns the document after the active one, wrapping.
func (dm *DocumentManager) Next() *Document {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	if len(dm.order) == 0 {
		return nil
	}
	idx := -1
	for i, key := range dm.order {
		if dm.documents[key] == dm.active {
			idx = i
			break
		}
	}
	dm.active = dm.documents[dm.order[(idx+1)%len(dm.order)]]
	return dm.active
}

func scratchKey(n int) string {
	return "::scratch::" + strconv.Itoa(n)
}
