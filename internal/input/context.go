package input

import (
	"github.com/dshills/vhdlalign/internal/input/keymap"
)

// Context provides context for input processing.
// It tracks the current state needed for key binding lookup.
type Context struct {
	// FileType is the language id of the active document (vhdl, go, ...).
	FileType string

	// FilePath is the path of the current file.
	FilePath string

	// HasSelection indicates whether there is an active selection.
	HasSelection bool

	// IsReadOnly indicates whether the buffer is read-only.
	IsReadOnly bool

	// Conditions holds condition flags for binding evaluation.
	// Keys: "editorTextFocus", "editorReadonly", "vhdlCommentAligner.cursorAtComment", etc.
	Conditions map[string]bool

	// Variables holds context variables.
	// Keys: "resourceLangId", etc.
	Variables map[string]string
}

// NewContext creates a new input context with default values.
func NewContext() *Context {
	return &Context{
		Conditions: make(map[string]bool),
		Variables:  make(map[string]string),
	}
}

// Clone returns a deep copy of the context.
// Nil maps are preserved as nil in the clone (not converted to empty maps).
func (c *Context) Clone() *Context {
	clone := &Context{
		FileType:     c.FileType,
		FilePath:     c.FilePath,
		HasSelection: c.HasSelection,
		IsReadOnly:   c.IsReadOnly,
	}

	// Preserve nil vs empty map semantics
	if c.Conditions != nil {
		clone.Conditions = make(map[string]bool, len(c.Conditions))
		for k, v := range c.Conditions {
			clone.Conditions[k] = v
		}
	}

	if c.Variables != nil {
		clone.Variables = make(map[string]string, len(c.Variables))
		for k, v := range c.Variables {
			clone.Variables[k] = v
		}
	}

	return clone
}

// SetCondition sets a condition flag.
func (c *Context) SetCondition(name string, value bool) {
	if c.Conditions == nil {
		c.Conditions = make(map[string]bool)
	}
	c.Conditions[name] = value
}

// GetCondition returns a condition flag value.
func (c *Context) GetCondition(name string) bool {
	if c.Conditions == nil {
		return false
	}
	return c.Conditions[name]
}

// SetVariable sets a context variable.
func (c *Context) SetVariable(name, value string) {
	if c.Variables == nil {
		c.Variables = make(map[string]string)
	}
	c.Variables[name] = value
}

// LookupContext converts the context into a keymap lookup context.
func (c *Context) LookupContext() *keymap.LookupContext {
	cl := c.Clone()
	lc := &keymap.LookupContext{
		FileType:   cl.FileType,
		Conditions: cl.Conditions,
		Variables:  cl.Variables,
	}
	if lc.Conditions == nil {
		lc.Conditions = make(map[string]bool)
	}
	if lc.Variables == nil {
		lc.Variables = make(map[string]string)
	}
	return lc
}

// EditorStateProvider provides editor state for context updates.
type EditorStateProvider interface {
	// FileType returns the language id of the document.
	FileType() string

	// FilePath returns the current file path.
	FilePath() string

	// HasSelection returns true if there is an active selection.
	HasSelection() bool

	// IsReadOnly returns true if the buffer is read-only.
	IsReadOnly() bool
}

// UpdateFromEditor updates the context from an editor state provider.
// A nil editor clears the focus flag.
func (c *Context) UpdateFromEditor(editor EditorStateProvider) {
	if editor == nil {
		c.FileType = ""
		c.FilePath = ""
		c.SetCondition("editorTextFocus", false)
		c.SetVariable("resourceLangId", "")
		return
	}

	c.FileType = editor.FileType()
	c.FilePath = editor.FilePath()
	c.HasSelection = editor.HasSelection()
	c.IsReadOnly = editor.IsReadOnly()

	// Set standard conditions
	c.SetCondition("editorTextFocus", true)
	c.SetCondition("editorReadonly", c.IsReadOnly)
	c.SetCondition("editorHasSelection", c.HasSelection)

	// Set standard variables
	c.SetVariable("resourceLangId", c.FileType)
}
