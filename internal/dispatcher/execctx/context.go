// Package execctx provides the execution context for action handlers.
package execctx

import (
	"github.com/dshills/vhdlalign/internal/engine/buffer"
	"github.com/dshills/vhdlalign/internal/engine/cursor"
	"github.com/dshills/vhdlalign/internal/input"
)

// EditorInterface abstracts the active editor for handlers.
type EditorInterface interface {
	// Document metadata
	LanguageID() string
	FilePath() string
	IsReadOnly() bool

	// Read operations
	LineCount() uint32
	LineText(line uint32) string
	LineLen(line uint32) uint32

	// Selections in selection order; the first is primary.
	Selections() []cursor.Selection
	SetSelections(sels []cursor.Selection)

	// Revision identifies the document state edits are computed against.
	Revision() buffer.RevisionID

	// ApplyLineEdits applies edits and selections as one undoable step.
	// It fails if rev is no longer current.
	ApplyLineEdits(rev buffer.RevisionID, label string, edits []buffer.LineEdit, sels []cursor.Selection) error
}

// HistoryInterface abstracts undo/redo for handlers.
type HistoryInterface interface {
	Undo() error
	Redo() error
	CanUndo() bool
	UndoCount() int

	// UndoLabel and RedoLabel name the next step, or "" when there is none.
	UndoLabel() string
	RedoLabel() string
}

// ConfigReader provides read access to settings.
type ConfigReader interface {
	// GetInt returns the integer setting at key, or def if unset or invalid.
	GetInt(key string, def int) int

	// GetBool returns the boolean setting at key, or def if unset or invalid.
	GetBool(key string, def bool) bool

	// Has reports whether key was set by any layer above the defaults.
	Has(key string) bool
}

// Logger is the logging surface handlers use.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// NopLogger returns a Logger that discards everything.
func NopLogger() Logger {
	return nopLogger{}
}

// ExecutionContext provides context for action execution.
// It contains references to all editor subsystems needed by handlers.
type ExecutionContext struct {
	// Editor is the active editor, or nil when none is open.
	Editor EditorInterface

	// History provides undo/redo.
	History HistoryInterface

	// Config provides settings, read fresh on every call.
	Config ConfigReader

	// Logger receives handler diagnostics. Never nil after New.
	Logger Logger

	// Input provides the input context (language, condition flags).
	Input *input.Context

	// Buffer metadata
	FilePath string
	FileType string
}

// New creates a new execution context.
func New() *ExecutionContext {
	return &ExecutionContext{
		Logger: NopLogger(),
	}
}

// NewWithInputContext creates a new execution context from an input context.
func NewWithInputContext(inputCtx *input.Context) *ExecutionContext {
	ctx := New()
	ctx.Input = inputCtx

	if inputCtx != nil {
		ctx.FilePath = inputCtx.FilePath
		ctx.FileType = inputCtx.FileType
	}

	return ctx
}

// WithEditor returns the context with the editor set.
// The file type follows the editor's language.
func (ctx *ExecutionContext) WithEditor(editor EditorInterface) *ExecutionContext {
	ctx.Editor = editor
	if editor != nil {
		ctx.FilePath = editor.FilePath()
		ctx.FileType = editor.LanguageID()
	}
	return ctx
}

// WithHistory returns the context with history set.
func (ctx *ExecutionContext) WithHistory(history HistoryInterface) *ExecutionContext {
	ctx.History = history
	return ctx
}

// WithConfig returns the context with the config reader set.
func (ctx *ExecutionContext) WithConfig(cfg ConfigReader) *ExecutionContext {
	ctx.Config = cfg
	return ctx
}

// WithLogger returns the context with the logger set. A nil logger
// discards output.
func (ctx *ExecutionContext) WithLogger(logger Logger) *ExecutionContext {
	if logger == nil {
		logger = NopLogger()
	}
	ctx.Logger = logger
	return ctx
}

// LanguageID returns the language of the active editor.
func (ctx *ExecutionContext) LanguageID() string {
	if ctx.Editor != nil {
		return ctx.Editor.LanguageID()
	}
	return ctx.FileType
}

// HasSelection returns true if any selection is non-empty.
func (ctx *ExecutionContext) HasSelection() bool {
	if ctx.Editor != nil {
		for _, sel := range ctx.Editor.Selections() {
			if !sel.IsEmpty() {
				return true
			}
		}
		return false
	}
	if ctx.Input != nil {
		return ctx.Input.HasSelection
	}
	return false
}

// IsReadOnly returns true if the buffer is read-only.
func (ctx *ExecutionContext) IsReadOnly() bool {
	if ctx.Editor != nil {
		return ctx.Editor.IsReadOnly()
	}
	if ctx.Input != nil {
		return ctx.Input.IsReadOnly
	}
	return false
}

// ConfigInt reads an integer setting, falling back to def when no config
// reader is present.
func (ctx *ExecutionContext) ConfigInt(key string, def int) int {
	if ctx.Config == nil {
		return def
	}
	return ctx.Config.GetInt(key, def)
}

// ConfigBool reads a boolean setting, falling back to def when no config
// reader is present.
func (ctx *ExecutionContext) ConfigBool(key string, def bool) bool {
	if ctx.Config == nil {
		return def
	}
	return ctx.Config.GetBool(key, def)
}

// ConfigHas reports whether a setting was explicitly set.
func (ctx *ExecutionContext) ConfigHas(key string) bool {
	if ctx.Config == nil {
		return false
	}
	return ctx.Config.Has(key)
}

// Validate checks that the context has all required components.
func (ctx *ExecutionContext) Validate() error {
	if ctx.Editor == nil {
		return ErrMissingEditor
	}
	return nil
}

// ValidateForEdit checks that the context is valid for editing operations.
func (ctx *ExecutionContext) ValidateForEdit() error {
	if err := ctx.Validate(); err != nil {
		return err
	}
	if ctx.IsReadOnly() {
		return ErrReadOnly
	}
	return nil
}
