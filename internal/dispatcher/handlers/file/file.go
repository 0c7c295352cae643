// Package file provides handlers for file operations.
package file

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/vhdlalign/internal/dispatcher/execctx"
	"github.com/dshills/vhdlalign/internal/dispatcher/handler"
	"github.com/dshills/vhdlalign/internal/input"
)

// Action names for file operations.
const (
	ActionSave   = "file.save"
	ActionSaveAs = "file.saveAs"
)

// ErrNoPath is returned when saving a document that has no file path.
var ErrNoPath = errors.New("file: no file path set")

// Saver is implemented by editors that own their persistence.
type Saver interface {
	// SaveTo writes the document to path and marks it saved.
	SaveTo(path string) error
}

// Handler implements namespace-based file handling.
type Handler struct{}

// NewHandler creates a new file handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the file namespace.
func (h *Handler) Namespace() string {
	return "file"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionSave, ActionSaveAs:
		return true
	}
	return false
}

// HandleAction processes a file action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}

	switch action.Name {
	case ActionSave:
		return h.save(ctx, ctx.Editor.FilePath())
	case ActionSaveAs:
		return h.save(ctx, expandPath(action.Args.GetString("path")))
	default:
		return handler.Errorf("unknown file action: %s", action.Name)
	}
}

// save writes the active document to path.
func (h *Handler) save(ctx *execctx.ExecutionContext, path string) handler.Result {
	if path == "" {
		return handler.Error(ErrNoPath)
	}

	if s, ok := ctx.Editor.(Saver); ok {
		if err := s.SaveTo(path); err != nil {
			return handler.Error(err)
		}
	} else if err := os.WriteFile(path, []byte(documentText(ctx.Editor)), 0644); err != nil {
		// Direct file write fallback
		return handler.Error(err)
	}

	ctx.Logger.Info("saved %s", path)
	return handler.Success().WithMessage("Saved: " + filepath.Base(path))
}

// documentText joins the editor lines with LF.
func documentText(ed execctx.EditorInterface) string {
	n := ed.LineCount()
	lines := make([]string, n)
	for i := uint32(0); i < n; i++ {
		lines[i] = ed.LineText(i)
	}
	return strings.Join(lines, "\n")
}

// expandPath expands a leading ~ to the home directory.
func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
