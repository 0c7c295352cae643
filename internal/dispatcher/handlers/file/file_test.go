package file_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/vhdlalign/internal/dispatcher/execctx"
	filehandler "github.com/dshills/vhdlalign/internal/dispatcher/handlers/file"
	"github.com/dshills/vhdlalign/internal/engine"
	"github.com/dshills/vhdlalign/internal/engine/buffer"
	"github.com/dshills/vhdlalign/internal/input"
)

type plainEditor struct {
	*engine.Engine
	path string
}

func (e *plainEditor) LanguageID() string          { return "vhdl" }
func (e *plainEditor) FilePath() string            { return e.path }
func (e *plainEditor) Revision() buffer.RevisionID { return e.RevisionID() }

type savingEditor struct {
	plainEditor
	saved []string
}

func (e *savingEditor) SaveTo(path string) error {
	e.saved = append(e.saved, path)
	return nil
}

func TestSaveWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "top.vhd")
	ed := &plainEditor{Engine: engine.New(engine.WithContent("a\nb")), path: path}
	ctx := execctx.New().WithEditor(ed)

	r := filehandler.NewHandler().HandleAction(input.Action{Name: filehandler.ActionSave}, ctx)
	if !r.IsOK() || r.Message != "Saved: top.vhd" {
		t.Fatalf("result = %+v", r)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "a\nb" {
		t.Errorf("file = %q", data)
	}
}

func TestSaveUsesSaver(t *testing.T) {
	ed := &savingEditor{plainEditor: plainEditor{Engine: engine.New(), path: "top.vhd"}}
	ctx := execctx.New().WithEditor(ed)
	h := filehandler.NewHandler()

	h.HandleAction(input.Action{Name: filehandler.ActionSave}, ctx)
	saveAs := input.Action{Name: filehandler.ActionSaveAs}.WithExtra("path", "other.vhd")
	h.HandleAction(saveAs, ctx)

	if len(ed.saved) != 2 || ed.saved[0] != "top.vhd" || ed.saved[1] != "other.vhd" {
		t.Errorf("saved = %v", ed.saved)
	}
}

func TestSaveErrors(t *testing.T) {
	h := filehandler.NewHandler()

	if r := h.HandleAction(input.Action{Name: filehandler.ActionSave}, execctx.New()); !errors.Is(r.Error, execctx.ErrMissingEditor) {
		t.Errorf("no editor = %v", r.Error)
	}

	ctx := execctx.New().WithEditor(&plainEditor{Engine: engine.New()})
	if r := h.HandleAction(input.Action{Name: filehandler.ActionSave}, ctx); !errors.Is(r.Error, filehandler.ErrNoPath) {
		t.Errorf("no path = %v", r.Error)
	}
	if h.CanHandle("file.open") {
		t.Error("file.open is not supported")
	}
}
