package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/vhdlalign/internal/config/notify"
)

func noEnv(string) (string, bool) { return "", false }

func envOf(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := New(WithEnvLookup(noEnv))
	if err := cfg.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer cfg.Close()

	if got := cfg.GetInt(KeyCommentColumn, 0); got != 95 {
		t.Errorf("commentColumn = %d, want 95", got)
	}
	if got := cfg.GetInt(KeyTabStop, 0); got != 100 {
		t.Errorf("tabStop = %d, want 100", got)
	}
	if got := cfg.GetInt(KeyTabSize, 0); got != 4 {
		t.Errorf("tabSize = %d, want 4", got)
	}
	if got := cfg.GetString(KeyLogLevel, ""); got != "info" {
		t.Errorf("logging.level = %q, want info", got)
	}
	if cfg.Has(KeyCommentColumn) {
		t.Error("Has(commentColumn) should be false for a default")
	}
	if got := cfg.SourceOf(KeyTabSize); got != LayerDefaults {
		t.Errorf("SourceOf(tabSize) = %q, want %q", got, LayerDefaults)
	}
}

func TestPrecedence(t *testing.T) {
	dir := t.TempDir()
	toml := writeFile(t, dir, "vhdlalign.toml", `
[vhdlCommentAligner]
commentColumn = 60
tabStop = 70

[editor]
tabSize = 2
`)
	settings := writeFile(t, dir, "settings.json", `{
	"vhdlCommentAligner.commentColumn": 80,
	"[vhdl]": { "editor.tabSize": 3 }
}`)

	cfg := New(
		WithConfigFile(toml),
		WithSettingsFile(settings),
		WithEnvLookup(envOf(map[string]string{"VHDLALIGN_TAB_SIZE": "8"})),
	)
	if err := cfg.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer cfg.Close()

	tests := []struct {
		key    string
		want   int
		source string
	}{
		{KeyCommentColumn, 80, LayerSettings},
		{KeyTabStop, 70, LayerFile},
		{KeyTabSize, 8, LayerEnvironment},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := cfg.GetInt(tt.key, 0); got != tt.want {
				t.Errorf("GetInt = %d, want %d", got, tt.want)
			}
			if got := cfg.SourceOf(tt.key); got != tt.source {
				t.Errorf("SourceOf = %q, want %q", got, tt.source)
			}
			if !cfg.Has(tt.key) {
				t.Error("Has = false, want true")
			}
		})
	}

	if err := cfg.SetFlag(KeyTabSize, 5); err != nil {
		t.Fatalf("SetFlag: %v", err)
	}
	if got := cfg.GetInt(KeyTabSize, 0); got != 5 {
		t.Errorf("after flag, tabSize = %d, want 5", got)
	}
	if got := cfg.SourceOf(KeyTabSize); got != LayerFlags {
		t.Errorf("after flag, SourceOf(tabSize) = %q", got)
	}

	merged := cfg.Merged()
	want := map[string]Effective{
		KeyCommentColumn: {KeyCommentColumn, int64(80), LayerSettings},
		KeyTabSize:       {KeyTabSize, 5, LayerFlags},
		KeyInsertSpaces:  {KeyInsertSpaces, true, LayerDefaults},
	}
	for i, e := range merged {
		if i > 0 && merged[i-1].Path >= e.Path {
			t.Errorf("Merged not sorted at %q", e.Path)
		}
		if w, ok := want[e.Path]; ok {
			if e.Layer != w.Layer || fmt.Sprint(e.Value) != fmt.Sprint(w.Value) {
				t.Errorf("Merged %s = %+v, want %+v", e.Path, e, w)
			}
			delete(want, e.Path)
		}
	}
	if len(want) != 0 {
		t.Errorf("Merged missing %v", want)
	}
}

func TestLoadMissingFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := New(
		WithConfigFile(filepath.Join(dir, "missing.toml")),
		WithSettingsFile(filepath.Join(dir, "missing.json")),
		WithEnvLookup(noEnv),
	)
	if err := cfg.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer cfg.Close()

	for _, name := range cfg.Layers() {
		if name == LayerFile || name == LayerSettings {
			t.Errorf("unexpected layer %q for a missing file", name)
		}
	}
}

func TestLoadValidation(t *testing.T) {
	dir := t.TempDir()
	toml := writeFile(t, dir, "bad.toml", `
[vhdlCommentAligner]
commentColumn = 0

[editor]
tabSize = "wide"
`)
	cfg := New(WithConfigFile(toml), WithEnvLookup(noEnv))
	err := cfg.Load(context.Background())
	if err == nil {
		t.Fatal("Load should reject invalid values")
	}
	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("error %v should wrap ErrValidationFailed", err)
	}
	if !strings.Contains(err.Error(), "commentColumn") || !strings.Contains(err.Error(), "tabSize") {
		t.Errorf("error %q should name both settings", err)
	}
	if got := cfg.GetInt(KeyCommentColumn, 0); got != 95 {
		t.Errorf("commentColumn = %d after failed load, want 95", got)
	}
}

func TestLoadParseError(t *testing.T) {
	dir := t.TempDir()
	toml := writeFile(t, dir, "broken.toml", "[vhdlCommentAligner\n")
	cfg := New(WithConfigFile(toml), WithEnvLookup(noEnv))

	err := cfg.Load(context.Background())
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Load error = %v, want *ParseError", err)
	}
	if perr.Path != toml {
		t.Errorf("ParseError.Path = %q, want %q", perr.Path, toml)
	}
}

func TestTypedAccessors(t *testing.T) {
	cfg := New(WithEnvLookup(noEnv))
	if err := cfg.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, err := cfg.Int("no.such.key"); !errors.Is(err, ErrSettingNotFound) {
		t.Errorf("Int(missing) error = %v, want ErrSettingNotFound", err)
	}

	_, err := cfg.Bool(KeyCommentColumn)
	var terr *TypeError
	if !errors.As(err, &terr) {
		t.Fatalf("Bool(int) error = %v, want *TypeError", err)
	}
	if terr.Expected != "bool" {
		t.Errorf("TypeError.Expected = %q, want bool", terr.Expected)
	}

	if got := cfg.GetBool(KeyInsertSpaces, false); !got {
		t.Error("insertSpaces should default to true")
	}
	if got := cfg.GetString(KeyCommentColumn, "fallback"); got != "fallback" {
		t.Errorf("GetString on an int = %q, want fallback", got)
	}
}

func TestSetFlagValidates(t *testing.T) {
	cfg := New(WithEnvLookup(noEnv))

	tests := []struct {
		name  string
		key   string
		value any
	}{
		{"zero column", KeyCommentColumn, 0},
		{"string tab size", KeyTabSize, "4"},
		{"unknown level", KeyLogLevel, "verbose"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := cfg.SetFlag(tt.key, tt.value); !errors.Is(err, ErrValidationFailed) {
				t.Errorf("SetFlag error = %v, want ErrValidationFailed", err)
			}
		})
	}

	if err := cfg.SetFlag("", 1); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("SetFlag(\"\") error = %v, want ErrInvalidPath", err)
	}
}

func TestSetFlagNotifies(t *testing.T) {
	cfg := New(WithEnvLookup(noEnv))
	defer cfg.Close()

	var changes []notify.Change
	sub := cfg.SubscribePath("vhdlCommentAligner", func(c notify.Change) {
		changes = append(changes, c)
	})
	defer sub.Unsubscribe()

	for _, set := range []struct {
		key   string
		value any
	}{
		{KeyCommentColumn, 40},
		{KeyCommentColumn, 40},
		{KeyTabSize, 2},
	} {
		if err := cfg.SetFlag(set.key, set.value); err != nil {
			t.Fatalf("SetFlag: %v", err)
		}
	}

	if len(changes) != 1 {
		t.Fatalf("got %d changes, want 1: %+v", len(changes), changes)
	}
	c := changes[0]
	if c.Path != KeyCommentColumn || c.NewValue != 40 || c.Source != LayerFlags {
		t.Errorf("change = %+v", c)
	}
}

func TestSetSetting(t *testing.T) {
	dir := t.TempDir()
	settings := writeFile(t, dir, "settings.json", `{
	"editor.tabSize": 2
}`)
	cfg := New(WithSettingsFile(settings), WithEnvLookup(noEnv))
	if err := cfg.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer cfg.Close()

	var changed []string
	cfg.Subscribe(func(c notify.Change) {
		if c.Type == notify.ChangeSet {
			changed = append(changed, c.Path)
		}
	})

	if err := cfg.SetSetting(KeyCommentColumn, 72); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	if got := cfg.GetInt(KeyCommentColumn, 0); got != 72 {
		t.Errorf("commentColumn = %d, want 72", got)
	}
	if got := cfg.GetInt(KeyTabSize, 0); got != 2 {
		t.Errorf("tabSize = %d, want 2 preserved", got)
	}
	if len(changed) != 1 || changed[0] != KeyCommentColumn {
		t.Errorf("changed = %v, want [%s]", changed, KeyCommentColumn)
	}

	data, err := os.ReadFile(settings)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"vhdlCommentAligner.commentColumn"`) {
		t.Errorf("settings.json not updated:\n%s", data)
	}
}

func TestSetSettingWithoutFile(t *testing.T) {
	cfg := New(WithEnvLookup(noEnv))
	if err := cfg.SetSetting(KeyCommentColumn, 50); !errors.Is(err, ErrNoSettingsFile) {
		t.Errorf("SetSetting error = %v, want ErrNoSettingsFile", err)
	}
}

func TestReloadRemovedFile(t *testing.T) {
	dir := t.TempDir()
	toml := writeFile(t, dir, "vhdlalign.toml", "[editor]\ntabSize = 2\n")
	cfg := New(WithConfigFile(toml), WithEnvLookup(noEnv))
	if err := cfg.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer cfg.Close()

	var reloaded string
	cfg.Subscribe(func(c notify.Change) {
		if c.Type == notify.ChangeReload {
			reloaded = c.Source
		}
	})

	if err := os.Remove(toml); err != nil {
		t.Fatal(err)
	}
	if err := cfg.Reload(toml); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if got := cfg.GetInt(KeyTabSize, 0); got != 4 {
		t.Errorf("tabSize = %d after removal, want default 4", got)
	}
	if reloaded != toml {
		t.Errorf("reload source = %q, want %q", reloaded, toml)
	}
}

func TestReloadIgnoresOtherFiles(t *testing.T) {
	cfg := New(WithEnvLookup(noEnv))
	if err := cfg.Reload("/tmp/unrelated.toml"); err != nil {
		t.Errorf("Reload(unrelated) = %v, want nil", err)
	}
}

func TestWatcherReloadsSettings(t *testing.T) {
	dir := t.TempDir()
	settings := writeFile(t, dir, "settings.json", `{"vhdlCommentAligner.commentColumn": 60}`)
	cfg := New(WithSettingsFile(settings), WithEnvLookup(noEnv), WithWatcher(true))
	if err := cfg.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer cfg.Close()

	changes := make(chan notify.Change, 4)
	cfg.SubscribePath(KeyCommentColumn, func(c notify.Change) { changes <- c })

	writeFile(t, dir, "settings.json", `{"vhdlCommentAligner.commentColumn": 72}`)

	select {
	case c := <-changes:
		if c.Source != settings {
			t.Errorf("source = %q, want %q", c.Source, settings)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change after editing settings.json")
	}
	if got := cfg.GetInt(KeyCommentColumn, 0); got != 72 {
		t.Errorf("commentColumn = %d, want 72", got)
	}
}
