package loader

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// SettingsLoader loads an editor settings.json file.
//
// Top-level keys are dotted setting names ("editor.tabSize"). A
// "[language]" block overrides them for that language.
type SettingsLoader struct {
	fs       FileSystem
	path     string
	language string
}

// NewSettingsLoader creates a loader for the settings file at path that
// applies the override block for language, if any.
func NewSettingsLoader(path, language string) *SettingsLoader {
	return NewSettingsLoaderWithFS(DefaultFS(), path, language)
}

// NewSettingsLoaderWithFS creates a settings loader with a custom file system.
func NewSettingsLoaderWithFS(fs FileSystem, path, language string) *SettingsLoader {
	return &SettingsLoader{fs: fs, path: path, language: language}
}

// Load reads the settings file.
func (l *SettingsLoader) Load() (map[string]any, error) {
	data, err := readOptional(l.fs, l.path)
	if err != nil || data == nil {
		return nil, err
	}
	return ParseSettings(l.path, data, l.language)
}

// ParseSettings converts settings.json content into a nested map.
func ParseSettings(source string, data []byte, language string) (map[string]any, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Path: source, Message: "invalid JSON"}
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, &ParseError{Path: source, Message: "settings must be a JSON object"}
	}

	config := make(map[string]any)
	var override gjson.Result
	root.ForEach(func(k, v gjson.Result) bool {
		name := k.String()
		if strings.HasPrefix(name, "[") && strings.HasSuffix(name, "]") {
			if strings.EqualFold(name[1:len(name)-1], language) {
				override = v
			}
			return true
		}
		setPath(config, name, jsonValue(v))
		return true
	})

	if override.IsObject() {
		override.ForEach(func(k, v gjson.Result) bool {
			setPath(config, k.String(), jsonValue(v))
			return true
		})
	}
	return config, nil
}

// jsonValue converts a gjson value, keeping whole numbers integral.
func jsonValue(v gjson.Result) any {
	if v.Type == gjson.Number {
		if f := v.Float(); f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return v.Int()
		}
		return v.Float()
	}
	return v.Value()
}

// WriteSetting sets key to value in the settings.json file at path,
// creating the file if needed. Other content is preserved.
func WriteSetting(path, key string, value any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("reading settings %s: %w", path, err)
		}
		data = []byte("{}")
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		data = []byte("{}")
	}
	if !gjson.ValidBytes(data) {
		return &ParseError{Path: path, Message: "invalid JSON"}
	}

	out, err := sjson.SetBytes(data, escapeKey(key), value)
	if err != nil {
		return fmt.Errorf("updating %s in %s: %w", key, path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".settings-*.json")
	if err != nil {
		return fmt.Errorf("writing settings %s: %w", path, err)
	}
	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing settings %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing settings %s: %w", path, err)
	}
	return os.Rename(tmp.Name(), path)
}

// escapeKey makes a dotted setting name a single sjson path component.
func escapeKey(key string) string {
	r := strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`)
	return r.Replace(key)
}

// setPath sets a value in a nested map using a dot-separated path.
func setPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
