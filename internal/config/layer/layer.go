// Package layer merges configuration sources by priority.
//
// Each Layer holds a nested map of settings. Higher priority layers override
// lower ones key by key; nested maps merge recursively.
package layer

import (
	"errors"
	"fmt"
)

// ErrLayerNotFound is returned when a named layer does not exist.
var ErrLayerNotFound = errors.New("layer not found")

// Source indicates where a configuration layer came from.
type Source uint8

const (
	// SourceDefaults represents built-in default values.
	SourceDefaults Source = iota
	// SourceFile represents the TOML configuration file.
	SourceFile
	// SourceSettings represents an editor settings.json file.
	SourceSettings
	// SourceEnv represents environment variables.
	SourceEnv
	// SourceFlags represents command-line flags.
	SourceFlags
)

// String returns a human-readable name for the source.
func (s Source) String() string {
	switch s {
	case SourceDefaults:
		return "defaults"
	case SourceFile:
		return "file"
	case SourceSettings:
		return "settings"
	case SourceEnv:
		return "environment"
	case SourceFlags:
		return "flags"
	default:
		return "unknown"
	}
}

// Priority returns the merge priority of the source.
// Higher values override lower values.
func (s Source) Priority() int {
	return int(s) * 100
}

// Layer represents a single configuration layer.
type Layer struct {
	// Name identifies the layer.
	Name string

	// Source indicates where this layer was loaded from.
	Source Source

	// Priority determines merge order (higher overrides lower).
	Priority int

	// Path is the file path, if loaded from a file.
	Path string

	// Data holds the configuration values as a nested map.
	Data map[string]any
}

// New creates a layer at the source's standard priority.
func New(name string, source Source, data map[string]any) *Layer {
	if data == nil {
		data = make(map[string]any)
	}
	return &Layer{
		Name:     name,
		Source:   source,
		Priority: source.Priority(),
		Data:     data,
	}
}

// FromFile creates a layer remembering the file it was read from.
func FromFile(name string, source Source, path string, data map[string]any) *Layer {
	l := New(name, source, data)
	l.Path = path
	return l
}

// String describes the layer for error messages.
func (l *Layer) String() string {
	if l.Path != "" {
		return fmt.Sprintf("%s (%s)", l.Name, l.Path)
	}
	return l.Name
}

// cloneMap creates a deep copy of a map.
func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for key, val := range src {
		dst[key] = cloneValue(val)
	}
	return dst
}

// cloneValue creates a deep copy of a value.
func cloneValue(val any) any {
	switch v := val.(type) {
	case map[string]any:
		return cloneMap(v)
	case []any:
		dst := make([]any, len(v))
		for i, item := range v {
			dst[i] = cloneValue(item)
		}
		return dst
	default:
		return val
	}
}
