package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/dshills/vhdlalign/internal/config/layer"
)

// Setting keys.
const (
	KeyCommentColumn = "vhdlCommentAligner.commentColumn"
	KeyTabStop       = "vhdlCommentAligner.tabStop"
	KeyTabSize       = "editor.tabSize"
	KeyInsertSpaces  = "editor.insertSpaces"
	KeyLogLevel      = "logging.level"
	KeyLogFile       = "logging.file"
)

// Kind is the value type of a setting.
type Kind int

const (
	KindInt Kind = iota
	KindBool
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	default:
		return "string"
	}
}

// Setting describes a known setting.
type Setting struct {
	Key         string
	Kind        Kind
	Default     any
	Min         int      // KindInt only
	OneOf       []string // KindString only
	Description string
}

// Settings lists the known settings. Unknown keys are carried through
// unvalidated.
var Settings = []Setting{
	{Key: KeyCommentColumn, Kind: KindInt, Default: 95, Min: 1,
		Description: "1-based column trailing comments are aligned to"},
	{Key: KeyTabStop, Kind: KindInt, Default: 100, Min: 1,
		Description: "Older name for the comment column, used when commentColumn is unset"},
	{Key: KeyTabSize, Kind: KindInt, Default: 4, Min: 1,
		Description: "Width of a tab stop"},
	{Key: KeyInsertSpaces, Kind: KindBool, Default: true,
		Description: "Insert spaces when Tab is pressed"},
	{Key: KeyLogLevel, Kind: KindString, Default: "info", OneOf: []string{"debug", "info", "warn", "error"},
		Description: "Minimum log level"},
	{Key: KeyLogFile, Kind: KindString, Default: "",
		Description: "Log file path; empty logs to stderr"},
}

// Lookup returns the description of a known setting.
func Lookup(key string) (Setting, bool) {
	for _, s := range Settings {
		if s.Key == key {
			return s, true
		}
	}
	return Setting{}, false
}

// defaults returns the built-in layer data.
func defaults() map[string]any {
	data := make(map[string]any)
	for _, s := range Settings {
		layer.SetByPath(data, s.Key, s.Default)
	}
	return data
}

// Validate checks value against the setting at key.
// Unknown keys always pass.
func Validate(key string, value any) error {
	s, ok := Lookup(key)
	if !ok {
		return nil
	}

	fail := func(format string, args ...any) error {
		return &ValidationError{Path: key, Value: value, Message: fmt.Sprintf(format, args...)}
	}

	switch s.Kind {
	case KindInt:
		n, ok := toInt(value)
		if !ok {
			return fail("expected an integer")
		}
		if n < s.Min {
			return fail("must be at least %d", s.Min)
		}
	case KindBool:
		if _, ok := value.(bool); !ok {
			return fail("expected true or false")
		}
	case KindString:
		str, ok := value.(string)
		if !ok {
			return fail("expected a string")
		}
		if len(s.OneOf) > 0 && !contains(s.OneOf, strings.ToLower(str)) {
			return fail("must be one of %s", strings.Join(s.OneOf, ", "))
		}
	}
	return nil
}

// validateLayer checks every known setting present in l.
func validateLayer(l *layer.Layer) []error {
	var errs []error
	for _, s := range Settings {
		v, ok := layer.GetByPath(l.Data, s.Key)
		if !ok {
			continue
		}
		if err := Validate(s.Key, v); err != nil {
			if verr, ok := err.(*ValidationError); ok {
				verr.Source = l.String()
			}
			errs = append(errs, err)
		}
	}
	return errs
}

// toInt converts the numeric types loaders produce.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// typeName returns the type name for error messages.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case string:
		return "string"
	case int, int64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case map[string]any:
		return "map"
	default:
		return fmt.Sprintf("%T", v)
	}
}
