package loader

import (
	"os"
	"strconv"
	"strings"
)

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	mapping map[string]string // Env var -> config path
	lookup  func(string) (string, bool)
}

// NewEnvLoader creates a loader with the default variable mapping.
func NewEnvLoader() *EnvLoader {
	return NewEnvLoaderWithMapping(DefaultEnvMapping())
}

// NewEnvLoaderWithMapping creates a loader with custom environment variable mappings.
func NewEnvLoaderWithMapping(mapping map[string]string) *EnvLoader {
	return &EnvLoader{
		mapping: mapping,
		lookup:  os.LookupEnv,
	}
}

// WithLookup replaces the environment lookup, for tests and embedding.
func (l *EnvLoader) WithLookup(fn func(string) (string, bool)) *EnvLoader {
	if fn != nil {
		l.lookup = fn
	}
	return l
}

// DefaultEnvMapping returns the environment variables read by default.
func DefaultEnvMapping() map[string]string {
	return map[string]string{
		"VHDLALIGN_COMMENT_COLUMN": "vhdlCommentAligner.commentColumn",
		"VHDLALIGN_TAB_SIZE":       "editor.tabSize",
		"VHDLALIGN_INSERT_SPACES":  "editor.insertSpaces",
		"VHDLALIGN_LOG_LEVEL":      "logging.level",
	}
}

// Load reads the mapped environment variables.
// Empty values are treated as unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	for env, path := range l.mapping {
		if val, ok := l.lookup(env); ok && val != "" {
			setPath(config, path, parseValue(val))
		}
	}
	return config, nil
}

// parseValue converts an environment string into a bool, int or string.
func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	return s
}
