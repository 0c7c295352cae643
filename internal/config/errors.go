package config

import (
	"errors"
	"fmt"

	"github.com/dshills/vhdlalign/internal/config/loader"
)

// Errors returned by configuration operations.
var (
	// ErrSettingNotFound indicates the setting path doesn't exist.
	ErrSettingNotFound = errors.New("setting not found")

	// ErrValidationFailed indicates a value fails validation.
	ErrValidationFailed = errors.New("validation failed")

	// ErrInvalidPath indicates an invalid setting path format.
	ErrInvalidPath = errors.New("invalid setting path")

	// ErrNoSettingsFile indicates SetSetting was called without a settings file.
	ErrNoSettingsFile = errors.New("no settings file configured")
)

// ParseError represents an error while parsing a configuration file.
type ParseError = loader.ParseError

// TypeError indicates a setting holds a value of the wrong type.
type TypeError struct {
	Path     string
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	return fmt.Sprintf("setting %s: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

// ValidationError describes a validation failure for a setting.
type ValidationError struct {
	// Path is the setting path that failed validation.
	Path string
	// Value is the invalid value.
	Value any
	// Message describes the validation error.
	Message string
	// Source names the layer the value came from.
	Source string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("invalid %s = %v (from %s): %s", e.Path, e.Value, e.Source, e.Message)
	}
	return fmt.Sprintf("invalid %s = %v: %s", e.Path, e.Value, e.Message)
}

// Unwrap lets errors.Is match ErrValidationFailed.
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
