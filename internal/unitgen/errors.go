package unitgen

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrNoPattern            = errors.New("no naming pattern detected")
)

// FieldError reports a single rejected configuration field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// InvalidConfigurationError is returned before any generation work when the
// property configuration cannot be expanded.
type InvalidConfigurationError struct {
	Fields []FieldError
}

func (e *InvalidConfigurationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s %s", f.Field, f.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidConfiguration, strings.Join(parts, "; "))
}

func (e *InvalidConfigurationError) Unwrap() error {
	return ErrInvalidConfiguration
}
