package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrUnknownPattern = errors.New("unknown bass pattern")
	ErrNotFound       = errors.New("not found")
)

// ConfigError reports a bad parameter before any processing starts.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
	Cause  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return ErrInvalidConfig
}

// Is lets every ConfigError match ErrInvalidConfig, including the ones whose Cause is
// a more specific sentinel.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

func NewConfigError(field string, value any, reason string) *ConfigError {
	return &ConfigError{Field: field, Value: value, Reason: reason}
}

func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}
