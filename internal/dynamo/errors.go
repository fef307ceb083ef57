package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for configuration and model lookup.
var (
	// ErrInvalidConfig indicates a configuration value outside its valid range.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrUnknownModel indicates a field name with no registered constructor.
	ErrUnknownModel = errors.New("dynamo: unknown model")

	// ErrUnknownIntegrator indicates an integrator name with no registered constructor.
	ErrUnknownIntegrator = errors.New("dynamo: unknown integrator")
)

// FieldError wraps a configuration error with the offending field name.
type FieldError struct {
	Field   string
	Value   any
	Wrapped error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s=%v: %v", e.Field, e.Value, e.Wrapped)
}

func (e *FieldError) Unwrap() error {
	return e.Wrapped
}
