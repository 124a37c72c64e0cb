package models

import "fmt"

// ValidationError reports a malformed request body. It is raised before any
// provider call is made.
type ValidationError struct {
	Message string
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string { return e.Message }

// ProviderError wraps any failure of the market data provider: network errors,
// unknown symbols, empty result sets, upstream rate limits.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err == nil {
		return e.Provider + ": unknown provider error"
	}
	return e.Err.Error()
}

func (e *ProviderError) Unwrap() error { return e.Err }

// TransformError reports a provider table that cannot be reshaped.
type TransformError struct {
	Reason string
}

func (e *TransformError) Error() string { return "reshape failed: " + e.Reason }
