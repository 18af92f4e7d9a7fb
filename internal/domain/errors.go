package domain

import (
	"errors"
	"fmt"
)

var (
	ErrLLMUnavailable = errors.New("LLM not available")
	ErrLLMInvocation  = errors.New("LLM error")
	ErrInvalidRequest = errors.New("invalid request")
)

// ExtractionError reports why an extraction could not produce a result.
// Kind is ErrLLMUnavailable or ErrLLMInvocation; both Kind and Cause match
// through errors.Is.
type ExtractionError struct {
	Kind  error
	Cause error
}

// NewUnavailableError wraps the model initialization failure.
func NewUnavailableError(cause error) *ExtractionError {
	return &ExtractionError{Kind: ErrLLMUnavailable, Cause: cause}
}

// NewInvocationError wraps a failed model call.
func NewInvocationError(cause error) *ExtractionError {
	return &ExtractionError{Kind: ErrLLMInvocation, Cause: cause}
}

func (e *ExtractionError) Error() string {
	if e.Cause == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
}

func (e *ExtractionError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}
