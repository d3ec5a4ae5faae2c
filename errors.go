package entitylib

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/reglet-dev/reglet-entities/validation"
)

var (
	// ErrInvalidDocument is returned when an encoded registry fails schema validation.
	ErrInvalidDocument = errors.New("document failed schema validation")

	// ErrNoLock is returned by Check when no lock has been written yet.
	ErrNoLock = errors.New("no extraction lock")

	// ErrNoSink is returned by Run when the pipeline has no output sink.
	ErrNoSink = errors.New("no output sink configured")
)

// InvalidDocumentError lists the schema violations of an encoded registry.
type InvalidDocumentError struct {
	Issues []validation.ValidationIssue
}

func (e *InvalidDocumentError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Path, issue.Message))
	}
	return fmt.Sprintf("document failed schema validation: %s", strings.Join(parts, "; "))
}

// Is implements error matching for errors.Is() checks.
func (e *InvalidDocumentError) Is(target error) bool {
	return target == ErrInvalidDocument
}

// PanicError is a panic recovered while delivering a registry.
type PanicError struct {
	Value any
	Stack string
}

// NewPanicError captures the recovered value and the current stack.
func NewPanicError(r any) *PanicError {
	return &PanicError{Value: r, Stack: string(debug.Stack())}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic while writing registry: %v", e.Value)
}

// Unwrap exposes a panicked error value.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
