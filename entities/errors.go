package entities

import (
	"errors"
	"fmt"

	"github.com/reglet-dev/reglet-entities/values"
)

// Sentinel errors for common error patterns.
// These allow both errors.Is() checks and errors.As() for detailed information.
var (
	// ErrUnsupportedValueKind is returned when a field's value kind is outside the closed set.
	ErrUnsupportedValueKind = errors.New("unsupported value kind")

	// ErrAttributeLookupFailed is returned when a default attribute lookup is malformed or fails.
	ErrAttributeLookupFailed = errors.New("attribute lookup failed")

	// ErrExtractionAborted is returned for any failure while walking the catalogue.
	ErrExtractionAborted = errors.New("extraction aborted")

	// ErrUnknownType is returned by catalogue sources for types they do not know.
	ErrUnknownType = errors.New("unknown declaring type")

	// ErrLockMismatch is returned when a freshly extracted document does not match its lock.
	ErrLockMismatch = errors.New("document does not match lock")
)

// UnsupportedValueKindError names the offending kind.
// Tag is set when the kind came from a wire tag that did not resolve.
type UnsupportedValueKindError struct {
	Kind values.Kind
	Tag  string
}

func (e *UnsupportedValueKindError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("unsupported value kind %q", e.Tag)
	}
	return fmt.Sprintf("unsupported value kind %s", e.Kind)
}

// Is implements error matching for errors.Is() checks.
// This allows: errors.Is(err, entities.ErrUnsupportedValueKind)
func (e *UnsupportedValueKindError) Is(target error) bool {
	return target == ErrUnsupportedValueKind
}

// ValueTypeError indicates a raw value whose Go type does not match its declared kind.
type ValueTypeError struct {
	Kind     values.Kind
	Expected string
	Got      any
}

func (e *ValueTypeError) Error() string {
	return fmt.Sprintf("value kind %s expects %s, got %T", e.Kind, e.Expected, e.Got)
}

// AttributeLookupError describes a failed or malformed default-attribute lookup.
type AttributeLookupError struct {
	Type   string
	Reason string
	Err    error
}

func (e *AttributeLookupError) Error() string {
	msg := fmt.Sprintf("attribute lookup failed for %s", e.Type)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is implements error matching for errors.Is() checks.
func (e *AttributeLookupError) Is(target error) bool {
	return target == ErrAttributeLookupFailed
}

func (e *AttributeLookupError) Unwrap() error {
	return e.Err
}

// ExtractionError wraps any failure raised while building the registry.
// Field and Index are set when the failure concerns a single replicated field.
type ExtractionError struct {
	DeclaringType TypeID
	Field         string
	Index         int
	Op            string
	Err           error
}

func (e *ExtractionError) Error() string {
	msg := "extraction aborted"
	if e.Op != "" {
		msg += ": " + e.Op
	}
	if e.DeclaringType != "" {
		msg += " " + string(e.DeclaringType)
	}
	if e.Field != "" {
		msg += fmt.Sprintf(" field %s (index %d)", e.Field, e.Index)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is implements error matching for errors.Is() checks.
// This allows: errors.Is(err, entities.ErrExtractionAborted)
func (e *ExtractionError) Is(target error) bool {
	return target == ErrExtractionAborted
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// LockMismatchError indicates a document digest that differs from the recorded one.
type LockMismatchError struct {
	Expected values.Digest
	Actual   values.Digest
}

func (e *LockMismatchError) Error() string {
	return fmt.Sprintf(
		"document does not match lock: expected %s, got %s",
		e.Expected.String(),
		e.Actual.String(),
	)
}

// Is implements error matching for errors.Is() checks.
func (e *LockMismatchError) Is(target error) bool {
	return target == ErrLockMismatch
}
