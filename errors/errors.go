// Package errors provides error handling for the fontconfig build and test tools.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for users of the command line tools
//   - Marking errors so they match a sentinel with errors.Is
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "set builddir to the meson build directory")
//
//	// Check errors
//	if errors.Is(err, errors.ErrUnknownObject) {
//	    // handle undeclared object
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Assertions
var AssertionFailedf = crdb.AssertionFailedf

// Sentinel errors shared by the generator and the harness.
// Use these with errors.Is(); wrap or mark them to add context.
var (
	// ErrFileNotFound indicates an input file does not exist
	ErrFileNotFound = New("file not found")

	// ErrMalformedRecord indicates a list file line with too few fields
	ErrMalformedRecord = New("malformed record")

	// ErrUnknownObject indicates a constant refers to an undeclared object
	ErrUnknownObject = New("unknown object")

	// ErrDuplicateObject indicates an object is declared more than once
	ErrDuplicateObject = New("duplicate object")

	// ErrToolUnavailable indicates a fontconfig binary was not built or cannot be run
	ErrToolUnavailable = New("tool unavailable")

	// ErrFontUnavailable indicates a font required by a test is missing
	ErrFontUnavailable = New("font unavailable")

	// ErrSandboxUnavailable indicates bwrap is not installed
	ErrSandboxUnavailable = New("sandbox unavailable")
)

// MalformedRecordError reports a list file line that does not carry
// a name, an object and a value.
type MalformedRecordError struct {
	File   string
	Line   int
	Fields int
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("%s:%d: malformed record: want 3 fields (name object value), got %d",
		e.File, e.Line, e.Fields)
}

// Is makes errors.Is(err, ErrMalformedRecord) hold for every MalformedRecordError.
func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

// NewMalformedRecord creates a MalformedRecordError with a stack trace attached.
func NewMalformedRecord(file string, line, fields int) error {
	return WithStack(&MalformedRecordError{File: file, Line: line, Fields: fields})
}

// IsNotFoundError checks if an error is or wraps ErrFileNotFound.
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrFileNotFound)
}

// IsUnavailableError reports whether err means a prerequisite (tool, font or
// sandbox) is missing. Tests skip on these instead of failing.
func IsUnavailableError(err error) bool {
	return err != nil && IsAny(err, ErrToolUnavailable, ErrFontUnavailable, ErrSandboxUnavailable)
}

// WrapNotFound marks err as a file-not-found error and adds the path as context
func WrapNotFound(err error, path string) error {
	return Mark(Wrapf(err, "open %s", path), ErrFileNotFound)
}

// NewUnknownObjectError creates an unknown-object error with a formatted message
func NewUnknownObjectError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrUnknownObject)
}

// NewUnavailableError marks a formatted error with one of the unavailability sentinels
func NewUnavailableError(sentinel error, format string, args ...interface{}) error {
	return Mark(Newf(format, args...), sentinel)
}
