// Package errors provides error handling for stubgen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Safe formatting of reflection failures coming back over the bridge
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
//	// Check errors
//	if errors.Is(err, errors.ErrTypeLoad) {
//	    // skip this class and continue
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	Mark         = crdb.Mark
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
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
	Is            = crdb.Is
	IsAny         = crdb.IsAny
	As            = crdb.As
	Unwrap        = crdb.Unwrap
	UnwrapOnce    = crdb.UnwrapOnce
	UnwrapAll     = crdb.UnwrapAll
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors for the reflection bridge and generation pipeline.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrTypeLoad indicates a Java class (or one of its dependencies)
	// failed to load on the JVM side. Recoverable: the class is skipped
	// and generation continues.
	ErrTypeLoad = New("type load failure")

	// ErrNoSuchMember indicates a package or class member lookup missed.
	// Recoverable: an empty placeholder stub may be generated instead.
	ErrNoSuchMember = New("no such member")

	// ErrSession indicates the reflection session itself is unusable
	// (agent died, root package enumeration failed). Fatal for the run.
	ErrSession = New("reflection session failure")
)

// IsTypeLoadError checks if an error is or wraps ErrTypeLoad.
func IsTypeLoadError(err error) bool {
	return err != nil && Is(err, ErrTypeLoad)
}

// IsNoSuchMemberError checks if an error is or wraps ErrNoSuchMember.
func IsNoSuchMemberError(err error) bool {
	return err != nil && Is(err, ErrNoSuchMember)
}

// WrapTypeLoad wraps an error as a type-load failure with context.
func WrapTypeLoad(err error, context string) error {
	return Wrap(Wrap(ErrTypeLoad, err.Error()), context)
}

// NewTypeLoadError creates a type-load failure with a formatted message.
func NewTypeLoadError(format string, args ...interface{}) error {
	return Wrap(ErrTypeLoad, Newf(format, args...).Error())
}
