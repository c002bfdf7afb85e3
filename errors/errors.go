// Package errors defines the error taxonomy shared by the mesh, predicate
// and voronoi packages, and by the top-level Delaunay facade.
package errors

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Kind classifies why an operation failed, per the engine's error design.
type Kind int

const (
	// InvalidInput covers malformed geometry: too few points, duplicate
	// segment references, unknown vertex indices, hole markers outside
	// any triangle, and similar configuration mistakes.
	InvalidInput Kind = iota
	// ConstraintOutOfRange covers a minimum angle requested beyond the
	// provably-terminating threshold under strict acceptance.
	ConstraintOutOfRange
	// StateViolation covers querying the mesh in the wrong lifecycle
	// state (before triangulation, Voronoi query without tessellation,
	// use of an iterator invalidated by a later mutation).
	StateViolation
	// NumericFailure covers predicate overflow or refinement producing
	// sub-ULP triangles, indicating the angle bound was too aggressive.
	NumericFailure
	// IOError covers failures writing the optional Geomview OFF export.
	IOError
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "InvalidInput"
	case ConstraintOutOfRange:
		return "ConstraintOutOfRange"
	case StateViolation:
		return "StateViolation"
	case NumericFailure:
		return "NumericFailure"
	case IOError:
		return "IOError"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned by this module. It carries a
// Kind so callers can branch on failure category with errors.As, and wraps
// a cause (built with github.com/pkg/errors so the wrap keeps a stack
// trace) describing what actually went wrong.
type Error struct {
	Kind  Kind
	cause error
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.cause)
}

func (e *Error) Unwrap() error { return e.cause }

// New builds a Kind-tagged error from a message, with a stack trace attached.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, cause: pkgerrors.New(msg)}
}

// Newf builds a Kind-tagged error from a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, cause: pkgerrors.Errorf(format, args...)}
}

// Wrap attaches a Kind to an existing error, preserving its stack trace if
// it already has one (via github.com/pkg/errors.Wrap semantics).
func Wrap(kind Kind, err error, msg string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, cause: pkgerrors.Wrap(err, msg)}
}

// Is reports whether err is an *Error of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if !pkgerrors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
