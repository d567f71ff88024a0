package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so callers can decide whether a run can go on.
type ErrorKind string

const (
	// KindLoad: a desired-state document is unreadable or malformed. Fatal for one domain.
	KindLoad ErrorKind = "LOAD"
	// KindResolution: the profile could not be resolved. Fatal for the whole run.
	KindResolution ErrorKind = "RESOLUTION"
	// KindInspection: the live state of a resource could not be read.
	KindInspection ErrorKind = "INSPECTION"
	// KindApply: a mutation failed.
	KindApply ErrorKind = "APPLY"
)

// Error is a classified error carrying the operation that failed.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("[%s] %s", e.Kind, e.Op)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, &Error{Kind: KindLoad}) works.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Op == "" && t.Err == nil && e.Kind == t.Kind
	}
	return false
}

func newError(kind ErrorKind, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: fmt.Sprintf(format, args...), Err: err}
}

func LoadError(err error, format string, args ...any) error {
	return newError(KindLoad, err, format, args...)
}

func ResolutionError(err error, format string, args ...any) error {
	return newError(KindResolution, err, format, args...)
}

func InspectionError(err error, format string, args ...any) error {
	return newError(KindInspection, err, format, args...)
}

func ApplyError(err error, format string, args ...any) error {
	return newError(KindApply, err, format, args...)
}

// IsKind reports whether err, or anything it wraps, is an *Error of kind.
func IsKind(err error, kind ErrorKind) bool {
	return errors.Is(err, &Error{Kind: kind})
}
