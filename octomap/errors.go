package octomap

import (
	"fmt"

	"github.com/pkg/errors"
)

type ErrorKind int

const (
	// SchemaMismatch means two structs disagree on their field sets.
	SchemaMismatch ErrorKind = iota + 1
	// TypeMismatch means two types have incompatible shapes.
	TypeMismatch
	// ConversionException means a concrete value can't be cast to a type.
	ConversionException
)

func (k ErrorKind) String() string {
	switch k {
	case SchemaMismatch:
		return "Schema Mismatch"
	case TypeMismatch:
		return "Type Mismatch"
	case ConversionException:
		return "Conversion Error"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error carries the failing source and target types, so callers can report them.
type Error struct {
	Kind   ErrorKind
	Source Type
	Target Type
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	switch e.Kind {
	case ConversionException:
		return fmt.Sprintf("%s: Unimplemented type for cast (%s -> %s)", e.Kind, e.Source, e.Target)
	default:
		return fmt.Sprintf("%s: cannot unify %s with %s", e.Kind, e.Source, e.Target)
	}
}

func NewSchemaMismatch(source, target Type) error {
	return errors.WithStack(&Error{Kind: SchemaMismatch, Source: source, Target: target})
}

func NewTypeMismatch(source, target Type) error {
	return errors.WithStack(&Error{Kind: TypeMismatch, Source: source, Target: target})
}

// NewUnimplementedCast reports a cast path that doesn't exist at all.
func NewUnimplementedCast(source, target Type) error {
	return errors.WithStack(&Error{Kind: ConversionException, Source: source, Target: target})
}

// NewConversionError reports a cast path that exists but failed for this value.
func NewConversionError(source, target Type, format string, args ...interface{}) error {
	return errors.WithStack(&Error{
		Kind:   ConversionException,
		Source: source,
		Target: target,
		Detail: fmt.Sprintf(format, args...),
	})
}

// AsError unwraps err down to an *Error, if there is one.
func AsError(err error) (*Error, bool) {
	var out *Error
	if errors.As(err, &out) {
		return out, true
	}
	return nil, false
}

func IsKind(err error, kind ErrorKind) bool {
	e, ok := AsError(err)
	return ok && e.Kind == kind
}
