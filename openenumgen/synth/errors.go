package synth

import (
	"fmt"

	"github.com/broady/openenum/openenumgen/ir"
)

// ErrorCode is a machine-readable synthesis failure category.
type ErrorCode string

const (
	// CodeInvalidBackingType: an explicit type name denotes a predeclared type.
	CodeInvalidBackingType ErrorCode = "invalid_backing_type"
	// CodeUnresolvableInterface: a capability interface could not be resolved.
	CodeUnresolvableInterface ErrorCode = "unresolvable_interface"
	CodeUnknownBackingType    ErrorCode = "unknown_backing_type"
	CodeInvalidLiteral        ErrorCode = "invalid_literal"
	CodeInvalidName           ErrorCode = "invalid_name"
	CodeCatalogFailure        ErrorCode = "catalog_failure"
)

// Sentinels for errors.Is. They match any *Error with the same code.
var (
	ErrInvalidBackingType    = &Error{Code: CodeInvalidBackingType}
	ErrUnresolvableInterface = &Error{Code: CodeUnresolvableInterface}
	ErrUnknownBackingType    = &Error{Code: CodeUnknownBackingType}
	ErrInvalidLiteral        = &Error{Code: CodeInvalidLiteral}
	ErrInvalidName           = &Error{Code: CodeInvalidName}
	ErrCatalogFailure        = &Error{Code: CodeCatalogFailure}
)

// Error is a fatal synthesis failure for one definition.
type Error struct {
	Code ErrorCode

	// Enum is the definition's name.
	Enum string

	// State is the synthesis state that failed.
	State State

	// Source is where the definition came from.
	Source ir.Source

	Message string

	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("enum %s: %s: %s", e.Enum, e.Code, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if loc := e.Source.String(); loc != "" {
		msg = loc + ": " + msg
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}
