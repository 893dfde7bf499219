package packedjson

import (
	"fmt"

	"github.com/pkg/errors"
)

// ParseError is returned by Parse when the input is not well-formed JSON.
// Line and Column are 1-based and computed from the byte offset at which
// scanning failed.
type ParseError struct {
	Message string
	Line    int
	Column  int
	cause   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("packedjson: parse error at %d:%d: %s", e.Line, e.Column, e.Message)
}

// Unwrap exposes the underlying stack-carrying cause so callers using
// errors.Is/errors.As can still reach it.
func (e *ParseError) Unwrap() error {
	return e.cause
}

func newParseError(message string, line, column int) *ParseError {
	return &ParseError{
		Message: message,
		Line:    line,
		Column:  column,
		cause:   errors.New(message),
	}
}

// PathError is returned by the Pointer Resolver and Mutation Engine when a
// required path segment is missing, an array index is out of range, or an
// ancestor-of rule is violated (copy/move).
type PathError struct {
	Pointer string
	Reason  string
	cause   error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("packedjson: path error at %q: %s", e.Pointer, e.Reason)
}

func (e *PathError) Unwrap() error {
	return e.cause
}

func newPathError(pointer, reason string) *PathError {
	return &PathError{
		Pointer: pointer,
		Reason:  reason,
		// WithStack rather than New: the reason text is often reused
		// verbatim across callers, so the stack is the useful part.
		cause: errors.WithStack(errors.New(reason)),
	}
}

// KindError is returned by typed accessors when a node's kind is
// incompatible with the requested read.
type KindError struct {
	Wanted Kind
	Got    Kind
}

func (e *KindError) Error() string {
	return fmt.Sprintf("packedjson: wanted kind %s, got %s", e.Wanted, e.Got)
}

func newKindError(wanted, got Kind) *KindError {
	return &KindError{Wanted: wanted, Got: got}
}
