package ir

import (
	"errors"
	"fmt"
)

// Sentinel errors for the five failure kinds. Typed errors below wrap
// these, so callers can branch with errors.Is and recover details with
// errors.As.
var (
	ErrEmptyContent      = errors.New("empty content")
	ErrSyntax            = errors.New("syntax error")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrSerialization     = errors.New("serialization error")
	ErrPathNotFound      = errors.New("path not found")
)

// SyntaxError reports malformed input. Line and Col are 1-based when the
// underlying decoder exposes a position, 0 otherwise. Err holds the
// decoder's error when one exists.
type SyntaxError struct {
	Msg  string
	Line int
	Col  int
	Err  error
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%v: %s at line %d, column %d", ErrSyntax, e.Msg, e.Line, e.Col)
	}
	return fmt.Sprintf("%v: %s", ErrSyntax, e.Msg)
}

func (e *SyntaxError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrSyntax, e.Err}
	}
	return []error{ErrSyntax}
}

// UnsupportedFormatError reports a registry lookup with an unknown key.
type UnsupportedFormatError struct {
	Key string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUnsupportedFormat, e.Key)
}

func (e *UnsupportedFormatError) Unwrap() error {
	return ErrUnsupportedFormat
}

// SerializationError reports a tree that cannot be rendered, such as one
// holding a non-finite number.
type SerializationError struct {
	Msg string
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("%v: %s", ErrSerialization, e.Msg)
}

func (e *SerializationError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrSerialization, e.Err}
	}
	return []error{ErrSerialization}
}

// PathNotFoundError reports a path that does not resolve to a settable
// location in a tree.
type PathNotFoundError struct {
	Path string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("%v: %q", ErrPathNotFound, e.Path)
}

func (e *PathNotFoundError) Unwrap() error {
	return ErrPathNotFound
}
