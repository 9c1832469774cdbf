package sample

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceNotFound indicates the table could not be opened.
	ErrSourceNotFound = errors.New("sample: source not found")

	// ErrParse indicates a token that is not a decimal number.
	ErrParse = errors.New("sample: malformed numeric token")

	// ErrShape indicates a row with fewer fields than the column mapping needs.
	ErrShape = errors.New("sample: row too short")
)

// SourceError reports a table that could not be opened.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrSourceNotFound, e.Path, e.Err)
}

func (e *SourceError) Unwrap() []error {
	return []error{ErrSourceNotFound, e.Err}
}

// ParseError locates a bad token. Line and Column are 1-based; the header
// is line 1.
type ParseError struct {
	Line   int
	Column int
	Token  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: line %d, field %d: %q", ErrParse, e.Line, e.Column, e.Token)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}

// ShapeError reports a row with fewer fields than the reader needs.
type ShapeError struct {
	Line   int
	Fields int
	Want   int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%v: line %d has %d fields, want at least %d", ErrShape, e.Line, e.Fields, e.Want)
}

func (e *ShapeError) Unwrap() error {
	return ErrShape
}
