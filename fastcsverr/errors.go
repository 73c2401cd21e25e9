// Package fastcsverr defines the shared error kinds used across the
// module: InvalidEncoding, ParsingError, KeyNotFound, TypeMismatch,
// UnsupportedType, and InvalidValue (spec.md §7).
//
// Grounded on pkg/csv/errors.go's ParseError{StartLine, Line, Column,
// Err} + Unwrap() + sentinel-error pattern — independently confirmed in
// the retrieval pack by _examples/nnnkkk7-go-simdcsv/errors.go, which
// converges on the identical shape (sentinel errors.New values plus a
// positional wrapper type implementing Error()/Unwrap()).
package fastcsverr

import (
	"errors"
	"fmt"
)

// ErrInvalidEncoding indicates the source bytes could not be decoded
// under the declared or detected encoding.
var ErrInvalidEncoding = errors.New("fastcsverr: invalid encoding")

// Location pinpoints a decode/parse error: a 1-based row number, the
// column/header name, and (for nested decodes) the traversal path, e.g.
// "addr.street".
type Location struct {
	Row    int
	Column string
	Path   string
}

func (l Location) String() string {
	if l.Path != "" {
		return fmt.Sprintf("row %d, column %q (path %s)", l.Row, l.Column, l.Path)
	}
	return fmt.Sprintf("row %d, column %q", l.Row, l.Column)
}

// ParsingError represents a byte-parser error with 1-based line/column
// position. Mirrors pkg/csv/errors.go's ParseError.
type ParsingError struct {
	StartLine int
	Line      int
	Column    int
	Err       error
}

func (e *ParsingError) Error() string {
	if e.StartLine == e.Line {
		return fmt.Sprintf("parse error on line %d, column %d: %v", e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("parse error on line %d (started line %d), column %d: %v",
		e.Line, e.StartLine, e.Column, e.Err)
}

func (e *ParsingError) Unwrap() error { return e.Err }

// KeyNotFound reports a missing header/column, with a "did you mean"
// suggestion when a close match exists among the available keys.
type KeyNotFound struct {
	Key           string
	Location      Location
	AvailableKeys []string
}

func (e *KeyNotFound) Error() string {
	msg := fmt.Sprintf("key %q not found at %s", e.Key, e.Location)
	if suggestion, caseOnly := Suggest(e.Key, e.AvailableKeys); suggestion != "" {
		if caseOnly {
			msg += fmt.Sprintf(" (case differs: %q)", suggestion)
		} else {
			msg += fmt.Sprintf(" (did you mean %q?)", suggestion)
		}
	}
	return msg
}

// TypeMismatch reports that a field's value could not be converted to
// the expected type, with an optional targeted hint.
type TypeMismatch struct {
	Expected string
	Actual   string
	Location Location
	Hint     string
}

func (e *TypeMismatch) Error() string {
	msg := fmt.Sprintf("type mismatch at %s: expected %s, got %q", e.Location, e.Expected, e.Actual)
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return msg
}

// UnsupportedType reports that a destination Go type has no known
// decoding/encoding strategy.
type UnsupportedType struct {
	Type     string
	Location Location
}

func (e *UnsupportedType) Error() string {
	return fmt.Sprintf("unsupported type %s at %s", e.Type, e.Location)
}

// InvalidValue reports a value that is structurally well-formed but
// semantically invalid for output (e.g. NaN/Infinity in a numeric field).
type InvalidValue struct {
	Value    string
	Reason   string
	Location Location
}

func (e *InvalidValue) Error() string {
	return fmt.Sprintf("invalid value %q at %s: %s", e.Value, e.Location, e.Reason)
}
