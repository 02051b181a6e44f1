package format

import (
	"errors"
	"fmt"
)

var (
	// ErrEmbeddedNUL indicates a string cell contained a zero byte, which the
	// NUL-terminated wire encoding cannot carry.
	ErrEmbeddedNUL = errors.New("format: string contains NUL byte")
	// ErrUnknownType indicates a header declared a type tag outside the
	// recognised set.
	ErrUnknownType = errors.New("format: unknown type")
)

// SchemaError reports a cell that could not be coerced to its declared type.
// The message carries the offending literal verbatim.
type SchemaError struct {
	Literal string
	Type    Type
}

func (e *SchemaError) Error() string {
	if e.Type == TypeArray {
		return fmt.Sprintf("Could not parse '%s' as an array", e.Literal)
	}
	return fmt.Sprintf("Could not parse '%s' as a %s", e.Literal, e.Type)
}

func schemaErr(literal string, t Type) error {
	return &SchemaError{Literal: literal, Type: t}
}
