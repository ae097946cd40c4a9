package lsystem

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRule reports a weight table that does not partition [0,1].
	ErrMalformedRule = errors.New("malformed expansion rule")
	// ErrStackUnderflow reports a pop with an empty turtle history.
	ErrStackUnderflow = errors.New("turtle stack underflow")
	// ErrUnknownGeometry reports a transform request for an unregistered class.
	ErrUnknownGeometry = errors.New("unknown geometry class")
	// ErrGrammarTooLong reports an expansion pass that exceeded MaxLength.
	ErrGrammarTooLong = errors.New("expanded grammar exceeds length limit")
	// ErrInvalidIterations reports a negative iteration count.
	ErrInvalidIterations = errors.New("iteration count must not be negative")
	// ErrInvalidConfig reports a generator configuration that cannot run.
	ErrInvalidConfig = errors.New("invalid lsystem config")
)

// UnderflowError carries the symbol index of the unmatched ']'.
type UnderflowError struct {
	Position int
	Symbol   rune
}

func (e *UnderflowError) Error() string {
	return fmt.Sprintf("%v: unmatched %q at position %d", ErrStackUnderflow, e.Symbol, e.Position)
}

func (e *UnderflowError) Unwrap() error { return ErrStackUnderflow }
