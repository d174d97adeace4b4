package rules

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument reports a call made with input outside the engine's
	// contract, such as a neighborhood of the wrong length.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrFormat matches every *FormatError via errors.Is.
	ErrFormat = errors.New("malformed rule text")
	// ErrShadowed is returned by Trie.Insert when a shorter pattern already
	// terminates on the new pattern's path.
	ErrShadowed = errors.New("pattern shadowed by existing rule")
)

// FormatError describes why serialized rule text could not be decoded.
type FormatError struct {
	Field  string
	Input  string
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Field, e.Reason)
	if e.Input != "" {
		msg = fmt.Sprintf("%s: %q: %s", e.Field, e.Input, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return "malformed rule text: " + msg
}

func (e *FormatError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrFormat) match any FormatError.
func (e *FormatError) Is(target error) bool { return target == ErrFormat }

func formatErr(field, input, reason string) *FormatError {
	return &FormatError{Field: field, Input: input, Reason: reason}
}
