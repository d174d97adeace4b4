package rules

import (
	"fmt"
	"strings"
)

// Outcome is the next-state decision for a cell. Alive, Dead and Same are the
// built-in categories; any other printable symbol is a custom outcome carried
// by an exact-pattern rule or used as the default.
type Outcome byte

const (
	Alive Outcome = 'a'
	Dead  Outcome = 'd'
	Same  Outcome = 's'
)

// Kind classifies an Outcome.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindAlive
	KindDead
	KindSame
	KindCustom
)

// reservedSymbols can never be outcomes: the neighborhood alphabet plus every
// delimiter used by the text encoding.
const reservedSymbols = "01|;,()."

// ValidSymbol reports whether b may be used as an outcome symbol.
func ValidSymbol(b byte) bool {
	return b > ' ' && b < 0x7f && strings.IndexByte(reservedSymbols, b) < 0
}

// ParseOutcome converts a single symbol into an Outcome.
func ParseOutcome(sym byte) (Outcome, error) {
	if !ValidSymbol(sym) {
		return 0, fmt.Errorf("%w: %q is not a usable outcome symbol", ErrInvalidArgument, sym)
	}
	return Outcome(sym), nil
}

// Kind returns the outcome category.
func (o Outcome) Kind() Kind {
	switch o {
	case Alive:
		return KindAlive
	case Dead:
		return KindDead
	case Same:
		return KindSame
	}
	if ValidSymbol(byte(o)) {
		return KindCustom
	}
	return KindInvalid
}

// Symbol returns the one-byte wire form of the outcome.
func (o Outcome) Symbol() byte { return byte(o) }

func (o Outcome) String() string {
	switch o.Kind() {
	case KindAlive:
		return "alive"
	case KindDead:
		return "dead"
	case KindSame:
		return "same"
	case KindCustom:
		return string(rune(o))
	}
	return fmt.Sprintf("invalid(%d)", byte(o))
}

// Resolve applies the outcome to a cell's current state. Custom outcomes are
// opaque to this package and leave the cell unchanged; ok is false for them.
func (o Outcome) Resolve(current bool) (next bool, ok bool) {
	switch o {
	case Alive:
		return true, true
	case Dead:
		return false, true
	case Same:
		return current, true
	}
	return current, false
}
