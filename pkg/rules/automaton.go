// Package rules implements the cell rule engine: exact neighborhood patterns
// held in a binary trie, ordered neighbor-count ranges, and the one-line text
// format used to persist both.
package rules

import (
	"fmt"
)

// Automaton decides the next state of a cell from its neighborhood string.
// It is immutable after construction and safe for concurrent use.
type Automaton struct {
	n           int
	dim         int
	defaultNext Outcome
	rules       RuleSet
	trie        *Trie
}

// New builds an automaton over neighborhoods of n cells. A nil trie means no
// exact-pattern rules. The automaton takes ownership of t.
func New(n, dim int, defaultNext Outcome, rs RuleSet, t *Trie) (*Automaton, error) {
	if t == nil {
		t = NewTrie()
	}
	if field, err := validate(n, dim, defaultNext, rs, t); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidArgument, field, err)
	}
	return &Automaton{n: n, dim: dim, defaultNext: defaultNext, rules: rs.clone(), trie: t}, nil
}

func validate(n, dim int, defaultNext Outcome, rs RuleSet, t *Trie) (string, error) {
	if n < 1 {
		return "n", fmt.Errorf("neighborhood size %d must be at least 1", n)
	}
	if dim != 1 && dim != 2 {
		return "dim", fmt.Errorf("dimension %d must be 1 or 2", dim)
	}
	if !ValidSymbol(byte(defaultNext)) {
		return "default", fmt.Errorf("%q is not a usable outcome symbol", byte(defaultNext))
	}
	if err := rs.validate(); err != nil {
		return "ranges", err
	}
	if d := t.Depth(); d > n {
		return "trie", fmt.Errorf("pattern depth %d exceeds neighborhood size %d", d, n)
	}
	return "", nil
}

// N returns the expected neighborhood length.
func (a *Automaton) N() int { return a.n }

// Dim returns the grid dimension the automaton was authored for.
func (a *Automaton) Dim() int { return a.dim }

// Default returns the fallback outcome.
func (a *Automaton) Default() Outcome { return a.defaultNext }

// OwnIndex is the position of the cell itself inside a neighborhood string.
func (a *Automaton) OwnIndex() int { return a.n / 2 }

// Rules returns a copy of the counting rules.
func (a *Automaton) Rules() RuleSet { return a.rules.clone() }

// Patterns lists the exact-pattern rules.
func (a *Automaton) Patterns() []Pattern { return a.trie.Patterns() }

// Next returns the outcome for state, a string of exactly N() '0'/'1' bytes.
//
// Exact patterns win as soon as one terminates, without reading the rest of
// state. Otherwise every '1' except the cell's own bit is counted and the
// count is matched against the ranges, falling back to Default.
func (a *Automaton) Next(state string) (Outcome, error) {
	if len(state) != a.n {
		return 0, fmt.Errorf("%w: neighborhood has %d cells, want %d", ErrInvalidArgument, len(state), a.n)
	}
	cur := a.trie.Cursor()
	inTree := true
	count := 0
	for i := 0; i < len(state); i++ {
		c := state[i]
		switch c {
		case '1':
			count++
		case '0':
		default:
			return 0, fmt.Errorf("%w: neighborhood byte %d is %q", ErrInvalidArgument, i, c)
		}
		if !inTree {
			continue
		}
		res := cur.Step(c)
		switch res.Kind {
		case NotFound:
			inTree = false
		case Terminal:
			return res.Outcome, nil
		}
	}

	// the cell is not its own neighbor
	if state[a.n/2] == '1' {
		count--
	}

	if o, ok := a.rules.Eval(count); ok {
		return o, nil
	}
	return a.defaultNext, nil
}
