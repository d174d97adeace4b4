package rules

import (
	"fmt"
	"strings"
)

// StepKind tags the result of advancing a trie cursor by one bit.
type StepKind uint8

const (
	// Continue means the prefix read so far is still inside the trie.
	Continue StepKind = iota
	// NotFound means no stored pattern starts with the prefix read so far.
	NotFound
	// Terminal means a stored pattern ended on this bit.
	Terminal
)

func (k StepKind) String() string {
	switch k {
	case Continue:
		return "continue"
	case NotFound:
		return "not-found"
	case Terminal:
		return "terminal"
	}
	return fmt.Sprintf("StepKind(%d)", uint8(k))
}

// StepResult is the outcome of Cursor.Step. Outcome is only set for Terminal.
type StepResult struct {
	Kind    StepKind
	Outcome Outcome
}

type node struct {
	child   [2]*node
	outcome Outcome // non-zero on terminal nodes
}

func (n *node) terminal() bool { return n.outcome != 0 }

func bitIndex(c byte) (int, bool) {
	switch c {
	case '0':
		return 0, true
	case '1':
		return 1, true
	}
	return 0, false
}

// Cursor walks a trie one bit at a time. Cursors are plain values: each
// caller can hold its own, so walking never touches shared state.
type Cursor struct {
	root *node
	at   *node
}

// Reset moves the cursor back to the root.
func (c *Cursor) Reset() { c.at = c.root }

// Step follows the edge labelled bit. Once NotFound is returned the cursor
// stays off the trie until Reset.
func (c *Cursor) Step(bit byte) StepResult {
	if c.at == nil {
		return StepResult{Kind: NotFound}
	}
	idx, ok := bitIndex(bit)
	if !ok {
		c.at = nil
		return StepResult{Kind: NotFound}
	}
	c.at = c.at.child[idx]
	switch {
	case c.at == nil:
		return StepResult{Kind: NotFound}
	case c.at.terminal():
		return StepResult{Kind: Terminal, Outcome: c.at.outcome}
	}
	return StepResult{Kind: Continue}
}

// Trie stores exact neighborhood prefixes mapped to forced outcomes.
//
// The embedded cursor behind Reset and Step is shared by every caller and is
// not safe for concurrent use; use Cursor for independent walks.
type Trie struct {
	root   *node
	cursor Cursor
}

// NewTrie returns an empty trie.
func NewTrie() *Trie {
	return newTrie(&node{})
}

func newTrie(root *node) *Trie {
	t := &Trie{root: root}
	t.cursor = t.Cursor()
	return t
}

// Cursor returns a fresh cursor positioned at the root.
func (t *Trie) Cursor() Cursor {
	return Cursor{root: t.root, at: t.root}
}

// Reset moves the trie's shared cursor to the root.
func (t *Trie) Reset() { t.cursor.Reset() }

// Step advances the trie's shared cursor.
func (t *Trie) Step(bit byte) StepResult { return t.cursor.Step(bit) }

// Insert stores pattern with the given outcome. A pattern whose path crosses
// an existing terminal is rejected with ErrShadowed. Inserting a prefix of
// longer stored patterns turns that node terminal and drops the patterns
// below it, since they could never be reached.
func (t *Trie) Insert(pattern string, o Outcome) error {
	if pattern == "" {
		return fmt.Errorf("%w: empty pattern", ErrInvalidArgument)
	}
	if !ValidSymbol(byte(o)) {
		return fmt.Errorf("%w: %q is not a usable outcome symbol", ErrInvalidArgument, byte(o))
	}
	for i := 0; i < len(pattern); i++ {
		if _, ok := bitIndex(pattern[i]); !ok {
			return fmt.Errorf("%w: pattern %q contains %q", ErrInvalidArgument, pattern, pattern[i])
		}
	}
	at := t.root
	for i := 0; i < len(pattern); i++ {
		if at.terminal() {
			return fmt.Errorf("%w: %q ends at %q", ErrShadowed, pattern, pattern[:i])
		}
		idx, _ := bitIndex(pattern[i])
		if at.child[idx] == nil {
			at.child[idx] = &node{}
		}
		at = at.child[idx]
	}
	at.outcome = o
	at.child = [2]*node{}
	t.cursor.Reset()
	return nil
}

// Pattern is one stored exact rule.
type Pattern struct {
	Bits    string
	Outcome Outcome
}

// Patterns lists every stored rule in lexicographic order of Bits.
func (t *Trie) Patterns() []Pattern {
	var out []Pattern
	buf := make([]byte, 0, 16)
	var walk func(n *node)
	walk = func(n *node) {
		if n.terminal() {
			out = append(out, Pattern{Bits: string(buf), Outcome: n.outcome})
			return
		}
		for i, ch := range n.child {
			if ch == nil {
				continue
			}
			buf = append(buf, byte('0'+i))
			walk(ch)
			buf = buf[:len(buf)-1]
		}
	}
	walk(t.root)
	return out
}

// Len returns the number of stored patterns.
func (t *Trie) Len() int { return len(t.Patterns()) }

// Depth returns the length of the longest path in the trie.
func (t *Trie) Depth() int {
	var depth func(n *node) int
	depth = func(n *node) int {
		if n == nil {
			return -1
		}
		return 1 + max(depth(n.child[0]), depth(n.child[1]))
	}
	return max(depth(t.root), 0)
}

// MarshalText encodes the trie in preorder: a terminal node is its outcome
// symbol, any other node is "(" child0 child1 ")" with "." for a missing
// child. An empty trie encodes as "(..)".
func (t *Trie) MarshalText() ([]byte, error) {
	var b strings.Builder
	encodeNode(&b, t.root)
	return []byte(b.String()), nil
}

func (t *Trie) String() string {
	text, _ := t.MarshalText()
	return string(text)
}

func encodeNode(b *strings.Builder, n *node) {
	switch {
	case n == nil:
		b.WriteByte('.')
	case n.terminal():
		b.WriteByte(byte(n.outcome))
	default:
		b.WriteByte('(')
		encodeNode(b, n.child[0])
		encodeNode(b, n.child[1])
		b.WriteByte(')')
	}
}

// ParseTrie decodes the form produced by MarshalText.
func ParseTrie(s string) (*Trie, error) {
	if s == "" || s[0] != '(' {
		return nil, formatErr("trie", s, "root must be an inner node")
	}
	p := trieParser{src: s}
	root, err := p.node()
	if err != nil {
		return nil, err
	}
	if p.pos != len(s) {
		return nil, formatErr("trie", s, fmt.Sprintf("trailing data at offset %d", p.pos))
	}
	return newTrie(root), nil
}

type trieParser struct {
	src string
	pos int
}

func (p *trieParser) node() (*node, error) {
	if p.pos >= len(p.src) {
		return nil, formatErr("trie", p.src, "truncated")
	}
	c := p.src[p.pos]
	p.pos++
	switch {
	case c == '.':
		return nil, nil
	case c == '(':
		n := &node{}
		for i := range n.child {
			child, err := p.node()
			if err != nil {
				return nil, err
			}
			n.child[i] = child
		}
		if p.pos >= len(p.src) {
			return nil, formatErr("trie", p.src, "truncated")
		}
		if p.src[p.pos] != ')' {
			return nil, formatErr("trie", p.src, fmt.Sprintf("expected ')' at offset %d", p.pos))
		}
		p.pos++
		return n, nil
	case ValidSymbol(c):
		return &node{outcome: Outcome(c)}, nil
	}
	return nil, formatErr("trie", p.src, fmt.Sprintf("unexpected %q at offset %d", c, p.pos-1))
}
