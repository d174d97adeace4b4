package rules

import (
	"strconv"
	"strings"
)

const (
	fieldSep = '|'
	groupSep = ';'
	boundSep = ','
)

// MarshalText encodes the automaton as n|dim|default|ranges|trie.
func (a *Automaton) MarshalText() ([]byte, error) {
	ranges, err := a.rules.MarshalText()
	if err != nil {
		return nil, err
	}
	trie, err := a.trie.MarshalText()
	if err != nil {
		return nil, err
	}
	s := joinFields(fieldSep,
		strconv.Itoa(a.n),
		strconv.Itoa(a.dim),
		string(rune(a.defaultNext)),
		string(ranges),
		string(trie),
	)
	return []byte(s), nil
}

// String returns the serialized form.
func (a *Automaton) String() string {
	text, _ := a.MarshalText()
	return string(text)
}

// UnmarshalText replaces a with the automaton decoded from text. a is left
// untouched on error.
func (a *Automaton) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = *parsed
	return nil
}

// Parse decodes serialized rule text. Any malformed field yields a
// *FormatError and no automaton.
func Parse(text string) (*Automaton, error) {
	fields := Explode(text, fieldSep)
	if len(fields) != 5 {
		return nil, formatErr("fields", text, "want 5 '|'-separated fields, got "+strconv.Itoa(len(fields)))
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, &FormatError{Field: "n", Input: fields[0], Reason: "not an integer", Err: err}
	}
	if n < 1 {
		return nil, formatErr("n", fields[0], "must be at least 1")
	}
	dim, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, &FormatError{Field: "dim", Input: fields[1], Reason: "not an integer", Err: err}
	}
	if len(fields[2]) != 1 || !ValidSymbol(fields[2][0]) {
		return nil, formatErr("default", fields[2], "must be a single outcome symbol")
	}
	rs, err := ParseRuleSet(fields[3])
	if err != nil {
		return nil, err
	}
	t, err := ParseTrie(fields[4])
	if err != nil {
		return nil, err
	}
	def := Outcome(fields[2][0])
	if field, err := validate(n, dim, def, rs, t); err != nil {
		return nil, &FormatError{Field: field, Reason: "invalid value", Err: err}
	}
	return &Automaton{n: n, dim: dim, defaultNext: def, rules: rs, trie: t}, nil
}

// MarshalText encodes the ranges as life;death;same, each group a flat
// "a,b," sequence.
func (rs RuleSet) MarshalText() ([]byte, error) {
	var b strings.Builder
	for i, list := range [][]Range{rs.Life, rs.Death, rs.Same} {
		if i > 0 {
			b.WriteByte(groupSep)
		}
		for _, r := range list {
			b.WriteString(strconv.FormatUint(uint64(r.A), 10))
			b.WriteByte(boundSep)
			b.WriteString(strconv.FormatUint(uint64(r.B), 10))
			b.WriteByte(boundSep)
		}
	}
	return []byte(b.String()), nil
}

// ParseRuleSet decodes the ranges blob produced by RuleSet.MarshalText.
func ParseRuleSet(s string) (RuleSet, error) {
	groups := strings.Split(s, string(groupSep))
	if len(groups) != 3 {
		return RuleSet{}, formatErr("ranges", s, "want 3 ';'-separated groups, got "+strconv.Itoa(len(groups)))
	}
	var lists [3][]Range
	for i, g := range groups {
		list, err := parseRangeGroup(g)
		if err != nil {
			return RuleSet{}, err
		}
		lists[i] = list
	}
	return RuleSet{Life: lists[0], Death: lists[1], Same: lists[2]}, nil
}

func parseRangeGroup(g string) ([]Range, error) {
	if g == "" {
		return nil, nil
	}
	if g[len(g)-1] != boundSep {
		return nil, formatErr("ranges", g, "group must end with ','")
	}
	bounds := strings.Split(g[:len(g)-1], string(boundSep))
	if len(bounds)%2 != 0 {
		return nil, formatErr("ranges", g, "odd number of bounds")
	}
	out := make([]Range, 0, len(bounds)/2)
	for i := 0; i < len(bounds); i += 2 {
		a, err := parseBound(bounds[i])
		if err != nil {
			return nil, err
		}
		b, err := parseBound(bounds[i+1])
		if err != nil {
			return nil, err
		}
		if a > b {
			return nil, formatErr("ranges", g, "range ["+bounds[i]+","+bounds[i+1]+"] has a > b")
		}
		out = append(out, Range{A: a, B: b})
	}
	return out, nil
}

func parseBound(s string) (uint32, error) {
	if s == "" {
		return 0, formatErr("ranges", s, "empty bound")
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, &FormatError{Field: "ranges", Input: s, Reason: "not an unsigned integer", Err: err}
	}
	return uint32(v), nil
}
