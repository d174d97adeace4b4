package rules

import "fmt"

// Range is an inclusive interval of neighbor counts.
type Range struct {
	A, B uint32
}

// NewRange returns [a,b], rejecting reversed bounds.
func NewRange(a, b uint32) (Range, error) {
	if a > b {
		return Range{}, fmt.Errorf("%w: range [%d,%d] has a > b", ErrInvalidArgument, a, b)
	}
	return Range{A: a, B: b}, nil
}

// Contains reports whether k lies within the range.
func (r Range) Contains(k int) bool {
	return k >= 0 && uint64(r.A) <= uint64(k) && uint64(k) <= uint64(r.B)
}

func (r Range) String() string { return fmt.Sprintf("[%d,%d]", r.A, r.B) }

// RuleSet holds the counting rules. Lists are scanned in declaration order
// and the first containing range wins; Life is consulted before Death, Death
// before Same.
type RuleSet struct {
	Life  []Range
	Death []Range
	Same  []Range
}

// Eval maps a neighbor count to an outcome. ok is false when no range
// contains k and the caller should fall back to its default.
func (rs RuleSet) Eval(k int) (Outcome, bool) {
	for _, r := range rs.Life {
		if r.Contains(k) {
			return Alive, true
		}
	}
	for _, r := range rs.Death {
		if r.Contains(k) {
			return Dead, true
		}
	}
	for _, r := range rs.Same {
		if r.Contains(k) {
			return Same, true
		}
	}
	return 0, false
}

// Len returns the total number of ranges across all lists.
func (rs RuleSet) Len() int { return len(rs.Life) + len(rs.Death) + len(rs.Same) }

func (rs RuleSet) clone() RuleSet {
	return RuleSet{
		Life:  append([]Range(nil), rs.Life...),
		Death: append([]Range(nil), rs.Death...),
		Same:  append([]Range(nil), rs.Same...),
	}
}

func (rs RuleSet) validate() error {
	for _, list := range [][]Range{rs.Life, rs.Death, rs.Same} {
		for _, r := range list {
			if r.A > r.B {
				return fmt.Errorf("range %s has a > b", r)
			}
		}
	}
	return nil
}
