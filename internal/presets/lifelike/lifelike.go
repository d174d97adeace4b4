package lifelike

import (
	"fmt"
	"math/bits"
	"strings"

	"cellrules/internal/core"
	"cellrules/pkg/rules"
)

const neighborhood = 9 // 3x3 Moore block, own cell at index 4

// Config holds the rulestring of a Life-like automaton.
type Config struct {
	Rule string
}

// DefaultConfig returns Conway's Game of Life.
func DefaultConfig() Config {
	return Config{Rule: "B3/S23"}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["rule"]; ok && strings.TrimSpace(v) != "" {
		c.Rule = strings.TrimSpace(v)
	}
	return c
}

// ParseRule reads a "B…/S…" rulestring into birth and survival count sets,
// bit k set meaning k live neighbors.
func ParseRule(s string) (birth, survive uint16, err error) {
	parts := strings.Split(strings.ToUpper(s), "/")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("rulestring %q: want B…/S…", s)
	}
	var seenB, seenS bool
	for _, part := range parts {
		if part == "" {
			return 0, 0, fmt.Errorf("rulestring %q: empty section", s)
		}
		var set uint16
		for _, c := range part[1:] {
			if c < '0' || c > '8' {
				return 0, 0, fmt.Errorf("rulestring %q: bad count %q", s, c)
			}
			set |= 1 << (c - '0')
		}
		switch part[0] {
		case 'B':
			birth, seenB = set, true
		case 'S':
			survive, seenS = set, true
		default:
			return 0, 0, fmt.Errorf("rulestring %q: section must start with B or S", s)
		}
	}
	if !seenB || !seenS {
		return 0, 0, fmt.Errorf("rulestring %q: want one B and one S section", s)
	}
	return birth, survive, nil
}

// New builds a Life-like automaton. Counts in both sets become life ranges
// and survival-only counts become same ranges. Birth-only counts flip the
// cell, which a count alone cannot express, so every 3x3 neighborhood with
// such a count is stored as an exact pattern.
func New(rule string) (*rules.Automaton, error) {
	birth, survive, err := ParseRule(rule)
	if err != nil {
		return nil, err
	}
	rs := rules.RuleSet{
		Life: countRanges(birth & survive),
		Same: countRanges(survive &^ birth),
	}

	t := rules.NewTrie()
	if flip := birth &^ survive; flip != 0 {
		for v := 0; v < 1<<neighborhood; v++ {
			own := v>>(neighborhood-1-neighborhood/2)&1 == 1
			count := bits.OnesCount(uint(v))
			if own {
				count--
			}
			if flip&(1<<count) == 0 {
				continue
			}
			o := rules.Alive
			if own {
				o = rules.Dead
			}
			if err := t.Insert(bitString(v), o); err != nil {
				return nil, err
			}
		}
	}
	return rules.New(neighborhood, 2, rules.Dead, rs, t)
}

func bitString(v int) string {
	buf := make([]byte, neighborhood)
	for i := range buf {
		buf[i] = byte('0' + (v>>(neighborhood-1-i))&1)
	}
	return string(buf)
}

// countRanges collapses a count set into sorted inclusive ranges.
func countRanges(set uint16) []rules.Range {
	var out []rules.Range
	for k := 0; k < neighborhood; k++ {
		if set&(1<<k) == 0 {
			continue
		}
		if n := len(out); n > 0 && out[n-1].B == uint32(k-1) {
			out[n-1].B = uint32(k)
			continue
		}
		out = append(out, rules.Range{A: uint32(k), B: uint32(k)})
	}
	return out
}

func init() {
	core.Register("life", func(cfg map[string]string) (*rules.Automaton, error) {
		c := FromMap(cfg)
		return New(c.Rule)
	})
}
