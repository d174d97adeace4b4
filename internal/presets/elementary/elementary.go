package elementary

import (
	"strconv"

	"cellrules/internal/core"
	"cellrules/pkg/rules"
)

// Config holds parameters for the elementary cellular automaton.
type Config struct {
	Rule uint8
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Rule: 110}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["rule"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= 255 {
			c.Rule = uint8(parsed)
		}
	}
	return c
}

// New builds the one-dimensional automaton for a Wolfram code. Every
// left/center/right combination is stored as an exact pattern, so the
// counting rules are never consulted.
func New(rule uint8) (*rules.Automaton, error) {
	t := rules.NewTrie()
	for idx := 0; idx < 8; idx++ {
		pattern := []byte{
			byte('0' + (idx>>2)&1),
			byte('0' + (idx>>1)&1),
			byte('0' + idx&1),
		}
		o := rules.Dead
		if (rule>>idx)&1 == 1 {
			o = rules.Alive
		}
		if err := t.Insert(string(pattern), o); err != nil {
			return nil, err
		}
	}
	return rules.New(3, 1, rules.Dead, rules.RuleSet{}, t)
}

func init() {
	core.Register("elementary", func(cfg map[string]string) (*rules.Automaton, error) {
		c := FromMap(cfg)
		return New(c.Rule)
	})
}
