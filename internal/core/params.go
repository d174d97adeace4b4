package core

import (
	"strconv"
	"strings"

	"cellrules/pkg/rules"
)

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeOutcome denotes a single outcome symbol.
	ParamTypeOutcome ParamType = "outcome"
	// ParamTypeRanges denotes a list of neighbor-count ranges.
	ParamTypeRanges ParamType = "ranges"
	// ParamTypePattern denotes an exact neighborhood prefix.
	ParamTypePattern ParamType = "pattern"
)

// Parameter describes a single value of an automaton.
type Parameter struct {
	Key         string    `yaml:"key"`
	Label       string    `yaml:"label"`
	Type        ParamType `yaml:"type"`
	Value       string    `yaml:"value"`
	Description string    `yaml:"description,omitempty"`
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name    string      `yaml:"name"`
	Params  []Parameter `yaml:"params"`
	Summary string      `yaml:"summary,omitempty"`
}

// ParameterSnapshot captures everything an automaton decides with.
type ParameterSnapshot struct {
	Groups []ParameterGroup `yaml:"groups"`
}

// Describe builds a snapshot of a for display.
func Describe(a *rules.Automaton) ParameterSnapshot {
	rs := a.Rules()
	patterns := a.Patterns()

	patternParams := make([]Parameter, 0, len(patterns))
	for _, p := range patterns {
		patternParams = append(patternParams, Parameter{
			Key:   p.Bits,
			Label: "Pattern " + p.Bits,
			Type:  ParamTypePattern,
			Value: p.Outcome.String(),
		})
	}

	return ParameterSnapshot{Groups: []ParameterGroup{
		{
			Name: "Neighborhood",
			Params: []Parameter{
				intParam("n", "Cells", a.N()),
				intParam("dim", "Dimension", a.Dim()),
				intParam("own", "Own cell index", a.OwnIndex()),
				{Key: "default", Label: "Default outcome", Type: ParamTypeOutcome, Value: a.Default().String()},
			},
		},
		{
			Name:    "Counting rules",
			Summary: "first matching range wins; life, then death, then same",
			Params: []Parameter{
				rangesParam("life", "Alive when count in", rs.Life),
				rangesParam("death", "Dead when count in", rs.Death),
				rangesParam("same", "Unchanged when count in", rs.Same),
			},
		},
		{
			Name:    "Exact patterns",
			Summary: strconv.Itoa(len(patterns)) + " pattern(s), checked before counting rules",
			Params:  patternParams,
		},
	}}
}

func intParam(key, label string, v int) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeInt, Value: strconv.Itoa(v)}
}

func rangesParam(key, label string, list []rules.Range) Parameter {
	parts := make([]string, 0, len(list))
	for _, r := range list {
		parts = append(parts, r.String())
	}
	return Parameter{Key: key, Label: label, Type: ParamTypeRanges, Value: strings.Join(parts, " ")}
}
