package core

import (
	"sort"

	"cellrules/pkg/rules"
)

// Factory constructs a preset automaton using an optional configuration map.
type Factory func(cfg map[string]string) (*rules.Automaton, error)

var presets = map[string]Factory{}

// Register adds a preset factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	presets[name] = f
}

// Presets exposes the registry of available preset factories.
func Presets() map[string]Factory {
	return presets
}

// PresetNames returns the registered names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
