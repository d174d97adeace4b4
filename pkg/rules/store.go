package rules

import (
	"context"
	"fmt"
)

// Source loads serialized rule text by key.
type Source interface {
	LoadRules(ctx context.Context, id int64) (string, error)
}

// Sink persists serialized rule text and returns the key it was stored under.
type Sink interface {
	SaveRules(ctx context.Context, name string, dim int, text string) (int64, error)
}

// Load fetches the rule text for id from src and decodes it.
func Load(ctx context.Context, src Source, id int64) (*Automaton, error) {
	text, err := src.LoadRules(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load rules %d: %w", id, err)
	}
	a, err := Parse(text)
	if err != nil {
		return nil, fmt.Errorf("decode rules %d: %w", id, err)
	}
	return a, nil
}

// Save stores a under name in sink.
func Save(ctx context.Context, sink Sink, name string, a *Automaton) (int64, error) {
	text, err := a.MarshalText()
	if err != nil {
		return 0, err
	}
	id, err := sink.SaveRules(ctx, name, a.dim, string(text))
	if err != nil {
		return 0, fmt.Errorf("save rules %q: %w", name, err)
	}
	return id, nil
}
