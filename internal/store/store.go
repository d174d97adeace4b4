// Package store defines persistence contracts for serialized automata.
package store

import (
	"context"
	"errors"
	"time"

	"cellrules/pkg/rules"
)

var (
	// ErrNotFound indicates no automaton is stored under the requested key.
	ErrNotFound = errors.New("automaton not found")
)

// Record is one stored automaton.
type Record struct {
	ID      int64
	Name    string
	Is2D    bool
	Value   string
	LastUse time.Time
}

// Store persists serialized automata under integer keys. LoadRules also
// refreshes the record's last-use time.
type Store interface {
	rules.Source
	rules.Sink
	List(ctx context.Context) ([]Record, error)
	Close() error
}
