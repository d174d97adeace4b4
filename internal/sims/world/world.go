// Package world evolves a toroidal grid of binary cells under an automaton.
package world

import (
	"fmt"

	"cellrules/internal/core"
	pcore "cellrules/pkg/core"
	"cellrules/pkg/rules"
)

// World holds the current and next generation for one automaton.
type World struct {
	rules *rules.Automaton
	cur   *core.ByteGrid
	nxt   *core.ByteGrid
	gen   int
	odd   int
}

// New returns a w by h world stepped by a. A 1D automaton evolves every row
// independently. The neighborhood length of a must match its dimension.
func New(a *rules.Automaton, w, h int) (*World, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: nil automaton", rules.ErrInvalidArgument)
	}
	want := 3
	if a.Dim() == 2 {
		want = 9
	}
	if a.N() != want {
		return nil, fmt.Errorf("%w: %dD grid needs n=%d, automaton has n=%d",
			rules.ErrInvalidArgument, a.Dim(), want, a.N())
	}
	return &World{rules: a, cur: core.NewByteGrid(w, h), nxt: core.NewByteGrid(w, h)}, nil
}

// Size returns the grid dimensions.
func (w *World) Size() (int, int) { return w.cur.W, w.cur.H }

// Grid exposes the current generation.
func (w *World) Grid() *core.ByteGrid { return w.cur }

// Generation counts completed steps since the last reset.
func (w *World) Generation() int { return w.gen }

// Unresolved counts cells in the last step whose outcome was a custom
// symbol. Those cells keep their state.
func (w *World) Unresolved() int { return w.odd }

// Reset randomizes the board using the provided seed, half the cells alive.
func (w *World) Reset(seed int64) {
	pcore.NewRNG(seed).Fill(w.cur.Cells(), 0.5)
	w.gen, w.odd = 0, 0
}

// Step advances the world by one generation.
func (w *World) Step() error {
	dim := w.rules.Dim()
	odd := 0
	for y := 0; y < w.cur.H; y++ {
		for x := 0; x < w.cur.W; x++ {
			o, err := w.rules.Next(w.cur.Neighborhood(x, y, dim))
			if err != nil {
				return fmt.Errorf("cell (%d,%d): %w", x, y, err)
			}
			alive, ok := o.Resolve(w.cur.Alive(x, y))
			if !ok {
				odd++
			}
			w.nxt.Set(x, y, alive)
		}
	}
	w.cur, w.nxt = w.nxt, w.cur
	w.gen++
	w.odd = odd
	return nil
}
