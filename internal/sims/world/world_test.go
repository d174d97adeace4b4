package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cellrules/internal/presets/elementary"
	"cellrules/internal/presets/lifelike"
	"cellrules/pkg/rules"
)

func alive(w *World) map[[2]int]bool {
	out := map[[2]int]bool{}
	g := w.Grid()
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.Alive(x, y) {
				out[[2]int{x, y}] = true
			}
		}
	}
	return out
}

func TestBlinkerOscillation(t *testing.T) {
	conway, err := lifelike.New("B3/S23")
	require.NoError(t, err)
	w, err := New(conway, 5, 5)
	require.NoError(t, err)

	g := w.Grid()
	g.Set(2, 1, true)
	g.Set(2, 2, true)
	g.Set(2, 3, true)

	require.NoError(t, w.Step())
	assert.Equal(t, map[[2]int]bool{{1, 2}: true, {2, 2}: true, {3, 2}: true}, alive(w))

	require.NoError(t, w.Step())
	assert.Equal(t, map[[2]int]bool{{2, 1}: true, {2, 2}: true, {2, 3}: true}, alive(w))
	assert.Equal(t, 2, w.Generation())
	assert.Zero(t, w.Unresolved())
}

func TestRule90Row(t *testing.T) {
	a, err := elementary.New(90)
	require.NoError(t, err)
	w, err := New(a, 7, 1)
	require.NoError(t, err)
	w.Grid().Set(3, 0, true)

	require.NoError(t, w.Step())
	assert.Equal(t, map[[2]int]bool{{2, 0}: true, {4, 0}: true}, alive(w))
	require.NoError(t, w.Step())
	assert.Equal(t, map[[2]int]bool{{1, 0}: true, {5, 0}: true}, alive(w))
}

func TestCustomOutcomeKeepsState(t *testing.T) {
	tr := rules.NewTrie()
	require.NoError(t, tr.Insert("1", rules.Outcome('x')))
	a, err := rules.New(3, 1, rules.Dead, rules.RuleSet{}, tr)
	require.NoError(t, err)
	w, err := New(a, 4, 1)
	require.NoError(t, err)
	w.Grid().Set(1, 0, true)

	require.NoError(t, w.Step())
	// only (2,0) sees a live left neighbor
	assert.Equal(t, map[[2]int]bool{}, alive(w))
	assert.Equal(t, 1, w.Unresolved())
}

func TestNewRejectsMismatchedNeighborhood(t *testing.T) {
	a, err := rules.New(5, 1, rules.Dead, rules.RuleSet{}, nil)
	require.NoError(t, err)
	_, err = New(a, 3, 3)
	assert.ErrorIs(t, err, rules.ErrInvalidArgument)
	_, err = New(nil, 3, 3)
	assert.ErrorIs(t, err, rules.ErrInvalidArgument)
}

func TestResetDeterministic(t *testing.T) {
	a, err := elementary.New(110)
	require.NoError(t, err)
	w1, err := New(a, 16, 4)
	require.NoError(t, err)
	w2, err := New(a, 16, 4)
	require.NoError(t, err)
	w1.Reset(7)
	w2.Reset(7)
	assert.Equal(t, w1.Grid().Cells(), w2.Grid().Cells())
	require.NoError(t, w1.Step())
	require.NoError(t, w2.Step())
	assert.Equal(t, w1.Grid().Cells(), w2.Grid().Cells())
}
