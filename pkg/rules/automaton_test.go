package rules

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cellrules/pkg/core"
)

func mustNew(t *testing.T, n, dim int, def Outcome, rs RuleSet, patterns map[string]Outcome) *Automaton {
	t.Helper()
	a, err := New(n, dim, def, rs, buildTrie(t, patterns))
	require.NoError(t, err)
	return a
}

func TestNextRangeRuleExample(t *testing.T) {
	a := mustNew(t, 3, 1, Dead, RuleSet{Life: []Range{{2, 3}}}, nil)
	o, err := a.Next("101")
	require.NoError(t, err)
	assert.Equal(t, Alive, o)

	o, err = a.Next("111")
	require.NoError(t, err)
	assert.Equal(t, Alive, o, "own bit excluded: count is 2")

	o, err = a.Next("010")
	require.NoError(t, err)
	assert.Equal(t, Dead, o, "only the own cell is set: count is 0")
}

func TestNextTrieFiresEarly(t *testing.T) {
	a := mustNew(t, 3, 1, Same, RuleSet{Life: []Range{{0, 8}}}, map[string]Outcome{"1": Dead})
	o, err := a.Next("100")
	require.NoError(t, err)
	assert.Equal(t, Dead, o)

	o, err = a.Next("011")
	require.NoError(t, err)
	assert.Equal(t, Alive, o, "trie miss falls through to ranges")
}

func TestNextTrieFiresBeforeReadingRest(t *testing.T) {
	a := mustNew(t, 3, 1, Same, RuleSet{}, map[string]Outcome{"1": Dead})
	o, err := a.Next("1x0")
	require.NoError(t, err)
	assert.Equal(t, Dead, o)

	_, err = a.Next("0x0")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNextOwnCellExclusion(t *testing.T) {
	a := mustNew(t, 9, 2, Dead, RuleSet{Life: []Range{{8, 8}}, Same: []Range{{9, 9}}}, nil)
	o, err := a.Next("111111111")
	require.NoError(t, err)
	assert.Equal(t, Alive, o)
	assert.Equal(t, 4, a.OwnIndex())
}

func TestNextDefault(t *testing.T) {
	a := mustNew(t, 5, 1, Outcome('q'), RuleSet{Life: []Range{{3, 3}}}, nil)
	o, err := a.Next("00000")
	require.NoError(t, err)
	assert.Equal(t, Outcome('q'), o)
}

func TestNextCustomTrieOutcome(t *testing.T) {
	a := mustNew(t, 3, 1, Dead, RuleSet{}, map[string]Outcome{"000": Outcome('z')})
	o, err := a.Next("000")
	require.NoError(t, err)
	assert.Equal(t, KindCustom, o.Kind())
	assert.Equal(t, byte('z'), o.Symbol())
}

func TestNextRejectsWrongLength(t *testing.T) {
	a := mustNew(t, 3, 1, Dead, RuleSet{Life: []Range{{2, 3}}}, nil)
	_, err := a.Next("10")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = a.Next("1010")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// still usable afterwards
	o, err := a.Next("101")
	require.NoError(t, err)
	assert.Equal(t, Alive, o)
}

func TestNextNeverReturnsBitsOrSentinel(t *testing.T) {
	a := mustNew(t, 9, 2, Dead,
		RuleSet{Life: []Range{{3, 3}}, Death: []Range{{5, 8}}, Same: []Range{{2, 2}}},
		map[string]Outcome{"111": Outcome('x'), "0000": Same, "01": Alive})
	rng := core.NewRNG(11)
	for i := 0; i < 500; i++ {
		state := rng.Neighborhood(9)
		o, err := a.Next(state)
		require.NoError(t, err)
		assert.NotEqual(t, KindInvalid, o.Kind(), "state %s", state)
		assert.NotContains(t, "01", string(rune(o)))
	}
}

func TestNextIsPure(t *testing.T) {
	a := mustNew(t, 5, 1, Dead, RuleSet{Life: []Range{{2, 2}}}, map[string]Outcome{"11": Same, "000": Alive})
	first, err := a.Next("00100")
	require.NoError(t, err)
	_, err = a.Next("11111")
	require.NoError(t, err)
	again, err := a.Next("00100")
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestNextConcurrentCallers(t *testing.T) {
	a := mustNew(t, 9, 2, Dead,
		RuleSet{Life: []Range{{3, 3}}, Same: []Range{{2, 2}}},
		map[string]Outcome{"110": Outcome('x'), "0001": Alive})

	rng := core.NewRNG(5)
	states := make([]string, 256)
	want := make([]Outcome, len(states))
	for i := range states {
		states[i] = rng.Neighborhood(9)
		o, err := a.Next(states[i])
		require.NoError(t, err)
		want[i] = o
	}

	var wg sync.WaitGroup
	errs := make(chan string, 8)
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, s := range states {
				if o, _ := a.Next(s); o != want[i] {
					errs <- s
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	var bad []string
	for s := range errs {
		bad = append(bad, s)
	}
	assert.Empty(t, bad, "mismatched states: %s", strings.Join(bad, ","))
}

func TestNewValidation(t *testing.T) {
	_, err := New(0, 1, Dead, RuleSet{}, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = New(3, 3, Dead, RuleSet{}, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = New(3, 1, Outcome('1'), RuleSet{}, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = New(3, 1, Dead, RuleSet{Life: []Range{{4, 1}}}, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	tr := NewTrie()
	require.NoError(t, tr.Insert("0101", Alive))
	_, err = New(3, 1, Dead, RuleSet{}, tr)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRulesReturnsCopy(t *testing.T) {
	a := mustNew(t, 3, 1, Dead, RuleSet{Life: []Range{{2, 3}}}, nil)
	rs := a.Rules()
	rs.Life[0] = Range{0, 0}
	o, err := a.Next("101")
	require.NoError(t, err)
	assert.Equal(t, Alive, o)
}
