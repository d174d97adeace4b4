package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTrie(t *testing.T, patterns map[string]Outcome) *Trie {
	t.Helper()
	tr := NewTrie()
	for p, o := range patterns {
		require.NoError(t, tr.Insert(p, o))
	}
	return tr
}

func TestTrieStep(t *testing.T) {
	tr := buildTrie(t, map[string]Outcome{"1": Dead, "010": Alive})

	tr.Reset()
	assert.Equal(t, StepResult{Kind: Terminal, Outcome: Dead}, tr.Step('1'))

	tr.Reset()
	assert.Equal(t, Continue, tr.Step('0').Kind)
	assert.Equal(t, Continue, tr.Step('1').Kind)
	assert.Equal(t, StepResult{Kind: Terminal, Outcome: Alive}, tr.Step('0'))

	tr.Reset()
	assert.Equal(t, Continue, tr.Step('0').Kind)
	assert.Equal(t, NotFound, tr.Step('0').Kind)
	// no auto reset: the cursor stays off the trie
	assert.Equal(t, NotFound, tr.Step('1').Kind)

	tr.Reset()
	assert.Equal(t, StepResult{Kind: Terminal, Outcome: Dead}, tr.Step('1'))
}

func TestTrieStepRejectsNonBits(t *testing.T) {
	tr := buildTrie(t, map[string]Outcome{"1": Dead})
	tr.Reset()
	assert.Equal(t, NotFound, tr.Step('x').Kind)
	assert.Equal(t, NotFound, tr.Step('1').Kind)
}

func TestCursorsAreIndependent(t *testing.T) {
	tr := buildTrie(t, map[string]Outcome{"00": Alive, "11": Dead})
	a := tr.Cursor()
	b := tr.Cursor()
	assert.Equal(t, Continue, a.Step('0').Kind)
	assert.Equal(t, Continue, b.Step('1').Kind)
	assert.Equal(t, Alive, a.Step('0').Outcome)
	assert.Equal(t, Dead, b.Step('1').Outcome)
}

func TestTrieInsert(t *testing.T) {
	t.Run("rejects bad input", func(t *testing.T) {
		tr := NewTrie()
		assert.ErrorIs(t, tr.Insert("", Alive), ErrInvalidArgument)
		assert.ErrorIs(t, tr.Insert("012", Alive), ErrInvalidArgument)
		assert.ErrorIs(t, tr.Insert("01", Outcome('1')), ErrInvalidArgument)
		assert.Zero(t, tr.Len())
	})

	t.Run("shadowed pattern", func(t *testing.T) {
		tr := buildTrie(t, map[string]Outcome{"1": Dead})
		assert.ErrorIs(t, tr.Insert("101", Alive), ErrShadowed)
	})

	t.Run("prefix replaces longer patterns", func(t *testing.T) {
		tr := buildTrie(t, map[string]Outcome{"101": Alive, "100": Same})
		require.NoError(t, tr.Insert("10", Dead))
		assert.Equal(t, []Pattern{{Bits: "10", Outcome: Dead}}, tr.Patterns())
	})

	t.Run("reinsert replaces outcome", func(t *testing.T) {
		tr := buildTrie(t, map[string]Outcome{"01": Alive})
		require.NoError(t, tr.Insert("01", Outcome('x')))
		assert.Equal(t, []Pattern{{Bits: "01", Outcome: 'x'}}, tr.Patterns())
	})
}

func TestTriePatternsAndDepth(t *testing.T) {
	tr := buildTrie(t, map[string]Outcome{"11": Dead, "0": Alive, "101": Same})
	assert.Equal(t, []Pattern{
		{Bits: "0", Outcome: Alive},
		{Bits: "101", Outcome: Same},
		{Bits: "11", Outcome: Dead},
	}, tr.Patterns())
	assert.Equal(t, 3, tr.Len())
	assert.Equal(t, 3, tr.Depth())
	assert.Equal(t, 0, NewTrie().Depth())
}

func TestTrieText(t *testing.T) {
	assert.Equal(t, "(..)", NewTrie().String())

	tr := buildTrie(t, map[string]Outcome{"1": Dead, "01": Alive})
	assert.Equal(t, "((.a)d)", tr.String())

	parsed, err := ParseTrie(tr.String())
	require.NoError(t, err)
	assert.Equal(t, tr.Patterns(), parsed.Patterns())
}

func TestTrieTextRoundTripPreservesTraversal(t *testing.T) {
	tr := buildTrie(t, map[string]Outcome{
		"000":  Alive,
		"0011": Dead,
		"01":   Outcome('x'),
		"1101": Same,
	})
	parsed, err := ParseTrie(tr.String())
	require.NoError(t, err)
	assert.Equal(t, tr.String(), parsed.String())

	// every prefix up to length 5 walks both tries identically
	for length := 1; length <= 5; length++ {
		for v := 0; v < 1<<length; v++ {
			a, b := tr.Cursor(), parsed.Cursor()
			for i := length - 1; i >= 0; i-- {
				bit := byte('0' + (v>>i)&1)
				require.Equal(t, a.Step(bit), b.Step(bit))
			}
		}
	}
}

func TestParseTrieErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"a",
		".",
		"(",
		"(..",
		"(.a",
		"(..))",
		"(..)x",
		"(.1)",
		"(.|)",
		"(...)",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseTrie(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrFormat)
			var fe *FormatError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, "trie", fe.Field)
		})
	}
}
