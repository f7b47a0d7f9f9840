package index

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xflash-panda/succinct/pkg/bitvector"
)

func randomVector(t *testing.T, n uint64, rng *rand.Rand, density int) *bitvector.Vector {
	t.Helper()
	b, err := bitvector.NewBuilder(n)
	require.NoError(t, err)
	for i := uint64(0); i < n; i++ {
		if rng.Intn(100) < density {
			b.Set(i)
		}
	}
	return b.Build()
}

func TestIndexBasics(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	v := randomVector(t, 8192, rng, 30)

	ix, err := New(v, WithSelect9(), WithHintedBsearch())
	require.NoError(t, err)

	assert.Equal(t, v.Count(), ix.Count())
	assert.Equal(t, v.Len(), ix.Len())
	assert.Equal(t, uint64(0), ix.Rank(0))
	assert.Equal(t, ix.Count(), ix.Rank(ix.Len()))

	for r := uint64(0); r < ix.Count(); r += 37 {
		p := ix.Select(r)
		require.True(t, v.Get(p))
		assert.Equal(t, r, ix.Rank(p))

		s9, ok := ix.Select9()
		require.True(t, ok)
		assert.Equal(t, p, s9.Select(r))

		hb, ok := ix.HintedBsearchSelect()
		require.True(t, ok)
		assert.Equal(t, p, hb.Select(r))
	}

	zeroCount := ix.Len() - ix.Count()
	for r := uint64(0); r < zeroCount; r += 41 {
		p := ix.SelectZero(r)
		require.False(t, v.Get(p))
	}

	assert.Equal(t, ix.Len(), ix.RankZero(ix.Len())+ix.Rank(ix.Len()))
}

func TestIndexWithoutOptionalSubstructures(t *testing.T) {
	rng := rand.New(rand.NewSource(22))
	v := randomVector(t, 2000, rng, 10)

	ix, err := New(v)
	require.NoError(t, err)

	_, ok := ix.Select9()
	assert.False(t, ok)
	_, ok = ix.HintedBsearchSelect()
	assert.False(t, ok)
	assert.Positive(t, ix.NumBits())
}
