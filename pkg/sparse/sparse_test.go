package sparse

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

func naiveRank(v *bitvector.Vector, p uint64) uint64 {
	var c uint64
	for i := uint64(0); i < p && i < v.Len(); i++ {
		if v.Get(i) {
			c++
		}
	}
	return c
}

func TestSparseSelectMatchesOnePositions(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	v := randomVector(t, 3000, rng, 5)

	ss, err := NewSparseSelect(v)
	require.NoError(t, err)

	var r uint64
	for p := uint64(0); p < v.Len(); p++ {
		if v.Get(p) {
			assert.Equal(t, p, ss.Select(r))
			r++
		}
	}
	assert.Equal(t, v.Count(), ss.Count())
}

func TestSparseRankMatchesNaive(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	v := randomVector(t, 2000, rng, 8)

	sr, err := NewSparseRank(v)
	require.NoError(t, err)

	for p := uint64(0); p <= v.Len(); p++ {
		assert.Equal(t, naiveRank(v, p), sr.Rank(p), "rank(%d)", p)
	}
	assert.Equal(t, v.Count(), sr.Rank(v.Len()))
}

func TestSparseRankSelectShareLayout(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	v := randomVector(t, 5000, rng, 10)

	primary, err := NewSparseSelect(v)
	require.NoError(t, err)
	secondary := FromSelect(primary)

	for p := uint64(0); p <= v.Len(); p += 17 {
		assert.Equal(t, naiveRank(v, p), secondary.Rank(p))
	}
	assert.Positive(t, primary.NumBits())   // primary owns the elias-fano layout cost
	assert.Positive(t, secondary.NumBits()) // secondary adds its own select-zero index

	primaryRank, err := NewSparseRank(v)
	require.NoError(t, err)
	derivedSelect := FromRank(primaryRank)
	assert.Zero(t, derivedSelect.NumBits())

	var r uint64
	for p := uint64(0); p < v.Len(); p++ {
		if v.Get(p) {
			assert.Equal(t, p, derivedSelect.Select(r))
			r++
		}
	}
}

func TestSparseSeedScenario_10110000(t *testing.T) {
	b, err := bitvector.NewBuilder(7)
	require.NoError(t, err)
	b.Set(0)
	b.Set(2)
	b.Set(3)
	v := b.Build()

	sr, err := NewSparseRank(v)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), sr.Rank(4))

	ss, err := NewSparseSelect(v)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), ss.Select(2))
}

func TestSparseEmptyAndAllZero(t *testing.T) {
	b, err := bitvector.NewBuilder(100)
	require.NoError(t, err)
	v := b.Build()
	sr, err := NewSparseRank(v)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), sr.Rank(50))
	assert.Equal(t, uint64(0), sr.Rank(100))

	ss, err := NewSparseSelect(v)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), ss.Count())
}
