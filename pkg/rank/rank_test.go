package rank

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xflash-panda/succinct/internal/testvectors"
	"github.com/xflash-panda/succinct/pkg/bitvector"
)

func naiveRank(v *bitvector.Vector, p uint64) uint64 {
	var c uint64
	for i := uint64(0); i < p; i++ {
		if v.Get(i) {
			c++
		}
	}
	return c
}

func randomVector(t *testing.T, n uint64, rng *rand.Rand) *bitvector.Vector {
	t.Helper()
	b, err := bitvector.NewBuilder(n)
	require.NoError(t, err)
	for i := uint64(0); i < n; i++ {
		if rng.Intn(2) == 0 {
			b.Set(i)
		}
	}
	return b.Build()
}

func checkAllAgree(t *testing.T, v *bitvector.Vector) {
	t.Helper()
	r9 := NewRank9(v)
	r11 := NewRank11(v)
	r16 := NewRank16(v)
	for p := uint64(0); p <= v.Len(); p++ {
		want := naiveRank(v, p)
		require.Equal(t, want, r9.Rank(p), "rank9 mismatch at p=%d", p)
		require.Equal(t, want, r11.Rank(p), "rank11 mismatch at p=%d", p)
		require.Equal(t, want, r16.Rank(p), "rank16 mismatch at p=%d", p)
	}
	assert.Equal(t, v.Count(), r9.Count())
	assert.Equal(t, v.Count(), r9.Rank(v.Len()))
}

func TestRankBoundaryShapes(t *testing.T) {
	shapes := map[string]func(t *testing.T) *bitvector.Vector{
		"empty": func(t *testing.T) *bitvector.Vector {
			b, err := bitvector.NewBuilder(0)
			require.NoError(t, err)
			return b.Build()
		},
		"allOnes": func(t *testing.T) *bitvector.Vector {
			b, err := bitvector.NewBuilder(200)
			require.NoError(t, err)
			for i := uint64(0); i < 200; i++ {
				b.Set(i)
			}
			return b.Build()
		},
		"allZeroes": func(t *testing.T) *bitvector.Vector {
			b, err := bitvector.NewBuilder(200)
			require.NoError(t, err)
			return b.Build()
		},
		"singleAt0": func(t *testing.T) *bitvector.Vector {
			b, err := bitvector.NewBuilder(100)
			require.NoError(t, err)
			b.Set(0)
			return b.Build()
		},
		"singleAtNMinus1": func(t *testing.T) *bitvector.Vector {
			b, err := bitvector.NewBuilder(100)
			require.NoError(t, err)
			b.Set(99)
			return b.Build()
		},
		"singleAt63": func(t *testing.T) *bitvector.Vector {
			b, err := bitvector.NewBuilder(200)
			require.NoError(t, err)
			b.Set(63)
			return b.Build()
		},
		"singleAt64": func(t *testing.T) *bitvector.Vector {
			b, err := bitvector.NewBuilder(200)
			require.NoError(t, err)
			b.Set(64)
			return b.Build()
		},
		"alternating": func(t *testing.T) *bitvector.Vector {
			b, err := bitvector.NewBuilder(512)
			require.NoError(t, err)
			for i := uint64(0); i < 512; i += 2 {
				b.Set(i + 1)
			}
			return b.Build()
		},
	}
	for name, build := range shapes {
		t.Run(name, func(t *testing.T) {
			checkAllAgree(t, build(t))
		})
	}
}

func TestRankRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	sizes := []uint64{1, 7, 63, 64, 65, 511, 512, 513, 1000, 4096, 65537}
	for _, n := range sizes {
		checkAllAgree(t, randomVector(t, n, rng))
	}
}

func TestRankSeedScenario_AlternatingWord(t *testing.T) {
	// B = 0xAAAAAAAAAAAAAAAA (n=64): rank(i) = i/2 for all i.
	v, err := bitvector.NewFromWords([]uint64{0xAAAAAAAAAAAAAAAA}, 64)
	require.NoError(t, err)
	r9 := NewRank9(v)
	for i := uint64(0); i <= 64; i++ {
		assert.Equal(t, i/2, r9.Rank(i), "rank(%d)", i)
	}
}

func TestRankSeedScenario_10110000(t *testing.T) {
	b, err := bitvector.NewBuilder(7)
	require.NoError(t, err)
	b.Set(0)
	b.Set(2)
	b.Set(3)
	v := b.Build()
	r9 := NewRank9(v)
	assert.Equal(t, uint64(3), r9.Rank(4))
	assert.Equal(t, uint64(3), r9.Count())
}

func TestRankSeedScenario_FromFixture(t *testing.T) {
	vecs, err := testvectors.Load("../../internal/testvectors/testdata/vectors.yaml")
	require.NoError(t, err)
	seed := vecs.RankSeed10110000

	b, err := bitvector.NewBuilder(uint64(seed.N))
	require.NoError(t, err)
	for i, c := range seed.Bits {
		if c == '1' {
			b.Set(uint64(i))
		}
	}
	v := b.Build()
	r9 := NewRank9(v)
	assert.Equal(t, seed.RankAt4, r9.Rank(4))
	assert.Equal(t, uint64(seed.Count), r9.Count())
	assert.Equal(t, seed.LastOne, r9.lastOne)
}

func TestRankInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	v := randomVector(t, 2000, rng)
	r9 := NewRank9(v)
	assert.Equal(t, uint64(0), r9.Rank(0))
	assert.Equal(t, v.Count(), r9.Rank(v.Len()))
	for p := uint64(0); p <= v.Len(); p++ {
		assert.LessOrEqual(t, r9.Rank(p), p)
		assert.Equal(t, p, r9.RankZero(p)+r9.Rank(p))
	}
}
