// Package sparse implements SparseRank and SparseSelect: a rank/select pair
// that shares a single Elias-Fano physical layout over the positions of the
// set bits, exposing complementary operations on the same storage.
package sparse

import (
	"github.com/xflash-panda/succinct/internal/numeric"
	"github.com/xflash-panda/succinct/pkg/bitvector"
	"github.com/xflash-panda/succinct/pkg/eliasfano"
	"github.com/xflash-panda/succinct/pkg/selectidx"
)

// SparseSelect is an Elias-Fano list of the positions of the ones in a bit
// sequence. Select(r) is exactly the Elias-Fano get(r).
type SparseSelect struct {
	ef         *eliasfano.List
	ownsEFCost bool
}

// NewSparseSelect builds a standalone SparseSelect over b's one positions.
func NewSparseSelect(b bitvector.Bits) (*SparseSelect, error) {
	ef, err := buildPositions(b)
	if err != nil {
		return nil, err
	}
	return &SparseSelect{ef: ef, ownsEFCost: true}, nil
}

// FromRank builds a SparseSelect sharing r's physical layout. Its NumBits
// reports zero: the layout's cost is already attributed to r.
func FromRank(r *SparseRank) *SparseSelect {
	return &SparseSelect{ef: r.ef, ownsEFCost: false}
}

func (s *SparseSelect) Select(r uint64) uint64 { return s.ef.Get(r) }

func (s *SparseSelect) BulkSelect(r uint64, dest []uint64) { s.ef.GetBulk(r, dest) }

func (s *SparseSelect) Count() uint64 { return s.ef.Len() }

func (s *SparseSelect) NumBits() uint64 {
	if s.ownsEFCost {
		return s.ef.NumBits()
	}
	return 0
}

// SparseRank maintains a SimpleSelectZero over the same Elias-Fano
// upperBits sequence a SparseSelect would build, enabling rank by locating
// how many ones have high bits at or below p>>l and then linearly
// confirming against the exact stored values.
type SparseRank struct {
	ef         *eliasfano.List
	selZero    *selectidx.SimpleSelectZero
	ownsEFCost bool
}

// NewSparseRank builds a standalone SparseRank over b's one positions.
func NewSparseRank(b bitvector.Bits) (*SparseRank, error) {
	ef, err := buildPositions(b)
	if err != nil {
		return nil, err
	}
	return &SparseRank{
		ef:         ef,
		selZero:    selectidx.NewSimpleSelectZero(ef.UpperBits()),
		ownsEFCost: true,
	}, nil
}

// FromSelect builds a SparseRank sharing s's Elias-Fano layout, adding only
// a SimpleSelectZero over its upperBits. Its NumBits reports only that
// addition, not the shared layout's cost.
func FromSelect(s *SparseSelect) *SparseRank {
	return &SparseRank{
		ef:         s.ef,
		selZero:    selectidx.NewSimpleSelectZero(s.ef.UpperBits()),
		ownsEFCost: false,
	}
}

// Rank returns the number of ones in positions [0, p).
func (r *SparseRank) Rank(p uint64) uint64 {
	m := r.ef.Len()
	if m == 0 || p == 0 {
		return 0
	}
	if p > r.ef.Get(m-1) {
		return m
	}
	l := r.ef.LowWidth()
	h := p >> l
	pos := r.selZero.SelectZero(h) - h
	for pos > 0 && r.ef.Get(pos-1) >= p {
		pos--
	}
	return pos
}

// RankZero returns the number of zeroes in positions [0, p).
func (r *SparseRank) RankZero(p uint64) uint64 {
	p = numeric.Min(p, r.ef.Universe())
	return p - r.Rank(p)
}

// RankRange returns Rank(hi) - Rank(lo).
func (r *SparseRank) RankRange(lo, hi uint64) uint64 {
	return r.Rank(hi) - r.Rank(lo)
}

// Len returns the logical length of the underlying sequence.
func (r *SparseRank) Len() uint64 { return r.ef.Universe() }

func (r *SparseRank) Count() uint64 { return r.ef.Len() }

func (r *SparseRank) NumBits() uint64 {
	if r.ownsEFCost {
		return r.ef.NumBits() + r.selZero.NumBits()
	}
	return r.selZero.NumBits()
}

// buildPositions materializes b's one positions into an Elias-Fano list.
func buildPositions(b bitvector.Bits) (*eliasfano.List, error) {
	bld, err := eliasfano.NewBuilder(b.Count(), b.Len())
	if err != nil {
		return nil, err
	}
	for p := range b.IterOnes() {
		if err := bld.Add(p); err != nil {
			return nil, err
		}
	}
	return bld.Build()
}
