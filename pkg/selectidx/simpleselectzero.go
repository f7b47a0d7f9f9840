package selectidx

import "github.com/xflash-panda/succinct/pkg/bitvector"

// SimpleSelectZero mirrors SimpleSelect over the complement sequence. It is
// built by complementing the backing words and re-masking the logical tail
// so that padding bits beyond the sequence's length are never reported as
// zero positions, then delegating to an ordinary SimpleSelect.
type SimpleSelectZero struct {
	inner *SimpleSelect
}

// NewSimpleSelectZero builds a SimpleSelectZero index over b.
func NewSimpleSelectZero(b bitvector.Bits) *SimpleSelectZero {
	words := b.Words()
	complement := make([]uint64, len(words))
	for i, w := range words {
		complement[i] = ^w
	}
	cv, err := bitvector.NewFromWords(complement, b.Len())
	if err != nil {
		// b.Len() already cleared this same capacity check when b itself was
		// built; complementing its words cannot change its length.
		panic(err)
	}
	return &SimpleSelectZero{inner: NewSimpleSelect(cv)}
}

// SelectZero returns the position of the r-th (0-based) zero bit.
func (s *SimpleSelectZero) SelectZero(r uint64) uint64 { return s.inner.Select(r) }

// BulkSelectZero is the SelectZero analogue of SimpleSelect.BulkSelect.
func (s *SimpleSelectZero) BulkSelectZero(r uint64, dest []uint64) { s.inner.BulkSelect(r, dest) }

func (s *SimpleSelectZero) NumBits() uint64 { return s.inner.NumBits() }
