// Package eliasfano implements the Elias-Fano compressed representation of a
// monotone (non-decreasing) sequence of at most 2^63 uint64 values bounded
// by a universe N: each value is split into a high part unary-coded into a
// SimpleSelect-indexed bit sequence and a low part stored as a flat array of
// fixed-width fields.
package eliasfano

import (
	"fmt"
	"math/bits"

	"github.com/xflash-panda/succinct/pkg/bitvector"
	"github.com/xflash-panda/succinct/pkg/selectidx"
	"github.com/xflash-panda/succinct/pkg/succinct"
)

// List is a built (Ready-phase) Elias-Fano monotone sequence.
type List struct {
	m, universe uint64
	l           uint
	lowerWords  []uint64
	upper       *bitvector.Vector
	selUpper    *selectidx.SimpleSelect
}

// Len returns the number of elements in the sequence.
func (f *List) Len() uint64 { return f.m }

// lowBits computes floor(log2(universe/m)), or 0 when m is 0 or universe/m
// is 0 (universe < m).
func lowBits(universe, m uint64) uint {
	if m == 0 {
		return 0
	}
	ratio := universe / m
	if ratio == 0 {
		return 0
	}
	return uint(bits.Len64(ratio) - 1)
}

// Get returns the i-th element of the sequence.
func (f *List) Get(i uint64) uint64 {
	hi := f.selUpper.Select(i) - i
	lo := getField(f.lowerWords, i, f.l)
	return hi<<f.l | lo
}

// GetDelta returns Get(i) - Get(i-1), treating Get(-1) as 0.
func (f *List) GetDelta(i uint64) uint64 {
	if i == 0 {
		return f.Get(0)
	}
	return f.Get(i) - f.Get(i-1)
}

// GetBulk fills dest with Get(start), Get(start+1), ..., exercising
// SimpleSelect's bulk-select path for the high bits and streaming the low
// bits in a tight loop.
func (f *List) GetBulk(start uint64, dest []uint64) {
	if len(dest) == 0 {
		return
	}
	f.selUpper.BulkSelect(start, dest)
	for j := range dest {
		hi := dest[j] - (start + uint64(j))
		lo := getField(f.lowerWords, start+uint64(j), f.l)
		dest[j] = hi<<f.l | lo
	}
}

// CoreBits returns just the raw storage cost: m*l lower bits plus the
// logical length of the upper unary sequence, matching spec.md's worked
// example arithmetic (it does not include the select index built over the
// upper sequence).
func (f *List) CoreBits() uint64 {
	return f.m*uint64(f.l) + f.upper.Len()
}

// NumBits returns this structure's total auxiliary bit cost: lower bits,
// upper bits and the SimpleSelect index built over them.
func (f *List) NumBits() uint64 {
	return uint64(len(f.lowerWords))*64 + f.upper.Len() + f.selUpper.NumBits()
}

// UpperBits exposes the unary-coded high-bit sequence so pkg/sparse can build
// a SimpleSelectZero over the same physical layout (§5's shared-ownership
// from_rank/from_select factories).
func (f *List) UpperBits() *bitvector.Vector { return f.upper }

// LowWidth returns l, the number of low bits stored per element.
func (f *List) LowWidth() uint { return f.l }

// Universe returns N, the exclusive upper bound supplied at construction.
func (f *List) Universe() uint64 { return f.universe }

// Builder assembles an Elias-Fano List from a monotone stream of values
// whose count and universe are known up front.
type Builder struct {
	m, universe uint64
	l           uint
	lowerWords  []uint64
	upperBits   *bitvector.Builder
	next        uint64
	prev        uint64
	started     bool
}

// maxCapacity is the largest element count this package's builders will
// accept, per spec.md's 2^63-element capacity ceiling on monotone lists.
const maxCapacity = uint64(1) << 63

// NewBuilder creates a Builder for m values in [0, universe). Returns
// succinct.ErrCapacityExceeded if m exceeds 2^63 elements.
func NewBuilder(m, universe uint64) (*Builder, error) {
	if m > maxCapacity {
		return nil, fmt.Errorf("%w: %d elements exceeds the 2^63 element capacity", succinct.ErrCapacityExceeded, m)
	}
	l := lowBits(universe, m)
	upperLen := m + (universe >> l) + 2
	upperBits, err := bitvector.NewBuilder(upperLen)
	if err != nil {
		return nil, err
	}
	return &Builder{
		m:          m,
		universe:   universe,
		l:          l,
		lowerWords: make([]uint64, fieldWords(m, l)),
		upperBits:  upperBits,
	}, nil
}

// Add appends the next value of the monotone sequence. Returns
// succinct.ErrInvalidInput if the sequence is not monotone or more than m
// values are added.
func (b *Builder) Add(u uint64) error {
	if b.next >= b.m {
		return fmt.Errorf("%w: more than %d elements added to elias-fano builder", succinct.ErrInvalidInput, b.m)
	}
	if b.started && u < b.prev {
		return fmt.Errorf("%w: non-monotone value %d after %d at index %d", succinct.ErrInvalidInput, u, b.prev, b.next)
	}
	if u >= b.universe {
		return fmt.Errorf("%w: value %d at index %d exceeds declared universe %d", succinct.ErrInvalidInput, u, b.next, b.universe)
	}
	hi := u >> b.l
	b.upperBits.Set(hi + b.next)
	setField(b.lowerWords, b.next, b.l, u)
	b.prev = u
	b.started = true
	b.next++
	return nil
}

// Build finalizes the List. Returns succinct.ErrInvalidInput if fewer than m
// values were added.
func (b *Builder) Build() (*List, error) {
	if b.next != b.m {
		return nil, fmt.Errorf("%w: declared %d elements but only %d were added", succinct.ErrInvalidInput, b.m, b.next)
	}
	upper := b.upperBits.Build()
	return &List{
		m:          b.m,
		universe:   b.universe,
		l:          b.l,
		lowerWords: b.lowerWords,
		upper:      upper,
		selUpper:   selectidx.NewSimpleSelect(upper),
	}, nil
}

// NewFromSlice builds a List from an already-materialized monotone slice.
func NewFromSlice(values []uint64, universe uint64) (*List, error) {
	b, err := NewBuilder(uint64(len(values)), universe)
	if err != nil {
		return nil, err
	}
	for _, v := range values {
		if err := b.Add(v); err != nil {
			return nil, err
		}
	}
	return b.Build()
}
