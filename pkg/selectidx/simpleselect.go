// Package selectidx implements the L2 select structures: SimpleSelect and
// SimpleSelectZero (two-level inventory with a spill list for skewed
// densities), Select9 (an inventory layered on top of a Rank9 index) and
// HintedBsearchSelect (binary search over Rank9's own counters, no extra
// inventory at all).
package selectidx

import (
	"math/bits"

	"github.com/xflash-panda/succinct/pkg/bitops"
	"github.com/xflash-panda/succinct/pkg/bitvector"
)

const (
	maxInventorySize = 8192
	onesPerSub16     = 32   // every 32nd one within a dense block gets a 16-bit offset
	maxSpan          = 1 << 16
	sparseSignBit    = uint64(1) << 63
)

// SimpleSelect answers select queries in practical constant time at any
// density via a two-level inventory: a coarse inventory sampling every
// onesPerInventory-th one, and, per inventory block, either a dense
// sub-inventory of 16-bit offsets or — when the span to the next inventory
// point exceeds maxSpan — a spill list of exact positions.
type SimpleSelect struct {
	words     []uint64
	count     uint64
	logL      uint   // log2(onesPerInventory)
	l         uint64 // onesPerInventory = 1<<logL
	subPerBlk uint64 // capacity of the dense sub-inventory region per block

	inventory []uint64 // position of the (i*l)-th one; sign bit set => sparse
	sub       []uint16 // flat, numInvBlocks*subPerBlk entries; unused in sparse blocks
	spillBase []int64  // per inventory block: index into spill, or -1 if dense
	spill     []uint64 // absolute positions for sparse blocks, concatenated
}

// NewSimpleSelect builds a SimpleSelect index over b.
func NewSimpleSelect(b bitvector.Bits) *SimpleSelect {
	words := b.Words()
	count := b.Count()

	logL := uint(0)
	for count > 0 && (count-1)>>logL >= maxInventorySize {
		logL++
	}
	l := uint64(1) << logL

	numInv := uint64(0)
	if count > 0 {
		numInv = (count-1)/l + 1
	}
	subPerBlk := (l + onesPerSub16 - 1) / onesPerSub16

	s := &SimpleSelect{
		words:     words,
		count:     count,
		logL:      logL,
		l:         l,
		subPerBlk: subPerBlk,
		inventory: make([]uint64, numInv+1),
		sub:       make([]uint16, numInv*subPerBlk),
		spillBase: make([]int64, numInv),
	}
	for i := range s.spillBase {
		s.spillBase[i] = -1
	}
	if count == 0 {
		s.inventory[0] = b.Len()
		return s
	}

	positions := make([]uint64, 0, l)
	rank := uint64(0)
	block := uint64(0)
	flushBlock := func(nextBlockStart uint64) {
		if len(positions) == 0 {
			return
		}
		base := positions[0]
		s.inventory[block] = base
		span := nextBlockStart - base
		if span >= maxSpan {
			s.spillBase[block] = int64(len(s.spill))
			s.spill = append(s.spill, positions...)
			s.inventory[block] |= sparseSignBit
		} else {
			for j := uint64(0); j*onesPerSub16 < uint64(len(positions)); j++ {
				off := positions[j*onesPerSub16] - base
				s.sub[block*subPerBlk+j] = uint16(off)
			}
		}
		positions = positions[:0]
		block++
	}

	for wi, w := range words {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			pos := uint64(wi)*64 + uint64(b)
			if rank%l == 0 && rank > 0 {
				flushBlock(pos)
			}
			positions = append(positions, pos)
			rank++
			w &= w - 1
		}
	}
	flushBlock(b.Len())
	s.inventory[numInv] = b.Len()

	return s
}

// Select returns the position of the r-th (0-based) one bit. Behavior for
// r >= Count() is undefined; this implementation returns the logical length
// of the sequence rather than reading out of bounds.
func (s *SimpleSelect) Select(r uint64) uint64 {
	if r >= s.count {
		return s.inventory[len(s.inventory)-1]
	}
	i := r >> s.logL
	raw := s.inventory[i]
	base := raw &^ sparseSignBit
	within := r - i<<s.logL

	if raw&sparseSignBit != 0 {
		return s.spill[uint64(s.spillBase[i])+within]
	}

	subIdx := within / onesPerSub16
	off := s.sub[i*s.subPerBlk+subIdx]
	start := base + uint64(off)
	residual := within % onesPerSub16
	if residual == 0 {
		return start
	}
	return advanceOnes(s.words, start, residual-1)
}

// BulkSelect writes Select(r), Select(r+1), ..., Select(r+len(dest)-1) into
// dest by locating the first position with Select and then sweeping forward
// clearing the lowest set bit of a word window, amortized O(1) per output
// bit under uniform density.
func (s *SimpleSelect) BulkSelect(r uint64, dest []uint64) {
	if len(dest) == 0 {
		return
	}
	pos := s.Select(r)
	dest[0] = pos
	wi := pos / 64
	w := maskAtOrBelow(s.words[wi], uint(pos%64))
	for i := 1; i < len(dest); i++ {
		for w == 0 {
			wi++
			w = s.words[wi]
		}
		b := bits.TrailingZeros64(w)
		dest[i] = wi*64 + uint64(b)
		w &= w - 1
	}
}

// NumBits returns the size in bits of the inventory, sub-inventory and
// spill arrays.
func (s *SimpleSelect) NumBits() uint64 {
	return uint64(len(s.inventory))*64 +
		uint64(len(s.sub))*16 +
		uint64(len(s.spillBase))*64 +
		uint64(len(s.spill))*64
}

// advanceOnes returns the position of the k-th (0-based) one bit strictly
// after position from.
func advanceOnes(words []uint64, from uint64, k uint64) uint64 {
	wi := from / 64
	w := maskAtOrBelow(words[wi], uint(from%64))
	for {
		c := uint64(bits.OnesCount64(w))
		if c > k {
			return wi*64 + uint64(bitops.SelectInWord(w, uint(k)))
		}
		k -= c
		wi++
		w = words[wi]
	}
}

// maskAtOrBelow clears bit pos and every bit below it in w.
func maskAtOrBelow(w uint64, pos uint) uint64 {
	if pos == 63 {
		return 0
	}
	return w &^ ((uint64(1) << (pos + 1)) - 1)
}
