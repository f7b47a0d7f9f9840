// Package rank implements the three rank structures spec.md describes:
// Rank9 (25% space overhead, the densest counter layout), Rank11 (6.25%
// overhead, a short bounded scan per query) and Rank16 (~18.75% overhead, no
// scan at all). All three answer the same rank contract and must agree with
// each other and with a naive popcount-based rank on every input.
package rank

import (
	"math/bits"

	"github.com/xflash-panda/succinct/pkg/bitvector"
)

// Rank9 is the classic two-level rank index: one 64-bit absolute count and
// seven packed 9-bit sub-block deltas per 512-bit block.
type Rank9 struct {
	words   []uint64
	n       uint64
	count   uint64
	lastOne int64 // -1 if the sequence has no one bits
	counts  []uint64
}

// NewRank9 builds a Rank9 index over b. Building is single-threaded and
// allocates; the returned structure is immutable and safe for concurrent
// queries.
func NewRank9(b bitvector.Bits) *Rank9 {
	words := b.Words()
	numGroups := (len(words) + 7) / 8
	counts := make([]uint64, numGroups*2)

	var cum uint64
	lastOne := int64(-1)
	for g := 0; g < numGroups; g++ {
		counts[2*g] = cum
		var sub uint64
		var inGroup uint64
		for j := 0; j < 8; j++ {
			wi := g*8 + j
			if wi >= len(words) {
				break
			}
			w := words[wi]
			if w != 0 {
				lastOne = int64(wi)*64 + int64(bits.Len64(w)-1)
			}
			if j > 0 {
				sub |= inGroup << uint((j-1)*9)
			}
			c := uint64(bits.OnesCount64(w))
			inGroup += c
			cum += c
		}
		counts[2*g+1] = sub
	}

	return &Rank9{words: words, n: b.Len(), count: cum, lastOne: lastOne, counts: counts}
}

func (r *Rank9) Rank(p uint64) uint64 {
	if int64(p) > r.lastOne {
		return r.count
	}
	w := p / 64
	g := w / 8
	absolute := r.counts[2*g]
	subcounts := r.counts[2*g+1]
	offset := int(w%8) - 1

	var sub uint64
	if offset >= 0 {
		sub = (subcounts >> uint(offset*9)) & 0x1FF
	}

	mask := (uint64(1) << (p % 64)) - 1
	return absolute + sub + uint64(bits.OnesCount64(r.words[w]&mask))
}

func (r *Rank9) RankZero(p uint64) uint64 { return p - r.Rank(p) }

func (r *Rank9) RankRange(lo, hi uint64) uint64 { return r.Rank(hi) - r.Rank(lo) }

func (r *Rank9) Count() uint64 { return r.count }

func (r *Rank9) Len() uint64 { return r.n }

// NumBits returns the size in bits of the auxiliary counter array only.
func (r *Rank9) NumBits() uint64 { return uint64(len(r.counts)) * 64 }

// The accessors below expose Rank9's internal group layout to structures
// built directly on top of it (Select9, HintedBsearchSelect) so they can
// reuse its counters instead of re-deriving them, per spec.md's data-flow
// description of L2 being built from L1.

// NumGroups returns the number of 8-word (512-bit) groups.
func (r *Rank9) NumGroups() int { return len(r.counts) / 2 }

// GroupAbsolute returns the absolute one-count before group g.
func (r *Rank9) GroupAbsolute(g int) uint64 { return r.counts[2*g] }

// GroupSubcounts returns group g's packed seven 9-bit sub-block deltas.
func (r *Rank9) GroupSubcounts(g int) uint64 { return r.counts[2*g+1] }

// Words returns the underlying word slice Rank9 was built over.
func (r *Rank9) Words() []uint64 { return r.words }
