package rank

import (
	"math/bits"

	"github.com/xflash-panda/succinct/pkg/bitvector"
)

const (
	rank16SuperWords = 16 // 1024-bit super-block
	rank16SubWords   = 2  // 128-bit sub-block
	rank16SubFields  = 7  // boundaries at word offsets 2,4,...,14
)

// Rank16 spends ~18.75% overhead (one 64-bit absolute count plus 128 bits of
// packed 16-bit sub-block deltas per 1024-bit super-block) to answer a query
// with no scanning loop at all: sub-blocks are 2 words wide, so at most one
// extra word popcount is ever needed.
type Rank16 struct {
	words   []uint64
	n       uint64
	count   uint64
	lastOne int64
	super   []uint64
	sub     [][2]uint64 // two packed words of 16-bit fields per super-block
}

func NewRank16(b bitvector.Bits) *Rank16 {
	words := b.Words()
	numSupers := (len(words) + rank16SuperWords - 1) / rank16SuperWords
	super := make([]uint64, numSupers)
	sub := make([][2]uint64, numSupers)

	var cum uint64
	lastOne := int64(-1)
	for s := 0; s < numSupers; s++ {
		super[s] = cum
		var packed [2]uint64
		var inSuper uint64
		for j := 0; j < rank16SuperWords; j++ {
			wi := s*rank16SuperWords + j
			if wi >= len(words) {
				break
			}
			w := words[wi]
			if w != 0 {
				lastOne = int64(wi)*64 + int64(bits.Len64(w)-1)
			}
			inSuper += uint64(bits.OnesCount64(w))
			cum += uint64(bits.OnesCount64(w))
			if (j+1)%rank16SubWords == 0 {
				field := (j + 1) / rank16SubWords
				if field <= rank16SubFields {
					k := field - 1
					packed[k/4] |= (inSuper & 0xFFFF) << uint((k%4)*16)
				}
			}
		}
		sub[s] = packed
	}

	return &Rank16{words: words, n: b.Len(), count: cum, lastOne: lastOne, super: super, sub: sub}
}

func (r *Rank16) Rank(p uint64) uint64 {
	if int64(p) > r.lastOne {
		return r.count
	}
	wi := p / 64
	s := wi / rank16SuperWords
	posInSuper := wi % rank16SuperWords
	subIdx := posInSuper / rank16SubWords // 0..7

	var subCount uint64
	if subIdx > 0 {
		k := subIdx - 1
		subCount = (r.sub[s][k/4] >> uint((k%4)*16)) & 0xFFFF
	}

	var extra uint64
	start := s*rank16SuperWords + subIdx*rank16SubWords
	for k := start; uint64(k) < wi; k++ {
		extra += uint64(bits.OnesCount64(r.words[k]))
	}

	mask := (uint64(1) << (p % 64)) - 1
	return r.super[s] + subCount + extra + uint64(bits.OnesCount64(r.words[wi]&mask))
}

func (r *Rank16) RankZero(p uint64) uint64      { return p - r.Rank(p) }
func (r *Rank16) RankRange(lo, hi uint64) uint64 { return r.Rank(hi) - r.Rank(lo) }
func (r *Rank16) Count() uint64                  { return r.count }
func (r *Rank16) Len() uint64                    { return r.n }
func (r *Rank16) NumBits() uint64 {
	return uint64(len(r.super))*64 + uint64(len(r.sub))*128
}
