package rank

import (
	"math/bits"

	"github.com/xflash-panda/succinct/pkg/bitvector"
)

const (
	rank11SuperWords = 32
	rank11SubWords   = 6
	rank11SubFields  = 5 // boundaries at word offsets 6, 12, 18, 24, 30
)

// Rank11 trades Rank9's 25% overhead for 6.25%: 32-word super-blocks with a
// 64-bit absolute count and five packed 12-bit sub-block counts every 6
// words. Answering a query costs one popcount of the target word's mask plus
// at most rank11SubFields extra whole-word popcounts.
type Rank11 struct {
	words   []uint64
	n       uint64
	count   uint64
	lastOne int64
	super   []uint64 // absolute count per super-block
	sub     []uint64 // packed 12-bit deltas per super-block
}

func NewRank11(b bitvector.Bits) *Rank11 {
	words := b.Words()
	numSupers := (len(words) + rank11SuperWords - 1) / rank11SuperWords
	super := make([]uint64, numSupers)
	sub := make([]uint64, numSupers)

	var cum uint64
	lastOne := int64(-1)
	for s := 0; s < numSupers; s++ {
		super[s] = cum
		var packed uint64
		var inSuper uint64
		for j := 0; j < rank11SuperWords; j++ {
			wi := s*rank11SuperWords + j
			if wi >= len(words) {
				break
			}
			w := words[wi]
			if w != 0 {
				lastOne = int64(wi)*64 + int64(bits.Len64(w)-1)
			}
			inSuper += uint64(bits.OnesCount64(w))
			cum += uint64(bits.OnesCount64(w))
			if (j+1)%rank11SubWords == 0 {
				field := (j + 1) / rank11SubWords
				if field <= rank11SubFields {
					packed |= (inSuper & 0xFFF) << uint((field-1)*12)
				}
			}
		}
		sub[s] = packed
	}

	return &Rank11{words: words, n: b.Len(), count: cum, lastOne: lastOne, super: super, sub: sub}
}

func (r *Rank11) Rank(p uint64) uint64 {
	if int64(p) > r.lastOne {
		return r.count
	}
	wi := p / 64
	s := wi / rank11SuperWords
	posInSuper := wi % rank11SuperWords
	subIdx := posInSuper / rank11SubWords // 0..5

	var subCount uint64
	if subIdx > 0 {
		subCount = (r.sub[s] >> uint((subIdx-1)*12)) & 0xFFF
	}

	var extra uint64
	start := s*rank11SuperWords + subIdx*rank11SubWords
	for k := start; uint64(k) < wi; k++ {
		extra += uint64(bits.OnesCount64(r.words[k]))
	}

	mask := (uint64(1) << (p % 64)) - 1
	return r.super[s] + subCount + extra + uint64(bits.OnesCount64(r.words[wi]&mask))
}

func (r *Rank11) RankZero(p uint64) uint64      { return p - r.Rank(p) }
func (r *Rank11) RankRange(lo, hi uint64) uint64 { return r.Rank(hi) - r.Rank(lo) }
func (r *Rank11) Count() uint64                  { return r.count }
func (r *Rank11) Len() uint64                    { return r.n }
func (r *Rank11) NumBits() uint64 {
	return uint64(len(r.super)+len(r.sub)) * 64
}
