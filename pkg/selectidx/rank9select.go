package selectidx

import (
	"sort"

	"github.com/xflash-panda/succinct/internal/numeric"
	"github.com/xflash-panda/succinct/pkg/bitops"
	"github.com/xflash-panda/succinct/pkg/rank"
)

// rank9Groups is the minimal view Select9 and HintedBsearchSelect need from
// a Rank9 index: its group counters and underlying words.
type rank9Groups interface {
	NumGroups() int
	GroupAbsolute(g int) uint64
	GroupSubcounts(g int) uint64
	Words() []uint64
}

var _ rank9Groups = (*rank.Rank9)(nil)

// locateInGroupRange finds, within groups [lo, hi], the group g whose
// absolute count is the largest not exceeding r, then walks g's seven
// packed 9-bit sub-block deltas (at most 7 comparisons — the same bound
// spec.md's Rank9 rank equation uses) and finally the exact bit with
// bitops.SelectInWord.
func locateInGroupRange(g9 rank9Groups, lo, hi int, r uint64) uint64 {
	g := lo + sort.Search(hi-lo+1, func(i int) bool {
		return g9.GroupAbsolute(lo+i) > r
	}) - 1
	if g < lo {
		g = lo
	}

	absolute := g9.GroupAbsolute(g)
	subcounts := g9.GroupSubcounts(g)
	remaining := r - absolute

	words := g9.Words()
	wordOffset := 0
	var prev uint64
	for o := 1; o <= 7 && g*8+o < len(words); o++ {
		field := (subcounts >> uint((o-1)*9)) & 0x1FF
		if field > remaining {
			break
		}
		prev = field
		wordOffset = o
	}

	wordIndex := g*8 + wordOffset
	within := remaining - prev
	return uint64(wordIndex)*64 + uint64(bitops.SelectInWord(words[wordIndex], uint(within)))
}

// Select9 is a two-level select index built directly on a Rank9 structure's
// own counters: a coarse inventory samples every 512th one to narrow the
// search to a short run of Rank9 groups, then locateInGroupRange finishes
// the lookup.
type Select9 struct {
	r9        rank9Groups
	inventory []int // group index containing the (i*512)-th one
	count     uint64
}

const select9Stride = 512

// NewSelect9 builds a Select9 index on top of an already-built Rank9.
func NewSelect9(r9 *rank.Rank9) *Select9 {
	s := &Select9{r9: r9, count: r9.Count()}
	numInv := 0
	if s.count > 0 {
		numInv = int((s.count-1)/select9Stride) + 1
	}
	s.inventory = make([]int, numInv+1)
	numGroups := r9.NumGroups()
	g := 0
	for i := 0; i < numInv; i++ {
		target := uint64(i) * select9Stride
		for g+1 < numGroups && r9.GroupAbsolute(g+1) <= target {
			g++
		}
		s.inventory[i] = g
	}
	s.inventory[numInv] = numGroups - 1
	if numGroups == 0 {
		s.inventory[numInv] = 0
	}
	return s
}

func (s *Select9) Select(r uint64) uint64 {
	i := int(r / select9Stride)
	lo := s.inventory[i]
	hi := numeric.Clamp(s.inventory[i+1], lo, s.r9.NumGroups()-1)
	return locateInGroupRange(s.r9, lo, hi, r)
}

func (s *Select9) BulkSelect(r uint64, dest []uint64) {
	words := s.r9.Words()
	for i := range dest {
		if i == 0 {
			dest[0] = s.Select(r)
			continue
		}
		prev := dest[i-1]
		dest[i] = advanceOnes(words, prev, 0)
	}
}

func (s *Select9) NumBits() uint64 { return uint64(len(s.inventory)) * 64 }

// HintedBsearchSelect answers select purely by binary search over an
// existing Rank9's group counters, with no inventory of its own at all.
type HintedBsearchSelect struct {
	r9 rank9Groups
}

// NewHintedBsearchSelect wraps r9; it adds zero bits of its own structure.
func NewHintedBsearchSelect(r9 *rank.Rank9) *HintedBsearchSelect {
	return &HintedBsearchSelect{r9: r9}
}

func (h *HintedBsearchSelect) Select(r uint64) uint64 {
	return locateInGroupRange(h.r9, 0, h.r9.NumGroups()-1, r)
}

func (h *HintedBsearchSelect) BulkSelect(r uint64, dest []uint64) {
	words := h.r9.Words()
	for i := range dest {
		if i == 0 {
			dest[0] = h.Select(r)
			continue
		}
		dest[i] = advanceOnes(words, dest[i-1], 0)
	}
}

func (h *HintedBsearchSelect) NumBits() uint64 { return 0 }
