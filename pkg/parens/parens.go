// Package parens implements balanced-parentheses matching (find_close,
// find_open, enclose) over an immutable bit sequence via a pioneer
// construction: pioneer positions are indexed with pkg/sparse's
// Elias-Fano-backed SparseSelect/SparseRank pair, and within-word matches
// are resolved with pkg/bitops's broadword near-match scans.
package parens

import (
	"fmt"
	"math/bits"

	"github.com/xflash-panda/succinct/pkg/bitops"
	"github.com/xflash-panda/succinct/pkg/bitvector"
	"github.com/xflash-panda/succinct/pkg/eliasfano"
	"github.com/xflash-panda/succinct/pkg/sparse"
	"github.com/xflash-panda/succinct/pkg/succinct"
)

// BP is a Ready-phase balanced-parentheses index.
//
// Pioneers are a reduced subset of the far parentheses (those whose match
// lies in a different word): within each word, a maximal run of consecutive
// far parentheses that all match into the same other word shares a single
// pioneer, the first of the run, rather than every far parenthesis getting
// its own entry. A far position that is not itself a pioneer is resolved at
// query time by locating its run's pioneer and walking the fixed excess
// offset between them (FindClose/FindOpen step 5 below). See DESIGN.md for
// the construction and the bound it gives on the pioneer count.
type BP struct {
	words []uint64
	n     uint64

	openingPioneers       *sparse.SparseSelect
	openingPioneersRank   *sparse.SparseRank
	openingPioneerMatches *eliasfano.List

	closingPioneers       *sparse.SparseSelect
	closingPioneersRank   *sparse.SparseRank
	closingPioneerMatches *eliasfano.List

	// parent[p] is the enclosing opening position for the open at p, or -1
	// if p is a top-level open. Plain O(n) storage: enclose is explicitly
	// an optional, non-succinctness-mandated operation.
	parent []int64
}

var _ succinct.BalancedParentheses = (*BP)(nil)

func wordBit(words []uint64, p uint64) bool {
	return words[p/64]&(uint64(1)<<uint(p%64)) != 0
}

func lowMaskBits(n uint) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << n) - 1
}

// rangeMaskBits returns a mask of bits [lo, hi] inclusive, or the zero mask
// if the range is empty (lo > hi). Callers only ever pass lo, hi in [0, 63].
func rangeMaskBits(lo, hi uint) uint64 {
	if lo > hi {
		return 0
	}
	return lowMaskBits(hi+1) &^ lowMaskBits(lo)
}

// NewBP builds a BP index over b, which must represent a balanced sequence
// of opens (1) and closes (0). Returns succinct.ErrInvalidInput if b is not
// balanced, or succinct.ErrCapacityExceeded if b is longer than 2^63 bits.
func NewBP(b bitvector.Bits) (*BP, error) {
	n := b.Len()
	if n > 1<<63 {
		return nil, fmt.Errorf("%w: sequence of %d bits exceeds the 2^63 bit capacity", succinct.ErrCapacityExceeded, n)
	}
	words := b.Words()

	match := make([]uint64, n)
	parent := make([]int64, n)
	stack := make([]uint64, 0, 64)

	for p := uint64(0); p < n; p++ {
		if wordBit(words, p) {
			if len(stack) > 0 {
				parent[p] = int64(stack[len(stack)-1])
			} else {
				parent[p] = -1
			}
			stack = append(stack, p)
			continue
		}
		if len(stack) == 0 {
			return nil, fmt.Errorf("%w: unmatched closing parenthesis at position %d", succinct.ErrInvalidInput, p)
		}
		q := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		match[q] = p
		match[p] = q
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("%w: %d unmatched opening parentheses", succinct.ErrInvalidInput, len(stack))
	}

	// n already cleared the same capacity check above, so these cannot fail.
	openBuilder, _ := bitvector.NewBuilder(n)
	closeBuilder, _ := bitvector.NewBuilder(n)
	var openDeltas, closeDeltas []uint64

	numWords := uint64(0)
	if n > 0 {
		numWords = (n-1)/64 + 1
	}

	// For each word, the far opens (closes) form a sequence of runs grouped
	// by their match's word; only the first far position of each run becomes
	// a pioneer. Every word that has any far open (close) therefore has a
	// pioneer at its first one, since the first element of a word always
	// starts a new run — that guarantees FindClose/FindOpen always find a
	// pioneer in p's own word.
	for w := uint64(0); w < numWords; w++ {
		base := w * 64
		farOpen := bitops.FarOpenMask(words[w])
		farClose := bitops.FarCloseMask(words[w])
		if validBits := n - base; validBits < 64 {
			// The last word is zero-padded past n (bitvector.Bits's
			// contract); mask the padding out so it can never be mistaken
			// for a far parenthesis by either mask's excess walk.
			farOpen &= lowMaskBits(uint(validBits))
			farClose &= lowMaskBits(uint(validBits))
		}

		openPrevTarget := int64(-1)
		for rem := farOpen; rem != 0; rem &= rem - 1 {
			i := uint64(bits.TrailingZeros64(rem))
			p := base + i
			if p >= n {
				break
			}
			target := int64(match[p] / 64)
			if target != openPrevTarget {
				openBuilder.Set(p)
				openDeltas = append(openDeltas, match[p]-p)
				openPrevTarget = target
			}
		}

		closePrevTarget := int64(-1)
		for rem := farClose; rem != 0; rem &= rem - 1 {
			i := uint64(bits.TrailingZeros64(rem))
			p := base + i
			if p >= n {
				break
			}
			target := int64(match[p] / 64)
			if target != closePrevTarget {
				closeBuilder.Set(p)
				closeDeltas = append(closeDeltas, p-match[p])
				closePrevTarget = target
			}
		}
	}

	openingPioneersVec := openBuilder.Build()
	closingPioneersVec := closeBuilder.Build()

	openMatches, err := prefixSumList(openDeltas)
	if err != nil {
		return nil, err
	}
	closeMatches, err := prefixSumList(closeDeltas)
	if err != nil {
		return nil, err
	}

	openSelect, err := sparse.NewSparseSelect(openingPioneersVec)
	if err != nil {
		return nil, err
	}
	closeSelect, err := sparse.NewSparseSelect(closingPioneersVec)
	if err != nil {
		return nil, err
	}

	return &BP{
		words: words,
		n:     n,

		openingPioneers:       openSelect,
		openingPioneersRank:   sparse.FromSelect(openSelect),
		openingPioneerMatches: openMatches,

		closingPioneers:       closeSelect,
		closingPioneersRank:   sparse.FromSelect(closeSelect),
		closingPioneerMatches: closeMatches,

		parent: parent,
	}, nil
}

// prefixSumList builds an Elias-Fano list of the running prefix sums of
// deltas, so GetDelta(i) recovers deltas[i]. An empty deltas slice yields a
// degenerate zero-length list.
func prefixSumList(deltas []uint64) (*eliasfano.List, error) {
	m := uint64(len(deltas))
	var sum uint64
	sums := make([]uint64, m)
	for i, d := range deltas {
		sum += d
		sums[i] = sum
	}
	universe := sum + 1
	return eliasfano.NewFromSlice(sums, universe)
}

// FindClose returns the position of the closing parenthesis matching the
// opening parenthesis at p. Returns succinct.ErrInvalidArgument if position
// p does not hold an opening parenthesis.
func (bp *BP) FindClose(p uint64) (uint64, error) {
	if !wordBit(bp.words, p) {
		return 0, fmt.Errorf("%w: position %d is not an opening parenthesis", succinct.ErrInvalidArgument, p)
	}
	w := p / 64
	b := uint(p % 64)
	local := bp.words[w] >> b
	if r := bitops.FindNearClose(local); uint64(r) < 64-uint64(b) {
		return w*64 + uint64(b) + uint64(r), nil
	}

	i := bp.openingPioneersRank.Rank(p+1) - 1
	pioneer := bp.openingPioneers.Select(i)
	match := pioneer + bp.openingPioneerMatches.GetDelta(i)
	if p == pioneer {
		return match, nil
	}

	// p shares pioneer's run, and therefore pioneer's word: the first far
	// open of every word is always a pioneer, so the nearest one at or
	// before p can only come from an earlier word if p's own word has none
	// at all — impossible since p itself is a far open in it.
	e := bits.OnesCount64(bitops.FarOpenMask(bp.words[pioneer/64]) &
		rangeMaskBits(uint(pioneer%64)+1, uint(p%64)))

	matchWord := bp.words[match/64]
	numFarClose := bits.OnesCount64(bitops.FarCloseMask(matchWord) & lowMaskBits(uint(match%64)))

	k := numFarClose - e
	if k < 0 {
		return 0, fmt.Errorf("%w: pioneer run invariant violated resolving find_close(%d)", succinct.ErrInvalidArgument, p)
	}
	localPos := bitops.FindFarClose(matchWord, uint(k))
	if localPos >= 64 {
		return 0, fmt.Errorf("%w: pioneer run invariant violated resolving find_close(%d)", succinct.ErrInvalidArgument, p)
	}
	return (match/64)*64 + uint64(localPos), nil
}

// FindOpen returns the position of the opening parenthesis matching the
// closing parenthesis at p. Returns succinct.ErrInvalidArgument if position
// p does not hold a closing parenthesis.
func (bp *BP) FindOpen(p uint64) (uint64, error) {
	if wordBit(bp.words, p) {
		return 0, fmt.Errorf("%w: position %d is not a closing parenthesis", succinct.ErrInvalidArgument, p)
	}
	w := p / 64
	b := uint(p % 64)
	if r := bitops.FindNearOpen(bp.words[w], b); r >= 0 {
		return w*64 + uint64(r), nil
	}

	i := bp.closingPioneersRank.Rank(p+1) - 1
	pioneer := bp.closingPioneers.Select(i)
	match := pioneer - bp.closingPioneerMatches.GetDelta(i)
	if p == pioneer {
		return match, nil
	}

	// Mirror image of FindClose's step 5: same run, same word as pioneer,
	// same excess/rank relationship, with opens and closes swapped.
	e := bits.OnesCount64(bitops.FarCloseMask(bp.words[pioneer/64]) &
		rangeMaskBits(uint(pioneer%64)+1, uint(p%64)))

	matchWord := bp.words[match/64]
	farOpenOfMatchWord := bitops.FarOpenMask(matchWord)
	numFarOpen := bits.OnesCount64(farOpenOfMatchWord & lowMaskBits(uint(match%64)))

	k := numFarOpen - e
	if k < 0 {
		return 0, fmt.Errorf("%w: pioneer run invariant violated resolving find_open(%d)", succinct.ErrInvalidArgument, p)
	}
	localPos := bitops.SelectInWord(farOpenOfMatchWord, uint(k))
	if localPos >= 64 {
		return 0, fmt.Errorf("%w: pioneer run invariant violated resolving find_open(%d)", succinct.ErrInvalidArgument, p)
	}
	return (match/64)*64 + uint64(localPos), nil
}

// Enclose returns the opening position of the pair immediately enclosing
// the pair opened at p. Returns succinct.ErrUnsupported if p is a top-level
// opening parenthesis with no enclosing pair, or succinct.ErrInvalidArgument
// if p does not hold an opening parenthesis.
func (bp *BP) Enclose(p uint64) (uint64, error) {
	if !wordBit(bp.words, p) {
		return 0, fmt.Errorf("%w: position %d is not an opening parenthesis", succinct.ErrInvalidArgument, p)
	}
	par := bp.parent[p]
	if par < 0 {
		return 0, fmt.Errorf("%w: position %d has no enclosing pair", succinct.ErrUnsupported, p)
	}
	return uint64(par), nil
}

func (bp *BP) NumBits() uint64 {
	return bp.openingPioneers.NumBits() + bp.openingPioneersRank.NumBits() + bp.openingPioneerMatches.NumBits() +
		bp.closingPioneers.NumBits() + bp.closingPioneersRank.NumBits() + bp.closingPioneerMatches.NumBits() +
		uint64(len(bp.parent))*64
}
