// Package bitvector implements the core's bit sequence: an immutable, packed
// sequence of bits backed by 64-bit words. It is the data model every higher
// layer (rank, select, Elias-Fano, balanced parentheses) consumes.
package bitvector

import (
	"fmt"
	"iter"
	"math/bits"

	"github.com/xflash-panda/succinct/pkg/succinct"
)

// maxCapacity is the largest logical length this package's constructors will
// accept, per spec.md's 2^63-element capacity ceiling on bit sequences.
const maxCapacity = uint64(1) << 63

// Bits is the immutable bit-source contract the rest of the core consumes.
// Implementations never mutate after construction; borrowers may share one
// Bits value across many index structures.
type Bits interface {
	// Len returns the logical number of bits.
	Len() uint64
	// Words returns the packed little-endian words backing the sequence.
	// Bit j of Words()[i] is logical position 64*i+j. Bits beyond Len()
	// within the last word are zero.
	Words() []uint64
	// Get returns the bit at logical position i.
	Get(i uint64) bool
	// Count returns the total number of one bits.
	Count() uint64
	// IterOnes yields the positions of every one bit, in ascending order.
	IterOnes() iter.Seq[uint64]
}

// Vector is a concrete, ready-to-use Bits implementation.
type Vector struct {
	words []uint64
	n     uint64
	count uint64
}

// NewFromWords wraps an existing little-endian word slice as a Vector of
// logical length n. Bits at or beyond n in the final word are masked to zero.
// Returns succinct.ErrCapacityExceeded if n exceeds 2^63 bits.
func NewFromWords(words []uint64, n uint64) (*Vector, error) {
	if n > maxCapacity {
		return nil, fmt.Errorf("%w: sequence of %d bits exceeds the 2^63 bit capacity", succinct.ErrCapacityExceeded, n)
	}
	return newVectorFromWords(words, n), nil
}

func newVectorFromWords(words []uint64, n uint64) *Vector {
	need := wordsFor(n)
	w := make([]uint64, need)
	copy(w, words)
	if n%64 != 0 && len(w) > 0 {
		w[len(w)-1] &= (uint64(1) << (n % 64)) - 1
	}
	var count uint64
	for _, word := range w {
		count += uint64(bits.OnesCount64(word))
	}
	return &Vector{words: w, n: n, count: count}
}

// NewFromBools packs a slice of booleans, in order, into a Vector. Returns
// succinct.ErrCapacityExceeded if the slice is longer than 2^63 bits.
func NewFromBools(bits []bool) (*Vector, error) {
	b, err := NewBuilder(uint64(len(bits)))
	if err != nil {
		return nil, err
	}
	for i, v := range bits {
		if v {
			b.Set(uint64(i))
		}
	}
	return b.Build(), nil
}

func wordsFor(n uint64) uint64 {
	return (n + 63) / 64
}

func (v *Vector) Len() uint64   { return v.n }
func (v *Vector) Words() []uint64 { return v.words }
func (v *Vector) Count() uint64 { return v.count }

func (v *Vector) Get(i uint64) bool {
	return v.words[i/64]&(uint64(1)<<(i%64)) != 0
}

func (v *Vector) IterOnes() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		for wi, w := range v.words {
			for w != 0 {
				b := bits.TrailingZeros64(w)
				pos := uint64(wi)*64 + uint64(b)
				if pos >= v.n {
					return
				}
				if !yield(pos) {
					return
				}
				w &= w - 1
			}
		}
	}
}

// Builder assembles a Vector one bit at a time before transitioning to the
// Ready (immutable) phase via Build. It must not be used after Build.
type Builder struct {
	words []uint64
	n     uint64
}

// NewBuilder creates a Builder for a sequence of logical length n. Returns
// succinct.ErrCapacityExceeded if n exceeds 2^63 bits.
func NewBuilder(n uint64) (*Builder, error) {
	if n > maxCapacity {
		return nil, fmt.Errorf("%w: sequence of %d bits exceeds the 2^63 bit capacity", succinct.ErrCapacityExceeded, n)
	}
	return &Builder{words: make([]uint64, wordsFor(n)), n: n}, nil
}

// Set sets bit i to one. i must be less than the builder's logical length.
func (b *Builder) Set(i uint64) {
	b.words[i/64] |= uint64(1) << (i % 64)
}

// Build finalizes the bit sequence and returns an immutable Vector.
func (b *Builder) Build() *Vector {
	return newVectorFromWords(b.words, b.n)
}
