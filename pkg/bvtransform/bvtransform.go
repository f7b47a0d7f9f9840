// Package bvtransform adapts string and byte-oriented external data into
// the bitvector.Bits sequences pkg/eliasfano and pkg/parens consume. These
// adapters are the boundary the core's "external collaborator" contract
// (spec.md §1) describes: the core never parses source formats itself, but
// something has to turn a parenthesis string or a wire-format bitmap into
// the word-packed, LSB-first layout pkg/bitvector expects.
package bvtransform

import (
	"fmt"
	"unicode/utf8"

	"github.com/xflash-panda/succinct/pkg/bitvector"
	"github.com/xflash-panda/succinct/pkg/succinct"
)

// FromParenString builds a bit sequence from a string of '(' and ')'
// characters, mapping '(' to one and ')' to zero. Returns
// succinct.ErrInvalidInput if the string contains any other character.
func FromParenString(s string) (*bitvector.Vector, error) {
	return FromRuneSequence(s, '(', ')')
}

// FromRuneSequence builds a bit sequence from a string whose runes are each
// either oneRune or zeroRune, reading position-for-position (not
// byte-for-byte, so multi-byte runes are handled correctly). Returns
// succinct.ErrInvalidInput on any other rune.
func FromRuneSequence(s string, oneRune, zeroRune rune) (*bitvector.Vector, error) {
	n := uint64(utf8.RuneCountInString(s))
	b, err := bitvector.NewBuilder(n)
	if err != nil {
		return nil, err
	}
	var i uint64
	for _, r := range s {
		switch r {
		case oneRune:
			b.Set(i)
		case zeroRune:
			// zero bit, nothing to set
		default:
			return nil, fmt.Errorf("%w: unexpected rune %q at position %d", succinct.ErrInvalidInput, r, i)
		}
		i++
	}
	return b.Build(), nil
}

// FromBytesMSBFirst builds a bit sequence from a byte slice in which logical
// position i is bit 7-(i%8) of data[i/8], most-significant bit first — the
// common wire-format bit order for externally serialized bitmaps — and
// repacks it into pkg/bitvector's LSB-first machine-word layout. Returns
// succinct.ErrCapacityExceeded if n exceeds 2^63 bits.
func FromBytesMSBFirst(data []byte, n uint64) (*bitvector.Vector, error) {
	b, err := bitvector.NewBuilder(n)
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < n; i++ {
		byteIdx := i / 8
		bitIdx := 7 - (i % 8) // MSB first within each source byte
		if data[byteIdx]&(1<<bitIdx) != 0 {
			b.Set(i)
		}
	}
	return b.Build(), nil
}

// ToBytesMSBFirst is the inverse of FromBytesMSBFirst, serializing v back
// into MSB-first byte order.
func ToBytesMSBFirst(v *bitvector.Vector) []byte {
	n := v.Len()
	out := make([]byte, (n+7)/8)
	for i := uint64(0); i < n; i++ {
		if v.Get(i) {
			out[i/8] |= 1 << (7 - (i % 8))
		}
	}
	return out
}
