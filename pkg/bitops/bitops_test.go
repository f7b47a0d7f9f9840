package bitops

import "testing"

func TestPopcountMsbLsb(t *testing.T) {
	tests := []struct {
		name string
		w    uint64
		pop  int
		msb  int
		lsb  int
	}{
		{"zero", 0, 0, -1, -1},
		{"one", 1, 1, 0, 0},
		{"highBit", 1 << 63, 1, 63, 63},
		{"allOnes", ^uint64(0), 64, 63, 0},
		{"alternating", 0xAAAAAAAAAAAAAAAA, 32, 63, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Popcount(tt.w); got != tt.pop {
				t.Errorf("Popcount(%#x) = %d, want %d", tt.w, got, tt.pop)
			}
			if got := Msb(tt.w); got != tt.msb {
				t.Errorf("Msb(%#x) = %d, want %d", tt.w, got, tt.msb)
			}
			if got := Lsb(tt.w); got != tt.lsb {
				t.Errorf("Lsb(%#x) = %d, want %d", tt.w, got, tt.lsb)
			}
		})
	}
}

func TestSelectInWord(t *testing.T) {
	tests := []struct {
		name string
		w    uint64
		k    uint
		want int
	}{
		{"firstBitOfAllOnes", ^uint64(0), 0, 0},
		{"lastBitOfAllOnes", ^uint64(0), 63, 63},
		{"outOfRange", 0x1, 1, NotFound},
		{"alternatingSecondOne", 0xAAAAAAAAAAAAAAAA, 1, 3},
		{"singleBit", uint64(1) << 40, 0, 40},
		{"emptyWord", 0, 0, NotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectInWord(tt.w, tt.k); got != tt.want {
				t.Errorf("SelectInWord(%#x, %d) = %d, want %d", tt.w, tt.k, got, tt.want)
			}
		})
	}
}

func TestFindNearClose(t *testing.T) {
	// "(()(()))": bit i of the word is 1 for '(' and 0 for ')', bit 0 is the
	// first character. The matching close for the opening paren at bit 0 is
	// the last character of the string, position 7.
	w := wordFromParens("(()(()))")
	if got := FindNearClose(w); got != 7 {
		t.Errorf("FindNearClose(%#b) = %d, want 7", w, got)
	}
}

func wordFromParens(s string) uint64 {
	var w uint64
	for i := 0; i < len(s); i++ {
		if s[i] == '(' {
			w |= uint64(1) << uint(i)
		}
	}
	return w
}

func TestFindFarClose(t *testing.T) {
	// word consisting only of closes: excess goes negative immediately and
	// stays negative, so every bit is a far close in order.
	w := uint64(0)
	if got := FindFarClose(w, 0); got != 0 {
		t.Errorf("FindFarClose(0,0) = %d, want 0", got)
	}
	if got := FindFarClose(w, 3); got != 3 {
		t.Errorf("FindFarClose(0,3) = %d, want 3", got)
	}
}
