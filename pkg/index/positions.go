package index

import "math/bits"

// PositionSet is a set of catalog positions, one bit per entry.
type PositionSet []uint64

func newPositionSet(n int) PositionSet {
	return make(PositionSet, (n+63)/64)
}

func (s PositionSet) add(pos int) {
	s[pos/64] |= 1 << (uint(pos) % 64)
}

// Has reports whether pos is in the set.
func (s PositionSet) Has(pos int) bool {
	return pos/64 < len(s) && s[pos/64]&(1<<(uint(pos)%64)) != 0
}

// And keeps only the positions also in o.
func (s PositionSet) And(o PositionSet) {
	for i := range s {
		s[i] &= o[i]
	}
}

// AndNot drops the positions in o.
func (s PositionSet) AndNot(o PositionSet) {
	for i := range s {
		s[i] &^= o[i]
	}
}

// Len returns the number of positions in the set.
func (s PositionSet) Len() int {
	n := 0
	for _, w := range s {
		n += bits.OnesCount64(w)
	}
	return n
}

// Each calls fn for every position in ascending order until fn returns false.
func (s PositionSet) Each(fn func(pos int) bool) {
	for i, w := range s {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			if !fn(i*64 + b) {
				return
			}
			w &= w - 1
		}
	}
}

// Positions returns the set as an ascending slice, nil when empty.
func (s PositionSet) Positions() []int {
	var out []int
	s.Each(func(pos int) bool {
		out = append(out, pos)
		return true
	})
	return out
}
