package layout

import "math/bits"

// Set is a bitset of layout indices. The zero value is an empty set.
// Sets share storage on assignment; use Clone before mutating a copy.
type Set struct {
	words []uint64
}

// NewSet returns an empty set able to hold indices 0..n-1.
func NewSet(n int) Set {
	return Set{words: make([]uint64, (n+63)/64)}
}

// FullSet returns a set holding every index 0..n-1.
func FullSet(n int) Set {
	s := NewSet(n)
	for i := 0; i < n; i++ {
		s.Add(i)
	}
	return s
}

// Has reports whether i is in the set. Out-of-range indices are never members.
func (s Set) Has(i int) bool {
	if i < 0 || i/64 >= len(s.words) {
		return false
	}
	return s.words[i/64]&(1<<uint(i%64)) != 0
}

// Add inserts i. The set grows if needed.
func (s *Set) Add(i int) {
	for i/64 >= len(s.words) {
		s.words = append(s.words, 0)
	}
	s.words[i/64] |= 1 << uint(i%64)
}

// Remove deletes i if present.
func (s *Set) Remove(i int) {
	if i < 0 || i/64 >= len(s.words) {
		return
	}
	s.words[i/64] &^= 1 << uint(i%64)
}

// Len returns the number of members.
func (s Set) Len() int {
	n := 0
	for _, w := range s.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Clone returns an independent copy.
func (s Set) Clone() Set {
	words := make([]uint64, len(s.words))
	copy(words, s.words)
	return Set{words: words}
}

// Each calls fn for every member in ascending order.
func (s Set) Each(fn func(i int)) {
	for wi, w := range s.words {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			fn(wi*64 + b)
			w &^= 1 << uint(b)
		}
	}
}

// Indices returns the members in ascending order.
func (s Set) Indices() []int {
	out := make([]int, 0, s.Len())
	s.Each(func(i int) {
		out = append(out, i)
	})
	return out
}

// Equal reports whether both sets hold the same members.
func (s Set) Equal(o Set) bool {
	n := len(s.words)
	if len(o.words) > n {
		n = len(o.words)
	}
	for i := 0; i < n; i++ {
		var a, b uint64
		if i < len(s.words) {
			a = s.words[i]
		}
		if i < len(o.words) {
			b = o.words[i]
		}
		if a != b {
			return false
		}
	}
	return true
}
