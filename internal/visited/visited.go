// Package visited provides a compact marker set over dense arena indexes.
//
// The closure pass uses two of them: one for nodes whose ancestors are
// resolved and one for nodes currently on the DFS stack. A node that is
// reached again while still on the stack closes a cycle.
package visited

// Set tracks marked indexes using a bitset and a dirty list for fast reset.
type Set struct {
	bits  []uint64
	dirty []uint32
}

// New creates a marker set sized for capacity indexes.
func New(capacity int) *Set {
	return &Set{
		bits:  make([]uint64, (capacity+63)/64),
		dirty: make([]uint32, 0, 64),
	}
}

// Mark marks i and reports whether it was unmarked before.
func (s *Set) Mark(i uint32) bool {
	word := int(i >> 6)
	mask := uint64(1) << (i & 63)

	if word >= len(s.bits) {
		s.grow(word + 1)
	}
	if s.bits[word]&mask != 0 {
		return false
	}
	s.bits[word] |= mask
	s.dirty = append(s.dirty, i)
	return true
}

// Unmark clears i. The dirty list keeps the entry; Reset tolerates that.
func (s *Set) Unmark(i uint32) {
	word := int(i >> 6)
	if word >= len(s.bits) {
		return
	}
	s.bits[word] &^= uint64(1) << (i & 63)
}

// Marked reports whether i is marked.
func (s *Set) Marked(i uint32) bool {
	word := int(i >> 6)
	if word >= len(s.bits) {
		return false
	}
	return s.bits[word]&(uint64(1)<<(i&63)) != 0
}

// Reset clears every index marked since the last reset.
func (s *Set) Reset() {
	for _, i := range s.dirty {
		s.bits[i>>6] &^= uint64(1) << (i & 63)
	}
	s.dirty = s.dirty[:0]
}

func (s *Set) grow(newLen int) {
	newCap := len(s.bits) * 2
	if newCap < newLen {
		newCap = newLen
	}
	bits := make([]uint64, newCap)
	copy(bits, s.bits)
	s.bits = bits
}
