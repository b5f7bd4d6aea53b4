package idset

import (
	"cmp"
	"encoding/binary"
	"iter"
	"slices"
)

// ID is the constraint satisfied by all identifier types in hpograph.
type ID interface {
	~uint32
}

// Set is a sorted, deduplicated sequence of ids.
type Set[T ID] struct {
	ids []T
}

// New returns a set holding ids. The input may be unsorted and contain
// duplicates; it is not retained.
func New[T ID](ids ...T) Set[T] {
	if len(ids) == 0 {
		return Set[T]{}
	}
	s := make([]T, len(ids))
	copy(s, ids)
	slices.Sort(s)
	return Set[T]{ids: slices.Compact(s)}
}

// WithCapacity returns an empty set with room for n ids.
func WithCapacity[T ID](n int) Set[T] {
	return Set[T]{ids: make([]T, 0, n)}
}

// FromSorted wraps ids without copying. It reports false and returns an
// empty set if ids is not strictly ascending.
func FromSorted[T ID](ids []T) (Set[T], bool) {
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			return Set[T]{}, false
		}
	}
	return Set[T]{ids: ids}, true
}

// Len returns the number of ids.
func (s Set[T]) Len() int { return len(s.ids) }

// IsEmpty reports whether the set has no ids.
func (s Set[T]) IsEmpty() bool { return len(s.ids) == 0 }

// Insert adds id and reports whether it was newly added.
func (s *Set[T]) Insert(id T) bool {
	i, found := slices.BinarySearch(s.ids, id)
	if found {
		return false
	}
	s.ids = slices.Insert(s.ids, i, id)
	return true
}

// Remove deletes id and reports whether it was present.
func (s *Set[T]) Remove(id T) bool {
	i, found := slices.BinarySearch(s.ids, id)
	if !found {
		return false
	}
	s.ids = slices.Delete(s.ids, i, i+1)
	return true
}

// Contains reports whether id is in the set.
func (s Set[T]) Contains(id T) bool {
	_, found := slices.BinarySearch(s.ids, id)
	return found
}

// At returns the i-th smallest id. It panics if i is out of range.
func (s Set[T]) At(i int) T { return s.ids[i] }

// All iterates over the ids in ascending order.
func (s Set[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, id := range s.ids {
			if !yield(id) {
				return
			}
		}
	}
}

// Slice returns a copy of the ids in ascending order.
func (s Set[T]) Slice() []T {
	return slices.Clone(s.ids)
}

// Clone returns an independent copy.
func (s Set[T]) Clone() Set[T] {
	return Set[T]{ids: slices.Clone(s.ids)}
}

// Clip removes unused capacity, so that a later Insert on a copy of the
// set cannot write into shared memory.
func (s Set[T]) Clip() Set[T] {
	return Set[T]{ids: slices.Clip(s.ids)}
}

// Equal reports whether both sets hold the same ids.
func (s Set[T]) Equal(other Set[T]) bool {
	return slices.Equal(s.ids, other.ids)
}

// Union returns s ∪ other as one linear merge.
func (s Set[T]) Union(other Set[T]) Set[T] {
	a, b := s.ids, other.ids
	if len(b) == 0 {
		return s.Clone()
	}
	if len(a) == 0 {
		return other.Clone()
	}
	out := make([]T, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch c := cmp.Compare(a[i], b[j]); {
		case c < 0:
			out = append(out, a[i])
			i++
		case c > 0:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return Set[T]{ids: out}
}

// Merge adds all ids of other to s in place. The larger operand is used
// as the base so the smaller one is merged into it.
func (s *Set[T]) Merge(other Set[T]) {
	if other.IsEmpty() {
		return
	}
	if len(other.ids) > len(s.ids) {
		merged := other.Union(*s)
		s.ids = merged.ids
		return
	}
	merged := s.Union(other)
	s.ids = merged.ids
}

// Intersection returns s ∩ other as one linear merge.
func (s Set[T]) Intersection(other Set[T]) Set[T] {
	a, b := s.ids, other.ids
	if len(a) < len(b) {
		a, b = b, a
	}
	if len(b) == 0 {
		return Set[T]{}
	}
	out := make([]T, 0, len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch c := cmp.Compare(a[i], b[j]); {
		case c < 0:
			i++
		case c > 0:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return Set[T]{ids: out}
}

// Difference returns the ids of s that are not in other.
func (s Set[T]) Difference(other Set[T]) Set[T] {
	if other.IsEmpty() {
		return s.Clone()
	}
	out := make([]T, 0, len(s.ids))
	i, j := 0, 0
	a, b := s.ids, other.ids
	for i < len(a) {
		if j >= len(b) || a[i] < b[j] {
			out = append(out, a[i])
			i++
			continue
		}
		if a[i] == b[j] {
			i++
		}
		j++
	}
	return Set[T]{ids: out}
}

// IsSubsetOf reports whether every id of s is also in other.
func (s Set[T]) IsSubsetOf(other Set[T]) bool {
	if len(s.ids) > len(other.ids) {
		return false
	}
	j := 0
	for _, id := range s.ids {
		for j < len(other.ids) && other.ids[j] < id {
			j++
		}
		if j == len(other.ids) || other.ids[j] != id {
			return false
		}
		j++
	}
	return true
}

// EncodedLen returns the length of the binary encoding.
func (s Set[T]) EncodedLen() int { return 4 * len(s.ids) }

// AppendBinary appends the canonical encoding (4 bytes big-endian per id,
// ascending) to dst.
func (s Set[T]) AppendBinary(dst []byte) []byte {
	for _, id := range s.ids {
		dst = binary.BigEndian.AppendUint32(dst, uint32(id))
	}
	return dst
}

// MarshalBinary returns the canonical encoding of s.
func (s Set[T]) MarshalBinary() ([]byte, error) {
	return s.AppendBinary(make([]byte, 0, s.EncodedLen())), nil
}

// UnmarshalBinary replaces s with the ids encoded in data. Unsorted or
// duplicated input is normalized.
func (s *Set[T]) UnmarshalBinary(data []byte) error {
	if len(data)%4 != 0 {
		return ErrEncoding
	}
	ids := make([]T, 0, len(data)/4)
	for off := 0; off < len(data); off += 4 {
		ids = append(ids, T(binary.BigEndian.Uint32(data[off:])))
	}
	*s = New(ids...)
	return nil
}
