package idset

import (
	"encoding/binary"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testID uint32

func ids(s Set[testID]) []testID { return s.Slice() }

func TestNew_SortsAndDeduplicates(t *testing.T) {
	s := New[testID](5, 1, 3, 1, 5, 2)
	assert.Equal(t, []testID{1, 2, 3, 5}, ids(s))
	assert.Equal(t, 4, s.Len())
	assert.False(t, s.IsEmpty())

	var empty Set[testID]
	assert.True(t, empty.IsEmpty())
	assert.Equal(t, 0, New[testID]().Len())
}

func TestNew_DoesNotRetainInput(t *testing.T) {
	in := []testID{3, 2, 1}
	s := New(in...)
	in[0] = 99
	assert.Equal(t, []testID{1, 2, 3}, ids(s))
}

func TestInsert(t *testing.T) {
	var s Set[testID]
	assert.True(t, s.Insert(10))
	assert.True(t, s.Insert(2))
	assert.True(t, s.Insert(7))
	assert.False(t, s.Insert(7))
	assert.False(t, s.Insert(2))
	assert.Equal(t, []testID{2, 7, 10}, ids(s))
}

func TestRemove(t *testing.T) {
	s := New[testID](1, 2, 3)
	assert.True(t, s.Remove(2))
	assert.False(t, s.Remove(2))
	assert.Equal(t, []testID{1, 3}, ids(s))
}

func TestContains(t *testing.T) {
	s := New[testID](1, 4, 9, 16)
	for _, id := range []testID{1, 4, 9, 16} {
		assert.True(t, s.Contains(id))
	}
	for _, id := range []testID{0, 2, 10, 17} {
		assert.False(t, s.Contains(id))
	}
}

func TestFromSorted(t *testing.T) {
	s, ok := FromSorted([]testID{1, 2, 5})
	require.True(t, ok)
	assert.Equal(t, 3, s.Len())

	_, ok = FromSorted([]testID{1, 1, 5})
	assert.False(t, ok)
	_, ok = FromSorted([]testID{3, 1})
	assert.False(t, ok)
}

func TestUnionIntersection(t *testing.T) {
	a := New[testID](1, 3, 5, 7)
	b := New[testID](2, 3, 4, 7, 9)

	assert.Equal(t, []testID{1, 2, 3, 4, 5, 7, 9}, ids(a.Union(b)))
	assert.Equal(t, []testID{3, 7}, ids(a.Intersection(b)))
	assert.Equal(t, []testID{1, 5}, ids(a.Difference(b)))
	assert.Equal(t, []testID{2, 4, 9}, ids(b.Difference(a)))
}

func TestUnion_DoesNotAlias(t *testing.T) {
	a := New[testID](1, 2)
	var empty Set[testID]
	u := a.Union(empty)
	u.Insert(3)
	assert.Equal(t, []testID{1, 2}, ids(a))
}

func TestMerge(t *testing.T) {
	small := New[testID](4)
	large := New[testID](1, 2, 3, 5)
	small.Merge(large)
	assert.Equal(t, []testID{1, 2, 3, 4, 5}, ids(small))
	assert.Equal(t, []testID{1, 2, 3, 5}, ids(large))

	large.Merge(New[testID](0, 9))
	assert.Equal(t, []testID{0, 1, 2, 3, 5, 9}, ids(large))
}

func TestIsSubsetOf(t *testing.T) {
	a := New[testID](2, 4)
	b := New[testID](1, 2, 3, 4)
	assert.True(t, a.IsSubsetOf(b))
	assert.False(t, b.IsSubsetOf(a))
	assert.True(t, Set[testID]{}.IsSubsetOf(a))
	assert.False(t, New[testID](2, 5).IsSubsetOf(b))
}

func TestAll_StopsEarly(t *testing.T) {
	s := New[testID](1, 2, 3, 4)
	var seen []testID
	for id := range s.All() {
		seen = append(seen, id)
		if id == 2 {
			break
		}
	}
	assert.Equal(t, []testID{1, 2}, seen)
}

func TestAppendBinary(t *testing.T) {
	s := New[testID](0x01020304, 1)
	b := s.AppendBinary([]byte{0xff})
	assert.Equal(t, []byte{0xff, 0, 0, 0, 1, 1, 2, 3, 4}, b)
	assert.Equal(t, 8, s.EncodedLen())

	enc, err := s.MarshalBinary()
	require.NoError(t, err)
	var back Set[testID]
	require.NoError(t, back.UnmarshalBinary(enc))
	assert.True(t, s.Equal(back))

	require.ErrorIs(t, back.UnmarshalBinary([]byte{1, 2, 3}), ErrEncoding)
}

func TestAlgebraLaws_Random(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		a := randomSet(rng, rng.Intn(40))
		b := randomSet(rng, rng.Intn(40))
		checkLaws(t, a, b)
	}
}

func FuzzAlgebraLaws(f *testing.F) {
	f.Add([]byte{1, 2, 3}, []byte{3, 4})
	f.Add([]byte{}, []byte{9})
	f.Fuzz(func(t *testing.T, x, y []byte) {
		a := fromBytes(x)
		b := fromBytes(y)
		checkLaws(t, a, b)
	})
}

func checkLaws(t *testing.T, a, b Set[testID]) {
	t.Helper()
	var empty Set[testID]

	require.True(t, a.Union(b).Equal(b.Union(a)), "union commutative")
	require.True(t, a.Intersection(b).Equal(b.Intersection(a)), "intersection commutative")
	require.True(t, a.Intersection(a).Equal(a), "A∩A == A")
	require.True(t, a.Union(empty).Equal(a), "A∪∅ == A")
	require.Equal(t, a.Len()+b.Len(), a.Union(b).Len()+a.Intersection(b).Len())

	for _, s := range []Set[testID]{a.Union(b), a.Intersection(b), a.Difference(b)} {
		raw := s.Slice()
		require.True(t, slices.IsSorted(raw))
		require.Equal(t, len(raw), len(slices.Compact(slices.Clone(raw))))
	}
}

func randomSet(rng *rand.Rand, n int) Set[testID] {
	var s Set[testID]
	for i := 0; i < n; i++ {
		s.Insert(testID(rng.Intn(64)))
	}
	return s
}

func fromBytes(b []byte) Set[testID] {
	var s Set[testID]
	for len(b) >= 2 {
		s.Insert(testID(binary.BigEndian.Uint16(b)))
		b = b[2:]
	}
	return s
}
