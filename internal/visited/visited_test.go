package visited

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	s := New(10)

	assert.False(t, s.Marked(1))
	assert.False(t, s.Marked(5))

	assert.True(t, s.Mark(1))
	assert.False(t, s.Mark(1))
	assert.True(t, s.Marked(1))
	assert.False(t, s.Marked(5))

	s.Unmark(1)
	assert.False(t, s.Marked(1))
	assert.True(t, s.Mark(1))

	s.Reset()
	assert.False(t, s.Marked(1))

	// grows past the initial capacity
	assert.True(t, s.Mark(1000))
	assert.True(t, s.Marked(1000))
	assert.False(t, s.Marked(999))

	s.Unmark(1 << 20)
	assert.False(t, s.Marked(1<<20))
}

func TestSet_ResetAfterUnmark(t *testing.T) {
	s := New(0)
	s.Mark(3)
	s.Unmark(3)
	s.Mark(4)
	s.Reset()
	assert.False(t, s.Marked(3))
	assert.False(t, s.Marked(4))
}
