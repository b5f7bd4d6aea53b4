package mmap

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "snapshot.hpo")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	return path
}

func TestOpenReadClose(t *testing.T) {
	content := []byte("HPO\x03snapshot")

	m, err := Open(writeFile(t, content))
	require.NoError(t, err)

	assert.Equal(t, int64(len(content)), m.Size())
	assert.Equal(t, content, m.Bytes())
	require.NoError(t, m.Advise(AccessSequential))

	buf := make([]byte, 4)
	n, err := m.ReadAt(buf, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "snap", string(buf))

	n, err = m.ReadAt(make([]byte, 10), 100)
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)

	tail := make([]byte, 10)
	n, err = m.ReadAt(tail, 8)
	assert.Equal(t, 4, n)
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, "shot", string(tail[:n]))

	_, err = m.ReadAt(buf, -1)
	assert.Equal(t, ErrInvalidOffset, err)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	assert.Nil(t, m.Bytes())
	_, err = m.ReadAt(buf, 0)
	assert.Equal(t, ErrClosed, err)
	assert.Equal(t, ErrClosed, m.Advise(AccessSequential))
}

func TestOpenEmptyFile(t *testing.T) {
	m, err := Open(writeFile(t, nil))
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, int64(0), m.Size())
	assert.Empty(t, m.Bytes())
	require.NoError(t, m.Advise(AccessWillNeed))
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
