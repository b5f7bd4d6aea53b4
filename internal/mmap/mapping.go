package mmap

import (
	"io"
	"math"
	"os"
	"sync/atomic"
)

// Mapping is a read-only view of a whole file.
type Mapping struct {
	data   []byte
	closed atomic.Bool
	unmap  func([]byte) error
}

// Open maps the file at path read-only. Empty files yield an empty mapping
// without touching the kernel.
func Open(path string) (*Mapping, error) {
	f, err := os.Open(path) //nolint:gosec // path is chosen by the store owner
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Map(f)
}

// Map maps the current contents of f. The file may be closed once Map returns.
func Map(f *os.File) (*Mapping, error) {
	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	size := fi.Size()
	if size < 0 || size > math.MaxInt {
		return nil, ErrInvalidSize
	}
	if size == 0 {
		return &Mapping{}, nil
	}

	data, unmap, err := osMap(f, int(size))
	if err != nil {
		return nil, err
	}

	return &Mapping{data: data, unmap: unmap}, nil
}

// Close unmaps the memory. Calling it twice is a no-op.
func (m *Mapping) Close() error {
	if m.closed.Swap(true) {
		return nil
	}
	if m.unmap != nil && m.data != nil {
		return m.unmap(m.data)
	}
	return nil
}

// Bytes returns the mapped contents, or nil once closed.
// The slice must not be used after Close.
func (m *Mapping) Bytes() []byte {
	if m.closed.Load() {
		return nil
	}
	return m.data
}

// Size returns the mapped length in bytes.
func (m *Mapping) Size() int64 {
	return int64(len(m.data))
}

// Advise hints the kernel about the upcoming access pattern.
func (m *Mapping) Advise(pattern AccessPattern) error {
	if m.closed.Load() {
		return ErrClosed
	}
	if m.data == nil {
		return nil
	}
	return osAdvise(m.data, pattern)
}

// ReadAt implements io.ReaderAt.
func (m *Mapping) ReadAt(p []byte, off int64) (int, error) {
	if m.closed.Load() {
		return 0, ErrClosed
	}
	if off < 0 {
		return 0, ErrInvalidOffset
	}
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
