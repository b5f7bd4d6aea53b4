package blobstore

import (
	"context"
	"slices"
	"strings"
	"sync"
)

// MemoryStore is an in-memory BlobStore implementation for testing.
// Thread-safe for concurrent reads and writes.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore creates a new in-memory blob store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		blobs: make(map[string][]byte),
	}
}

// Open opens a blob for reading.
func (m *MemoryStore) Open(ctx context.Context, name string) (Blob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.blobs[name]
	if !ok {
		return nil, ErrNotFound
	}

	// Stored slices are never mutated, Put swaps them.
	return &memoryBlob{data: data}, nil
}

// Put writes a blob atomically.
func (m *MemoryStore) Put(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	copied := append([]byte(nil), data...)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.blobs[name] = copied
	return nil
}

// Delete removes a blob.
func (m *MemoryStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.blobs, name)
	return nil
}

// List returns all blobs matching the prefix.
func (m *MemoryStore) List(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var names []string
	for name := range m.blobs {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	return names, nil
}

type memoryBlob struct {
	data []byte
}

func (b *memoryBlob) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	return readAt(b.data, p, off)
}

func (b *memoryBlob) Close() error {
	return nil
}

func (b *memoryBlob) Size() int64 {
	return int64(len(b.data))
}

func (b *memoryBlob) Bytes() ([]byte, error) {
	return b.data, nil
}
