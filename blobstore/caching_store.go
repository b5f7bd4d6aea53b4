package blobstore

import (
	"context"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachingStore wraps a remote BlobStore and keeps the content of recently
// opened blobs in memory. Snapshots are immutable once published, so a
// cached blob stays valid until it is overwritten or deleted through
// this store. Blobs that other writers rewrite in place must be excluded
// with CachingOptions.Bypass.
type CachingStore struct {
	inner  BlobStore
	cache  *lru.Cache[string, []byte]
	opts   CachingOptions
	hits   atomic.Uint64
	misses atomic.Uint64

	// mu orders cache fills against invalidations; epoch counts them.
	mu    sync.Mutex
	epoch uint64
}

// CachingOptions configures a CachingStore.
type CachingOptions struct {
	// Read tunes fetches from the inner store.
	Read ReadOptions
	// Bypass reports names that are always read from the inner store.
	// If nil, every blob is cacheable.
	Bypass func(name string) bool
}

// CacheStats reports cache effectiveness.
type CacheStats struct {
	Hits   uint64
	Misses uint64
	Len    int
}

// NewCachingStore caches up to size blobs from inner.
func NewCachingStore(inner BlobStore, size int, optFns ...func(o *CachingOptions)) (*CachingStore, error) {
	opts := CachingOptions{Read: DefaultReadOptions}
	for _, fn := range optFns {
		fn(&opts)
	}

	c, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, err
	}

	return &CachingStore{
		inner: inner,
		cache: c,
		opts:  opts,
	}, nil
}

func (s *CachingStore) bypass(name string) bool {
	return s.opts.Bypass != nil && s.opts.Bypass(name)
}

// Open serves the blob from the cache, fetching and caching it on a miss.
func (s *CachingStore) Open(ctx context.Context, name string) (Blob, error) {
	if s.bypass(name) {
		return s.inner.Open(ctx, name)
	}

	if data, ok := s.cache.Get(name); ok {
		s.hits.Add(1)
		return &memoryBlob{data: data}, nil
	}
	s.misses.Add(1)

	s.mu.Lock()
	epoch := s.epoch
	s.mu.Unlock()

	data, err := Get(ctx, s.inner, name, func(o *ReadOptions) { *o = s.opts.Read })
	if err != nil {
		return nil, err
	}

	// A write or delete during the fetch may have made data stale.
	s.mu.Lock()
	if s.epoch == epoch {
		s.cache.Add(name, data)
	}
	s.mu.Unlock()

	return &memoryBlob{data: data}, nil
}

// invalidate drops the cached copy of name once the inner store changed.
func (s *CachingStore) invalidate(name string) {
	s.mu.Lock()
	s.epoch++
	s.cache.Remove(name)
	s.mu.Unlock()
}

// Put writes through to the inner store and drops the cached copy.
func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	err := s.inner.Put(ctx, name, data)
	s.invalidate(name)
	return err
}

// Delete removes the blob from the inner store and the cache.
func (s *CachingStore) Delete(ctx context.Context, name string) error {
	err := s.inner.Delete(ctx, name)
	s.invalidate(name)
	return err
}

// List is passed through to the inner store.
func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// Purge drops every cached blob.
func (s *CachingStore) Purge() {
	s.cache.Purge()
}

// Stats returns a snapshot of the cache counters.
func (s *CachingStore) Stats() CacheStats {
	return CacheStats{
		Hits:   s.hits.Load(),
		Misses: s.misses.Load(),
		Len:    s.cache.Len(),
	}
}
