package catalog

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hupe1980/hpograph/blobstore"
)

// Store loads and saves the catalog blob. Updates are serialized across
// every Store of the process that wraps the same BlobStore.
type Store struct {
	store blobstore.BlobStore
	mu    *sync.Mutex
}

// locks maps a BlobStore to the mutex guarding its catalog blob.
var locks sync.Map

func lockFor(store blobstore.BlobStore) *sync.Mutex {
	mu, _ := locks.LoadOrStore(store, new(sync.Mutex))
	return mu.(*sync.Mutex)
}

// NewStore creates a new catalog store. store must be a comparable value,
// such as the pointer types of package blobstore.
func NewStore(store blobstore.BlobStore) *Store {
	return &Store{store: store, mu: lockFor(store)}
}

// Load reads the catalog. It returns ErrNotFound if none has been saved.
func (s *Store) Load(ctx context.Context) (*Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx)
}

func (s *Store) load(ctx context.Context) (*Catalog, error) {
	data, err := blobstore.Get(ctx, s.store, BlobName)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return ReadBinary(bytes.NewReader(data))
}

// Save bumps the generation and writes the catalog blob.
func (s *Store) Save(ctx context.Context, c *Catalog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(ctx, c)
}

func (s *Store) save(ctx context.Context, c *Catalog) error {
	c.Version = CurrentVersion
	c.Generation++
	c.UpdatedAt = time.Now().UTC()

	var buf bytes.Buffer
	if err := c.WriteBinary(&buf); err != nil {
		return err
	}

	return s.store.Put(ctx, BlobName, buf.Bytes())
}

// Update loads the catalog, or starts an empty one, applies fn and saves
// the result. Nothing is written if fn fails.
func (s *Store) Update(ctx context.Context, fn func(c *Catalog) error) (*Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.load(ctx)
	if errors.Is(err, ErrNotFound) {
		c, err = New(), nil
	}
	if err != nil {
		return nil, err
	}

	if err := fn(c); err != nil {
		return nil, err
	}

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// Fetch reads the snapshot of e and verifies it against the entry.
func (s *Store) Fetch(ctx context.Context, e Entry) ([]byte, error) {
	data, err := blobstore.Get(ctx, s.store, e.Name)
	if err != nil {
		return nil, err
	}
	if err := e.Verify(data); err != nil {
		return nil, err
	}
	return data, nil
}

// Prune removes entries whose snapshot blob no longer exists and returns
// their names.
func (s *Store) Prune(ctx context.Context) ([]string, error) {
	var removed []string

	_, err := s.Update(ctx, func(c *Catalog) error {
		names, err := s.store.List(ctx, "")
		if err != nil {
			return err
		}
		present := make(map[string]struct{}, len(names))
		for _, n := range names {
			present[n] = struct{}{}
		}

		for _, e := range append([]Entry(nil), c.Entries...) {
			if _, ok := present[e.Name]; !ok {
				c.Remove(e.Name)
				removed = append(removed, e.Name)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return removed, nil
}
