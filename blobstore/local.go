package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hupe1980/hpograph/internal/mmap"
)

// ErrInvalidName is returned for blob names that would escape the store root.
var ErrInvalidName = errors.New("blobstore: invalid blob name")

// LocalStore implements BlobStore using the local file system.
// Blob names use forward slashes and map to paths below the root.
type LocalStore struct {
	root string
}

// NewLocalStore creates a new LocalStore rooted at the given directory.
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

// Root returns the directory the store writes to.
func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) path(name string) (string, error) {
	p := filepath.FromSlash(name)
	if name == "" || !filepath.IsLocal(p) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(s.root, p), nil
}

// Open maps the blob into memory. Snapshots are decoded front to back,
// so the mapping is advised for sequential access.
func (s *LocalStore) Open(ctx context.Context, name string) (Blob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.path(name)
	if err != nil {
		return nil, err
	}

	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	_ = m.Advise(mmap.AccessSequential)

	return &localBlob{m: m}, nil
}

// Put writes data to a temporary file next to the target and renames it
// into place, so readers never observe a partial blob.
func (s *LocalStore) Put(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.path(name)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	cleanup := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	return nil
}

// Delete removes a blob. Missing blobs are ignored.
func (s *LocalStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.path(name)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// List walks the root and returns every blob whose name has the prefix.
// Temporary files left by interrupted writes are skipped.
func (s *LocalStore) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == s.root {
				return fs.SkipAll
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".tmp-") {
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(names)
	return names, nil
}

type localBlob struct {
	m *mmap.Mapping
}

func (b *localBlob) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	return readAt(b.m.Bytes(), p, off)
}

func (b *localBlob) Close() error {
	return b.m.Close()
}

func (b *localBlob) Size() int64 {
	return b.m.Size()
}

func (b *localBlob) Bytes() ([]byte, error) {
	data := b.m.Bytes()
	if data == nil && b.m.Size() > 0 {
		return nil, mmap.ErrClosed
	}
	return data, nil
}
