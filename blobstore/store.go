package blobstore

import (
	"context"
	"errors"
	"io"
	"os"

	"golang.org/x/sync/errgroup"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// BlobStore stores immutable snapshot blobs by name.
// Implementations must be safe for concurrent use.
type BlobStore interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
	// Put writes a blob atomically, replacing any previous content.
	Put(ctx context.Context, name string, data []byte) error
	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
	// List returns the names of all blobs with the given prefix in ascending order.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to a stored blob.
type Blob interface {
	io.Closer
	// ReadAt reads len(p) bytes starting at off. It follows io.ReaderAt semantics.
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)
	// Size returns the size of the blob in bytes.
	Size() int64
}

// Mappable is implemented by blobs whose content is already addressable in memory.
type Mappable interface {
	// Bytes returns the content without copying.
	// The slice is valid until the Blob is closed.
	Bytes() ([]byte, error)
}

// ReadOptions tunes ReadAll for blobs that are not Mappable.
type ReadOptions struct {
	// ChunkSize is the size of each ranged read.
	ChunkSize int64
	// Concurrency bounds the number of chunks in flight.
	Concurrency int
}

// DefaultReadOptions suit object stores, where each ranged read is a round trip.
var DefaultReadOptions = ReadOptions{
	ChunkSize:   8 << 20,
	Concurrency: 4,
}

// ReadAll returns a private copy of the blob content.
// Blobs that are not Mappable are fetched in parallel chunks.
func ReadAll(ctx context.Context, blob Blob, optFns ...func(o *ReadOptions)) ([]byte, error) {
	opts := DefaultReadOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if m, ok := blob.(Mappable); ok {
		data, err := m.Bytes()
		if err != nil {
			return nil, err
		}
		return append([]byte(nil), data...), nil
	}

	size := blob.Size()
	if size < 0 {
		return nil, errors.New("blobstore: negative blob size")
	}

	buf := make([]byte, size)
	if size == 0 {
		return buf, nil
	}

	chunk := opts.ChunkSize
	if chunk <= 0 {
		chunk = size
	}

	g, ctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}

	for off := int64(0); off < size; off += chunk {
		end := min(off+chunk, size)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			n, err := blob.ReadAt(ctx, buf[off:end], off)
			switch {
			case int64(n) == end-off:
				return nil
			case err == nil || errors.Is(err, io.EOF):
				return io.ErrUnexpectedEOF
			default:
				return err
			}
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return buf, nil
}

// Get opens name and returns a private copy of its content.
func Get(ctx context.Context, store BlobStore, name string, optFns ...func(o *ReadOptions)) ([]byte, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	return ReadAll(ctx, blob, optFns...)
}

// View calls fn with the content of name. Mappable blobs are passed without
// copying, so fn must not retain the slice.
func View(ctx context.Context, store BlobStore, name string, fn func(data []byte) error) error {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return err
	}
	defer blob.Close()

	if m, ok := blob.(Mappable); ok {
		data, err := m.Bytes()
		if err != nil {
			return err
		}
		return fn(data)
	}

	data, err := ReadAll(ctx, blob)
	if err != nil {
		return err
	}

	return fn(data)
}

// readAt copies from data with io.ReaderAt semantics.
func readAt(data, p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errors.New("blobstore: negative offset")
	}
	if off >= int64(len(data)) {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(p, data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
