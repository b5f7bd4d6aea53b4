// Package blobstore stores encoded ontology snapshots and release catalogs.
//
// BlobStore is the interface shared by every backend. Implementations must
// be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, mmap on read, atomic rename on write
//   - MemoryStore: in-process map, used by tests
//   - CachingStore: LRU of whole blobs in front of a remote store
//   - s3.Store: Amazon S3 with ranged reads and multipart uploads
//   - minio.Store: MinIO and other S3-compatible services
//
// # Reading
//
// View hands the content to a callback without copying when the blob is
// Mappable. Get and ReadAll return a private copy and fetch remote blobs in
// parallel chunks.
//
//	err := blobstore.View(ctx, store, "releases/hp-2025-01-16.hpo", func(data []byte) error {
//	    ont, err = codec.Decode(data)
//	    return err
//	})
package blobstore
