// Package s3 stores ontology snapshots and catalogs in Amazon S3.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("hpo/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
//	g, err := hpograph.OpenCurrent(ctx, store)
//
// # Features
//
//   - HEAD on open, ranged GETs on read
//   - Single PutObject with CRC32C for small blobs, multipart above the part size
//   - Automatic pagination for listing
//   - Configurable prefix so several catalogs can share a bucket
package s3
