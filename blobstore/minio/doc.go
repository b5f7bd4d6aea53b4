// Package minio stores ontology snapshots in MinIO or any other
// S3-compatible service through the MinIO client.
//
// # Usage
//
//	store, err := minio.New("localhost:9000", "hpo",
//	    func(o *minio.Options) {
//	        o.AccessKey = "minioadmin"
//	        o.SecretKey = "minioadmin"
//	        o.Secure = false
//	    },
//	)
//
//	g, err := hpograph.OpenCurrent(ctx, store)
//
// Use this package instead of blobstore/s3 in air-gapped deployments that
// do not want the AWS SDK.
package minio
