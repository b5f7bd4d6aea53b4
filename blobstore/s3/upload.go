package s3

import (
	"bytes"
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hupe1980/hpograph/internal/hash"
)

// UploadConfig configures uploads.
type UploadConfig struct {
	// PartSize is the multipart part size. Smaller blobs use a single PutObject.
	// Default: 8MB
	PartSize int64

	// Concurrency is the number of concurrent part uploads.
	// Default: 5 (matches SDK default)
	Concurrency int

	// EnableChecksum enables CRC32C integrity validation.
	// Default: true
	EnableChecksum bool

	// LeavePartsOnError keeps uploaded parts when a multipart upload fails.
	// Default: false (abort on error)
	LeavePartsOnError bool
}

// DefaultUploadConfig returns the default upload settings.
func DefaultUploadConfig() UploadConfig {
	return UploadConfig{
		PartSize:       8 * 1024 * 1024,
		Concurrency:    5,
		EnableChecksum: true,
	}
}

func newUploader(client manager.UploadAPIClient, cfg UploadConfig) *manager.Uploader {
	return manager.NewUploader(client, func(u *manager.Uploader) {
		if cfg.PartSize >= manager.MinUploadPartSize {
			u.PartSize = cfg.PartSize
		}
		if cfg.Concurrency > 0 {
			u.Concurrency = cfg.Concurrency
		}
		u.LeavePartsOnError = cfg.LeavePartsOnError
	})
}

func putWithChecksum(ctx context.Context, client Client, bucket, key string, data []byte) error {
	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:         aws.String(bucket),
		Key:            aws.String(key),
		Body:           bytes.NewReader(data),
		ContentLength:  aws.Int64(int64(len(data))),
		ChecksumCRC32C: aws.String(hash.CRC32CBase64(data)),
	})

	return err
}

func upload(ctx context.Context, uploader *manager.Uploader, bucket, key string, data []byte, checksum bool) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if checksum {
		input.ChecksumAlgorithm = types.ChecksumAlgorithmCrc32c
	}

	_, err := uploader.Upload(ctx, input)
	return err
}
