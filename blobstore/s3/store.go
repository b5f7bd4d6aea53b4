package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hupe1980/hpograph/blobstore"
)

// Client is the subset of the S3 API used by Store.
// *s3.Client satisfies it.
type Client interface {
	manager.UploadAPIClient
	s3.HeadObjectAPIClient
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Options configures a Store created by New.
type Options struct {
	// Prefix is prepended to every blob name.
	Prefix string
	// Region overrides the region from the shared AWS config.
	Region string
	// Endpoint points the client at an S3-compatible service.
	Endpoint string
	// UsePathStyle addresses buckets by path, as most S3-compatible services require.
	UsePathStyle bool
	// Upload tunes Put.
	Upload UploadConfig
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) func(o *Options) {
	return func(o *Options) { o.Prefix = prefix }
}

// WithRegion sets the AWS region.
func WithRegion(region string) func(o *Options) {
	return func(o *Options) { o.Region = region }
}

// WithEndpoint sets a custom endpoint and switches to path-style addressing.
func WithEndpoint(endpoint string) func(o *Options) {
	return func(o *Options) {
		o.Endpoint = endpoint
		o.UsePathStyle = true
	}
}

// WithUploadConfig replaces the upload settings.
func WithUploadConfig(cfg UploadConfig) func(o *Options) {
	return func(o *Options) { o.Upload = cfg }
}

// Store implements blobstore.BlobStore for S3.
type Store struct {
	client   Client
	uploader *manager.Uploader
	bucket   string
	prefix   string
	upload   UploadConfig
}

// New loads the default AWS configuration and creates a Store for bucket.
func New(ctx context.Context, bucket string, optFns ...func(o *Options)) (*Store, error) {
	opts := Options{Upload: DefaultUploadConfig()}
	for _, fn := range optFns {
		fn(&opts)
	}

	var loadFns []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadFns = append(loadFns, config.WithRegion(opts.Region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadFns...)
	if err != nil {
		return nil, fmt.Errorf("s3: load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.UsePathStyle
	})

	return NewStoreWithConfig(client, bucket, opts.Prefix, opts.Upload), nil
}

// NewStore creates a new S3 blob store with the default upload settings.
// rootPrefix is prepended to all keys (e.g. "hpo/").
func NewStore(client Client, bucket, rootPrefix string) *Store {
	return NewStoreWithConfig(client, bucket, rootPrefix, DefaultUploadConfig())
}

// NewStoreWithConfig creates a new S3 blob store.
func NewStoreWithConfig(client Client, bucket, rootPrefix string, cfg UploadConfig) *Store {
	return &Store{
		client:   client,
		uploader: newUploader(client, cfg),
		bucket:   bucket,
		prefix:   rootPrefix,
		upload:   cfg,
	}
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Open issues a HEAD request for the blob size. Reads are ranged GETs.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	key := s.key(name)

	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, blobstore.ErrNotFound
		}
		return nil, err
	}

	return &s3Blob{
		client: s.client,
		bucket: s.bucket,
		key:    key,
		size:   aws.ToInt64(head.ContentLength),
	}, nil
}

// Put uploads data. Blobs below the part size go out as a single PutObject
// carrying a CRC32C checksum; larger ones use a multipart upload.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	key := s.key(name)

	if int64(len(data)) < s.upload.PartSize {
		if s.upload.EnableChecksum {
			return putWithChecksum(ctx, s.client, s.bucket, key, data)
		}
		_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(s.bucket),
			Key:           aws.String(key),
			Body:          bytes.NewReader(data),
			ContentLength: aws.Int64(int64(len(data))),
		})
		return err
	}

	return upload(ctx, s.uploader, s.bucket, key, data, s.upload.EnableChecksum)
}

// Delete removes a blob. S3 does not report missing keys on delete.
func (s *Store) Delete(ctx context.Context, name string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	return err
}

// List pages through ListObjectsV2 and strips the store prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	fullPrefix := s.key(prefix)
	if strings.HasSuffix(prefix, "/") {
		fullPrefix += "/"
	}

	var keys []string

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(fullPrefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			keys = append(keys, s.relative(aws.ToString(obj.Key)))
		}
	}

	slices.Sort(keys)
	return keys, nil
}

func (s *Store) relative(key string) string {
	if s.prefix == "" {
		return key
	}
	rel, ok := strings.CutPrefix(key, s.prefix)
	if !ok {
		return key
	}
	return strings.TrimPrefix(rel, "/")
}

func isNotFound(err error) bool {
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var nsk *types.NoSuchKey
	return errors.As(err, &nsk)
}

// s3Blob implements blobstore.Blob with ranged GETs.
type s3Blob struct {
	client Client
	bucket string
	key    string
	size   int64
}

func (b *s3Blob) Close() error {
	return nil
}

func (b *s3Blob) Size() int64 {
	return b.size
}

func (b *s3Blob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if off >= b.size {
		return 0, io.EOF
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	end := min(off+int64(len(p)), b.size) - 1

	resp, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.key),
		Range:  aws.String(fmt.Sprintf("bytes=%d-%d", off, end)),
	})
	if err != nil {
		if isNotFound(err) {
			return 0, blobstore.ErrNotFound
		}
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	want := int(end - off + 1)

	n, err := io.ReadFull(resp.Body, p[:want])
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return n, err
	}

	if want < len(p) {
		return n, io.EOF
	}
	return n, nil
}
