package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"
	"slices"
	"strings"

	"github.com/hupe1980/hpograph/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Options configures a Store created by New.
type Options struct {
	AccessKey string
	SecretKey string
	Region    string
	Secure    bool
	// Prefix is prepended to every blob name.
	Prefix string
}

// Store implements blobstore.BlobStore for MinIO and S3-compatible storage.
type Store struct {
	client *minio.Client
	bucket string
	prefix string
}

// New connects to endpoint with static credentials.
func New(endpoint, bucket string, optFns ...func(o *Options)) (*Store, error) {
	opts := Options{Secure: true}
	for _, fn := range optFns {
		fn(&opts)
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.Secure,
		Region: opts.Region,
	})
	if err != nil {
		return nil, err
	}

	return NewStore(client, bucket, opts.Prefix), nil
}

// NewStore creates a new MinIO blob store.
// rootPrefix is prepended to all keys (e.g. "hpo/").
func NewStore(client *minio.Client, bucket, rootPrefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: rootPrefix,
	}
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Open stats the object for its size. Reads are ranged GETs.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	key := s.key(name)

	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return nil, blobstore.ErrNotFound
		}
		return nil, err
	}

	return &minioBlob{
		client: s.client,
		bucket: s.bucket,
		key:    key,
		size:   info.Size,
	}, nil
}

// Put writes a blob. MinIO commits objects atomically.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, s.key(name), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:    "application/octet-stream",
		SendContentMd5: true,
	})
	return err
}

// Delete removes a blob.
func (s *Store) Delete(ctx context.Context, name string) error {
	err := s.client.RemoveObject(ctx, s.bucket, s.key(name), minio.RemoveObjectOptions{})
	if err != nil && !isNotFound(err) {
		return err
	}
	return nil
}

// List returns all blob names with the given prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	fullPrefix := s.key(prefix)
	if strings.HasSuffix(prefix, "/") {
		fullPrefix += "/"
	}

	var names []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    fullPrefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		if name := relative(s.prefix, obj.Key); name != "" {
			names = append(names, name)
		}
	}

	slices.Sort(names)
	return names, nil
}

func relative(prefix, key string) string {
	name := strings.TrimPrefix(key, prefix)
	return strings.TrimPrefix(name, "/")
}

func isNotFound(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NotFound":
		return true
	}
	return false
}

type minioBlob struct {
	client *minio.Client
	bucket string
	key    string
	size   int64
}

func (b *minioBlob) Size() int64 {
	return b.size
}

func (b *minioBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if off >= b.size {
		return 0, io.EOF
	}

	end := min(off+int64(len(p)), b.size) - 1

	opts := minio.GetObjectOptions{}
	if err := opts.SetRange(off, end); err != nil {
		return 0, err
	}

	obj, err := b.client.GetObject(ctx, b.bucket, b.key, opts)
	if err != nil {
		return 0, err
	}
	defer obj.Close()

	want := int(end - off + 1)

	n, err := io.ReadFull(obj, p[:want])
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		if isNotFound(err) {
			err = blobstore.ErrNotFound
		}
		return n, err
	}

	if want < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (b *minioBlob) Close() error {
	return nil
}
