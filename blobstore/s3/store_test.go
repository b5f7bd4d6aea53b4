package s3

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hupe1980/hpograph/blobstore"
	"github.com/hupe1980/hpograph/internal/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStore_Open(t *testing.T) {
	mockClient := new(MockS3Client)
	store := NewStore(mockClient, "test-bucket", "prefix")

	t.Run("NotFound", func(t *testing.T) {
		mockClient.On("HeadObject", mock.Anything, mock.MatchedBy(func(input *s3.HeadObjectInput) bool {
			return *input.Bucket == "test-bucket" && *input.Key == "prefix/foo"
		})).Return(nil, &types.NotFound{}).Once()

		_, err := store.Open(context.Background(), "foo")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})

	t.Run("NoSuchKey", func(t *testing.T) {
		mockClient.On("HeadObject", mock.Anything, mock.MatchedBy(func(input *s3.HeadObjectInput) bool {
			return *input.Key == "prefix/gone"
		})).Return(nil, &types.NoSuchKey{}).Once()

		_, err := store.Open(context.Background(), "gone")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})

	t.Run("Success", func(t *testing.T) {
		mockClient.On("HeadObject", mock.Anything, mock.MatchedBy(func(input *s3.HeadObjectInput) bool {
			return *input.Bucket == "test-bucket" && *input.Key == "prefix/bar"
		})).Return(&s3.HeadObjectOutput{
			ContentLength: aws.Int64(100),
		}, nil).Once()

		blob, err := store.Open(context.Background(), "bar")
		require.NoError(t, err)
		assert.Equal(t, int64(100), blob.Size())
	})

	mockClient.AssertExpectations(t)
}

func TestStore_Put(t *testing.T) {
	mockClient := new(MockS3Client)
	store := NewStore(mockClient, "test-bucket", "prefix")

	var body []byte
	mockClient.On("PutObject", mock.Anything, mock.MatchedBy(func(input *s3.PutObjectInput) bool {
		return *input.Bucket == "test-bucket" && *input.Key == "prefix/CATALOG" &&
			aws.ToString(input.ChecksumCRC32C) == hash.CRC32CBase64([]byte("catalog"))
	})).Run(func(args mock.Arguments) {
		input := args.Get(1).(*s3.PutObjectInput)
		body, _ = io.ReadAll(input.Body)
	}).Return(&s3.PutObjectOutput{}, nil).Once()

	require.NoError(t, store.Put(context.Background(), "CATALOG", []byte("catalog")))
	assert.Equal(t, "catalog", string(body))

	mockClient.AssertExpectations(t)
}

func TestStore_PutWithoutChecksum(t *testing.T) {
	mockClient := new(MockS3Client)
	cfg := DefaultUploadConfig()
	cfg.EnableChecksum = false
	store := NewStoreWithConfig(mockClient, "b", "", cfg)

	mockClient.On("PutObject", mock.Anything, mock.MatchedBy(func(input *s3.PutObjectInput) bool {
		return *input.Key == "snap" && input.ChecksumCRC32C == nil
	})).Return(&s3.PutObjectOutput{}, nil).Once()

	require.NoError(t, store.Put(context.Background(), "snap", []byte("x")))
	mockClient.AssertExpectations(t)
}

func TestStore_Delete(t *testing.T) {
	mockClient := new(MockS3Client)
	store := NewStore(mockClient, "test-bucket", "prefix")

	mockClient.On("DeleteObject", mock.Anything, mock.MatchedBy(func(input *s3.DeleteObjectInput) bool {
		return *input.Bucket == "test-bucket" && *input.Key == "prefix/del"
	})).Return(&s3.DeleteObjectOutput{}, nil).Once()

	require.NoError(t, store.Delete(context.Background(), "del"))
	mockClient.AssertExpectations(t)
}

func TestStore_List(t *testing.T) {
	mockClient := new(MockS3Client)
	store := NewStore(mockClient, "test-bucket", "prefix/")

	mockClient.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(input *s3.ListObjectsV2Input) bool {
		return *input.Bucket == "test-bucket" && *input.Prefix == "prefix"
	})).Return(&s3.ListObjectsV2Output{
		Contents: []types.Object{
			{Key: aws.String("prefix/file1")},
			{Key: aws.String("prefix/dir/file2")},
		},
	}, nil).Once()

	keys, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"dir/file2", "file1"}, keys)
}

func TestStore_List_Pagination(t *testing.T) {
	mockClient := new(MockS3Client)
	store := NewStore(mockClient, "test-bucket", "prefix/")

	mockClient.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(input *s3.ListObjectsV2Input) bool {
		return input.ContinuationToken == nil
	})).Return(&s3.ListObjectsV2Output{
		IsTruncated:           aws.Bool(true),
		NextContinuationToken: aws.String("token"),
		Contents:              []types.Object{{Key: aws.String("prefix/releases/2")}},
	}, nil).Once()

	mockClient.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(input *s3.ListObjectsV2Input) bool {
		return input.ContinuationToken != nil && *input.ContinuationToken == "token"
	})).Return(&s3.ListObjectsV2Output{
		IsTruncated: aws.Bool(false),
		Contents:    []types.Object{{Key: aws.String("prefix/releases/1")}},
	}, nil).Once()

	keys, err := store.List(context.Background(), "releases/")
	require.NoError(t, err)
	assert.Equal(t, []string{"releases/1", "releases/2"}, keys)
}

func TestBlob_ReadAt(t *testing.T) {
	mockClient := new(MockS3Client)
	blob := &s3Blob{
		client: mockClient,
		bucket: "b",
		key:    "k",
		size:   10,
	}
	ctx := context.Background()

	mockClient.On("GetObject", mock.Anything, mock.MatchedBy(func(input *s3.GetObjectInput) bool {
		return *input.Bucket == "b" && *input.Key == "k" && *input.Range == "bytes=0-4"
	})).Return(&s3.GetObjectOutput{
		Body: io.NopCloser(strings.NewReader("hello")),
	}, nil).Once()

	buf := make([]byte, 5)
	n, err := blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", string(buf))

	mockClient.On("GetObject", mock.Anything, mock.MatchedBy(func(input *s3.GetObjectInput) bool {
		return *input.Range == "bytes=7-9"
	})).Return(&s3.GetObjectOutput{
		Body: io.NopCloser(strings.NewReader("rld")),
	}, nil).Once()

	tail := make([]byte, 8)
	n, err = blob.ReadAt(ctx, tail, 7)
	assert.Equal(t, 3, n)
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, "rld", string(tail[:n]))

	n, err = blob.ReadAt(ctx, buf, 10)
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)

	mockClient.AssertExpectations(t)
}

func TestBlob_ReadAllChunked(t *testing.T) {
	mockClient := new(MockS3Client)
	store := NewStore(mockClient, "b", "")
	ctx := context.Background()
	content := "0123456789"

	mockClient.On("HeadObject", mock.Anything, mock.Anything).Return(&s3.HeadObjectOutput{
		ContentLength: aws.Int64(int64(len(content))),
	}, nil).Once()

	for _, r := range []struct{ rng, body string }{
		{"bytes=0-3", content[0:4]},
		{"bytes=4-7", content[4:8]},
		{"bytes=8-9", content[8:10]},
	} {
		mockClient.On("GetObject", mock.Anything, mock.MatchedBy(func(input *s3.GetObjectInput) bool {
			return *input.Range == r.rng
		})).Return(&s3.GetObjectOutput{
			Body: io.NopCloser(strings.NewReader(r.body)),
		}, nil).Once()
	}

	data, err := blobstore.Get(ctx, store, "snap", func(o *blobstore.ReadOptions) {
		o.ChunkSize = 4
	})
	require.NoError(t, err)
	assert.Equal(t, content, string(data))

	mockClient.AssertExpectations(t)
}
