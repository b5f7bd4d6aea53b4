package minio

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/hupe1980/hpograph/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelative(t *testing.T) {
	assert.Equal(t, "CATALOG", relative("hpo/", "hpo/CATALOG"))
	assert.Equal(t, "releases/a", relative("hpo", "hpo/releases/a"))
	assert.Equal(t, "x", relative("", "x"))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NoSuchKey"}))
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NotFound"}))
	assert.False(t, isNotFound(minio.ErrorResponse{Code: "AccessDenied"}))
	assert.False(t, isNotFound(errors.New("boom")))
}

// TestMinioStore_Integration requires a running MinIO instance.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		t.Skip("Skipping MinIO integration test: MINIO_ENDPOINT not set")
	}

	bucket := "test-hpograph"
	ctx := context.Background()

	store, err := New(endpoint, bucket, func(o *Options) {
		o.AccessKey = "minioadmin"
		o.SecretKey = "minioadmin"
		o.Secure = false
		o.Prefix = "test-prefix/"
	})
	require.NoError(t, err)

	exists, err := store.client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, store.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	data := []byte("hello hpo world")
	require.NoError(t, store.Put(ctx, "hp.hpo", data))

	got, err := blobstore.Get(ctx, store, "hp.hpo")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "hp.hpo")

	require.NoError(t, store.Delete(ctx, "hp.hpo"))
	require.NoError(t, store.Delete(ctx, "hp.hpo"))

	_, err = store.Open(ctx, "hp.hpo")
	require.ErrorIs(t, err, blobstore.ErrNotFound)
}
