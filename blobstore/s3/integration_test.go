package s3

import (
	"context"
	"crypto/rand"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/hupe1980/hpograph/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration_S3Store(t *testing.T) {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		t.Skip("Skipping S3 integration test: S3_BUCKET not set")
	}

	ctx := context.Background()

	store, err := New(ctx, bucket, WithPrefix(fmt.Sprintf("test-hpograph-%d/", time.Now().UnixNano())))
	require.NoError(t, err)

	data := make([]byte, 1024*1024)
	_, _ = rand.Read(data)

	require.NoError(t, store.Put(ctx, "hp.hpo", data))

	got, err := blobstore.Get(ctx, store, "hp.hpo")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"hp.hpo"}, names)

	require.NoError(t, store.Delete(ctx, "hp.hpo"))

	_, err = store.Open(ctx, "hp.hpo")
	require.ErrorIs(t, err, blobstore.ErrNotFound)
}
