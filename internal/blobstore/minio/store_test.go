package minio

import (
	"context"
	"io/fs"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestStore_Integration(t *testing.T) {
	bucket := "test-kquant"

	client, err := NewClient("localhost:9000", "minioadmin", "minioadmin", false)
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()
	if _, err := client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := NewStore(client, bucket, "test-prefix/")

	data := []byte("swatch bytes")
	require.NoError(t, store.Put(ctx, "palette.png", data, "image/png"))

	got, err := store.Get(ctx, "palette.png")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	_, err = store.Get(ctx, "missing.png")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestStore_Key(t *testing.T) {
	store := NewStore(nil, "b", "runs/")
	assert.Equal(t, "runs/out.png", store.key("out.png"))
	assert.Equal(t, "out.png", NewStore(nil, "b", "").key("out.png"))
}
