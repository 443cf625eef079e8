package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/guesssays/med-platform/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

func TestBlobStorage_RoundTrip(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })
	store := NewBlobStorage(bucket)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "content/1/a", "video/mp4", strings.NewReader("frames")))

	obj, err := store.Get(ctx, "content/1/a")
	require.NoError(t, err)
	defer obj.Body.Close()

	data, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	assert.Equal(t, "frames", string(data))
	assert.Equal(t, "video/mp4", obj.ContentType)
	assert.Equal(t, int64(6), obj.Size)

	require.NoError(t, store.Delete(ctx, "content/1/a"))
	require.NoError(t, store.Delete(ctx, "content/1/a"))

	_, err = store.Get(ctx, "content/1/a")
	assert.ErrorIs(t, err, service.ErrMediaNotFound)
}
