package service

import (
	"context"
	"io"

	"github.com/guesssays/med-platform/internal/errors"
)

// ErrMediaNotFound is returned when no object exists under the requested key.
var ErrMediaNotFound = errors.New("media not found")

// MediaObject is a readable stored object. Callers must close Body.
type MediaObject struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// MediaStorage stores content media in an object bucket.
type MediaStorage interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) error
	Get(ctx context.Context, key string) (*MediaObject, error)
	Delete(ctx context.Context, key string) error
}
