// Package storage keeps content media in an object bucket addressed by URL
// (mem://, file:///path or s3://bucket?region=...).
package storage

import (
	"context"
	"io"
	"log/slog"

	"github.com/guesssays/med-platform/config"
	"github.com/guesssays/med-platform/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
	"gocloud.dev/gcerrors"
)

// Params holds dependencies for the media bucket, injected by Fx.
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

type blobStorage struct {
	bucket *blob.Bucket
}

// New opens the configured bucket and closes it on shutdown.
func New(params Params) (service.MediaStorage, error) {
	bucketURL := params.Config.Storage.BucketURL

	bucket, err := blob.OpenBucket(params.Ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", bucketURL)
	}
	params.Logger.Info("Media bucket opened", slog.String("url", bucketURL))

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return errors.WithStack(bucket.Close())
		},
	})

	return NewBlobStorage(bucket), nil
}

// NewBlobStorage wraps an already opened bucket.
func NewBlobStorage(bucket *blob.Bucket) service.MediaStorage {
	return &blobStorage{bucket: bucket}
}

func (s *blobStorage) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	w, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return errors.Wrap(err, "failed to open media writer")
	}

	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()

		return errors.Wrap(err, "failed to write media")
	}

	if err := w.Close(); err != nil {
		return errors.Wrap(err, "failed to commit media")
	}

	return nil
}

func (s *blobStorage) Get(ctx context.Context, key string) (*service.MediaObject, error) {
	r, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, service.ErrMediaNotFound
		}

		return nil, errors.Wrap(err, "failed to open media reader")
	}

	return &service.MediaObject{
		Body:        r,
		ContentType: r.ContentType(),
		Size:        r.Size(),
	}, nil
}

// Delete removes the object. Missing objects are not an error.
func (s *blobStorage) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return errors.Wrap(err, "failed to delete media")
	}

	return nil
}
