package repository

import (
	"context"

	"github.com/guesssays/med-platform/internal/domain/entity"
	"github.com/guesssays/med-platform/internal/errors"
)

// ErrContentNotFound is returned when a content item is not found.
var ErrContentNotFound = errors.New("content not found")

// ContentRepository defines content item persistence.
type ContentRepository interface {
	Create(ctx context.Context, item *entity.ContentItem) error
	FindByID(ctx context.Context, id uint) (*entity.ContentItem, error)
	// List returns items newest first, optionally restricted to one author.
	List(ctx context.Context, authorDoctorID *uint) ([]*entity.ContentItem, error)
	UpdateMediaKey(ctx context.Context, id uint, mediaKey string) error
}
