package usecase

import (
	"context"
	"io"

	"github.com/guesssays/med-platform/internal/domain/entity"
	"github.com/guesssays/med-platform/internal/domain/service"
)

// CreateContentInput describes a new content item.
type CreateContentInput struct {
	User  *entity.User
	Title string
	Kind  string
	Body  string
}

// UploadMediaInput attaches a media object to a content item.
type UploadMediaInput struct {
	User        *entity.User
	ContentID   uint
	ContentType string
	Body        io.Reader
}

// ContentUsecase manages doctor-authored content and its media.
type ContentUsecase interface {
	CreateContent(ctx context.Context, input *CreateContentInput) (*entity.ContentItem, error)
	ListContent(ctx context.Context, authorDoctorID *uint) ([]*entity.ContentItem, error)
	GetContent(ctx context.Context, id uint) (*entity.ContentItem, error)
	UploadMedia(ctx context.Context, input *UploadMediaInput) (*entity.ContentItem, error)
	// OpenMedia returns the stored object; the caller must close its Body.
	OpenMedia(ctx context.Context, contentID uint) (*service.MediaObject, error)
}
