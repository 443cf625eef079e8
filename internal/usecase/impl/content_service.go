package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/guesssays/med-platform/config"
	deliverycontext "github.com/guesssays/med-platform/internal/delivery/context"
	"github.com/guesssays/med-platform/internal/domain/entity"
	domainerrors "github.com/guesssays/med-platform/internal/domain/errors"
	"github.com/guesssays/med-platform/internal/domain/repository"
	"github.com/guesssays/med-platform/internal/domain/service"
	"github.com/guesssays/med-platform/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultMediaContentType = "application/octet-stream"

type contentService struct {
	contentRepo  repository.ContentRepository
	doctorRepo   repository.DoctorRepository
	storage      service.MediaStorage
	maxMediaSize int64
	logger       *slog.Logger
}

// ContentServiceParams holds dependencies for ContentService, injected by Fx.
type ContentServiceParams struct {
	fx.In

	ContentRepo repository.ContentRepository
	DoctorRepo  repository.DoctorRepository
	Storage     service.MediaStorage
	Config      *config.Config
	Logger      *slog.Logger
}

// NewContentService creates a new content service instance.
func NewContentService(params ContentServiceParams) usecase.ContentUsecase {
	var maxMediaSize int64
	if params.Config != nil && params.Config.Storage != nil {
		maxMediaSize = params.Config.Storage.MaxMediaSize
	}

	return &contentService{
		contentRepo:  params.ContentRepo,
		doctorRepo:   params.DoctorRepo,
		storage:      params.Storage,
		maxMediaSize: maxMediaSize,
		logger:       params.Logger,
	}
}

func (srv *contentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateContent publishes an item under the caller's doctor profile, creating an
// empty profile for doctors who never filled one in.
func (srv *contentService) CreateContent(ctx context.Context, input *usecase.CreateContentInput) (*entity.ContentItem, error) {
	kind := entity.ContentKind(strings.ToLower(strings.TrimSpace(input.Kind)))
	if kind == "" {
		kind = entity.ContentArticle
	}
	if !kind.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("kind must be article or video")
	}

	doctor, err := srv.ensureDoctor(ctx, input.User)
	if err != nil {
		return nil, err
	}

	item := &entity.ContentItem{
		AuthorDoctorID: doctor.ID,
		Title:          strings.TrimSpace(input.Title),
		Kind:           kind,
		Body:           input.Body,
	}
	if err := srv.contentRepo.Create(ctx, item); err != nil {
		srv.log(ctx).Error("Failed to create content", slog.Any("doctorID", doctor.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create content")
	}

	return item, nil
}

// ListContent returns items newest first, optionally for one author.
func (srv *contentService) ListContent(ctx context.Context, authorDoctorID *uint) ([]*entity.ContentItem, error) {
	items, err := srv.contentRepo.List(ctx, authorDoctorID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list content")
	}

	return items, nil
}

// GetContent returns one item.
func (srv *contentService) GetContent(ctx context.Context, id uint) (*entity.ContentItem, error) {
	item, err := srv.contentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrContentNotFound) {
			return nil, domainerrors.ErrContentNotFound
		}

		return nil, errors.Wrap(err, "failed to find content")
	}

	return item, nil
}

// UploadMedia stores the body under a fresh key and replaces any previous media.
// Only the author (or an admin) may upload.
func (srv *contentService) UploadMedia(ctx context.Context, input *usecase.UploadMediaInput) (*entity.ContentItem, error) {
	item, err := srv.GetContent(ctx, input.ContentID)
	if err != nil {
		return nil, err
	}

	if err := srv.checkAuthor(ctx, input.User, item); err != nil {
		return nil, err
	}

	contentType := strings.TrimSpace(input.ContentType)
	if contentType == "" {
		contentType = defaultMediaContentType
	}

	key := fmt.Sprintf("content/%d/%s", item.ID, uuid.NewString())
	body := &countingReader{r: input.Body}
	if srv.maxMediaSize > 0 {
		// One byte past the limit is enough to detect an oversized upload.
		body.r = io.LimitReader(input.Body, srv.maxMediaSize+1)
	}

	if err := srv.storage.Put(ctx, key, contentType, body); err != nil {
		srv.log(ctx).Error("Failed to store media", slog.String("key", key), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to store media")
	}

	if srv.maxMediaSize > 0 && body.n > srv.maxMediaSize {
		srv.deleteMedia(ctx, key)

		return nil, domainerrors.ErrMediaTooLarge.WithDetails(fmt.Sprintf("media must not exceed %d bytes", srv.maxMediaSize))
	}

	if err := srv.contentRepo.UpdateMediaKey(ctx, item.ID, key); err != nil {
		srv.deleteMedia(ctx, key)

		return nil, errors.Wrap(err, "failed to attach media")
	}

	previous := item.MediaKey
	item.MediaKey = key
	if previous != "" {
		srv.deleteMedia(ctx, previous)
	}

	srv.log(ctx).Info("Media uploaded", slog.Any("contentID", item.ID), slog.Int64("size", body.n))

	return item, nil
}

// OpenMedia returns a reader over the item's stored media.
func (srv *contentService) OpenMedia(ctx context.Context, contentID uint) (*service.MediaObject, error) {
	item, err := srv.GetContent(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if item.MediaKey == "" {
		return nil, domainerrors.ErrMediaNotFound
	}

	object, err := srv.storage.Get(ctx, item.MediaKey)
	if err != nil {
		if errors.Is(err, service.ErrMediaNotFound) {
			return nil, domainerrors.ErrMediaNotFound
		}

		return nil, errors.Wrap(err, "failed to open media")
	}

	return object, nil
}

func (srv *contentService) ensureDoctor(ctx context.Context, user *entity.User) (*entity.DoctorProfile, error) {
	doctor, err := srv.doctorRepo.FindByUserID(ctx, user.ID)
	if err == nil {
		return doctor, nil
	}
	if !errors.Is(err, repository.ErrDoctorNotFound) {
		return nil, errors.Wrap(err, "failed to find doctor profile")
	}

	doctor = &entity.DoctorProfile{UserID: user.ID}
	if err := srv.doctorRepo.Upsert(ctx, doctor); err != nil {
		return nil, errors.Wrap(err, "failed to create doctor profile")
	}

	return doctor, nil
}

func (srv *contentService) checkAuthor(ctx context.Context, user *entity.User, item *entity.ContentItem) error {
	if entity.NormalizeRole(user.Role.String()) == entity.RoleAdmin {
		return nil
	}

	doctor, err := srv.doctorRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrDoctorNotFound) {
			return domainerrors.ErrForbidden
		}

		return errors.Wrap(err, "failed to find doctor profile")
	}
	if doctor.ID != item.AuthorDoctorID {
		return domainerrors.ErrForbidden
	}

	return nil
}

// deleteMedia is best-effort.
func (srv *contentService) deleteMedia(ctx context.Context, key string) {
	if err := srv.storage.Delete(ctx, key); err != nil {
		srv.log(ctx).Warn("Failed to delete media", slog.String("key", key), slog.Any("error", err))
	}
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)

	return n, err
}
