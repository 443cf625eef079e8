package postgres

import (
	"context"

	"github.com/guesssays/med-platform/internal/domain/entity"
	domainerrors "github.com/guesssays/med-platform/internal/domain/errors"
	"github.com/guesssays/med-platform/internal/domain/repository"
	"github.com/guesssays/med-platform/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository is the constructor for contentRepository.
func NewContentRepository(db *gorm.DB) repository.ContentRepository {
	return &contentRepository{db: db}
}

func (repo *contentRepository) Create(ctx context.Context, item *entity.ContentItem) error {
	itemM := fromContentDomain(item)

	if err := repo.db.WithContext(ctx).Create(itemM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create content item")
	}

	item.ID = itemM.ID
	item.CreatedAt = itemM.CreatedAt

	return nil
}

func (repo *contentRepository) FindByID(ctx context.Context, id uint) (*entity.ContentItem, error) {
	var itemM model.ContentItemModel
	if err := repo.db.WithContext(ctx).First(&itemM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrContentNotFound
		}

		return nil, errors.Wrap(err, "failed to find content item")
	}

	return toContentDomain(&itemM), nil
}

func (repo *contentRepository) List(ctx context.Context, authorDoctorID *uint) ([]*entity.ContentItem, error) {
	query := repo.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if authorDoctorID != nil {
		query = query.Where("author_doctor_id = ?", *authorDoctorID)
	}

	var itemModels []*model.ContentItemModel
	if err := query.Find(&itemModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list content items")
	}

	items := make([]*entity.ContentItem, 0, len(itemModels))
	for _, itemM := range itemModels {
		items = append(items, toContentDomain(itemM))
	}

	return items, nil
}

func (repo *contentRepository) UpdateMediaKey(ctx context.Context, id uint, mediaKey string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ContentItemModel{}).
		Where("id = ?", id).
		Update("r2_key", mediaKey)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update media key")
	}
	if result.RowsAffected == 0 {
		return repository.ErrContentNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toContentDomain(data *model.ContentItemModel) *entity.ContentItem {
	if data == nil {
		return nil
	}

	return &entity.ContentItem{
		ID:             data.ID,
		AuthorDoctorID: data.AuthorDoctorID,
		Title:          data.Title,
		Kind:           entity.ContentKind(data.Kind),
		Body:           data.Body,
		MediaKey:       data.R2Key,
		CreatedAt:      data.CreatedAt,
	}
}

func fromContentDomain(data *entity.ContentItem) *model.ContentItemModel {
	if data == nil {
		return nil
	}

	return &model.ContentItemModel{
		ID:             data.ID,
		AuthorDoctorID: data.AuthorDoctorID,
		Title:          data.Title,
		Kind:           string(data.Kind),
		Body:           data.Body,
		R2Key:          data.MediaKey,
		CreatedAt:      data.CreatedAt,
	}
}
