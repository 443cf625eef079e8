package postgres

import (
	"context"

	"github.com/guesssays/med-platform/internal/errors"
	"github.com/guesssays/med-platform/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// Migrate creates or updates every table, index and foreign key. It is idempotent.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(model.All()...); err != nil {
		return errors.Wrap(err, "failed to migrate schema")
	}

	return nil
}
