package postgres

import (
	"context"
	"time"

	"github.com/guesssays/med-platform/internal/domain/entity"
	domainerrors "github.com/guesssays/med-platform/internal/domain/errors"
	"github.com/guesssays/med-platform/internal/domain/repository"
	"github.com/guesssays/med-platform/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// tokenStore implements repository.TokenStore on the refresh_tokens and
// password_reset_tokens ledgers. State changes are conditional UPDATEs so that
// concurrent requests presenting the same token cannot both succeed.
type tokenStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewTokenStore is the constructor for tokenStore.
func NewTokenStore(db *gorm.DB) repository.TokenStore {
	return newTokenStore(db, time.Now)
}

func newTokenStore(db *gorm.DB, now func() time.Time) *tokenStore {
	return &tokenStore{db: db, now: now}
}

func (s *tokenStore) utcNow() time.Time {
	return s.now().UTC()
}

// RecordRefresh inserts a new active refresh row.
func (s *tokenStore) RecordRefresh(ctx context.Context, token *entity.RefreshToken) error {
	return s.insertRefresh(s.db.WithContext(ctx), token)
}

func (s *tokenStore) insertRefresh(db *gorm.DB, token *entity.RefreshToken) error {
	if token.CreatedAt.IsZero() {
		token.CreatedAt = s.utcNow()
	}
	tokenM := fromRefreshTokenDomain(token)

	if err := db.Create(tokenM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("refresh token jti already recorded")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("invalid user reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to record refresh token")
	}

	token.ID = tokenM.ID

	return nil
}

// IsRefreshValid reports whether (userID, jti) names an unrevoked, unexpired row.
// The lookup is pinned to the primary so a just-written row is always visible.
func (s *tokenStore) IsRefreshValid(ctx context.Context, userID uint, jti string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Model(&model.RefreshTokenModel{}).
		Where("user_id = ? AND jti = ? AND revoked = ? AND expires_at > ?", userID, jti, false, s.utcNow()).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check refresh token")
	}

	return count == 1, nil
}

// RevokeRefresh marks one row revoked. Missing rows are a no-op.
func (s *tokenStore) RevokeRefresh(ctx context.Context, userID uint, jti string) error {
	err := s.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("user_id = ? AND jti = ? AND revoked = ?", userID, jti, false).
		Update("revoked", true).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to revoke refresh token")
	}

	return nil
}

// RevokeAllRefresh marks every unrevoked row of the user revoked.
func (s *tokenStore) RevokeAllRefresh(ctx context.Context, userID uint) error {
	err := s.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to revoke refresh tokens")
	}

	return nil
}

// RotateRefresh revokes the active (userID, oldJTI) row and records next atomically.
func (s *tokenStore) RotateRefresh(ctx context.Context, userID uint, oldJTI string, next *entity.RefreshToken) (bool, error) {
	rotated := false

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.RefreshTokenModel{}).
			Where("user_id = ? AND jti = ? AND revoked = ? AND expires_at > ?", userID, oldJTI, false, s.utcNow()).
			Update("revoked", true)
		if result.Error != nil {
			return domainerrors.NewDatabaseExecuteError(result.Error, "failed to revoke rotated refresh token")
		}
		if result.RowsAffected != 1 {
			return nil
		}

		if err := s.insertRefresh(tx, next); err != nil {
			return err
		}
		rotated = true

		return nil
	})
	if err != nil {
		return false, err
	}

	return rotated, nil
}

// ListActiveRefresh returns the user's active rows, newest first.
func (s *tokenStore) ListActiveRefresh(ctx context.Context, userID uint, now time.Time) ([]*entity.RefreshToken, error) {
	var tokenModels []*model.RefreshTokenModel
	err := s.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Where("user_id = ? AND revoked = ? AND expires_at > ?", userID, false, now.UTC()).
		Order("created_at DESC").
		Order("id DESC").
		Find(&tokenModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list refresh tokens")
	}

	tokens := make([]*entity.RefreshToken, 0, len(tokenModels))
	for _, tokenM := range tokenModels {
		tokens = append(tokens, toRefreshTokenDomain(tokenM))
	}

	return tokens, nil
}

// RevokeRefreshByID revokes one of the user's rows by primary key.
func (s *tokenStore) RevokeRefreshByID(ctx context.Context, userID, id uint) error {
	var tokenM model.RefreshTokenModel
	err := s.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Where("id = ? AND user_id = ?", id, userID).
		First(&tokenM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repository.ErrSessionNotFound
		}

		return errors.Wrap(err, "failed to find refresh token")
	}

	if tokenM.Revoked {
		return nil
	}

	err = s.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("revoked", true).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to revoke session")
	}

	return nil
}

// RecordReset inserts a new unused reset row.
func (s *tokenStore) RecordReset(ctx context.Context, token *entity.PasswordResetToken) error {
	if token.CreatedAt.IsZero() {
		token.CreatedAt = s.utcNow()
	}
	tokenM := fromResetTokenDomain(token)

	if err := s.db.WithContext(ctx).Create(tokenM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("reset token jti already recorded")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to record reset token")
	}

	token.ID = tokenM.ID

	return nil
}

// ConsumeReset flips used=true only for an unused, unexpired row owned by userID.
func (s *tokenStore) ConsumeReset(ctx context.Context, userID uint, jti string) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&model.PasswordResetTokenModel{}).
		Where("user_id = ? AND token_jti = ? AND used = ? AND expires_at > ?", userID, jti, false, s.utcNow()).
		Update("used", true)
	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to consume reset token")
	}

	return result.RowsAffected == 1, nil
}

// --- Mapper Functions ---

func toRefreshTokenDomain(data *model.RefreshTokenModel) *entity.RefreshToken {
	if data == nil {
		return nil
	}

	return &entity.RefreshToken{
		ID:        data.ID,
		UserID:    data.UserID,
		JTI:       data.JTI,
		CreatedAt: data.CreatedAt,
		ExpiresAt: data.ExpiresAt,
		Revoked:   data.Revoked,
		UserAgent: data.UserAgent,
		IP:        data.IP,
	}
}

func fromRefreshTokenDomain(data *entity.RefreshToken) *model.RefreshTokenModel {
	if data == nil {
		return nil
	}

	return &model.RefreshTokenModel{
		ID:        data.ID,
		UserID:    data.UserID,
		JTI:       data.JTI,
		CreatedAt: data.CreatedAt.UTC(),
		ExpiresAt: data.ExpiresAt.UTC(),
		Revoked:   data.Revoked,
		UserAgent: truncate(data.UserAgent, 256),
		IP:        truncate(data.IP, 64),
	}
}

func fromResetTokenDomain(data *entity.PasswordResetToken) *model.PasswordResetTokenModel {
	if data == nil {
		return nil
	}

	return &model.PasswordResetTokenModel{
		ID:        data.ID,
		UserID:    data.UserID,
		TokenJTI:  data.JTI,
		CreatedAt: data.CreatedAt.UTC(),
		ExpiresAt: data.ExpiresAt.UTC(),
		Used:      data.Used,
	}
}

// truncate keeps at most limit runes of s. varchar(n) counts characters, and a
// cut inside a multibyte rune is rejected by postgres as invalid UTF-8.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}

	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}

	return s
}
