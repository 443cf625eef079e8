package postgres

import (
	"context"
	"testing"

	"github.com/guesssays/med-platform/internal/domain/entity"
	"github.com/guesssays/med-platform/internal/domain/repository"
	"github.com/guesssays/med-platform/internal/infra/persistence/sqlitetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := sqlitetest.Open(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	user := entity.NewUser("doc@x.com", "hash", entity.RoleDoctor)
	require.NoError(t, repo.Create(ctx, user))
	require.NotZero(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	found, err := repo.FindByEmail(ctx, "doc@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, entity.RoleDoctor, found.Role)
	assert.True(t, found.IsActive)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "doc@x.com", byID.Email)

	_, err = repo.FindByEmail(ctx, "DOC@x.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound, "emails are compared exactly")

	_, err = repo.FindByID(ctx, 999)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := sqlitetest.Open(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	require.NoError(t, repo.Create(ctx, entity.NewUser("a@x.com", "hash", entity.RolePatient)))

	err := repo.Create(ctx, entity.NewUser("a@x.com", "other", entity.RolePatient))
	assert.ErrorIs(t, err, repository.ErrUserAlreadyExists)
}

func TestUserRepository_Updates(t *testing.T) {
	db := sqlitetest.Open(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	user := entity.NewUser("a@x.com", "hash", entity.RolePatient)
	require.NoError(t, repo.Create(ctx, user))

	require.NoError(t, repo.UpdatePasswordHash(ctx, user.ID, "new-hash"))
	require.NoError(t, repo.UpdateRole(ctx, user.ID, entity.RoleAdmin))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", found.PasswordHash)
	assert.Equal(t, entity.RoleAdmin, found.Role)

	assert.ErrorIs(t, repo.UpdateRole(ctx, 999, entity.RoleAdmin), repository.ErrUserNotFound)
}
