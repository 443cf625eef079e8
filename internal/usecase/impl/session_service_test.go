package impl

import (
	"context"
	"testing"

	"github.com/guesssays/med-platform/internal/domain/entity"
	domainerrors "github.com/guesssays/med-platform/internal/domain/errors"
	"github.com/guesssays/med-platform/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionService_ListAndRevoke(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sessions := NewSessionService(SessionServiceParams{TokenStore: env.store, Logger: env.logger})

	user, first := env.register(t, "sessions@x.com")
	_, err := env.authService().Login(ctx, &usecase.CredentialsInput{
		Email:    "sessions@x.com",
		Password: testPassword,
		Client:   entity.ClientMetadata{UserAgent: "curl/8.0", IP: "10.0.0.1"},
	})
	require.NoError(t, err)

	listed, err := sessions.ListSessions(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "curl/8.0", listed[0].UserAgent)

	// The first (registration) session is the oldest one.
	target := listed[1]
	assert.Equal(t, env.codec.ExtractJTI(first.RefreshToken), target.JTI)
	require.NoError(t, sessions.RevokeSession(ctx, user.ID, target.ID))

	_, err = env.authService().Refresh(ctx, &usecase.RefreshInput{RefreshToken: first.RefreshToken})
	assert.True(t, errors.Is(err, domainerrors.ErrRefreshTokenInvalid))

	listed, err = sessions.ListSessions(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	other, _ := env.register(t, "other@x.com")
	err = sessions.RevokeSession(ctx, other.ID, listed[0].ID)
	assert.True(t, errors.Is(err, domainerrors.ErrSessionNotFound))
}

func TestAdminService_UpdateUserRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := NewAdminService(AdminServiceParams{UserRepo: env.users, Logger: env.logger})
	user, _ := env.register(t, "promote@x.com")

	updated, err := admin.UpdateUserRole(ctx, user.ID, "Role.DOCTOR")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleDoctor, updated.Role)

	_, err = admin.UpdateUserRole(ctx, user.ID, "nurse")
	assert.True(t, errors.Is(err, domainerrors.ErrUnknownRole))

	_, err = admin.UpdateUserRole(ctx, 9999, "ADMIN")
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}
