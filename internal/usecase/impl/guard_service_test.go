package impl

import (
	"context"
	"testing"

	"github.com/guesssays/med-platform/internal/domain/entity"
	domainerrors "github.com/guesssays/med-platform/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardService_ResolveIdentityRejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	guard := env.guardService()
	user, pair := env.register(t, "guard@x.com")

	ghostAccess, err := env.codec.IssueAccess("ghost@x.com")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "basic scheme", header: "Basic " + pair.AccessToken},
		{name: "scheme only", header: "Bearer "},
		{name: "malformed token", header: "Bearer abc.def.ghi"},
		{name: "refresh token", header: "Bearer " + pair.RefreshToken},
		{name: "unknown subject", header: "Bearer " + ghostAccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := guard.ResolveIdentity(ctx, tt.header)
			assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized), "got %v", err)
		})
	}

	t.Run("scheme is case-insensitive", func(t *testing.T) {
		resolved, err := guard.ResolveIdentity(ctx, "bearer "+pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, resolved.ID)
	})

	t.Run("inactive account", func(t *testing.T) {
		env.deactivate(t, user.ID)

		_, err := guard.ResolveIdentity(ctx, "Bearer "+pair.AccessToken)
		assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
	})
}

func TestGuardService_RequireRole(t *testing.T) {
	env := newTestEnv(t)
	adminOnly := env.guardService().RequireRole(entity.RoleAdmin)

	assert.NoError(t, adminOnly(&entity.User{Role: entity.RoleAdmin}))
	assert.True(t, errors.Is(adminOnly(&entity.User{Role: entity.RoleDoctor}), domainerrors.ErrForbidden))
	assert.True(t, errors.Is(adminOnly(nil), domainerrors.ErrUnauthorized))

	// Stored and symbolic spellings compare equal.
	mixed := env.guardService().RequireRole(entity.Role("Role.DOCTOR"), entity.Role("ADMIN"))
	assert.NoError(t, mixed(&entity.User{Role: entity.RoleDoctor}))
	assert.True(t, errors.Is(mixed(&entity.User{Role: entity.RolePatient}), domainerrors.ErrForbidden))
}

func TestGuardService_SuperAdminOverride(t *testing.T) {
	env := newTestEnv(t)
	superUser := &entity.User{Role: entity.RolePatient, IsSuperAdmin: true}

	disabled := env.guardService()
	assert.True(t, errors.Is(disabled.Authorize(superUser, entity.RoleAdmin), domainerrors.ErrForbidden))

	env.cfg.Auth.SuperAdminOverride = true
	enabled := env.guardService()
	assert.NoError(t, enabled.Authorize(superUser, entity.RoleAdmin))
	assert.True(t, errors.Is(enabled.Authorize(&entity.User{Role: entity.RolePatient}, entity.RoleAdmin), domainerrors.ErrForbidden))
}

func TestParseBearer(t *testing.T) {
	token, ok := parseBearer("  Bearer   abc ")
	assert.True(t, ok)
	assert.Equal(t, "abc", token)

	_, ok = parseBearer("Bearerabc")
	assert.False(t, ok)
}
