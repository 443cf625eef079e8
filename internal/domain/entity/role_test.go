package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		raw  string
		want Role
	}{
		{raw: "admin", want: RoleAdmin},
		{raw: "ADMIN", want: RoleAdmin},
		{raw: "Role.DOCTOR", want: RoleDoctor},
		{raw: "UserRole.patient", want: RolePatient},
		{raw: "  Doctor ", want: RoleDoctor},
		{raw: "nurse", want: Role("nurse")},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeRole(tt.raw))
		})
	}
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole("Role.ADMIN")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, role)

	_, ok = ParseRole("nurse")
	assert.False(t, ok)
}

func TestRoles_ContainsIsCaseInsensitive(t *testing.T) {
	allowed := Roles{Role("ADMIN")}

	assert.True(t, allowed.Contains(RoleAdmin))
	assert.False(t, allowed.Contains(RoleDoctor))
	assert.Equal(t, []string{"ADMIN"}, allowed.Names())
}

func TestRoleName(t *testing.T) {
	assert.Equal(t, "PATIENT", DefaultRole.Name())
	assert.Equal(t, "patient", DefaultRole.String())
}
