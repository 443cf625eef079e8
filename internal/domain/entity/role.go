// Package entity contains the core business objects of the project.
package entity

import (
	"slices"
	"strings"
)

// Role represents the type of role a user can have in the system.
// The stored value is lower-case; Name returns the symbolic upper-case form.
type Role string

const (
	// RoleAdmin manages clinics, users and payments.
	RoleAdmin Role = "admin"
	// RoleDoctor publishes content and receives appointments.
	RoleDoctor Role = "doctor"
	// RolePatient books appointments and subscribes to doctors.
	RolePatient Role = "patient"
)

// DefaultRole is assigned to every self-registered account.
const DefaultRole = RolePatient

// String returns the stored representation of the Role.
func (r Role) String() string {
	return string(r)
}

// Name returns the symbolic, upper-case name of the Role (e.g. "ADMIN").
func (r Role) Name() string {
	return strings.ToUpper(string(r))
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RolePatient:
		return true
	default:
		return false
	}
}

// NormalizeRole is the single normalization used wherever roles are compared.
// It accepts the stored value ("doctor"), the symbolic name ("DOCTOR") and a
// qualified enum form ("Role.DOCTOR"), in any letter case.
func NormalizeRole(raw string) Role {
	s := strings.TrimSpace(raw)
	if idx := strings.LastIndex(s, "."); idx >= 0 {
		s = s[idx+1:]
	}

	return Role(strings.ToLower(s))
}

// ParseRole normalizes raw and reports whether it names a known role.
func ParseRole(raw string) (Role, bool) {
	role := NormalizeRole(raw)

	return role, role.IsValid()
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role, comparing normalized forms.
func (rs Roles) Contains(role Role) bool {
	target := NormalizeRole(string(role))

	return slices.ContainsFunc(rs, func(r Role) bool {
		return NormalizeRole(string(r)) == target
	})
}

// Names converts Roles to their symbolic names.
func (rs Roles) Names() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.Name()
	}

	return result
}
