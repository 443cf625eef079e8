// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is the identity record. Email is unique and compared exactly as stored.
type User struct {
	ID           uint      // Numeric primary key.
	Email        string    // Login identifier and token subject.
	PasswordHash string    // bcrypt hash, never the plaintext.
	Role         Role      // One of RoleAdmin, RoleDoctor, RolePatient.
	IsActive     bool      // Inactive accounts cannot authenticate.
	IsSuperAdmin bool      // Bypasses role checks when the override is enabled.
	CreatedAt    time.Time // Timestamp of when this user account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this user's data.
}

// NewUser builds an active account with the given role.
func NewUser(email, passwordHash string, role Role) *User {
	return &User{
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
	}
}
