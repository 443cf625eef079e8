// Package entity contains the core business objects of the project.
package entity

import "time"

// Subscription represents a patient's subscription to a doctor's content.
type Subscription struct {
	ID        uint       `json:"id"`
	PatientID uint       `json:"patient_id"` // PatientProfile.ID
	DoctorID  uint       `json:"doctor_id"`  // DoctorProfile.ID
	IsActive  bool       `json:"is_active"`
	StartedAt time.Time  `json:"started_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}
