package handler

import (
	"time"

	"github.com/guesssays/med-platform/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// TokenPairResponse is returned by register, login and refresh.
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// UserResponse is the identity summary of /users/me.
type UserResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

// WhoAmIResponse reports the caller's role by its symbolic name.
type WhoAmIResponse struct {
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// ManagedUserResponse is returned by admin user operations.
type ManagedUserResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// SessionResponse is one active refresh ledger row.
type SessionResponse struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	UserAgent string    `json:"user_agent"`
	IP        string    `json:"ip"`
}

type ClinicResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Address     string    `json:"address,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type DoctorResponse struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"user_id"`
	ClinicID  *uint  `json:"clinic_id"`
	Specialty string `json:"specialty"`
	Title     string `json:"title"`
	Email     string `json:"email,omitempty"`
}

type PatientResponse struct {
	ID     uint   `json:"id"`
	UserID uint   `json:"user_id"`
	Email  string `json:"email,omitempty"`
}

type AppointmentResponse struct {
	ID        uint      `json:"id"`
	DoctorID  uint      `json:"doctor_id"`
	PatientID uint      `json:"patient_id"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	Status    string    `json:"status"`
}

type ContentResponse struct {
	ID        uint      `json:"id"`
	AuthorID  uint      `json:"author_id"`
	Title     string    `json:"title"`
	Kind      string    `json:"kind"`
	Body      string    `json:"body,omitempty"`
	HasMedia  bool      `json:"has_media"`
	CreatedAt time.Time `json:"created_at"`
}

// PaymentResponse renders the amount back as a two-place decimal string.
type PaymentResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Provider  string    `json:"provider"`
	Amount    string    `json:"amount"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func mapAll[T any, R any](items []T, fn func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}

	return out
}

func toTokenPairResponse(pair *entity.TokenPair) TokenPairResponse {
	return TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
	}
}

func toManagedUserResponse(user *entity.User) ManagedUserResponse {
	return ManagedUserResponse{
		ID:       user.ID,
		Email:    user.Email,
		Role:     user.Role.Name(),
		IsActive: user.IsActive,
	}
}

func toSessionResponse(token *entity.RefreshToken) SessionResponse {
	return SessionResponse{
		ID:        token.ID,
		CreatedAt: token.CreatedAt,
		ExpiresAt: token.ExpiresAt,
		UserAgent: token.UserAgent,
		IP:        token.IP,
	}
}

func toClinicResponse(clinic *entity.Clinic) ClinicResponse {
	return ClinicResponse{
		ID:          clinic.ID,
		Name:        clinic.Name,
		Slug:        clinic.Slug,
		Address:     clinic.Address,
		Phone:       clinic.Phone,
		Description: clinic.Description,
		CreatedAt:   clinic.CreatedAt,
	}
}

func toDoctorResponse(profile *entity.DoctorProfile) DoctorResponse {
	return DoctorResponse{
		ID:        profile.ID,
		UserID:    profile.UserID,
		ClinicID:  profile.ClinicID,
		Specialty: profile.Specialty,
		Title:     profile.Title,
		Email:     profile.Email,
	}
}

func toPatientResponse(profile *entity.PatientProfile) PatientResponse {
	return PatientResponse{
		ID:     profile.ID,
		UserID: profile.UserID,
		Email:  profile.Email,
	}
}

func toAppointmentResponse(appointment *entity.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:        appointment.ID,
		DoctorID:  appointment.DoctorID,
		PatientID: appointment.PatientID,
		StartsAt:  appointment.StartsAt,
		EndsAt:    appointment.EndsAt,
		Status:    string(appointment.Status),
	}
}

func toContentResponse(item *entity.ContentItem) ContentResponse {
	return ContentResponse{
		ID:        item.ID,
		AuthorID:  item.AuthorDoctorID,
		Title:     item.Title,
		Kind:      string(item.Kind),
		Body:      item.Body,
		HasMedia:  item.MediaKey != "",
		CreatedAt: item.CreatedAt,
	}
}

func toPaymentResponse(payment *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        payment.ID,
		UserID:    payment.UserID,
		Provider:  payment.Provider,
		Amount:    decimal.New(payment.AmountMinor, -2).StringFixed(2),
		Currency:  payment.Currency,
		Status:    string(payment.Status),
		CreatedAt: payment.CreatedAt,
	}
}
