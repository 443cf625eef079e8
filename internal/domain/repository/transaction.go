package repository

import "context"

// TransactionManager runs multi-step work atomically. Token rotation,
// password reset and appointment booking depend on it.
type TransactionManager interface {
	// Execute commits when fn returns nil and rolls back otherwise.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory hands out repositories bound to the open transaction.
type RepositoryFactory interface {
	NewUserRepository() UserRepository
	NewTokenStore() TokenStore
	NewClinicRepository() ClinicRepository
	NewDoctorRepository() DoctorRepository
	NewPatientRepository() PatientRepository
	NewAppointmentRepository() AppointmentRepository
	NewContentRepository() ContentRepository
	NewSubscriptionRepository() SubscriptionRepository
	NewPaymentRepository() PaymentRepository
}
