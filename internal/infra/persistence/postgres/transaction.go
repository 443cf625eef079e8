// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"github.com/guesssays/med-platform/internal/domain/repository"
	"github.com/guesssays/med-platform/internal/errors"

	"gorm.io/gorm"
)

// gormTransactionManager implements the domain's TransactionManager interface using GORM.
type gormTransactionManager struct {
	db *gorm.DB
}

// gormRepositoryFactory implements the domain's RepositoryFactory interface.
// It holds a specific GORM transaction object and uses it to create
// repository instances that are bound to that single transaction.
type gormRepositoryFactory struct {
	tx *gorm.DB // In GORM, a transaction object is also a *gorm.DB
}

func (f *gormRepositoryFactory) NewUserRepository() repository.UserRepository {
	return NewUserRepository(f.tx)
}

func (f *gormRepositoryFactory) NewTokenStore() repository.TokenStore {
	return NewTokenStore(f.tx)
}

func (f *gormRepositoryFactory) NewClinicRepository() repository.ClinicRepository {
	return NewClinicRepository(f.tx)
}

func (f *gormRepositoryFactory) NewDoctorRepository() repository.DoctorRepository {
	return NewDoctorRepository(f.tx)
}

func (f *gormRepositoryFactory) NewPatientRepository() repository.PatientRepository {
	return NewPatientRepository(f.tx)
}

func (f *gormRepositoryFactory) NewAppointmentRepository() repository.AppointmentRepository {
	return NewAppointmentRepository(f.tx)
}

func (f *gormRepositoryFactory) NewContentRepository() repository.ContentRepository {
	return NewContentRepository(f.tx)
}

func (f *gormRepositoryFactory) NewSubscriptionRepository() repository.SubscriptionRepository {
	return NewSubscriptionRepository(f.tx)
}

func (f *gormRepositoryFactory) NewPaymentRepository() repository.PaymentRepository {
	return NewPaymentRepository(f.tx)
}

// NewTransactionManager is the constructor for gormTransactionManager.
// This function will be used as an Fx provider.
func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{db: db}
}

// Execute runs the given function within a single database transaction.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "failed to begin transaction")
	}

	// A panic inside fn must not leave the transaction open.
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	factory := &gormRepositoryFactory{tx: tx}

	if err := fn(factory); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return errors.Wrapf(err, "transaction rollback failed: %v", rbErr)
		}

		return err
	}

	if err := tx.Commit().Error; err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}

	return nil
}
