// Package model holds the GORM persistence models. Domain entities never carry gorm tags.
package model

// All lists every model in dependency order for schema migration.
func All() []any {
	return []any{
		&UserModel{},
		&RefreshTokenModel{},
		&PasswordResetTokenModel{},
		&ClinicModel{},
		&DoctorProfileModel{},
		&PatientProfileModel{},
		&AppointmentModel{},
		&ContentItemModel{},
		&SubscriptionModel{},
		&PaymentModel{},
	}
}
