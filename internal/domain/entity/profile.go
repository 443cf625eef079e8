package entity

// DoctorProfile holds data specific to the DOCTOR role.
type DoctorProfile struct {
	ID        uint
	UserID    uint
	ClinicID  *uint
	Specialty string
	Title     string
	Email     string // Read-only projection of the owning user's email.
}

// PatientProfile holds data specific to the PATIENT role.
type PatientProfile struct {
	ID     uint
	UserID uint
	Email  string
}
