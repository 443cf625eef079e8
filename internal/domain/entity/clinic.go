package entity

import "time"

// Clinic groups doctors under a public, slug-addressable record.
type Clinic struct {
	ID          uint
	Name        string
	Slug        string
	Address     string
	Phone       string
	Description string
	OwnerID     *uint
	CreatedAt   time.Time
}
