package domain

import "time"

// Supplier models a vendor purchase orders are placed against.
type Supplier struct {
	ID           string
	Name         string
	ContactEmail string
	ContactPhone string
	Address      string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}
