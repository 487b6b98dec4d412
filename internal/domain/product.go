package domain

import "time"

// Product is a sellable or stockable catalog item.
type Product struct {
	ID          string
	SKU         string
	Name        string
	Description string
	CategoryID  *string
	SupplierID  *string
	UnitPrice   float64
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}
