package entity

import "time"

// Supplier representa un proveedor de productos.
type Supplier struct {
	ID          string
	Name        string
	ContactName string
	Email       string
	Phone       string
	Address     string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
