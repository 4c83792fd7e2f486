package entity

import "time"

// Tipos de ubicación.
const (
	LocationTypeStore     = "store"
	LocationTypeWarehouse = "warehouse"
)

// Location representa una tienda o bodega donde se almacena inventario.
type Location struct {
	ID        string
	Name      string
	Type      string // store, warehouse
	Address   string
	Phone     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
