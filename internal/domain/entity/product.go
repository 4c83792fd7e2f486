package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo (multi-ubicación).
// El stock no vive aquí: se maneja por ubicación en StockRow.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	UnitPrice   decimal.Decimal // precio de venta
	CostPrice   decimal.Decimal // costo de compra
	Barcode     string
	Unit        string // pcs, kg, lt, ...
	CategoryID  string // vacío si sin categoría
	SupplierID  string // vacío si sin proveedor
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
