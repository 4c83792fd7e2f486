package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	Barcode     string          `json:"barcode,omitempty"`
	Unit        string          `json:"unit,omitempty"`
	CategoryID  string          `json:"category_id,omitempty"`
	SupplierID  string          `json:"supplier_id,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id (campos opcionales).
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	CostPrice   *decimal.Decimal `json:"cost_price,omitempty"`
	Barcode     *string          `json:"barcode,omitempty"`
	Unit        *string          `json:"unit,omitempty"`
	CategoryID  *string          `json:"category_id,omitempty"`
	SupplierID  *string          `json:"supplier_id,omitempty"`
	IsActive    *bool            `json:"is_active,omitempty"`
}

// ProductResponse representación HTTP de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	Barcode     string          `json:"barcode,omitempty"`
	Unit        string          `json:"unit"`
	CategoryID  string          `json:"category_id,omitempty"`
	SupplierID  string          `json:"supplier_id,omitempty"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Meta  ListMeta          `json:"meta"`
}
