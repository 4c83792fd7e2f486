package dto

import "time"

// CreateSupplierRequest body para POST /api/suppliers.
type CreateSupplierRequest struct {
	Name        string `json:"name"`
	ContactName string `json:"contact_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
}

// UpdateSupplierRequest body para PUT /api/suppliers/:id.
type UpdateSupplierRequest struct {
	Name        *string `json:"name,omitempty"`
	ContactName *string `json:"contact_name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// SupplierResponse representación HTTP de un proveedor.
type SupplierResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name,omitempty"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Address     string    `json:"address,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SupplierListResponse listado paginado de proveedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Meta  ListMeta           `json:"meta"`
}
