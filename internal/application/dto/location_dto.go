package dto

import "time"

// CreateLocationRequest body para POST /api/locations.
type CreateLocationRequest struct {
	Name    string `json:"name"`
	Type    string `json:"type,omitempty"` // store, warehouse (default warehouse)
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// UpdateLocationRequest body para PUT /api/locations/:id.
type UpdateLocationRequest struct {
	Name     *string `json:"name,omitempty"`
	Type     *string `json:"type,omitempty"`
	Address  *string `json:"address,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// LocationResponse representación HTTP de una ubicación.
type LocationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LocationListResponse listado paginado de ubicaciones.
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
	Meta  ListMeta           `json:"meta"`
}
