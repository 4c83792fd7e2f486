package dto

import "time"

// CreateCategoryRequest body para POST /api/categories.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UpdateCategoryRequest body para PUT /api/categories/:id.
type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CategoryResponse representación HTTP de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryListResponse listado paginado de categorías.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
	Meta  ListMeta           `json:"meta"`
}
