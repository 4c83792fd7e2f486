package dto

import "time"

// ApplyMovementRequest body para POST /api/movements.
// Para transfer se requiere destination_location_id distinto del origen.
// En adjust, quantity es el nuevo valor absoluto de la fila.
type ApplyMovementRequest struct {
	ProductID             string `json:"product_id"`
	LocationID            string `json:"location_id"`
	DestinationLocationID string `json:"destination_location_id,omitempty"`
	Kind                  string `json:"kind"`
	Quantity              int64  `json:"quantity"`
	Reference             string `json:"reference,omitempty"`
	Notes                 string `json:"notes,omitempty"`
}

// MovementResponse movimiento confirmado (con ID y timestamp asignados).
type MovementResponse struct {
	ID                    int64     `json:"id"`
	ProductID             string    `json:"product_id"`
	LocationID            string    `json:"location_id"`
	DestinationLocationID *string   `json:"destination_location_id,omitempty"`
	Kind                  string    `json:"kind"`
	Quantity              int64     `json:"quantity"`
	Reference             string    `json:"reference,omitempty"`
	Notes                 string    `json:"notes,omitempty"`
	CreatedBy             string    `json:"created_by,omitempty"`
	OccurredAt            time.Time `json:"occurred_at"`
	ProductName           string    `json:"product_name,omitempty"`
	ProductSKU            string    `json:"product_sku,omitempty"`
	LocationName          string    `json:"location_name,omitempty"`
	UserName              string    `json:"user_name,omitempty"`
}

// MovementListResponse listado paginado de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Meta  ListMeta           `json:"meta"`
}

// CreateStockRequest body para POST /api/inventory (aprovisionamiento explícito).
type CreateStockRequest struct {
	ProductID       string `json:"product_id"`
	LocationID      string `json:"location_id"`
	Quantity        int64  `json:"quantity"`
	ReorderLevel    int64  `json:"reorder_level"`
	ReorderQuantity int64  `json:"reorder_quantity"`
}

// UpdateStockRequest body para PUT /api/inventory/:product_id/:location_id.
// Solo umbrales de reorden: la cantidad se muta únicamente vía movimientos.
type UpdateStockRequest struct {
	ReorderLevel    *int64 `json:"reorder_level,omitempty"`
	ReorderQuantity *int64 `json:"reorder_quantity,omitempty"`
}

// StockResponse fila de stock con nombres para listados.
type StockResponse struct {
	ProductID       string    `json:"product_id"`
	LocationID      string    `json:"location_id"`
	Quantity        int64     `json:"quantity"`
	ReorderLevel    int64     `json:"reorder_level"`
	ReorderQuantity int64     `json:"reorder_quantity"`
	LastUpdated     time.Time `json:"last_updated"`
	ProductName     string    `json:"product_name,omitempty"`
	ProductSKU      string    `json:"product_sku,omitempty"`
	LocationName    string    `json:"location_name,omitempty"`
	IsLowStock      bool      `json:"is_low_stock"`
}

// StockListResponse listado paginado de stock.
type StockListResponse struct {
	Items []StockResponse `json:"items"`
	Meta  ListMeta        `json:"meta"`
}

// LowStockAlert alerta de stock bajo para un par producto-ubicación.
type LowStockAlert struct {
	ProductID       string `json:"product_id"`
	ProductName     string `json:"product_name"`
	ProductSKU      string `json:"product_sku"`
	LocationID      string `json:"location_id"`
	LocationName    string `json:"location_name"`
	CurrentQuantity int64  `json:"current_quantity"`
	ReorderLevel    int64  `json:"reorder_level"`
	ReorderQuantity int64  `json:"reorder_quantity"`
}

// LowStockAlertList listado de alertas (ascendente por cantidad).
type LowStockAlertList struct {
	Items []LowStockAlert `json:"items"`
	Total int             `json:"total"`
}
