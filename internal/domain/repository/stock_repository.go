package repository

import (
	"context"

	"github.com/jhoicas/stocktrack-api/internal/domain/entity"
)

// StockFilter filtros para listar filas de stock.
type StockFilter struct {
	ProductID    string // vacío = todos
	LocationID   string // vacío = todas
	LowStockOnly bool   // quantity <= reorder_level, empujado a SQL
	Limit        int
	Offset       int
}

// StockView fila de stock enriquecida con nombres para listados y alertas.
type StockView struct {
	entity.StockRow
	ProductName  string
	ProductSKU   string
	LocationName string
}

// StockRepository define el puerto para consultar/actualizar stock por producto+ubicación.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// Get devuelve la fila o nil si el par no existe.
	Get(ctx context.Context, productID, locationID string) (*entity.StockRow, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	// La fila debe existir; usar Ensure antes dentro de la misma transacción.
	GetForUpdate(ctx context.Context, productID, locationID string) (*entity.StockRow, error)
	// Ensure crea la fila en cero si no existe (INSERT ... ON CONFLICT DO NOTHING).
	Ensure(ctx context.Context, productID, locationID string) error
	// Create inserta una fila aprovisionada explícitamente; par duplicado -> ErrDuplicate.
	Create(ctx context.Context, row *entity.StockRow) error
	// UpdateQuantity fija la cantidad y refresca last_updated. Solo el motor de
	// movimientos debe invocarlo.
	UpdateQuantity(ctx context.Context, productID, locationID string, quantity int64) error
	// UpdateReorder actualiza los umbrales de reorden sin tocar la cantidad.
	UpdateReorder(ctx context.Context, productID, locationID string, reorderLevel, reorderQuantity int64) error
	List(ctx context.Context, filter StockFilter) ([]*StockView, int64, error)
	// ListLowStock devuelve las filas con quantity <= reorder_level,
	// ordenadas por cantidad ascendente (más agotadas primero).
	ListLowStock(ctx context.Context) ([]*StockView, error)
}
