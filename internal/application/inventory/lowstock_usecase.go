package inventory

import (
	"context"

	"github.com/jhoicas/stocktrack-api/internal/domain/repository"
)

// LowStockUseCase deriva las alertas de stock bajo: proyección pura sobre el
// ledger, sin estado propio; se recalcula en cada llamada.
type LowStockUseCase struct {
	stockRepo repository.StockRepository
}

// NewLowStockUseCase construye el evaluador.
func NewLowStockUseCase(stockRepo repository.StockRepository) *LowStockUseCase {
	return &LowStockUseCase{stockRepo: stockRepo}
}

// Evaluate devuelve las filas con quantity <= reorder_level, ordenadas por
// cantidad ascendente (más agotadas primero). El predicado se empuja al store.
func (uc *LowStockUseCase) Evaluate(ctx context.Context) ([]*repository.StockView, error) {
	return uc.stockRepo.ListLowStock(ctx)
}
