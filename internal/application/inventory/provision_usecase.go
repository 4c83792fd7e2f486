package inventory

import (
	"context"

	"github.com/jhoicas/stocktrack-api/internal/domain"
	"github.com/jhoicas/stocktrack-api/internal/domain/entity"
	"github.com/jhoicas/stocktrack-api/internal/domain/repository"
)

// ProvisionUseCase aprovisiona filas de stock explícitamente y mantiene sus
// umbrales de reorden. La cantidad NUNCA se muta por aquí después de crear la
// fila: eso es exclusivo del motor de movimientos.
type ProvisionUseCase struct {
	stockRepo    repository.StockRepository
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
}

// NewProvisionUseCase construye el caso de uso de aprovisionamiento.
func NewProvisionUseCase(
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
) *ProvisionUseCase {
	return &ProvisionUseCase{
		stockRepo:    stockRepo,
		productRepo:  productRepo,
		locationRepo: locationRepo,
	}
}

// ProvisionInput entrada para crear una fila de stock.
type ProvisionInput struct {
	ProductID       string
	LocationID      string
	Quantity        int64 // cantidad inicial, solo al crear
	ReorderLevel    int64
	ReorderQuantity int64
}

// Create crea la fila de stock para el par (producto, ubicación).
// Par duplicado -> ErrDuplicate. Cantidad inicial negativa -> ErrInvalidQuantity.
func (uc *ProvisionUseCase) Create(ctx context.Context, input ProvisionInput) (*entity.StockRow, error) {
	if input.Quantity < 0 || input.ReorderLevel < 0 || input.ReorderQuantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	location, err := uc.locationRepo.GetByID(ctx, input.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}

	row := &entity.StockRow{
		ProductID:       input.ProductID,
		LocationID:      input.LocationID,
		Quantity:        input.Quantity,
		ReorderLevel:    input.ReorderLevel,
		ReorderQuantity: input.ReorderQuantity,
	}
	if err := uc.stockRepo.Create(ctx, row); err != nil {
		return nil, err
	}
	return uc.stockRepo.Get(ctx, input.ProductID, input.LocationID)
}

// UpdateReorder actualiza reorder_level y reorder_quantity de una fila.
// Campos nil conservan su valor actual. La cantidad no es parcheable:
// cualquier cambio de cantidad pasa por ApplyMovement para preservar la
// consistencia ledger/bitácora.
func (uc *ProvisionUseCase) UpdateReorder(ctx context.Context, productID, locationID string, reorderLevel, reorderQuantity *int64) (*entity.StockRow, error) {
	row, err := uc.stockRepo.Get(ctx, productID, locationID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrNotFound
	}
	level := row.ReorderLevel
	if reorderLevel != nil {
		level = *reorderLevel
	}
	qty := row.ReorderQuantity
	if reorderQuantity != nil {
		qty = *reorderQuantity
	}
	if level < 0 || qty < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if err := uc.stockRepo.UpdateReorder(ctx, productID, locationID, level, qty); err != nil {
		return nil, err
	}
	return uc.stockRepo.Get(ctx, productID, locationID)
}

// List lista filas de stock con filtros por producto, ubicación y stock bajo.
func (uc *ProvisionUseCase) List(ctx context.Context, filter repository.StockFilter) ([]*repository.StockView, int64, error) {
	return uc.stockRepo.List(ctx, filter)
}
