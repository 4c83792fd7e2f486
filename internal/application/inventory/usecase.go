package inventory

import (
	"context"

	"github.com/jhoicas/stocktrack-api/internal/domain"
	"github.com/jhoicas/stocktrack-api/internal/domain/entity"
	"github.com/jhoicas/stocktrack-api/internal/domain/ledger"
	"github.com/jhoicas/stocktrack-api/internal/domain/repository"
)

// ApplyMovementUseCase es la única autoridad para mutar cantidades de stock.
// Registra movimientos (receive, ship, adjust, transfer, return) de forma
// transaccional con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type ApplyMovementUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
}

// NewApplyMovementUseCase construye el caso de uso.
func NewApplyMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
) *ApplyMovementUseCase {
	return &ApplyMovementUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		locationRepo: locationRepo,
	}
}

// MovementInput entrada para aplicar un movimiento de inventario.
// Para receive/ship/adjust/return: ProductID, LocationID, Kind, Quantity.
// Para transfer además DestinationLocationID. Quantity siempre positiva;
// en adjust es el nuevo valor absoluto de la fila.
type MovementInput struct {
	ProductID             string
	LocationID            string
	DestinationLocationID string
	Kind                  string
	Quantity              int64
	Reference             string
	Notes                 string
	UserID                string
}

// ApplyMovement valida la entrada, inicia una transacción, bloquea la(s)
// fila(s) de stock afectadas, aplica el efecto según el tipo y confirma la
// mutación del ledger junto con el registro en la bitácora, o rechaza el
// movimiento completo sin efecto parcial.
//
// Orden de validación (el primer fallo gana):
//  1. cantidad positiva y tipo conocido
//  2. producto y ubicación primaria existen
//  3. transfer: destino presente, existente y distinto del origen
//  4. ship/transfer: stock suficiente (bajo el bloqueo de fila)
func (uc *ApplyMovementUseCase) ApplyMovement(ctx context.Context, input MovementInput) (*entity.MovementRecord, error) {
	if !entity.ValidMovementKind(input.Kind) {
		return nil, domain.ErrInvalidInput
	}
	if input.Quantity <= 0 {
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

	if input.Kind == entity.MovementKindTransfer {
		if input.DestinationLocationID == "" || input.DestinationLocationID == input.LocationID {
			return nil, domain.ErrInvalidTransfer
		}
		dest, err := uc.locationRepo.GetByID(ctx, input.DestinationLocationID)
		if err != nil {
			return nil, err
		}
		if dest == nil {
			return nil, domain.ErrInvalidTransfer
		}
	} else if input.DestinationLocationID != "" {
		return nil, domain.ErrInvalidTransfer
	}

	var committed *entity.MovementRecord

	// Transacción: bloqueo de fila(s), validación de stock, mutación del
	// ledger y append a la bitácora como unidad todo-o-nada.
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
	) error {
		var err error
		switch input.Kind {
		case entity.MovementKindTransfer:
			committed, err = uc.doTransfer(ctx, movRepo, stockRepo, input)
		default:
			committed, err = uc.doSingleRow(ctx, movRepo, stockRepo, input)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return committed, nil
}

// doSingleRow aplica receive, ship, adjust o return sobre una sola fila.
func (uc *ApplyMovementUseCase) doSingleRow(
	ctx context.Context,
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	input MovementInput,
) (*entity.MovementRecord, error) {
	// Crea la fila en cero si es el primer movimiento del par y la bloquea
	// (SELECT FOR UPDATE) para evitar condiciones de carrera.
	if err := stockRepo.Ensure(ctx, input.ProductID, input.LocationID); err != nil {
		return nil, err
	}
	row, err := stockRepo.GetForUpdate(ctx, input.ProductID, input.LocationID)
	if err != nil {
		return nil, err
	}

	if input.Kind == entity.MovementKindShip && row.Quantity < input.Quantity {
		return nil, domain.ErrInsufficientStock
	}

	mov := movementFromInput(input)
	newQty := ledger.Apply(row.Quantity, input.LocationID, mov)
	if err := stockRepo.UpdateQuantity(ctx, input.ProductID, input.LocationID, newQty); err != nil {
		return nil, err
	}
	return movRepo.Append(ctx, mov)
}

// doTransfer resta en origen y suma en destino dentro de la misma transacción.
// Bloquea ambas filas en orden fijo por location_id ascendente para evitar
// interbloqueos entre traslados opuestos sobre el mismo par de ubicaciones.
func (uc *ApplyMovementUseCase) doTransfer(
	ctx context.Context,
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	input MovementInput,
) (*entity.MovementRecord, error) {
	first, second := input.LocationID, input.DestinationLocationID
	if second < first {
		first, second = second, first
	}
	if err := stockRepo.Ensure(ctx, input.ProductID, first); err != nil {
		return nil, err
	}
	if err := stockRepo.Ensure(ctx, input.ProductID, second); err != nil {
		return nil, err
	}
	locked := make(map[string]*entity.StockRow, 2)
	for _, locID := range []string{first, second} {
		row, err := stockRepo.GetForUpdate(ctx, input.ProductID, locID)
		if err != nil {
			return nil, err
		}
		locked[locID] = row
	}

	origin := locked[input.LocationID]
	dest := locked[input.DestinationLocationID]
	if origin.Quantity < input.Quantity {
		return nil, domain.ErrInsufficientStock
	}

	mov := movementFromInput(input)
	newOrigin := ledger.Apply(origin.Quantity, input.LocationID, mov)
	newDest := ledger.Apply(dest.Quantity, input.DestinationLocationID, mov)
	if err := stockRepo.UpdateQuantity(ctx, input.ProductID, input.LocationID, newOrigin); err != nil {
		return nil, err
	}
	if err := stockRepo.UpdateQuantity(ctx, input.ProductID, input.DestinationLocationID, newDest); err != nil {
		return nil, err
	}
	return movRepo.Append(ctx, mov)
}

// movementFromInput arma el borrador del registro; ID y OccurredAt los asigna
// la BD al confirmar.
func movementFromInput(input MovementInput) *entity.MovementRecord {
	mov := &entity.MovementRecord{
		ProductID:  input.ProductID,
		LocationID: input.LocationID,
		Kind:       input.Kind,
		Quantity:   input.Quantity,
		Reference:  input.Reference,
		Notes:      input.Notes,
		CreatedBy:  input.UserID,
	}
	if input.Kind == entity.MovementKindTransfer {
		destID := input.DestinationLocationID
		mov.DestinationLocationID = &destID
	}
	return mov
}
