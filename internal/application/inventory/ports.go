package inventory

import (
	"context"

	"github.com/jhoicas/stocktrack-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la mutación del ledger y el
// registro en la bitácora se confirmen como una sola unidad atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
	) error) error
}
