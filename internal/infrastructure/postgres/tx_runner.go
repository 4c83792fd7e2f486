package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/stocktrack-api/internal/application/inventory"
	"github.com/jhoicas/stocktrack-api/internal/domain"
	"github.com/jhoicas/stocktrack-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Acota la espera de bloqueos de fila con lock_timeout: un timeout se reporta
// como domain.ErrConflict, seguro de reintentar porque nunca queda efecto parcial.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Espera acotada en SELECT FOR UPDATE; expira dentro de esta tx solamente.
	if _, err := tx.Exec(ctx, "SET LOCAL lock_timeout = '3s'"); err != nil {
		return fmt.Errorf("set lock_timeout: %w", err)
	}

	movRepo := NewMovementRepository(tx)
	stockRepo := NewStockRepository(tx)

	if err := fn(movRepo, stockRepo); err != nil {
		if isLockError(err) {
			return domain.ErrConflict
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isLockError(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
