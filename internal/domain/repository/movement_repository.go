package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stocktrack-api/internal/domain/entity"
)

// MovementFilter filtros para listar la bitácora de movimientos.
type MovementFilter struct {
	ProductID  string // vacío = todos
	LocationID string // vacío = todas (origen o destino)
	Kind       string // vacío = todos
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// MovementView movimiento enriquecido con nombres para listados y exportes.
type MovementView struct {
	entity.MovementRecord
	ProductName  string
	ProductSKU   string
	LocationName string
	UserName     string
}

// MovementRepository define el puerto de la bitácora de movimientos.
// Solo inserción y lectura: la historia es permanente, no hay update ni delete.
type MovementRepository interface {
	// Append persiste el movimiento y devuelve la versión confirmada con
	// ID monotónico y OccurredAt asignados por la BD en orden de commit.
	Append(ctx context.Context, draft *entity.MovementRecord) (*entity.MovementRecord, error)
	GetByID(ctx context.Context, id int64) (*entity.MovementRecord, error)
	// List devuelve movimientos del más reciente al más antiguo.
	List(ctx context.Context, filter MovementFilter) ([]*MovementView, int64, error)
}
