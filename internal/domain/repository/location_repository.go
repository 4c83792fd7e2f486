package repository

import (
	"context"

	"github.com/jhoicas/stocktrack-api/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para Location (DIP).
type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	Update(ctx context.Context, location *entity.Location) error
	List(ctx context.Context, limit, offset int) ([]*entity.Location, int64, error)
	Delete(ctx context.Context, id string) error
}
