package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stocktrack-api/internal/domain"
	"github.com/jhoicas/stocktrack-api/internal/domain/entity"
	"github.com/jhoicas/stocktrack-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación del puerto LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

const locationColumns = `id, name, type, COALESCE(address, ''), COALESCE(phone, ''), is_active, created_at, updated_at`

// Create persiste una nueva ubicación.
func (r *LocationRepo) Create(ctx context.Context, location *entity.Location) error {
	query := `
		INSERT INTO locations (id, name, type, address, phone, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		location.ID, location.Name, location.Type, nullIfEmpty(location.Address),
		nullIfEmpty(location.Phone), location.IsActive, location.CreatedAt, location.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID, o nil si no existe.
func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE id = $1`
	var l entity.Location
	err := r.q.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.Name, &l.Type, &l.Address, &l.Phone, &l.IsActive, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// Update actualiza una ubicación.
func (r *LocationRepo) Update(ctx context.Context, location *entity.Location) error {
	query := `
		UPDATE locations SET name = $2, type = $3, address = $4, phone = $5, is_active = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		location.ID, location.Name, location.Type, nullIfEmpty(location.Address),
		nullIfEmpty(location.Phone), location.IsActive, location.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista ubicaciones con paginación.
func (r *LocationRepo) List(ctx context.Context, limit, offset int) ([]*entity.Location, int64, error) {
	var total int64
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM locations`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count locations: %w", err)
	}
	query := `SELECT ` + locationColumns + ` FROM locations ORDER BY name ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Type, &l.Address, &l.Phone, &l.IsActive, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, total, rows.Err()
}

// Delete elimina una ubicación por ID.
func (r *LocationRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
