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

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene la fila de stock o nil si el par no existe.
func (r *StockRepo) Get(ctx context.Context, productID, locationID string) (*entity.StockRow, error) {
	query := `
		SELECT product_id, location_id, quantity, reorder_level, reorder_quantity, last_updated
		FROM stock WHERE product_id = $1 AND location_id = $2`
	var s entity.StockRow
	err := r.q.QueryRow(ctx, query, productID, locationID).Scan(
		&s.ProductID, &s.LocationID, &s.Quantity, &s.ReorderLevel, &s.ReorderQuantity, &s.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene la fila y la bloquea para update (SELECT FOR UPDATE).
// La fila debe existir: llamar Ensure antes dentro de la misma transacción.
func (r *StockRepo) GetForUpdate(ctx context.Context, productID, locationID string) (*entity.StockRow, error) {
	query := `
		SELECT product_id, location_id, quantity, reorder_level, reorder_quantity, last_updated
		FROM stock WHERE product_id = $1 AND location_id = $2
		FOR UPDATE`
	var s entity.StockRow
	err := r.q.QueryRow(ctx, query, productID, locationID).Scan(
		&s.ProductID, &s.LocationID, &s.Quantity, &s.ReorderLevel, &s.ReorderQuantity, &s.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("get stock for update: fila inexistente (falta Ensure)")
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Ensure crea la fila en cero si no existe. Idempotente dentro de la tx.
func (r *StockRepo) Ensure(ctx context.Context, productID, locationID string) error {
	query := `
		INSERT INTO stock (product_id, location_id, quantity, last_updated)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (product_id, location_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, query, productID, locationID); err != nil {
		return fmt.Errorf("ensure stock: %w", err)
	}
	return nil
}

// Create inserta una fila aprovisionada explícitamente; par duplicado -> ErrDuplicate.
func (r *StockRepo) Create(ctx context.Context, row *entity.StockRow) error {
	query := `
		INSERT INTO stock (product_id, location_id, quantity, reorder_level, reorder_quantity, last_updated)
		VALUES ($1, $2, $3, $4, $5, now())`
	_, err := r.q.Exec(ctx, query,
		row.ProductID, row.LocationID, row.Quantity, row.ReorderLevel, row.ReorderQuantity,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create stock: %w", err)
	}
	return nil
}

// UpdateQuantity fija la cantidad y refresca last_updated al tiempo de commit.
func (r *StockRepo) UpdateQuantity(ctx context.Context, productID, locationID string, quantity int64) error {
	query := `
		UPDATE stock SET quantity = $3, last_updated = now()
		WHERE product_id = $1 AND location_id = $2`
	tag, err := r.q.Exec(ctx, query, productID, locationID, quantity)
	if err != nil {
		return fmt.Errorf("update stock quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateReorder actualiza los umbrales de reorden sin tocar la cantidad.
func (r *StockRepo) UpdateReorder(ctx context.Context, productID, locationID string, reorderLevel, reorderQuantity int64) error {
	query := `
		UPDATE stock SET reorder_level = $3, reorder_quantity = $4, last_updated = now()
		WHERE product_id = $1 AND location_id = $2`
	tag, err := r.q.Exec(ctx, query, productID, locationID, reorderLevel, reorderQuantity)
	if err != nil {
		return fmt.Errorf("update stock reorder: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista filas de stock con filtros opcionales y paginación,
// ordenadas por last_updated descendente.
func (r *StockRepo) List(ctx context.Context, filter repository.StockFilter) ([]*repository.StockView, int64, error) {
	base := `
		FROM stock s
		JOIN products p ON p.id = s.product_id
		JOIN locations l ON l.id = s.location_id
		WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.ProductID != "" {
		base += fmt.Sprintf(" AND s.product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.LocationID != "" {
		base += fmt.Sprintf(" AND s.location_id = $%d", pos)
		args = append(args, filter.LocationID)
		pos++
	}
	if filter.LowStockOnly {
		base += " AND s.quantity <= s.reorder_level"
	}

	var total int64
	if err := r.q.QueryRow(ctx, "SELECT count(*) "+base, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stock: %w", err)
	}

	query := `
		SELECT s.product_id, s.location_id, s.quantity, s.reorder_level, s.reorder_quantity,
		       s.last_updated, p.name, p.sku, l.name
		` + base + fmt.Sprintf(" ORDER BY s.last_updated DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	var list []*repository.StockView
	for rows.Next() {
		var v repository.StockView
		if err := rows.Scan(&v.ProductID, &v.LocationID, &v.Quantity, &v.ReorderLevel,
			&v.ReorderQuantity, &v.LastUpdated, &v.ProductName, &v.ProductSKU, &v.LocationName); err != nil {
			return nil, 0, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &v)
	}
	return list, total, rows.Err()
}

// ListLowStock devuelve las filas con quantity <= reorder_level, ordenadas
// por cantidad ascendente (más agotadas primero). Predicado empujado a SQL.
func (r *StockRepo) ListLowStock(ctx context.Context) ([]*repository.StockView, error) {
	query := `
		SELECT s.product_id, s.location_id, s.quantity, s.reorder_level, s.reorder_quantity,
		       s.last_updated, p.name, p.sku, l.name
		FROM stock s
		JOIN products p ON p.id = s.product_id
		JOIN locations l ON l.id = s.location_id
		WHERE s.quantity <= s.reorder_level
		ORDER BY s.quantity ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()

	var list []*repository.StockView
	for rows.Next() {
		var v repository.StockView
		if err := rows.Scan(&v.ProductID, &v.LocationID, &v.Quantity, &v.ReorderLevel,
			&v.ReorderQuantity, &v.LastUpdated, &v.ProductName, &v.ProductSKU, &v.LocationName); err != nil {
			return nil, fmt.Errorf("scan low stock: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
