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

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierColumns = `id, name, COALESCE(contact_name, ''), COALESCE(email, ''),
	COALESCE(phone, ''), COALESCE(address, ''), is_active, created_at, updated_at`

// Create persiste un nuevo proveedor.
func (r *SupplierRepo) Create(ctx context.Context, supplier *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (id, name, contact_name, email, phone, address, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		supplier.ID, supplier.Name, nullIfEmpty(supplier.ContactName), nullIfEmpty(supplier.Email),
		nullIfEmpty(supplier.Phone), nullIfEmpty(supplier.Address), supplier.IsActive,
		supplier.CreatedAt, supplier.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID, o nil si no existe.
func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE id = $1`
	var s entity.Supplier
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.ContactName, &s.Email, &s.Phone, &s.Address,
		&s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// Update actualiza un proveedor.
func (r *SupplierRepo) Update(ctx context.Context, supplier *entity.Supplier) error {
	query := `
		UPDATE suppliers SET name = $2, contact_name = $3, email = $4, phone = $5, address = $6, is_active = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		supplier.ID, supplier.Name, nullIfEmpty(supplier.ContactName), nullIfEmpty(supplier.Email),
		nullIfEmpty(supplier.Phone), nullIfEmpty(supplier.Address), supplier.IsActive, supplier.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista proveedores con paginación.
func (r *SupplierRepo) List(ctx context.Context, limit, offset int) ([]*entity.Supplier, int64, error) {
	var total int64
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM suppliers`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count suppliers: %w", err)
	}
	query := `SELECT ` + supplierColumns + ` FROM suppliers ORDER BY name ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.ContactName, &s.Email, &s.Phone, &s.Address,
			&s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, total, rows.Err()
}

// Delete elimina un proveedor por ID.
func (r *SupplierRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
