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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, sku, name, COALESCE(description, ''), unit_price, cost_price,
	COALESCE(barcode, ''), unit, COALESCE(category_id::text, ''), COALESCE(supplier_id::text, ''),
	is_active, created_at, updated_at`

// Create persiste un nuevo producto. SKU duplicado -> ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, name, description, unit_price, cost_price, barcode, unit, category_id, supplier_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.SKU, product.Name, nullIfEmpty(product.Description),
		product.UnitPrice, product.CostPrice, nullIfEmpty(product.Barcode), product.Unit,
		nullIfEmpty(product.CategoryID), nullIfEmpty(product.SupplierID),
		product.IsActive, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID, o nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// GetBySKU obtiene un producto por SKU, o nil si no existe.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`
	return r.scanOne(ctx, query, sku)
}

func (r *ProductRepo) scanOne(ctx context.Context, query string, arg any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.UnitPrice, &p.CostPrice,
		&p.Barcode, &p.Unit, &p.CategoryID, &p.SupplierID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update actualiza los campos editables de un producto.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, unit_price = $4, cost_price = $5,
			barcode = $6, unit = $7, category_id = $8, supplier_id = $9, is_active = $10, updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		product.ID, product.Name, nullIfEmpty(product.Description), product.UnitPrice, product.CostPrice,
		nullIfEmpty(product.Barcode), product.Unit, nullIfEmpty(product.CategoryID),
		nullIfEmpty(product.SupplierID), product.IsActive, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos con paginación, más recientes primero.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, int64, error) {
	var total int64
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.UnitPrice, &p.CostPrice,
			&p.Barcode, &p.Unit, &p.CategoryID, &p.SupplierID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, total, rows.Err()
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
