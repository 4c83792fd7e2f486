package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stocktrack-api/internal/domain/entity"
	"github.com/jhoicas/stocktrack-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de la bitácora de movimientos sobre PostgreSQL.
// Solo INSERT y SELECT: la tabla no recibe UPDATE ni DELETE desde la aplicación.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Append persiste el movimiento; la BD asigna id (BIGSERIAL, monotónico en
// orden de commit) y occurred_at, devueltos vía RETURNING.
func (r *MovementRepo) Append(ctx context.Context, draft *entity.MovementRecord) (*entity.MovementRecord, error) {
	query := `
		INSERT INTO movements (product_id, location_id, destination_location_id, kind, quantity, reference, notes, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, occurred_at`
	createdBy := (*string)(nil)
	if draft.CreatedBy != "" {
		createdBy = &draft.CreatedBy
	}
	committed := *draft
	err := r.q.QueryRow(ctx, query,
		draft.ProductID, draft.LocationID, draft.DestinationLocationID,
		draft.Kind, draft.Quantity, nullIfEmpty(draft.Reference), nullIfEmpty(draft.Notes), createdBy,
	).Scan(&committed.ID, &committed.OccurredAt)
	if err != nil {
		return nil, fmt.Errorf("append movement: %w", err)
	}
	return &committed, nil
}

// GetByID obtiene un movimiento por ID, o nil si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, id int64) (*entity.MovementRecord, error) {
	query := `
		SELECT id, product_id, location_id, destination_location_id, kind, quantity,
		       COALESCE(reference, ''), COALESCE(notes, ''), COALESCE(created_by::text, ''), occurred_at
		FROM movements WHERE id = $1`
	var m entity.MovementRecord
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.ProductID, &m.LocationID, &m.DestinationLocationID, &m.Kind,
		&m.Quantity, &m.Reference, &m.Notes, &m.CreatedBy, &m.OccurredAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// List devuelve movimientos filtrados, del más reciente al más antiguo.
// LocationID filtra por origen o destino.
func (r *MovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*repository.MovementView, int64, error) {
	base := `
		FROM movements m
		JOIN products p ON p.id = m.product_id
		JOIN locations l ON l.id = m.location_id
		LEFT JOIN users u ON u.id = m.created_by
		WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.ProductID != "" {
		base += fmt.Sprintf(" AND m.product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.LocationID != "" {
		base += fmt.Sprintf(" AND (m.location_id = $%d OR m.destination_location_id = $%d)", pos, pos)
		args = append(args, filter.LocationID)
		pos++
	}
	if filter.Kind != "" {
		base += fmt.Sprintf(" AND m.kind = $%d", pos)
		args = append(args, filter.Kind)
		pos++
	}
	if filter.From != nil {
		base += fmt.Sprintf(" AND m.occurred_at >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		base += fmt.Sprintf(" AND m.occurred_at <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}

	var total int64
	if err := r.q.QueryRow(ctx, "SELECT count(*) "+base, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	query := `
		SELECT m.id, m.product_id, m.location_id, m.destination_location_id, m.kind, m.quantity,
		       COALESCE(m.reference, ''), COALESCE(m.notes, ''), COALESCE(m.created_by::text, ''),
		       m.occurred_at, p.name, p.sku, l.name, COALESCE(u.full_name, '')
		` + base + fmt.Sprintf(" ORDER BY m.id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*repository.MovementView
	for rows.Next() {
		var v repository.MovementView
		if err := rows.Scan(&v.ID, &v.ProductID, &v.LocationID, &v.DestinationLocationID,
			&v.Kind, &v.Quantity, &v.Reference, &v.Notes, &v.CreatedBy, &v.OccurredAt,
			&v.ProductName, &v.ProductSKU, &v.LocationName, &v.UserName); err != nil {
			return nil, 0, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &v)
	}
	return list, total, rows.Err()
}

// nullIfEmpty convierte cadena vacía a NULL para columnas opcionales.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
