package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}

// isLockError verifica si un error es un timeout de bloqueo (55P03), un
// deadlock detectado (40P01) o un fallo de serialización (40001). Son
// transitorios: el caller puede reintentar el movimiento completo desde cero.
func isLockError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "55P03", "40P01", "40001":
			return true
		}
	}
	return false
}
