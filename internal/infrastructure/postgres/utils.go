package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Código de PostgreSQL para violación de constraint único.
const pgUniqueViolation = "23505"

// isUniqueViolation detecta el 23505. Aquí lo disparan el SKU único por empresa
// y el índice parcial de alertas abiertas.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), pgUniqueViolation)
}
