package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/smart-inventory-api/internal/domain"
	"github.com/jhoicas/smart-inventory-api/internal/domain/entity"
)

// Querier abstrae pgxpool.Pool y pgx.Tx para que un repositorio funcione dentro o fuera de una transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == "23505"
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == "23503"
}

// isCheckViolation verifica si un error es una violación de CHECK (23514).
func isCheckViolation(err error) bool {
	return pgCode(err) == "23514"
}

// isOutOfRange verifica si un valor numérico excede el tipo de la columna (22003).
func isOutOfRange(err error) bool {
	return pgCode(err) == "22003"
}

// checkQuantity rechaza cantidades que no caben en INTEGER antes de enviarlas (pgx fallaría al codificar).
func checkQuantity(q int) error {
	if q > entity.MaxQuantity {
		return domain.Invalid("quantity", fmt.Sprintf("debe ser menor o igual a %d", entity.MaxQuantity))
	}
	return nil
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
