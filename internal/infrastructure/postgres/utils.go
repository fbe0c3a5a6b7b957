package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/heraclion-api/internal/domain"
)

// Códigos SQLSTATE que se traducen a errores de dominio.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeUndefinedTable      = "42P01"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	if code := pgCode(err); code != "" {
		return code == codeUniqueViolation
	}
	return strings.Contains(err.Error(), codeUniqueViolation)
}

// isUndefinedTable verifica si la relación consultada no existe (42P01).
func isUndefinedTable(err error) bool {
	if code := pgCode(err); code != "" {
		return code == codeUndefinedTable
	}
	return strings.Contains(err.Error(), codeUndefinedTable)
}

func isForeignKeyViolation(err error) bool {
	return pgCode(err) == codeForeignKeyViolation
}

// wrapErr envuelve un error de PostgreSQL con el sentinel de dominio que corresponda,
// conservando el error original para los logs.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case isUndefinedTable(err):
		return fmt.Errorf("%s: %w (%v)", op, domain.ErrTableMissing, err)
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w (%v)", op, domain.ErrDuplicate, err)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: %w (%v)", op, domain.ErrInvalidInput, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
