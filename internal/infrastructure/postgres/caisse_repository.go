package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/heraclion-api/internal/domain/entity"
	"github.com/jhoicas/heraclion-api/internal/domain/repository"
)

var _ repository.CaisseRepository = (*CaisseRepo)(nil)

// CaisseRepo implementación de CaisseRepository (usable con pool o tx).
type CaisseRepo struct {
	q Querier
}

// NewCaisseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCaisseRepository(q Querier) *CaisseRepo {
	return &CaisseRepo{q: q}
}

// Create persiste una operación de caja (montant ya con signo).
func (r *CaisseRepo) Create(ctx context.Context, op *entity.CaisseOperation) error {
	query := `
		INSERT INTO caisse_operations (type, montant, libelle, reference, date_operation, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		op.Type, op.Montant, op.Libelle, op.Reference, op.Date, op.CreatedAt,
	).Scan(&op.ID)
	if err != nil {
		return wrapErr("insert caisse", err)
	}
	return nil
}

// List lista operaciones (más recientes primero) con paginación.
func (r *CaisseRepo) List(ctx context.Context, limit, offset int) ([]*entity.CaisseOperation, error) {
	query := `
		SELECT id, type, montant, COALESCE(libelle, ''), COALESCE(reference, ''), date_operation, created_at
		FROM caisse_operations ORDER BY date_operation DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, wrapErr("list caisse", err)
	}
	defer rows.Close()
	var list []*entity.CaisseOperation
	for rows.Next() {
		var op entity.CaisseOperation
		if err := rows.Scan(&op.ID, &op.Type, &op.Montant, &op.Libelle, &op.Reference, &op.Date, &op.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan caisse: %w", err)
		}
		list = append(list, &op)
	}
	return list, wrapErr("list caisse", rows.Err())
}

// Count devuelve el número de operaciones.
func (r *CaisseRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM caisse_operations`).Scan(&n); err != nil {
		return 0, wrapErr("count caisse", err)
	}
	return n, nil
}

// Balance devuelve SUM(montant); cero si no hay operaciones.
func (r *CaisseRepo) Balance(ctx context.Context) (decimal.Decimal, error) {
	return sumCaisse(ctx, r.q)
}

func sumCaisse(ctx context.Context, q Querier) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := q.QueryRow(ctx, `SELECT COALESCE(SUM(montant), 0) FROM caisse_operations`).Scan(&total); err != nil {
		return decimal.Zero, wrapErr("solde caisse", err)
	}
	return total, nil
}
