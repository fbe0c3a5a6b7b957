package repository

import (
	"context"

	"github.com/jhoicas/heraclion-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CaisseRepository define el puerto de persistencia para operaciones de caja.
type CaisseRepository interface {
	Create(ctx context.Context, op *entity.CaisseOperation) error
	List(ctx context.Context, limit, offset int) ([]*entity.CaisseOperation, error)
	Count(ctx context.Context) (int64, error)
	// Balance devuelve SUM(montant); cero si no hay operaciones.
	Balance(ctx context.Context) (decimal.Decimal, error)
}
