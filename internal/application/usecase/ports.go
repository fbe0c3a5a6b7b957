package usecase

import (
	"context"

	"github.com/jhoicas/heraclion-api/internal/domain/repository"
)

// CaisseTxRunner ejecuta fn con el repo de caja dentro de una transacción.
type CaisseTxRunner interface {
	RunCaisse(ctx context.Context, fn func(caisse repository.CaisseRepository) error) error
}

// DashboardNotifier solicita un push inmediato del dashboard. Trigger no debe bloquear.
type DashboardNotifier interface {
	Trigger()
}

type noopNotifier struct{}

func (noopNotifier) Trigger() {}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
