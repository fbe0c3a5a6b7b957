package repository

import (
	"context"

	"github.com/jhoicas/heraclion-api/internal/domain/entity"
)

// EntrepriseRepository define el puerto de persistencia para Entreprise.
type EntrepriseRepository interface {
	Create(ctx context.Context, e *entity.Entreprise) error
	GetByID(ctx context.Context, id int64) (*entity.Entreprise, error)
	GetBySiret(ctx context.Context, siret string) (*entity.Entreprise, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Entreprise, error)
}
