package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/heraclion-api/internal/application/dto"
	"github.com/jhoicas/heraclion-api/internal/domain"
	"github.com/jhoicas/heraclion-api/internal/domain/entity"
	"github.com/jhoicas/heraclion-api/internal/domain/repository"
)

// EntrepriseUseCase aplica reglas de negocio para empresas.
type EntrepriseUseCase struct {
	repo repository.EntrepriseRepository
}

// NewEntrepriseUseCase construye el caso de uso con el puerto de persistencia.
func NewEntrepriseUseCase(repo repository.EntrepriseRepository) *EntrepriseUseCase {
	return &EntrepriseUseCase{repo: repo}
}

// Create crea una empresa. Devuelve domain.ErrDuplicate si el SIRET ya existe.
func (uc *EntrepriseUseCase) Create(ctx context.Context, in dto.EntrepriseRequest) (*dto.EntrepriseResponse, error) {
	siret := strings.ReplaceAll(strings.TrimSpace(in.Siret), " ", "")
	if siret != "" {
		existing, err := uc.repo.GetBySiret(ctx, siret)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	now := time.Now()
	e := &entity.Entreprise{
		Nom:       strings.TrimSpace(in.Nom),
		Siret:     siret,
		Adresse:   in.Adresse,
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Telephone: strings.TrimSpace(in.Telephone),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if e.Nom == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return dto.NewEntrepriseResponse(e), nil
}

// GetByID obtiene una empresa; ErrNotFound si no existe.
func (uc *EntrepriseUseCase) GetByID(ctx context.Context, id int64) (*dto.EntrepriseResponse, error) {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return dto.NewEntrepriseResponse(e), nil
}

// List lista empresas con paginación.
func (uc *EntrepriseUseCase) List(ctx context.Context, limit, offset int) ([]*dto.EntrepriseResponse, error) {
	limit, offset = normalizePage(limit, offset)
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.EntrepriseResponse, 0, len(list))
	for _, e := range list {
		out = append(out, dto.NewEntrepriseResponse(e))
	}
	return out, nil
}
