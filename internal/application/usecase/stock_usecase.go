package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/heraclion-api/internal/application/dto"
	"github.com/jhoicas/heraclion-api/internal/domain"
	"github.com/jhoicas/heraclion-api/internal/domain/entity"
	"github.com/jhoicas/heraclion-api/internal/domain/repository"
)

// StockUseCase casos de uso de artículos de stock.
type StockUseCase struct {
	repo     repository.StockRepository
	notifier DashboardNotifier
}

// NewStockUseCase construye el caso de uso. notifier puede ser nil.
func NewStockUseCase(repo repository.StockRepository, notifier DashboardNotifier) *StockUseCase {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &StockUseCase{repo: repo, notifier: notifier}
}

// Create registra un artículo. Las cantidades y precios no pueden ser negativos.
func (uc *StockUseCase) Create(ctx context.Context, in dto.StockArticleRequest) (*dto.StockArticleResponse, error) {
	if strings.TrimSpace(in.Reference) == "" || strings.TrimSpace(in.Designation) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantite.IsNegative() || in.SeuilAlerte.IsNegative() || in.PrixUnitaire.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	a := &entity.StockArticle{
		Reference:    strings.ToUpper(strings.TrimSpace(in.Reference)),
		Designation:  strings.TrimSpace(in.Designation),
		Quantite:     in.Quantite,
		SeuilAlerte:  in.SeuilAlerte,
		PrixUnitaire: in.PrixUnitaire,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	uc.notifier.Trigger()
	return dto.NewStockArticleResponse(a), nil
}

// List lista artículos con paginación.
func (uc *StockUseCase) List(ctx context.Context, limit, offset int) ([]*dto.StockArticleResponse, error) {
	limit, offset = normalizePage(limit, offset)
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.StockArticleResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.NewStockArticleResponse(a))
	}
	return out, nil
}

// UpdateQuantity fija la cantidad de un artículo y devuelve el artículo actualizado.
func (uc *StockUseCase) UpdateQuantity(ctx context.Context, id int64, quantite decimal.Decimal) (*dto.StockArticleResponse, error) {
	if quantite.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.UpdateQuantity(ctx, id, quantite); err != nil {
		return nil, err
	}
	a, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	uc.notifier.Trigger()
	return dto.NewStockArticleResponse(a), nil
}
