package repository

import (
	"context"

	"github.com/jhoicas/heraclion-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Nombres de la tabla de artículos de stock: la principal y la heredada de despliegues antiguos.
const (
	StockTablePrimary = "stock"
	StockTableLegacy  = "articles"
)

// StockRepository define el puerto de persistencia para StockArticle (tabla principal).
type StockRepository interface {
	Create(ctx context.Context, a *entity.StockArticle) error
	GetByID(ctx context.Context, id int64) (*entity.StockArticle, error)
	List(ctx context.Context, limit, offset int) ([]*entity.StockArticle, error)
	UpdateQuantity(ctx context.Context, id int64, quantite decimal.Decimal) error
}
