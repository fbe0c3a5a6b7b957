package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockArticleRequest body para POST /api/stock.
type StockArticleRequest struct {
	Reference    string          `json:"reference" validate:"required,max=50"`
	Designation  string          `json:"designation" validate:"required,max=255"`
	Quantite     decimal.Decimal `json:"quantite" validate:"min=0"`
	SeuilAlerte  decimal.Decimal `json:"seuil_alerte" validate:"min=0"`
	PrixUnitaire decimal.Decimal `json:"prix_unitaire" validate:"min=0"`
}

// StockQuantityRequest body para PATCH /api/stock/:id/quantite.
type StockQuantityRequest struct {
	Quantite decimal.Decimal `json:"quantite" validate:"min=0"`
}

// StockArticleResponse artículo en respuestas.
type StockArticleResponse struct {
	ID           int64           `json:"id"`
	Reference    string          `json:"reference"`
	Designation  string          `json:"designation"`
	Quantite     decimal.Decimal `json:"quantite"`
	SeuilAlerte  decimal.Decimal `json:"seuil_alerte"`
	PrixUnitaire decimal.Decimal `json:"prix_unitaire"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
