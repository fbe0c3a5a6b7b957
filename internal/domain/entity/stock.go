package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockArticle artículo de inventario.
type StockArticle struct {
	ID           int64
	Reference    string
	Designation  string
	Quantite     decimal.Decimal
	SeuilAlerte  decimal.Decimal
	PrixUnitaire decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
