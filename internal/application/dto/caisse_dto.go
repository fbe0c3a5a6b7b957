package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CaisseOperationRequest body para POST /api/caisse; también el resultado de leer el archivo de seed.
// Montant siempre positivo; el signo lo da Type (sortie = negativo).
type CaisseOperationRequest struct {
	Type      string          `json:"type" validate:"required,oneof=entree sortie"`
	Montant   decimal.Decimal `json:"montant" validate:"gt=0"`
	Libelle   string          `json:"libelle" validate:"required,max=255"`
	Reference string          `json:"reference" validate:"max=100"`
	Date      *Date           `json:"date"`
}

// CaisseOperationResponse operación en respuestas (montant con signo).
type CaisseOperationResponse struct {
	ID        int64           `json:"id"`
	Type      string          `json:"type"`
	Montant   decimal.Decimal `json:"montant"`
	Libelle   string          `json:"libelle"`
	Reference string          `json:"reference"`
	Date      time.Time       `json:"date"`
}

// CaisseBalanceResponse respuesta de GET /api/caisse/solde.
type CaisseBalanceResponse struct {
	Solde      decimal.Decimal `json:"solde"`
	Operations int64           `json:"operations"`
}
