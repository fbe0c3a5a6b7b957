package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de operación de caja.
const (
	CaisseEntree = "entree"
	CaisseSortie = "sortie"
)

// CaisseOperation movimiento de caja. Montant lleva signo: las salidas se guardan negativas,
// de modo que el saldo es SUM(montant).
type CaisseOperation struct {
	ID        int64
	Type      string
	Montant   decimal.Decimal
	Libelle   string
	Reference string // p. ej. número de la factura pagada
	Date      time.Time
	CreatedAt time.Time
}
