package entity

import "github.com/shopspring/decimal"

// Line representa una línea de documento. Los importes derivados (HT/TVA/TTC)
// nunca son fuente de verdad: se recalculan con billing.CalculateLine.
type Line struct {
	ID                   int64
	DocumentID           int64
	Position             int
	Designation          string
	Quantite             decimal.Decimal
	PrixUnitaire         decimal.Decimal
	TauxTVA              decimal.Decimal // porcentaje 0–100
	FraisSupplementaires decimal.Decimal // recargo fijo sumado antes de impuestos
	Tonnage              *decimal.Decimal
	MontantHT            decimal.Decimal
	MontantTVA           decimal.Decimal
	MontantTTC           decimal.Decimal
}
