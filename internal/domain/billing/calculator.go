// Package billing contiene el cálculo puro de importes de línea y totales de documento.
// Es el único lugar donde se aplica la fórmula HT/TVA/TTC; formularios, casos de uso y
// endpoints de vista previa llaman a estas funciones.
package billing

import (
	"github.com/jhoicas/heraclion-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// LineInput entradas crudas de una línea. FraisSupplementaires es opcional (cero en líneas simples).
type LineInput struct {
	Quantite             Amount `json:"quantite"`
	PrixUnitaire         Amount `json:"prix_unitaire"`
	TauxTVA              Amount `json:"taux_tva"`
	FraisSupplementaires Amount `json:"frais_supplementaires"`
}

// LineAmounts importes derivados de una línea, ya redondeados a 2 decimales.
type LineAmounts struct {
	MontantHT  decimal.Decimal `json:"montant_ht"`
	MontantTVA decimal.Decimal `json:"montant_tva"`
	MontantTTC decimal.Decimal `json:"montant_ttc"`
}

// Round2 redondea a 2 decimales (mitad lejos de cero).
func Round2(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// Normalize aplica las reglas de coerción: cantidad negativa → 0, tasa fuera de [0,100] → 0.
// Precio unitario y recargo pueden ser negativos (líneas de descuento).
func Normalize(in LineInput) (qty, price, rate, frais decimal.Decimal) {
	qty = in.Quantite.Decimal()
	if qty.IsNegative() {
		qty = decimal.Zero
	}
	rate = in.TauxTVA.Decimal()
	if rate.IsNegative() || rate.GreaterThan(hundred) {
		rate = decimal.Zero
	}
	return qty, in.PrixUnitaire.Decimal(), rate, in.FraisSupplementaires.Decimal()
}

// CalculateLine deriva HT, TVA y TTC de una línea:
//
//	ht  = round2(qty × prix + frais)
//	tva = round2(ht × taux / 100)
//	ttc = round2(ht + tva)
//
// Nunca falla: las entradas inválidas ya llegan como cero.
func CalculateLine(in LineInput) LineAmounts {
	qty, price, rate, frais := Normalize(in)
	ht := Round2(qty.Mul(price).Add(frais))
	tva := Round2(ht.Mul(rate).Div(hundred))
	return LineAmounts{
		MontantHT:  ht,
		MontantTVA: tva,
		MontantTTC: Round2(ht.Add(tva)),
	}
}

// ApplyLine recalcula en sitio los importes derivados de una línea persistible,
// dejando también normalizadas sus entradas.
func ApplyLine(l *entity.Line) {
	in := LineInput{
		Quantite:             NewAmount(l.Quantite),
		PrixUnitaire:         NewAmount(l.PrixUnitaire),
		TauxTVA:              NewAmount(l.TauxTVA),
		FraisSupplementaires: NewAmount(l.FraisSupplementaires),
	}
	l.Quantite, l.PrixUnitaire, l.TauxTVA, l.FraisSupplementaires = Normalize(in)
	amounts := CalculateLine(in)
	l.MontantHT = amounts.MontantHT
	l.MontantTVA = amounts.MontantTVA
	l.MontantTTC = amounts.MontantTTC
}
