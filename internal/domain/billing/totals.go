package billing

import (
	"github.com/jhoicas/heraclion-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Totals totales de un documento.
type Totals struct {
	MontantHT  decimal.Decimal `json:"montant_ht"`
	MontantTVA decimal.Decimal `json:"montant_tva"`
	MontantTTC decimal.Decimal `json:"montant_ttc"`
}

// SumAmounts acumula importes de línea ya redondeados y redondea solo el resultado final.
func SumAmounts(amounts []LineAmounts) Totals {
	var t Totals
	for _, a := range amounts {
		t.MontantHT = t.MontantHT.Add(a.MontantHT)
		t.MontantTVA = t.MontantTVA.Add(a.MontantTVA)
		t.MontantTTC = t.MontantTTC.Add(a.MontantTTC)
	}
	return Totals{
		MontantHT:  Round2(t.MontantHT),
		MontantTVA: Round2(t.MontantTVA),
		MontantTTC: Round2(t.MontantTTC),
	}
}

// SumLines suma los importes derivados de las líneas en orden.
func SumLines(lines []entity.Line) Totals {
	amounts := make([]LineAmounts, len(lines))
	for i, l := range lines {
		amounts[i] = LineAmounts{MontantHT: l.MontantHT, MontantTVA: l.MontantTVA, MontantTTC: l.MontantTTC}
	}
	return SumAmounts(amounts)
}

// DocumentTotals devuelve la suma de las líneas si existe al menos una; si el documento no
// tiene líneas (registros heredados o simplificados) devuelve los importes almacenados.
func DocumentTotals(doc *entity.Document) Totals {
	if len(doc.Lines) > 0 {
		return SumLines(doc.Lines)
	}
	return Totals{MontantHT: doc.MontantHT, MontantTVA: doc.MontantTVA, MontantTTC: doc.MontantTTC}
}

// Recalculate recalcula cada línea y vuelca los totales resultantes en el documento.
// Se invoca en cada mutación de líneas (alta, baja o edición).
func Recalculate(doc *entity.Document) Totals {
	for i := range doc.Lines {
		doc.Lines[i].Position = i + 1
		ApplyLine(&doc.Lines[i])
	}
	t := DocumentTotals(doc)
	doc.MontantHT, doc.MontantTVA, doc.MontantTTC = t.MontantHT, t.MontantTVA, t.MontantTTC
	return t
}
