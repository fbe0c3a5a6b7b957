package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/heraclion-api/internal/domain/billing"
	"github.com/jhoicas/heraclion-api/internal/domain/entity"
)

func TestSumLines_SumaImportesYaRedondeados(t *testing.T) {
	// Tres líneas de 10.005 HT: cada una se muestra como 10.01, el total debe ser 30.03
	// (y no round(30.015) = 30.02).
	doc := &entity.Document{}
	for i := 0; i < 3; i++ {
		doc.Lines = append(doc.Lines, entity.Line{
			Quantite:     dec("1"),
			PrixUnitaire: dec("10.005"),
			TauxTVA:      dec("0"),
		})
	}
	totals := billing.Recalculate(doc)

	assertDecimal(t, "30.03", totals.MontantHT)
	assertDecimal(t, "30.03", doc.MontantHT)
	for i, l := range doc.Lines {
		assertDecimal(t, "10.01", l.MontantHT)
		assert.Equal(t, i+1, l.Position)
	}
}

func TestSumLines_ImportesAusentesValenCero(t *testing.T) {
	lines := []entity.Line{
		{MontantHT: dec("100"), MontantTVA: dec("20"), MontantTTC: dec("120")},
		{}, // importes nunca calculados
		{MontantHT: dec("50.5"), MontantTVA: dec("10.1"), MontantTTC: dec("60.6")},
	}
	got := billing.SumLines(lines)
	assertDecimal(t, "150.5", got.MontantHT)
	assertDecimal(t, "30.1", got.MontantTVA)
	assertDecimal(t, "180.6", got.MontantTTC)
}

func TestDocumentTotals_SinLineasUsaImportesAlmacenados(t *testing.T) {
	doc := &entity.Document{
		MontantHT:  dec("1000"),
		MontantTVA: dec("200"),
		MontantTTC: dec("1200"),
	}
	got := billing.DocumentTotals(doc)
	assertDecimal(t, "1000", got.MontantHT)
	assertDecimal(t, "200", got.MontantTVA)
	assertDecimal(t, "1200", got.MontantTTC)

	// Recalculate tampoco debe poner a cero un documento heredado sin líneas.
	billing.Recalculate(doc)
	assertDecimal(t, "1200", doc.MontantTTC)
}

func TestDocumentTotals_ConLineasIgnoraImportesAlmacenados(t *testing.T) {
	doc := &entity.Document{
		MontantHT:  dec("1"),
		MontantTVA: dec("1"),
		MontantTTC: dec("1"),
		Lines: []entity.Line{
			{Quantite: dec("2"), PrixUnitaire: dec("100"), TauxTVA: dec("20")},
		},
	}
	got := billing.Recalculate(doc)
	assertDecimal(t, "200", got.MontantHT)
	assertDecimal(t, "40", got.MontantTVA)
	assertDecimal(t, "240", got.MontantTTC)
}

func TestSumAmounts_OrdenNoAfectaResultado(t *testing.T) {
	a := []billing.LineAmounts{
		{MontantHT: dec("0.1"), MontantTVA: dec("0.02"), MontantTTC: dec("0.12")},
		{MontantHT: dec("0.2"), MontantTVA: dec("0.04"), MontantTTC: dec("0.24")},
		{MontantHT: dec("0.3"), MontantTVA: dec("0.06"), MontantTTC: dec("0.36")},
	}
	b := []billing.LineAmounts{a[2], a[0], a[1]}
	ta, tb := billing.SumAmounts(a), billing.SumAmounts(b)
	assert.True(t, ta.MontantHT.Equal(tb.MontantHT))
	assert.True(t, ta.MontantTVA.Equal(tb.MontantTVA))
	assert.True(t, ta.MontantTTC.Equal(tb.MontantTTC))
	assertDecimal(t, "0.6", billing.SumAmounts(a).MontantHT)
}
