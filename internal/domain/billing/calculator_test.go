package billing_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/heraclion-api/internal/domain/billing"
	"github.com/jhoicas/heraclion-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "esperado %s, obtenido %s %v", want, got.String(), msgAndArgs)
}

// ──────────────────────────────────────────────────────────────────────────────
// CalculateLine
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculateLine_CasoBasico(t *testing.T) {
	got := billing.CalculateLine(billing.LineInput{
		Quantite:     billing.ParseAmount(2),
		PrixUnitaire: billing.ParseAmount(100),
		TauxTVA:      billing.ParseAmount(20),
	})
	assertDecimal(t, "200.00", got.MontantHT)
	assertDecimal(t, "40.00", got.MontantTVA)
	assertDecimal(t, "240.00", got.MontantTTC)
}

func TestCalculateLine_RecargoAntesDeImpuestos(t *testing.T) {
	got := billing.CalculateLine(billing.LineInput{
		Quantite:             billing.ParseAmount(10),
		PrixUnitaire:         billing.ParseAmount(12.5),
		TauxTVA:              billing.ParseAmount(20),
		FraisSupplementaires: billing.ParseAmount(25),
	})
	// 10 × 12.5 + 25 = 150 ; 150 × 20% = 30
	assertDecimal(t, "150", got.MontantHT)
	assertDecimal(t, "30", got.MontantTVA)
	assertDecimal(t, "180", got.MontantTTC)
}

func TestCalculateLine_RedondeoInmediato(t *testing.T) {
	got := billing.CalculateLine(billing.LineInput{
		Quantite:     billing.ParseAmount(3),
		PrixUnitaire: billing.ParseAmount("3.335"),
		TauxTVA:      billing.ParseAmount(5.5),
	})
	// 3 × 3.335 = 10.005 → 10.01 ; 10.01 × 5.5% = 0.55055 → 0.55 ; 10.01 + 0.55 = 10.56
	assertDecimal(t, "10.01", got.MontantHT)
	assertDecimal(t, "0.55", got.MontantTVA)
	assertDecimal(t, "10.56", got.MontantTTC)
	assert.True(t, got.MontantTTC.Equal(billing.Round2(got.MontantHT.Add(got.MontantTVA))))
}

func TestCalculateLine_EntradasInvalidasValenCero(t *testing.T) {
	cases := []struct {
		name string
		in   billing.LineInput
	}{
		{"todo vacío", billing.LineInput{}},
		{"texto libre", billing.LineInput{
			Quantite:     billing.ParseAmount("abc"),
			PrixUnitaire: billing.ParseAmount("12"),
			TauxTVA:      billing.ParseAmount("20"),
		}},
		{"NaN", billing.LineInput{
			Quantite:     billing.ParseAmount("NaN"),
			PrixUnitaire: billing.ParseAmount(100),
			TauxTVA:      billing.ParseAmount(20),
		}},
		{"cantidad negativa", billing.LineInput{
			Quantite:     billing.ParseAmount(-4),
			PrixUnitaire: billing.ParseAmount(100),
			TauxTVA:      billing.ParseAmount(20),
		}},
		{"nil", billing.LineInput{
			Quantite:     billing.ParseAmount(nil),
			PrixUnitaire: billing.ParseAmount(map[string]int{"x": 1}),
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got billing.LineAmounts
			require.NotPanics(t, func() { got = billing.CalculateLine(tc.in) })
			assert.True(t, got.MontantHT.IsZero())
			assert.True(t, got.MontantTVA.IsZero())
			assert.True(t, got.MontantTTC.IsZero())
		})
	}
}

func TestCalculateLine_TasaFueraDeRango(t *testing.T) {
	got := billing.CalculateLine(billing.LineInput{
		Quantite:     billing.ParseAmount(1),
		PrixUnitaire: billing.ParseAmount(100),
		TauxTVA:      billing.ParseAmount(150),
	})
	assertDecimal(t, "100", got.MontantHT)
	assert.True(t, got.MontantTVA.IsZero(), "una tasa > 100 se trata como 0")
}

func TestCalculateLine_PrecioNegativoEsDescuento(t *testing.T) {
	got := billing.CalculateLine(billing.LineInput{
		Quantite:     billing.ParseAmount(1),
		PrixUnitaire: billing.ParseAmount(-10),
		TauxTVA:      billing.ParseAmount(20),
	})
	assertDecimal(t, "-10", got.MontantHT)
	assertDecimal(t, "-2", got.MontantTVA)
	assertDecimal(t, "-12", got.MontantTTC)
}

// ──────────────────────────────────────────────────────────────────────────────
// Amount (coerción tolerante al decodificar JSON)
// ──────────────────────────────────────────────────────────────────────────────

func TestAmount_UnmarshalJSON(t *testing.T) {
	body := []byte(`{
		"quantite": "3",
		"prix_unitaire": 50,
		"taux_tva": "10,0",
		"frais_supplementaires": null
	}`)
	var in billing.LineInput
	require.NoError(t, json.Unmarshal(body, &in))

	got := billing.CalculateLine(in)
	assertDecimal(t, "150", got.MontantHT)
	assertDecimal(t, "15", got.MontantTVA)
	assertDecimal(t, "165", got.MontantTTC)
}

func TestAmount_UnmarshalJSON_NuncaFalla(t *testing.T) {
	body := []byte(`{"quantite": true, "prix_unitaire": {"a": 1}, "taux_tva": [1,2], "frais_supplementaires": "1e400x"}`)
	var in billing.LineInput
	require.NoError(t, json.Unmarshal(body, &in))
	assert.True(t, in.Quantite.Decimal().IsZero())
	assert.True(t, in.PrixUnitaire.Decimal().IsZero())
	assert.True(t, in.TauxTVA.Decimal().IsZero())
	assert.True(t, in.FraisSupplementaires.Decimal().IsZero())
}

func TestParseAmount_FormatoFrances(t *testing.T) {
	assertDecimal(t, "1234.5", billing.ParseAmount(" 1 234,50 ").Decimal())
	assertDecimal(t, "12.5", billing.ParseAmount("12,5").Decimal())
	assertDecimal(t, "0", billing.ParseAmount("Infinity").Decimal())
}

func TestParseAmount_PuntoComoSeparadorDeMiles(t *testing.T) {
	assertDecimal(t, "1234.50", billing.ParseAmount("1.234,50").Decimal())
	assertDecimal(t, "-1234567.8", billing.ParseAmount("-1.234.567,8").Decimal())
	assertDecimal(t, "1234.5", billing.ParseAmount("1234.5").Decimal())
	assertDecimal(t, "0", billing.ParseAmount("1.23,5").Decimal(), "grupo de miles incompleto")
	assertDecimal(t, "0", billing.ParseAmount("1,234.50").Decimal(), "coma antes del punto")

	var in billing.LineInput
	require.NoError(t, json.Unmarshal([]byte(`{"quantite": 1, "prix_unitaire": "1.234,50", "taux_tva": "20"}`), &in))
	got := billing.CalculateLine(in)
	assertDecimal(t, "1234.50", got.MontantHT)
	assertDecimal(t, "246.90", got.MontantTVA)
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyLine
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyLine_NormalizaEntradasYRecalcula(t *testing.T) {
	l := entity.Line{
		Quantite:     dec("-2"),
		PrixUnitaire: dec("10"),
		TauxTVA:      dec("20"),
		MontantHT:    dec("999"), // valor obsoleto: nunca es fuente de verdad
	}
	billing.ApplyLine(&l)
	assert.True(t, l.Quantite.IsZero())
	assert.True(t, l.MontantHT.IsZero())
	assert.True(t, l.MontantTTC.IsZero())
}
