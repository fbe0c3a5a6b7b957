package billing

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount es un valor numérico de entrada tolerante: cualquier cosa que no sea un número
// válido (cadena vacía, texto, null, booleano, objeto) se convierte en cero en lugar de
// producir un error. Se usa en las entradas de línea de los formularios.
type Amount struct {
	d decimal.Decimal
}

// NewAmount envuelve un decimal ya validado.
func NewAmount(d decimal.Decimal) Amount { return Amount{d: d} }

// Decimal devuelve el valor coercionado (cero si la entrada no era numérica).
func (a Amount) Decimal() decimal.Decimal { return a.d }

// MarshalJSON serializa como número.
func (a Amount) MarshalJSON() ([]byte, error) { return a.d.MarshalJSON() }

// UnmarshalJSON nunca devuelve error: la entrada no numérica queda en cero.
func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0, bytes.Equal(b, []byte("null")):
		a.d = decimal.Zero
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			a.d = decimal.Zero
			return nil
		}
		a.d = parseString(s)
	default:
		a.d = parseString(string(b))
	}
	return nil
}

// ParseAmount convierte un valor arbitrario (decodificado de JSON, formulario o código)
// en decimal; lo no numérico, NaN o infinito vale cero.
func ParseAmount(v any) Amount {
	switch x := v.(type) {
	case nil:
		return Amount{}
	case Amount:
		return x
	case decimal.Decimal:
		return Amount{d: x}
	case *decimal.Decimal:
		if x == nil {
			return Amount{}
		}
		return Amount{d: *x}
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return Amount{}
		}
		return Amount{d: decimal.NewFromFloat(x)}
	case float32:
		return ParseAmount(float64(x))
	case int:
		return Amount{d: decimal.NewFromInt(int64(x))}
	case int32:
		return Amount{d: decimal.NewFromInt(int64(x))}
	case int64:
		return Amount{d: decimal.NewFromInt(x)}
	case json.Number:
		return Amount{d: parseString(x.String())}
	case string:
		return Amount{d: parseString(x)}
	default:
		return Amount{}
	}
}

// parseString acepta "12.5", "12,5", " 1 234,50 ", "1.234,50" y notación científica.
func parseString(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	s = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "").Replace(s)
	if strings.Count(s, ",") == 1 {
		intPart, frac, _ := strings.Cut(s, ",")
		if strings.Contains(frac, ".") {
			return decimal.Zero
		}
		if strings.Contains(intPart, ".") {
			if !dotThousands(intPart) {
				return decimal.Zero
			}
			intPart = strings.ReplaceAll(intPart, ".", "")
		}
		s = intPart + "." + frac
	}
	// ParseFloat rechaza el texto libre y detecta NaN/Inf antes de pasar a decimal.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NewFromFloat(f)
	}
	return d
}

// dotThousands indica si s usa el punto como separador de miles ("1.234.567").
func dotThousands(s string) bool {
	groups := strings.Split(s, ".")
	first := strings.TrimLeft(groups[0], "+-")
	if first == "" || len(first) > 3 {
		return false
	}
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return false
		}
	}
	return true
}
