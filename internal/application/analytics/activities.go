package analytics

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/heraclion-api/internal/application/dto"
	"github.com/jhoicas/heraclion-api/internal/domain/entity"
)

var frPrinter = message.NewPrinter(language.French)

// frGroupSep separador de miles del locale francés.
var frGroupSep = strings.TrimSuffix(strings.TrimPrefix(frPrinter.Sprintf("%d", 1000), "1"), "000")

// FormatAmount formatea un importe en euros al estilo francés: "1 234,50 €".
// Trabaja sobre la cadena decimal redondeada, sin pasar por float64.
func FormatAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)
	var b strings.Builder
	if strings.HasPrefix(s, "-") {
		b.WriteByte('-')
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(frGroupSep)
		}
		b.WriteByte(intPart[i])
	}
	b.WriteString(",")
	b.WriteString(frac)
	b.WriteString(" €")
	return b.String()
}

// formatQuantity formatea una cantidad sin decimales superfluos: "12", "2,5".
func formatQuantity(d decimal.Decimal) string {
	if d.IsInteger() {
		return frPrinter.Sprintf("%d", d.IntPart())
	}
	return strings.Replace(d.String(), ".", ",", 1)
}

// FormatActivity convierte una fila cruda en un elemento del feed con el mensaje de su fuente.
func FormatActivity(source string, row entity.ActivityRow) dto.ActivityDTO {
	var msg string
	switch source {
	case entity.ActivityNonTransportInvoice:
		msg = frPrinter.Sprintf("Facture %s émise (%s)", row.Ref, FormatAmount(row.Amount))
	case entity.ActivityTransportInvoice:
		msg = frPrinter.Sprintf("Facture transport %s émise (%s)", row.Ref, FormatAmount(row.Amount))
	case entity.ActivityTransportProforma:
		if row.Label != "" {
			msg = frPrinter.Sprintf("Proforma transport %s : %s", row.Ref, row.Label)
		} else {
			msg = frPrinter.Sprintf("Proforma transport %s (%s)", row.Ref, FormatAmount(row.Amount))
		}
	case entity.ActivityStock:
		msg = frPrinter.Sprintf("Article %s (%s) : %s en stock", row.Label, row.Ref, formatQuantity(row.Quantity))
	case entity.ActivityCaisse:
		if row.Kind == entity.CaisseSortie || row.Amount.IsNegative() {
			msg = frPrinter.Sprintf("Sortie de caisse : %s (%s)", row.Label, FormatAmount(row.Amount.Abs()))
		} else {
			msg = frPrinter.Sprintf("Entrée de caisse : %s (%s)", row.Label, FormatAmount(row.Amount))
		}
	default:
		msg = row.Label
	}
	return dto.ActivityDTO{Type: source, Message: msg, Date: row.Date}
}
