package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fuentes del feed de actividad reciente.
const (
	ActivityNonTransportInvoice = "facture_non_transport"
	ActivityTransportInvoice    = "facture_transport"
	ActivityTransportProforma   = "proforma_transport"
	ActivityStock               = "stock"
	ActivityCaisse              = "caisse"
)

// ActivityRow fila cruda para el feed de actividad; cada fuente rellena los campos que tiene.
type ActivityRow struct {
	Ref      string
	Label    string
	Kind     string
	Amount   decimal.Decimal
	Currency string
	Quantity decimal.Decimal
	Date     time.Time
}
