package repository

import (
	"context"

	"github.com/jhoicas/heraclion-api/internal/domain/entity"
)

// InvoiceSourceRepository lectura y cambio de estado sobre las tres tablas de facturas
// (documents type=facture, factures_transport, factures_non_transport).
// source es una de las constantes entity.Source*.
// Si la tabla no existe, las implementaciones devuelven un error que envuelve domain.ErrTableMissing.
type InvoiceSourceRepository interface {
	ListInvoices(ctx context.Context, source string) ([]entity.InvoiceRow, error)
	// GetInvoice devuelve nil si la factura no existe.
	GetInvoice(ctx context.Context, source string, id int64) (*entity.InvoiceRow, error)
	UpdateStatus(ctx context.Context, source string, id int64, statut string) error
}
