package billing

import (
	"context"

	"github.com/jhoicas/heraclion-api/internal/domain/repository"
)

// DocumentTxRunner ejecuta fn dentro de una transacción que cubre cabecera y líneas del documento.
type DocumentTxRunner interface {
	RunDocument(ctx context.Context, fn func(docs repository.DocumentRepository) error) error
}

// PaymentTxRunner ejecuta fn con los repos de facturas y caja en la misma transacción.
type PaymentTxRunner interface {
	RunPayment(ctx context.Context, fn func(
		invoices repository.InvoiceSourceRepository,
		caisse repository.CaisseRepository,
	) error) error
}

// DashboardNotifier solicita un push inmediato del dashboard. Trigger no debe bloquear.
type DashboardNotifier interface {
	Trigger()
}

type noopNotifier struct{}

func (noopNotifier) Trigger() {}
