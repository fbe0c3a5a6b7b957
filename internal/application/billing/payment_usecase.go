package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/heraclion-api/internal/application/dto"
	"github.com/jhoicas/heraclion-api/internal/domain"
	"github.com/jhoicas/heraclion-api/internal/domain/entity"
	"github.com/jhoicas/heraclion-api/internal/domain/repository"
)

// PaymentUseCase registra el pago de una factura: estado "payee" y entrada de caja, en una sola transacción.
type PaymentUseCase struct {
	txRunner PaymentTxRunner
	notifier DashboardNotifier
	now      func() time.Time
}

// NewPaymentUseCase construye el caso de uso. notifier puede ser nil.
func NewPaymentUseCase(txRunner PaymentTxRunner, notifier DashboardNotifier) *PaymentUseCase {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &PaymentUseCase{txRunner: txRunner, notifier: notifier, now: time.Now}
}

func validSource(source string) bool {
	for _, s := range InvoiceSources {
		if s == source {
			return true
		}
	}
	return false
}

// MarkPaid marca la factura como pagada y registra su total como entrada de caja.
// Devuelve ErrAlreadyPaid si ya estaba pagada; en ese caso no se toca la caja.
func (uc *PaymentUseCase) MarkPaid(ctx context.Context, source string, id int64) (*dto.PaymentResponse, error) {
	if !validSource(source) || id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var (
		inv *entity.InvoiceRow
		op  *entity.CaisseOperation
	)
	err := uc.txRunner.RunPayment(ctx, func(invoices repository.InvoiceSourceRepository, caisse repository.CaisseRepository) error {
		var err error
		inv, err = invoices.GetInvoice(ctx, source, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if inv.Statut == entity.StatusPayee {
			return domain.ErrAlreadyPaid
		}
		if err := invoices.UpdateStatus(ctx, source, id, entity.StatusPayee); err != nil {
			return err
		}
		now := uc.now()
		op = &entity.CaisseOperation{
			Type:      entity.CaisseEntree,
			Montant:   inv.Total,
			Libelle:   fmt.Sprintf("Paiement facture %s", inv.Numero),
			Reference: inv.Numero,
			Date:      now,
			CreatedAt: now,
		}
		return caisse.Create(ctx, op)
	})
	if err != nil {
		return nil, err
	}
	uc.notifier.Trigger()
	return &dto.PaymentResponse{
		Source:    source,
		FactureID: inv.ID,
		Numero:    inv.Numero,
		Statut:    entity.StatusPayee,
		Operation: dto.NewCaisseOperationResponse(op),
	}, nil
}
