package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/heraclion-api/internal/application/billing"
)

// InvoiceHandler vista unificada de facturas y pago.
type InvoiceHandler struct {
	merger   *billing.InvoiceMergerUseCase
	payments *billing.PaymentUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(merger *billing.InvoiceMergerUseCase, payments *billing.PaymentUseCase) *InvoiceHandler {
	return &InvoiceHandler{merger: merger, payments: payments}
}

// ListAll GET /api/all-factures
func (h *InvoiceHandler) ListAll(c *fiber.Ctx) error {
	records, err := h.merger.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return list(c, records, len(records), nil)
}

// Pay POST /api/factures/:source/:id/payer
func (h *InvoiceHandler) Pay(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	res, err := h.payments.MarkPaid(c.UserContext(), c.Params("source"), id)
	if err != nil {
		return err
	}
	return ok(c, res)
}
