package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/heraclion-api/internal/application/dto"
	"github.com/jhoicas/heraclion-api/internal/application/usecase"
)

// CaisseHandler operaciones y saldo de caja.
type CaisseHandler struct {
	uc *usecase.CaisseUseCase
}

// NewCaisseHandler construye el handler.
func NewCaisseHandler(uc *usecase.CaisseUseCase) *CaisseHandler {
	return &CaisseHandler{uc: uc}
}

// Create POST /api/caisse
func (h *CaisseHandler) Create(c *fiber.Ctx) error {
	var in dto.CaisseOperationRequest
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return created(c, out)
}

// List GET /api/caisse
func (h *CaisseHandler) List(c *fiber.Ctx) error {
	page, err := pageQuery(c)
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return err
	}
	return list(c, out, len(out), nil)
}

// Balance GET /api/caisse/solde
func (h *CaisseHandler) Balance(c *fiber.Ctx) error {
	out, err := h.uc.Balance(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, out)
}
