package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/heraclion-api/internal/application/dto"
	"github.com/jhoicas/heraclion-api/internal/application/usecase"
)

// StockHandler artículos de stock.
type StockHandler struct {
	uc *usecase.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *usecase.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Create POST /api/stock
func (h *StockHandler) Create(c *fiber.Ctx) error {
	var in dto.StockArticleRequest
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return created(c, out)
}

// List GET /api/stock
func (h *StockHandler) List(c *fiber.Ctx) error {
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

// UpdateQuantity PATCH /api/stock/:id/quantite
func (h *StockHandler) UpdateQuantity(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.StockQuantityRequest
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateQuantity(c.UserContext(), id, in.Quantite)
	if err != nil {
		return err
	}
	return ok(c, out)
}
