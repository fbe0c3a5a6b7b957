package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/heraclion-api/internal/application/dto"
	"github.com/jhoicas/heraclion-api/internal/application/usecase"
)

// EntrepriseHandler maneja las peticiones HTTP de empresas.
type EntrepriseHandler struct {
	uc *usecase.EntrepriseUseCase
}

// NewEntrepriseHandler construye el handler.
func NewEntrepriseHandler(uc *usecase.EntrepriseUseCase) *EntrepriseHandler {
	return &EntrepriseHandler{uc: uc}
}

// Create POST /api/entreprises
func (h *EntrepriseHandler) Create(c *fiber.Ctx) error {
	var in dto.EntrepriseRequest
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return created(c, out)
}

// List GET /api/entreprises
func (h *EntrepriseHandler) List(c *fiber.Ctx) error {
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

// GetByID GET /api/entreprises/:id
func (h *EntrepriseHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, out)
}
