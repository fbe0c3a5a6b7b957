package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/heraclion-api/internal/application/billing"
	"github.com/jhoicas/heraclion-api/internal/application/dto"
	calc "github.com/jhoicas/heraclion-api/internal/domain/billing"
)

// DocumentHandler CRUD de documentos (facture, proforma, devis) y sus líneas.
type DocumentHandler struct {
	uc *billing.DocumentUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *billing.DocumentUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// Create POST /api/documents
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDocumentRequest
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	doc, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return created(c, doc)
}

// List GET /api/documents?type=facture&limit=50&offset=0
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	page, err := pageQuery(c)
	if err != nil {
		return err
	}
	docs, err := h.uc.List(c.UserContext(), c.Query("type"), page)
	if err != nil {
		return err
	}
	return list(c, docs, len(docs), nil)
}

// GetByID GET /api/documents/:id
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	doc, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, doc)
}

// Update PUT /api/documents/:id
func (h *DocumentHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.CreateDocumentRequest
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	doc, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return ok(c, doc)
}

// Delete DELETE /api/documents/:id
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return ok(c, fiber.Map{"id": id})
}

// AddLine POST /api/documents/:id/lignes
func (h *DocumentHandler) AddLine(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.LineRequest
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	doc, err := h.uc.AddLine(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return created(c, doc)
}

// DeleteLine DELETE /api/documents/:id/lignes/:ligneId
func (h *DocumentHandler) DeleteLine(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	lineID, err := paramID(c, "ligneId")
	if err != nil {
		return err
	}
	doc, err := h.uc.DeleteLine(c.UserContext(), id, lineID)
	if err != nil {
		return err
	}
	return ok(c, doc)
}

// PreviewLine POST /api/calcul/ligne
//
// Nunca devuelve 400 por importes: lo no numérico cuenta como cero.
func (h *DocumentHandler) PreviewLine(c *fiber.Ctx) error {
	var in calc.LineInput
	if err := c.BodyParser(&in); err != nil {
		in = calc.LineInput{}
	}
	return ok(c, h.uc.PreviewLine(in))
}
