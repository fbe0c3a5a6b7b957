package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/heraclion-api/internal/application/dto"
	"github.com/jhoicas/heraclion-api/internal/domain"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// Orden relevante: ErrAlreadyPaid antes que los genéricos.
var errorMappings = []errorMapping{
	{domain.ErrAlreadyPaid, fiber.StatusConflict, "ALREADY_PAID"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "INVALID_INPUT"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
}

// NewErrorHandler traduce los errores de dominio a {success:false, code, message, error?}.
// El detalle técnico (error) solo se expone en development.
func NewErrorHandler(dev bool, log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		resp := dto.ErrorResponse{Success: false}
		status := fiber.StatusInternalServerError

		var ferr *fiber.Error
		var verr *validationError
		mapped := false
		for _, m := range errorMappings {
			if errors.Is(err, m.target) {
				status, resp.Code, resp.Message = m.status, m.code, m.target.Error()
				mapped = true
				break
			}
		}
		switch {
		case errors.As(err, &verr):
			resp.Fields = verr.fields
		case mapped:
		case errors.As(err, &ferr):
			status, resp.Code, resp.Message = ferr.Code, "HTTP_ERROR", ferr.Message
		default:
			resp.Code, resp.Message = "INTERNAL", "erreur interne du serveur"
			log.Error().Err(err).Str("path", c.Path()).Msg("erreur non gérée")
		}
		if dev {
			resp.Error = err.Error()
		}
		return c.Status(status).JSON(resp)
	}
}
