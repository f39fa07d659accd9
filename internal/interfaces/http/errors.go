package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/logitrack/logitrack-api/internal/application/dto"
	"github.com/logitrack/logitrack-api/internal/domain"
)

// writeError traduce errores de dominio a respuestas HTTP. Los errores
// internos no exponen detalle al cliente.
func writeError(c *fiber.Ctx, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: ve.Message,
		})
	}
	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code:    "NOT_FOUND",
			Message: nf.Error(),
			Details: map[string]any{"entity": nf.Entity, "id": nf.ID},
		})
	}
	var br *domain.BusinessRuleError
	if errors.As(err, &br) {
		resp := dto.ErrorResponse{Code: "BUSINESS_RULE", Message: br.Message}
		if br.Product != "" || br.Warehouse != "" {
			resp.Details = map[string]any{
				"product":   br.Product,
				"warehouse": br.Warehouse,
				"available": br.Available,
				"requested": br.Requested,
			}
		}
		return c.Status(fiber.StatusConflict).JSON(resp)
	}
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrUsernameInUse), errors.Is(err, domain.ErrEmailInUse):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code: "INTERNAL", Message: "error interno",
	})
}
