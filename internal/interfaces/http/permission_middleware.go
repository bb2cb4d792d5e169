package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/factory-api/internal/application/dto"
	"github.com/jhoicas/factory-api/internal/domain/access"
)

// RequirePermission autoriza la ruta según el rol del usuario y el par dominio/acción.
// Debe usarse DESPUÉS de AuthMiddleware (necesita LocalRole).
//
// Comportamiento:
//   - 401 si no hay rol en el contexto.
//   - 403 con el motivo de access.Authorize si el rol no tiene permiso.
func RequirePermission(d access.Domain, a access.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return unauthorized(c, "UNAUTHORIZED", "not authenticated")
		}
		decision := access.Authorize(role, d, a)
		if !decision.Allowed {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: decision.Reason,
			})
		}
		return c.Next()
	}
}
