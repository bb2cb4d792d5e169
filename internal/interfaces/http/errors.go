package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/factory-api/internal/application/dto"
	"github.com/jhoicas/factory-api/internal/domain"
)

// errorMapping status y código HTTP por error de dominio.
var errorMapping = []struct {
	kind   error
	status int
	code   string
}{
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrEmailAlreadyExists, fiber.StatusBadRequest, "EMAIL_EXISTS"},
	{domain.ErrStateConflict, fiber.StatusConflict, "STATE_CONFLICT"},
	{domain.ErrQualityPending, fiber.StatusPartialContent, "QUALITY_PENDING"},
	{domain.ErrComponentRejected, fiber.StatusBadRequest, "COMPONENT_REJECTED"},
	{domain.ErrRateLimited, fiber.StatusTooManyRequests, "RATE_LIMITED"},
}

// statusFor traduce err a status y código. Lo no reconocido es 500 INTERNAL.
func statusFor(err error) (int, string) {
	for _, m := range errorMapping {
		if errors.Is(err, m.kind) {
			return m.status, m.code
		}
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// writeError responde con el cuerpo de error estándar.
// Los errores internos no exponen su mensaje al cliente.
func writeError(c *fiber.Ctx, err error) error {
	status, code := statusFor(err)
	msg := domain.Message(err)
	if status == fiber.StatusInternalServerError {
		msg = "internal server error"
	}
	if status == fiber.StatusUnauthorized {
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// ErrorHandler manejador global de Fiber: rutas inexistentes, métodos no permitidos
// y cualquier error que un handler devuelva sin responder.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "HTTP_ERROR"
		switch fe.Code {
		case fiber.StatusNotFound:
			code = "NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
			code = "INVALID_BODY"
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
	}
	return writeError(c, err)
}
