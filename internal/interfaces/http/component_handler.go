package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/factory-api/internal/application/dto"
	"github.com/jhoicas/factory-api/internal/application/usecase"
)

// ComponentHandler maneja componentes: alta y edición en producción, revisión en ensamblaje.
type ComponentHandler struct {
	uc *usecase.ComponentUseCase
}

// NewComponentHandler construye el handler.
func NewComponentHandler(uc *usecase.ComponentUseCase) *ComponentHandler {
	return &ComponentHandler{uc: uc}
}

// Create godoc
// @Summary      Crear componente
// @Description  El nombre (C<n>) lo asigna el sistema; calidad "null" y ubicación producer.
// @Tags         producer
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateComponentRequest  true  "Tipo y estado"
// @Success      201   {object}  dto.ComponentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /producer/add [post]
func (h *ComponentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateComponentRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar componentes
// @Tags         producer
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(100)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.ComponentListResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Router       /producer/list [get]
func (h *ComponentHandler) List(c *fiber.Ctx) error {
	page, err := bindPage(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Modificar componente (producción)
// @Tags         producer
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del componente"
// @Param        body  body  dto.UpdateComponentRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.ComponentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /producer/update/{id} [put]
func (h *ComponentHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateComponentRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateFromProducer(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Review godoc
// @Summary      Revisar componente (ensamblaje)
// @Description  Asigna calidad y estado; la ubicación queda siempre en assembler.
// @Tags         assembler
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del componente"
// @Param        body  body  dto.UpdateComponentRequest  true  "Calidad, estado, tipo o ubicación"
// @Success      200   {object}  dto.ComponentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /assembler/update/components/{id} [put]
func (h *ComponentHandler) Review(c *fiber.Ctx) error {
	var in dto.UpdateComponentRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Review(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar componente
// @Tags         producer
// @Security     Bearer
// @Param        id   path  string  true  "ID del componente"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /producer/delete/{id} [delete]
func (h *ComponentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
