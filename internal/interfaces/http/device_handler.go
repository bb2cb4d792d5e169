package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/factory-api/internal/application/assembly"
	"github.com/jhoicas/factory-api/internal/application/dto"
	"github.com/jhoicas/factory-api/internal/application/report"
	"github.com/jhoicas/factory-api/internal/application/usecase"
)

// DeviceHandler maneja dispositivos: ensamblaje, listado, edición, baja e informe.
type DeviceHandler struct {
	assemble *assembly.AssembleUseCase
	devices  *usecase.DeviceUseCase
	reports  *report.ReportUseCase
}

// NewDeviceHandler construye el handler.
func NewDeviceHandler(assemble *assembly.AssembleUseCase, devices *usecase.DeviceUseCase, reports *report.ReportUseCase) *DeviceHandler {
	return &DeviceHandler{assemble: assemble, devices: devices, reports: reports}
}

// Create godoc
// @Summary      Ensamblar dispositivo
// @Description  Busca un componente de cada tipo, aplica las reglas de calidad y crea el dispositivo.
// @Description  206 si algún componente no tiene calidad asignada.
// @Tags         assembler
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDeviceRequest  true  "Tipos de componente"
// @Success      201   {object}  dto.DeviceResponse
// @Success      206   {object}  dto.ErrorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /assembler/add [post]
func (h *DeviceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDeviceRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.assemble.Assemble(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar dispositivos
// @Tags         assembler
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(100)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.DeviceListResponse
// @Router       /assembler/list [get]
func (h *DeviceHandler) List(c *fiber.Ctx) error {
	page, err := bindPage(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.devices.List(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Modificar dispositivo
// @Tags         assembler
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del dispositivo"
// @Param        body  body  dto.UpdateDeviceRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.DeviceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /assembler/update/devices/{id} [put]
func (h *DeviceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDeviceRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.devices.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar dispositivo
// @Tags         assembler
// @Security     Bearer
// @Param        id   path  string  true  "ID del dispositivo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /assembler/delete/{id} [delete]
func (h *DeviceHandler) Delete(c *fiber.Ctx) error {
	if err := h.devices.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Report godoc
// @Summary      Informe de ensamblaje (PDF)
// @Tags         assembler
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /assembler/report [get]
func (h *DeviceHandler) Report(c *fiber.Ctx) error {
	pdf, filename, err := h.reports.AssemblyPDF(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
