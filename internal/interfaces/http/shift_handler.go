package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/FarmaPOS-api/internal/application/dto"
	"github.com/jhoicas/FarmaPOS-api/internal/application/usecase"
)

// ShiftHandler maneja las peticiones HTTP para el recurso Shift.
type ShiftHandler struct {
	uc *usecase.ShiftUseCase
}

// NewShiftHandler construye el handler inyectando el caso de uso.
func NewShiftHandler(uc *usecase.ShiftUseCase) *ShiftHandler {
	return &ShiftHandler{uc: uc}
}

// Create godoc
// @Summary      Abrir turno en una sucursal
// @Tags         shifts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShiftRequest  true  "Datos del turno"
// @Success      201   {object}  dto.ShiftResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/shifts [post]
func (h *ShiftHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShiftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.BranchID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "branch_id es requerido"})
	}
	out, err := h.uc.Create(c.UserContext(), IdentityFromCtx(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener turno por ID
// @Tags         shifts
// @Produce      json
// @Param        id   path  string  true  "ID del turno"
// @Success      200  {object}  dto.ShiftResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shifts/{id} [get]
func (h *ShiftHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(c.UserContext(), IdentityFromCtx(c), id)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "turno no encontrado"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar turno (asignación de personal, estado)
// @Tags         shifts
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del turno"
// @Param        body  body  dto.UpdateShiftRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ShiftResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/shifts/{id} [put]
func (h *ShiftHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateShiftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), IdentityFromCtx(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "turno no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar turnos visibles
// @Description  Cajeros y farmacéuticos solo ven turnos de su sucursal donde
// @Description  además están asignados.
// @Tags         shifts
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.ShiftListResponse
// @Router       /api/shifts [get]
func (h *ShiftHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.UserContext(), IdentityFromCtx(c), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar turno
// @Tags         shifts
// @Produce      json
// @Param        id   path  string  true  "ID del turno"
// @Success      204  "Sin contenido"
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/shifts/{id} [delete]
func (h *ShiftHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(c.UserContext(), IdentityFromCtx(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
