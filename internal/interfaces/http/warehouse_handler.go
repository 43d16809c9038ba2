package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodegas-api/internal/application/usecase"
	"github.com/jhoicas/bodegas-api/pkg/logger"
)

// WarehouseHandler maneja las peticiones HTTP para Warehouse.
type WarehouseHandler struct {
	uc  *usecase.WarehouseUseCase
	log *logger.Logger
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(uc *usecase.WarehouseUseCase, log *logger.Logger) *WarehouseHandler {
	return &WarehouseHandler{uc: uc, log: log}
}

// ListByEmployee godoc
// @Summary      Bodegas asignadas a un empleado
// @Tags         warehouses
// @Produce      json
// @Param        empId  path  int  true  "ID del empleado"
// @Success      200  {array}   dto.WarehouseResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/warehouse/{empId} [get]
func (h *WarehouseHandler) ListByEmployee(c *fiber.Ctx) error {
	empID, err := pathID(c, "empId")
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.ListByEmployee(c.Context(), empID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
