package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodegas-api/internal/application/dto"
	"github.com/jhoicas/bodegas-api/internal/application/inventory"
	"github.com/jhoicas/bodegas-api/pkg/logger"
)

// StockHandler expone el libro de stock por bodega.
type StockHandler struct {
	uc  *inventory.StockUseCase
	log *logger.Logger
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.StockUseCase, log *logger.Logger) *StockHandler {
	return &StockHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar stock de una bodega
// @Tags         stock
// @Produce      json
// @Param        warehouseId  path  int  true  "ID de la bodega"
// @Success      200  {array}   dto.StockItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{warehouseId} [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	whID, err := pathID(c, "warehouseId")
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.List(c.Context(), whID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// SetQuantity godoc
// @Summary      Fijar la cantidad de un producto en bodega
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        warehouseId  path   int                  true  "ID de la bodega"
// @Param        productId    path   int                  true  "ID del producto"
// @Param        empId        query  int                  true  "Empleado que ejecuta la operación"
// @Param        body         body   dto.SetStockRequest  true  "Nueva cantidad"
// @Success      200  {object}  dto.SetStockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/stock/{warehouseId}/{productId} [put]
func (h *StockHandler) SetQuantity(c *fiber.Ctx) error {
	whID, err := pathID(c, "warehouseId")
	if err != nil {
		return respondError(c, h.log, err)
	}
	productID, err := pathID(c, "productId")
	if err != nil {
		return respondError(c, h.log, err)
	}
	var in dto.SetStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.SetQuantity(c.Context(), actorFrom(c), whID, productID, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Initialize godoc
// @Summary      Inicializar o reponer un producto por nombre
// @Description  Crea el producto si no existe (nombre sin distinguir mayúsculas) y suma la cantidad indicada.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        warehouseId  path   int                         true  "ID de la bodega"
// @Param        empId        query  int                         true  "Empleado que ejecuta la operación"
// @Param        body         body   dto.InitializeStockRequest  true  "Producto y cantidad"
// @Success      201  {object}  dto.InitializeStockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/stock/initialize/{warehouseId} [post]
func (h *StockHandler) Initialize(c *fiber.Ctx) error {
	whID, err := pathID(c, "warehouseId")
	if err != nil {
		return respondError(c, h.log, err)
	}
	var in dto.InitializeStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Initialize(c.Context(), actorFrom(c), whID, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Eliminar fila de stock (solo con cantidad 0)
// @Tags         stock
// @Produce      json
// @Param        warehouseId  path   int  true  "ID de la bodega"
// @Param        productId    path   int  true  "ID del producto"
// @Param        empId        query  int  true  "Empleado que ejecuta la operación"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/{warehouseId}/{productId} [delete]
func (h *StockHandler) Delete(c *fiber.Ctx) error {
	whID, err := pathID(c, "warehouseId")
	if err != nil {
		return respondError(c, h.log, err)
	}
	productID, err := pathID(c, "productId")
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := h.uc.Delete(c.Context(), actorFrom(c), whID, productID); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
