package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodegas-api/internal/application/dto"
	"github.com/jhoicas/bodegas-api/internal/application/inventory"
	"github.com/jhoicas/bodegas-api/pkg/logger"
)

// InboundHandler órdenes de entrada y sus líneas.
type InboundHandler struct {
	uc  *inventory.InboundUseCase
	log *logger.Logger
}

// NewInboundHandler construye el handler.
func NewInboundHandler(uc *inventory.InboundUseCase, log *logger.Logger) *InboundHandler {
	return &InboundHandler{uc: uc, log: log}
}

// CreateFull godoc
// @Summary      Crear orden de entrada completa
// @Description  Cabecera y líneas en una sola transacción; la capacidad se valida sobre el total de la orden.
// @Tags         inbound
// @Accept       json
// @Produce      json
// @Param        warehouseId  path   int                       true  "ID de la bodega"
// @Param        empId        query  int                       true  "Empleado que ejecuta la operación"
// @Param        body         body   dto.CreateInboundRequest  true  "Orden de entrada"
// @Success      201  {object}  dto.CreateInboundResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/inbound/full/{warehouseId} [post]
func (h *InboundHandler) CreateFull(c *fiber.Ctx) error {
	whID, err := pathID(c, "warehouseId")
	if err != nil {
		return respondError(c, h.log, err)
	}
	var in dto.CreateInboundRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateFull(c.Context(), actorFrom(c), whID, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListOrders godoc
// @Summary      Listar órdenes de entrada de una bodega
// @Tags         inbound
// @Produce      json
// @Param        warehouseId  path  int  true  "ID de la bodega"
// @Success      200  {array}  dto.InboundOrderResponse
// @Router       /api/inbound/{warehouseId} [get]
func (h *InboundHandler) ListOrders(c *fiber.Ctx) error {
	whID, err := pathID(c, "warehouseId")
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.ListOrders(c.Context(), whID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetOrder godoc
// @Summary      Obtener orden de entrada con sus líneas
// @Tags         inbound
// @Produce      json
// @Param        inboundId  path  int  true  "ID de la orden"
// @Success      200  {object}  dto.InboundOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inbound/order/{inboundId} [get]
func (h *InboundHandler) GetOrder(c *fiber.Ctx) error {
	id, err := pathID(c, "inboundId")
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.GetOrder(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListLines godoc
// @Summary      Listar líneas de una orden de entrada
// @Tags         inbound
// @Produce      json
// @Param        inboundId  path  int  true  "ID de la orden"
// @Success      200  {array}   dto.OrderLineResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inbound/detail/{inboundId} [get]
func (h *InboundHandler) ListLines(c *fiber.Ctx) error {
	id, err := pathID(c, "inboundId")
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.ListLines(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// UpdateHeader godoc
// @Summary      Actualizar proveedor y fecha de una orden de entrada
// @Tags         inbound
// @Accept       json
// @Produce      json
// @Param        inboundId  path   int                            true  "ID de la orden"
// @Param        empId      query  int                            true  "Empleado que ejecuta la operación"
// @Param        body       body   dto.UpdateInboundOrderRequest  true  "Cabecera"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inbound/{inboundId} [put]
func (h *InboundHandler) UpdateHeader(c *fiber.Ctx) error {
	id, err := pathID(c, "inboundId")
	if err != nil {
		return respondError(c, h.log, err)
	}
	var in dto.UpdateInboundOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.UpdateHeader(c.Context(), actorFrom(c), id, in); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// UpdateLine godoc
// @Summary      Editar línea de entrada (producto y/o cantidad)
// @Tags         inbound
// @Accept       json
// @Produce      json
// @Param        lineId  path   int                           true  "ID de la línea"
// @Param        empId   query  int                           true  "Empleado que ejecuta la operación"
// @Param        body    body   dto.UpdateInboundLineRequest  true  "Producto y cantidad"
// @Success      200  {object}  dto.UpdateLineResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/inbound/detail/{lineId} [put]
func (h *InboundHandler) UpdateLine(c *fiber.Ctx) error {
	id, err := pathID(c, "lineId")
	if err != nil {
		return respondError(c, h.log, err)
	}
	var in dto.UpdateInboundLineRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateLine(c.Context(), actorFrom(c), id, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// DeleteLine godoc
// @Summary      Eliminar línea de entrada
// @Description  Revierte la cantidad recibida; si era la última línea, elimina también la orden.
// @Tags         inbound
// @Produce      json
// @Param        lineId  path   int  true  "ID de la línea"
// @Param        empId   query  int  true  "Empleado que ejecuta la operación"
// @Success      200  {object}  dto.DeleteLineResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inbound/detail/{lineId} [delete]
func (h *InboundHandler) DeleteLine(c *fiber.Ctx) error {
	id, err := pathID(c, "lineId")
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.DeleteLine(c.Context(), actorFrom(c), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
