package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodegas-api/internal/application/dto"
	"github.com/jhoicas/bodegas-api/internal/application/inventory"
	"github.com/jhoicas/bodegas-api/pkg/logger"
)

// OutboundHandler órdenes de salida y sus líneas.
type OutboundHandler struct {
	uc  *inventory.OutboundUseCase
	log *logger.Logger
}

// NewOutboundHandler construye el handler.
func NewOutboundHandler(uc *inventory.OutboundUseCase, log *logger.Logger) *OutboundHandler {
	return &OutboundHandler{uc: uc, log: log}
}

// CreateFull godoc
// @Summary      Crear orden de salida completa
// @Description  Cabecera y líneas en una sola transacción; cada línea descuenta del saldo vigente.
// @Tags         outbound
// @Accept       json
// @Produce      json
// @Param        warehouseId  path   int                       true  "ID de la bodega"
// @Param        empId        query  int                       true  "Empleado que ejecuta la operación"
// @Param        body         body   dto.CreateOutboundRequest  true  "Orden de salida"
// @Success      201  {object}  dto.CreateOutboundResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/outbound/full/{warehouseId} [post]
func (h *OutboundHandler) CreateFull(c *fiber.Ctx) error {
	whID, err := pathID(c, "warehouseId")
	if err != nil {
		return respondError(c, h.log, err)
	}
	var in dto.CreateOutboundRequest
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
// @Summary      Listar órdenes de salida de una bodega
// @Tags         outbound
// @Produce      json
// @Param        warehouseId  path  int  true  "ID de la bodega"
// @Success      200  {array}  dto.OutboundOrderResponse
// @Router       /api/outbound/{warehouseId} [get]
func (h *OutboundHandler) ListOrders(c *fiber.Ctx) error {
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
// @Summary      Obtener orden de salida con sus líneas
// @Tags         outbound
// @Produce      json
// @Param        outboundId  path  int  true  "ID de la orden"
// @Success      200  {object}  dto.OutboundOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/outbound/order/{outboundId} [get]
func (h *OutboundHandler) GetOrder(c *fiber.Ctx) error {
	id, err := pathID(c, "outboundId")
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
// @Summary      Listar líneas de una orden de salida
// @Tags         outbound
// @Produce      json
// @Param        outboundId  path  int  true  "ID de la orden"
// @Success      200  {array}   dto.OrderLineResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/outbound/detail/{outboundId} [get]
func (h *OutboundHandler) ListLines(c *fiber.Ctx) error {
	id, err := pathID(c, "outboundId")
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
// @Summary      Actualizar dirección y fecha de una orden de salida
// @Tags         outbound
// @Accept       json
// @Produce      json
// @Param        outboundId  path   int                            true  "ID de la orden"
// @Param        empId      query  int                            true  "Empleado que ejecuta la operación"
// @Param        body       body   dto.UpdateOutboundOrderRequest  true  "Cabecera"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/outbound/{outboundId} [put]
func (h *OutboundHandler) UpdateHeader(c *fiber.Ctx) error {
	id, err := pathID(c, "outboundId")
	if err != nil {
		return respondError(c, h.log, err)
	}
	var in dto.UpdateOutboundOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.UpdateHeader(c.Context(), actorFrom(c), id, in); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// UpdateLine godoc
// @Summary      Editar la cantidad de una línea de salida
// @Tags         outbound
// @Accept       json
// @Produce      json
// @Param        lineId  path   int                           true  "ID de la línea"
// @Param        empId   query  int                           true  "Empleado que ejecuta la operación"
// @Param        body    body   dto.UpdateOutboundLineRequest  true  "Cantidad"
// @Success      200  {object}  dto.UpdateLineResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/outbound/detail/{lineId} [put]
func (h *OutboundHandler) UpdateLine(c *fiber.Ctx) error {
	id, err := pathID(c, "lineId")
	if err != nil {
		return respondError(c, h.log, err)
	}
	var in dto.UpdateOutboundLineRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateLineQuantity(c.Context(), actorFrom(c), id, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// DeleteLine godoc
// @Summary      Eliminar línea de salida
// @Description  Devuelve la cantidad despachada al stock; si era la última línea, elimina también la orden.
// @Tags         outbound
// @Produce      json
// @Param        lineId  path   int  true  "ID de la línea"
// @Param        empId   query  int  true  "Empleado que ejecuta la operación"
// @Success      200  {object}  dto.DeleteLineResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/outbound/detail/{lineId} [delete]
func (h *OutboundHandler) DeleteLine(c *fiber.Ctx) error {
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
