package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodegas-api/internal/application/inventory"
	"github.com/jhoicas/bodegas-api/internal/application/usecase"
	"github.com/jhoicas/bodegas-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	WarehouseUC *usecase.WarehouseUseCase
	StockUC     *inventory.StockUseCase
	InboundUC   *inventory.InboundUseCase
	OutboundUC  *inventory.OutboundUseCase
	Log         *logger.Logger
}

// Router registra las rutas de la API.
// Las rutas con segmento fijo (initialize, full, order, detail) van antes que las de parámetro
// porque fiber resuelve en orden de registro.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC, deps.Log)
	api.Get("/warehouse/:empId", warehouseHandler.ListByEmployee)

	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC, deps.Log)
	stock.Post("/initialize/:warehouseId", stockHandler.Initialize)
	stock.Get("/:warehouseId", stockHandler.List)
	stock.Put("/:warehouseId/:productId", stockHandler.SetQuantity)
	stock.Delete("/:warehouseId/:productId", stockHandler.Delete)

	inbound := api.Group("/inbound")
	inboundHandler := NewInboundHandler(deps.InboundUC, deps.Log)
	inbound.Post("/full/:warehouseId", inboundHandler.CreateFull)
	inbound.Get("/order/:inboundId", inboundHandler.GetOrder)
	inbound.Get("/detail/:inboundId", inboundHandler.ListLines)
	inbound.Put("/detail/:lineId", inboundHandler.UpdateLine)
	inbound.Delete("/detail/:lineId", inboundHandler.DeleteLine)
	inbound.Get("/:warehouseId", inboundHandler.ListOrders)
	inbound.Put("/:inboundId", inboundHandler.UpdateHeader)

	outbound := api.Group("/outbound")
	outboundHandler := NewOutboundHandler(deps.OutboundUC, deps.Log)
	outbound.Post("/full/:warehouseId", outboundHandler.CreateFull)
	outbound.Get("/order/:outboundId", outboundHandler.GetOrder)
	outbound.Get("/detail/:outboundId", outboundHandler.ListLines)
	outbound.Put("/detail/:lineId", outboundHandler.UpdateLine)
	outbound.Delete("/detail/:lineId", outboundHandler.DeleteLine)
	outbound.Get("/:warehouseId", outboundHandler.ListOrders)
	outbound.Put("/:outboundId", outboundHandler.UpdateHeader)
}
