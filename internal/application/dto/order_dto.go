package dto

import "github.com/shopspring/decimal"

// InboundLineRequest línea de POST /api/inbound/full/{warehouseId}.
// El producto se referencia por product_id o por product_name (se crea si no existe).
type InboundLineRequest struct {
	ProductID   int64            `json:"product_id,omitempty"`
	ProductName string           `json:"product_name,omitempty"`
	Quantity    int              `json:"quantity"`
	Size        *decimal.Decimal `json:"size,omitempty"`
	Weight      *decimal.Decimal `json:"weight,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

// CreateInboundRequest orden de entrada completa (cabecera + líneas).
type CreateInboundRequest struct {
	Supplier     string               `json:"supplier"`
	ReceivedDate Date                 `json:"received_date"`
	Lines        []InboundLineRequest `json:"lines"`
}

// CreateInboundResponse resultado de crear una orden de entrada.
type CreateInboundResponse struct {
	Success   bool           `json:"success"`
	InboundID int64          `json:"inbound_id"`
	LineIDs   []int64        `json:"line_ids"`
	Stock     []StockBalance `json:"stock"`
}

// UpdateInboundOrderRequest body para PUT /api/inbound/{inboundId}.
type UpdateInboundOrderRequest struct {
	Supplier     string `json:"supplier"`
	ReceivedDate Date   `json:"received_date"`
}

// UpdateInboundLineRequest body para PUT /api/inbound/detail/{lineId}.
type UpdateInboundLineRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  *int  `json:"quantity"`
}

// OutboundLineRequest línea de POST /api/outbound/full/{warehouseId}. El producto debe existir.
type OutboundLineRequest struct {
	ProductID   int64  `json:"product_id,omitempty"`
	ProductName string `json:"product_name,omitempty"`
	Quantity    int    `json:"quantity"`
}

// CreateOutboundRequest orden de salida completa (cabecera + líneas).
type CreateOutboundRequest struct {
	ShippedDate Date                  `json:"shipped_date"`
	Address     string                `json:"address"`
	Lines       []OutboundLineRequest `json:"lines"`
}

// CreateOutboundResponse resultado de crear una orden de salida.
type CreateOutboundResponse struct {
	Success    bool           `json:"success"`
	OutboundID int64          `json:"outbound_id"`
	LineIDs    []int64        `json:"line_ids"`
	Stock      []StockBalance `json:"stock"`
}

// UpdateOutboundOrderRequest body para PUT /api/outbound/{outboundId}.
type UpdateOutboundOrderRequest struct {
	ShippedDate Date   `json:"shipped_date"`
	Address     string `json:"address"`
}

// UpdateOutboundLineRequest body para PUT /api/outbound/detail/{lineId}.
type UpdateOutboundLineRequest struct {
	Quantity *int `json:"quantity"`
}

// UpdateLineResponse resultado de editar una línea de orden.
type UpdateLineResponse struct {
	Success   bool           `json:"success"`
	LineID    int64          `json:"line_id"`
	OrderID   int64          `json:"order_id"`
	ProductID int64          `json:"product_id"`
	Quantity  int            `json:"quantity"`
	Stock     []StockBalance `json:"stock"`
}

// DeleteLineResponse resultado de eliminar una línea; OrderDeleted indica la cascada.
type DeleteLineResponse struct {
	Success      bool           `json:"success"`
	LineID       int64          `json:"line_id"`
	OrderID      int64          `json:"order_id"`
	OrderDeleted bool           `json:"order_deleted"`
	Stock        []StockBalance `json:"stock"`
}

// OrderLineResponse línea de una orden (entrada o salida).
type OrderLineResponse struct {
	LineID      int64  `json:"line_id"`
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

// InboundOrderResponse cabecera de orden de entrada; Lines solo en GET por ID.
type InboundOrderResponse struct {
	InboundID    int64               `json:"inbound_id"`
	WarehouseID  int64               `json:"warehouse_id"`
	Supplier     string              `json:"supplier"`
	ReceivedDate Date                `json:"received_date"`
	Lines        []OrderLineResponse `json:"lines,omitempty"`
}

// OutboundOrderResponse cabecera de orden de salida; Lines solo en GET por ID.
type OutboundOrderResponse struct {
	OutboundID  int64               `json:"outbound_id"`
	WarehouseID int64               `json:"warehouse_id"`
	ShippedDate Date                `json:"shipped_date"`
	Address     string              `json:"address"`
	Lines       []OrderLineResponse `json:"lines,omitempty"`
}
