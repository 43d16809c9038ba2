package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItemResponse fila de GET /api/stock/{warehouseId}.
type StockItemResponse struct {
	ProductID   int64            `json:"product_id"`
	ProductName string           `json:"product_name"`
	Quantity    int              `json:"quantity"`
	LastUpdated time.Time        `json:"last_updated"`
	Size        *decimal.Decimal `json:"size"`
	Weight      *decimal.Decimal `json:"weight"`
	Price       *decimal.Decimal `json:"price"`
}

// SetStockRequest body para PUT /api/stock/{warehouseId}/{productId}.
type SetStockRequest struct {
	Quantity *int `json:"quantity"`
}

// SetStockResponse resultado de fijar la cantidad.
type SetStockResponse struct {
	Success     bool  `json:"success"`
	WarehouseID int64 `json:"warehouse_id"`
	ProductID   int64 `json:"product_id"`
	OldQuantity int   `json:"old_quantity"`
	NewQuantity int   `json:"new_quantity"`
}

// InitializeStockRequest body para POST /api/stock/initialize/{warehouseId}.
type InitializeStockRequest struct {
	ProductName string           `json:"product_name"`
	Quantity    int              `json:"quantity"`
	Size        *decimal.Decimal `json:"size,omitempty"`
	Weight      *decimal.Decimal `json:"weight,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

// InitializeStockResponse resultado de inicializar/reponer un producto.
type InitializeStockResponse struct {
	Success     bool  `json:"success"`
	WarehouseID int64 `json:"warehouse_id"`
	ProductID   int64 `json:"product_id"`
	Quantity    int   `json:"quantity"`
}
