package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa la cantidad disponible de un producto en una bodega.
// Quantity nunca es negativa.
type Stock struct {
	WarehouseID int64
	ProductID   int64
	Quantity    int
	UpdatedAt   time.Time
}

// StockItem es la vista de Stock unida con los datos del producto (listado por bodega).
type StockItem struct {
	Stock
	ProductName string
	Size        *decimal.Decimal
	Weight      *decimal.Decimal
	Price       *decimal.Decimal
}
