package dto

import "github.com/shopspring/decimal"

// WarehouseResponse salida de una bodega. Capacity nil = ilimitada.
type WarehouseResponse struct {
	ID       int64            `json:"id"`
	Name     string           `json:"name"`
	Capacity *decimal.Decimal `json:"capacity"`
}
