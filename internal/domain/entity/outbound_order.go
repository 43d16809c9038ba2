package entity

import "time"

// OutboundOrder cabecera de una orden de salida (despacho).
type OutboundOrder struct {
	ID          int64
	WarehouseID int64
	ShippedDate time.Time
	Address     string
	Lines       []OutboundLine
}

// OutboundLine línea de una orden de salida. WarehouseID y ProductName se llenan en lecturas.
type OutboundLine struct {
	ID          int64
	OrderID     int64
	WarehouseID int64
	ProductID   int64
	ProductName string
	Quantity    int
}
