package entity

import "time"

// InboundOrder cabecera de una orden de entrada (recepción de proveedor).
type InboundOrder struct {
	ID           int64
	WarehouseID  int64
	Supplier     string
	ReceivedDate time.Time
	Lines        []InboundLine
}

// InboundLine línea de una orden de entrada. WarehouseID y ProductName se llenan en lecturas.
type InboundLine struct {
	ID          int64
	OrderID     int64
	WarehouseID int64
	ProductID   int64
	ProductName string
	Quantity    int
}
