package entity

import "github.com/shopspring/decimal"

// Warehouse representa una bodega asignada a un empleado.
// Capacity nil significa capacidad ilimitada; ninguna operación del motor la modifica.
type Warehouse struct {
	ID         int64
	EmployeeID int64
	Name       string
	Capacity   *decimal.Decimal
}
