package inventory

import "github.com/shopspring/decimal"

// Volume calcula el volumen ocupado por quantity unidades de tamaño size (servicio de dominio).
// Un size nil o no positivo cuenta como 0.
func Volume(quantity int, size *decimal.Decimal) decimal.Decimal {
	if size == nil || !size.IsPositive() {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(quantity)).Mul(*size)
}

// Projection resultado de proyectar la ocupación de una bodega tras un cambio.
type Projection struct {
	Capacity  *decimal.Decimal // nil = ilimitada
	Current   decimal.Decimal
	Delta     decimal.Decimal
	Projected decimal.Decimal
}

// Fits indica si la ocupación proyectada cabe en la capacidad declarada.
func (p Projection) Fits() bool {
	return p.Capacity == nil || p.Projected.LessThanOrEqual(*p.Capacity)
}

// Project calcula Projected = Current + Delta. Delta puede ser negativo (reversión de líneas).
func Project(capacity *decimal.Decimal, current, delta decimal.Decimal) Projection {
	return Projection{
		Capacity:  capacity,
		Current:   current,
		Delta:     delta,
		Projected: current.Add(delta),
	}
}
