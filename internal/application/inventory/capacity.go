package inventory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodegas-api/internal/domain"
	"github.com/jhoicas/bodegas-api/internal/domain/entity"
	"github.com/jhoicas/bodegas-api/internal/domain/inventory"
	"github.com/jhoicas/bodegas-api/internal/domain/repository"
)

// QuantityDelta variación de cantidad propuesta para un producto (negativa al revertir).
type QuantityDelta struct {
	ProductID int64
	Quantity  int
}

// CapacityOracle proyecta la ocupación de una bodega dentro de la transacción en curso.
//
// Orden de bloqueo: línea de orden, luego bodega, luego filas de stock. Toda mutación que toque
// stock bloquea la bodega con Lock (o Require) antes del primer GetForUpdate de stock.
type CapacityOracle struct {
	warehouses repository.WarehouseRepository
	products   repository.ProductRepository
	stock      repository.StockRepository
}

// NewCapacityOracle construye el oráculo con los repositorios de la tx.
func NewCapacityOracle(repos Repositories) *CapacityOracle {
	return &CapacityOracle{warehouses: repos.Warehouses, products: repos.Products, stock: repos.Stock}
}

// Lock bloquea la fila de la bodega hasta el fin de la transacción; NotFound si no existe.
func (o *CapacityOracle) Lock(ctx context.Context, warehouseID int64) (*entity.Warehouse, error) {
	wh, err := o.warehouses.GetForUpdate(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, fmt.Errorf("%w: bodega %d", domain.ErrNotFound, warehouseID)
	}
	return wh, nil
}

// ProjectAndCheck bloquea la bodega, calcula la ocupación actual Σ(cantidad*tamaño) y le suma
// el volumen de los deltas propuestos. Projection.Fits() indica si cabe en la capacidad.
func (o *CapacityOracle) ProjectAndCheck(ctx context.Context, warehouseID int64, deltas []QuantityDelta) (inventory.Projection, error) {
	wh, err := o.Lock(ctx, warehouseID)
	if err != nil {
		return inventory.Projection{}, err
	}
	current, err := o.stock.Occupancy(ctx, warehouseID)
	if err != nil {
		return inventory.Projection{}, err
	}
	delta, err := o.volumeOf(ctx, deltas)
	if err != nil {
		return inventory.Projection{}, err
	}
	return inventory.Project(wh.Capacity, current, delta), nil
}

// Require rechaza con ErrCapacityExceeded cuando la proyección no cabe en la capacidad.
// Un cambio que reduce el volumen se acepta aunque la bodega ya esté sobre su capacidad.
func (o *CapacityOracle) Require(ctx context.Context, warehouseID int64, deltas []QuantityDelta) error {
	p, err := o.ProjectAndCheck(ctx, warehouseID, deltas)
	if err != nil {
		return err
	}
	if !p.Fits() && !p.Delta.IsNegative() {
		return fmt.Errorf("%w: bodega %d, ocupación actual %s + %s = %s supera la capacidad %s",
			domain.ErrCapacityExceeded, warehouseID,
			p.Current.String(), p.Delta.String(), p.Projected.String(), p.Capacity.String())
	}
	return nil
}

func (o *CapacityOracle) volumeOf(ctx context.Context, deltas []QuantityDelta) (decimal.Decimal, error) {
	sizes := make(map[int64]*decimal.Decimal, len(deltas))
	total := decimal.Zero
	for _, d := range deltas {
		if d.Quantity == 0 {
			continue
		}
		size, ok := sizes[d.ProductID]
		if !ok {
			p, err := o.products.GetByID(ctx, d.ProductID)
			if err != nil {
				return decimal.Zero, err
			}
			if p == nil {
				return decimal.Zero, fmt.Errorf("%w: producto %d", domain.ErrNotFound, d.ProductID)
			}
			size = p.Size
			sizes[d.ProductID] = size
		}
		total = total.Add(inventory.Volume(d.Quantity, size))
	}
	return total, nil
}
