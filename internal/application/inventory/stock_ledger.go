package inventory

import (
	"context"
	"fmt"
	"math"

	"github.com/jhoicas/bodegas-api/internal/domain"
	"github.com/jhoicas/bodegas-api/internal/domain/repository"
)

// MaxQuantity es la mayor cantidad representable en una fila de stock o en una línea de orden
// (columnas INTEGER de PostgreSQL).
const MaxQuantity = math.MaxInt32

// checkQuantity rechaza cantidades negativas o por encima de MaxQuantity.
func checkQuantity(q int, what string) error {
	if q < 0 {
		return fmt.Errorf("%w: %s no puede ser negativa (%d)", domain.ErrInvalidInput, what, q)
	}
	if q > MaxQuantity {
		return fmt.Errorf("%w: %s %d supera el máximo permitido %d", domain.ErrInvalidInput, what, q, MaxQuantity)
	}
	return nil
}

// StockLedger es el único escritor de la cantidad disponible por (bodega, producto).
// Todas sus operaciones corren dentro de la transacción de los repositorios recibidos.
type StockLedger struct {
	stock    repository.StockRepository
	products repository.ProductRepository
	oracle   *CapacityOracle
}

// NewStockLedger construye el libro de stock con los repositorios de la tx.
func NewStockLedger(repos Repositories) *StockLedger {
	return &StockLedger{stock: repos.Stock, products: repos.Products, oracle: NewCapacityOracle(repos)}
}

// Balance bloquea la fila y devuelve la cantidad actual; exists=false si la fila no existe.
func (l *StockLedger) Balance(ctx context.Context, warehouseID, productID int64) (quantity int, exists bool, err error) {
	s, err := l.stock.GetForUpdate(ctx, warehouseID, productID)
	if err != nil {
		return 0, false, err
	}
	if s == nil {
		return 0, false, nil
	}
	return s.Quantity, true, nil
}

// SetQuantity fija la cantidad absoluta y devuelve la anterior. Bloquea la bodega antes que la fila.
// Si el producto tiene tamaño positivo y la cantidad cambia, valida la capacidad con delta (nueva - anterior).
func (l *StockLedger) SetQuantity(ctx context.Context, warehouseID, productID int64, newQuantity int) (int, error) {
	if err := checkQuantity(newQuantity, "la cantidad"); err != nil {
		return 0, err
	}
	if _, err := l.oracle.Lock(ctx, warehouseID); err != nil {
		return 0, err
	}
	s, err := l.stock.GetForUpdate(ctx, warehouseID, productID)
	if err != nil {
		return 0, err
	}
	if s == nil {
		return 0, fmt.Errorf("%w: no hay stock del producto %d en la bodega %d", domain.ErrNotFound, productID, warehouseID)
	}
	oldQuantity := s.Quantity
	if newQuantity == oldQuantity {
		return oldQuantity, nil
	}
	product, err := l.products.GetByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, fmt.Errorf("%w: producto %d", domain.ErrNotFound, productID)
	}
	if product.Size != nil && product.Size.IsPositive() {
		delta := []QuantityDelta{{ProductID: productID, Quantity: newQuantity - oldQuantity}}
		if err := l.oracle.Require(ctx, warehouseID, delta); err != nil {
			return 0, err
		}
	}
	if err := l.stock.UpdateQuantity(ctx, warehouseID, productID, newQuantity); err != nil {
		return 0, err
	}
	return oldQuantity, nil
}

// Adjust suma delta a la cantidad y devuelve la nueva. No valida capacidad: el caller la valida
// una sola vez con el delta agregado antes de aplicar las líneas, y con ello ya bloqueó la bodega.
// La fila debe existir (EnsureExists). El resultado no puede superar MaxQuantity.
func (l *StockLedger) Adjust(ctx context.Context, warehouseID, productID int64, delta int) (int, error) {
	s, err := l.stock.GetForUpdate(ctx, warehouseID, productID)
	if err != nil {
		return 0, err
	}
	if s == nil {
		return 0, fmt.Errorf("%w: no hay stock del producto %d en la bodega %d", domain.ErrNotFound, productID, warehouseID)
	}
	next := s.Quantity + delta
	if next < 0 {
		return 0, fmt.Errorf("%w: el stock del producto %d quedaría en %d", domain.ErrInvalidInput, productID, next)
	}
	if next > MaxQuantity {
		return 0, fmt.Errorf("%w: el stock del producto %d quedaría en %d, el máximo es %d",
			domain.ErrInvalidInput, productID, next, MaxQuantity)
	}
	if delta == 0 {
		return next, nil
	}
	if err := l.stock.UpdateQuantity(ctx, warehouseID, productID, next); err != nil {
		return 0, err
	}
	return next, nil
}

// EnsureExists crea la fila con cantidad 0 si no existe.
func (l *StockLedger) EnsureExists(ctx context.Context, warehouseID, productID int64) error {
	return l.stock.CreateIfMissing(ctx, warehouseID, productID)
}

// Delete elimina la fila; solo se permite con cantidad 0.
func (l *StockLedger) Delete(ctx context.Context, warehouseID, productID int64) error {
	if _, err := l.oracle.Lock(ctx, warehouseID); err != nil {
		return err
	}
	s, err := l.stock.GetForUpdate(ctx, warehouseID, productID)
	if err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("%w: el producto %d no existe en el stock de la bodega %d", domain.ErrNotFound, productID, warehouseID)
	}
	if s.Quantity != 0 {
		return fmt.Errorf("%w: el producto %d aún tiene %d unidades, ajuste la cantidad a 0 antes de eliminar",
			domain.ErrConflict, productID, s.Quantity)
	}
	return l.stock.Delete(ctx, warehouseID, productID)
}
