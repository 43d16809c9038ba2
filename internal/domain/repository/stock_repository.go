package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodegas-api/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar stock por bodega+producto.
// Usado dentro de transacciones para garantizar consistencia. Las lecturas devuelven nil sin error
// cuando la fila no existe.
type StockRepository interface {
	Get(ctx context.Context, warehouseID, productID int64) (*entity.Stock, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, warehouseID, productID int64) (*entity.Stock, error)
	// CreateIfMissing crea la fila con cantidad 0 si no existe.
	CreateIfMissing(ctx context.Context, warehouseID, productID int64) error
	UpdateQuantity(ctx context.Context, warehouseID, productID int64, quantity int) error
	Delete(ctx context.Context, warehouseID, productID int64) error
	ListByWarehouse(ctx context.Context, warehouseID int64) ([]*entity.StockItem, error)
	// Occupancy devuelve Σ(cantidad * tamaño) de la bodega (tamaño nulo = 0).
	Occupancy(ctx context.Context, warehouseID int64) (decimal.Decimal, error)
}
