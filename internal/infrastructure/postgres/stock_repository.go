package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodegas-api/internal/domain"
	"github.com/jhoicas/bodegas-api/internal/domain/entity"
	"github.com/jhoicas/bodegas-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de un producto en una bodega; nil si no hay fila.
func (r *StockRepo) Get(ctx context.Context, warehouseID, productID int64) (*entity.Stock, error) {
	query := `
		SELECT warehouse_id, product_id, quantity, updated_at
		FROM stock WHERE warehouse_id = $1 AND product_id = $2`
	return r.get(ctx, query, warehouseID, productID)
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(ctx context.Context, warehouseID, productID int64) (*entity.Stock, error) {
	query := `
		SELECT warehouse_id, product_id, quantity, updated_at
		FROM stock WHERE warehouse_id = $1 AND product_id = $2
		FOR UPDATE`
	return r.get(ctx, query, warehouseID, productID)
}

func (r *StockRepo) get(ctx context.Context, query string, warehouseID, productID int64) (*entity.Stock, error) {
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, warehouseID, productID).Scan(
		&s.WarehouseID, &s.ProductID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// CreateIfMissing inserta la fila con cantidad 0 si no existe.
func (r *StockRepo) CreateIfMissing(ctx context.Context, warehouseID, productID int64) error {
	query := `
		INSERT INTO stock (warehouse_id, product_id, quantity, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (warehouse_id, product_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, query, warehouseID, productID); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: bodega %d o producto %d", domain.ErrNotFound, warehouseID, productID)
		}
		return fmt.Errorf("create stock: %w", err)
	}
	return nil
}

// UpdateQuantity fija la cantidad de una fila existente.
func (r *StockRepo) UpdateQuantity(ctx context.Context, warehouseID, productID int64, quantity int) error {
	query := `
		UPDATE stock SET quantity = $3, updated_at = now()
		WHERE warehouse_id = $1 AND product_id = $2`
	cmd, err := r.q.Exec(ctx, query, warehouseID, productID, quantity)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: stock bodega %d producto %d", domain.ErrNotFound, warehouseID, productID)
	}
	return nil
}

// Delete elimina la fila de stock.
func (r *StockRepo) Delete(ctx context.Context, warehouseID, productID int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM stock WHERE warehouse_id = $1 AND product_id = $2`, warehouseID, productID)
	if err != nil {
		return fmt.Errorf("delete stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: stock bodega %d producto %d", domain.ErrNotFound, warehouseID, productID)
	}
	return nil
}

// ListByWarehouse lista el stock de la bodega con los datos del producto.
func (r *StockRepo) ListByWarehouse(ctx context.Context, warehouseID int64) ([]*entity.StockItem, error) {
	query := `
		SELECT s.warehouse_id, s.product_id, s.quantity, s.updated_at,
		       p.name, p.size, p.weight, p.price
		FROM stock s
		JOIN products p ON p.id = s.product_id
		WHERE s.warehouse_id = $1
		ORDER BY s.product_id`
	rows, err := r.q.Query(ctx, query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	list := []*entity.StockItem{}
	for rows.Next() {
		var (
			it                  entity.StockItem
			size, weight, price decimal.NullDecimal
		)
		if err := rows.Scan(&it.WarehouseID, &it.ProductID, &it.Quantity, &it.UpdatedAt,
			&it.ProductName, &size, &weight, &price); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		it.Size = toNullable(size)
		it.Weight = toNullable(weight)
		it.Price = toNullable(price)
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Occupancy calcula Σ(cantidad * tamaño) de la bodega; tamaños nulos o negativos cuentan como 0.
func (r *StockRepo) Occupancy(ctx context.Context, warehouseID int64) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(s.quantity * GREATEST(COALESCE(p.size, 0), 0)), 0)
		FROM stock s
		JOIN products p ON p.id = s.product_id
		WHERE s.warehouse_id = $1`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, warehouseID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("stock occupancy: %w", err)
	}
	return total, nil
}
