package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bodegas-api/internal/domain"
	"github.com/jhoicas/bodegas-api/internal/domain/entity"
	"github.com/jhoicas/bodegas-api/internal/domain/repository"
)

var _ repository.InboundRepository = (*InboundRepo)(nil)

// InboundRepo implementación de InboundRepository sobre PostgreSQL (usable con pool o tx).
type InboundRepo struct {
	q Querier
}

// NewInboundRepository construye el adaptador de órdenes de entrada.
func NewInboundRepository(q Querier) *InboundRepo {
	return &InboundRepo{q: q}
}

// CreateOrder inserta la cabecera y asigna order.ID.
func (r *InboundRepo) CreateOrder(ctx context.Context, order *entity.InboundOrder) error {
	query := `
		INSERT INTO inbound_orders (warehouse_id, supplier, received_date)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, order.WarehouseID, order.Supplier, order.ReceivedDate).Scan(&order.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: bodega %d", domain.ErrNotFound, order.WarehouseID)
		}
		return fmt.Errorf("insert inbound order: %w", err)
	}
	return nil
}

// CreateLine inserta la línea y asigna line.ID.
func (r *InboundRepo) CreateLine(ctx context.Context, line *entity.InboundLine) error {
	query := `
		INSERT INTO inbound_lines (order_id, product_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, line.OrderID, line.ProductID, line.Quantity).Scan(&line.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: orden %d o producto %d", domain.ErrNotFound, line.OrderID, line.ProductID)
		}
		return fmt.Errorf("insert inbound line: %w", err)
	}
	return nil
}

// GetOrder obtiene la cabecera; nil si no existe.
func (r *InboundRepo) GetOrder(ctx context.Context, id int64) (*entity.InboundOrder, error) {
	query := `SELECT id, warehouse_id, supplier, received_date FROM inbound_orders WHERE id = $1`
	var o entity.InboundOrder
	err := r.q.QueryRow(ctx, query, id).Scan(&o.ID, &o.WarehouseID, &o.Supplier, &o.ReceivedDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inbound order: %w", err)
	}
	return &o, nil
}

// ListOrdersByWarehouse lista las cabeceras de una bodega.
func (r *InboundRepo) ListOrdersByWarehouse(ctx context.Context, warehouseID int64) ([]*entity.InboundOrder, error) {
	query := `
		SELECT id, warehouse_id, supplier, received_date
		FROM inbound_orders WHERE warehouse_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list inbound orders: %w", err)
	}
	defer rows.Close()
	list := []*entity.InboundOrder{}
	for rows.Next() {
		var o entity.InboundOrder
		if err := rows.Scan(&o.ID, &o.WarehouseID, &o.Supplier, &o.ReceivedDate); err != nil {
			return nil, fmt.Errorf("scan inbound order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// ListLines lista las líneas de la orden con el nombre del producto.
func (r *InboundRepo) ListLines(ctx context.Context, orderID int64) ([]*entity.InboundLine, error) {
	query := `
		SELECT l.id, l.order_id, o.warehouse_id, l.product_id, p.name, l.quantity
		FROM inbound_lines l
		JOIN inbound_orders o ON o.id = l.order_id
		JOIN products p ON p.id = l.product_id
		WHERE l.order_id = $1
		ORDER BY l.id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list inbound lines: %w", err)
	}
	defer rows.Close()
	list := []*entity.InboundLine{}
	for rows.Next() {
		var l entity.InboundLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.WarehouseID, &l.ProductID, &l.ProductName, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan inbound line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// GetLineForUpdate obtiene la línea con la bodega de su orden y bloquea la fila de la línea.
func (r *InboundRepo) GetLineForUpdate(ctx context.Context, lineID int64) (*entity.InboundLine, error) {
	query := `
		SELECT l.id, l.order_id, o.warehouse_id, l.product_id, p.name, l.quantity
		FROM inbound_lines l
		JOIN inbound_orders o ON o.id = l.order_id
		JOIN products p ON p.id = l.product_id
		WHERE l.id = $1
		FOR UPDATE OF l`
	var l entity.InboundLine
	err := r.q.QueryRow(ctx, query, lineID).Scan(&l.ID, &l.OrderID, &l.WarehouseID, &l.ProductID, &l.ProductName, &l.Quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inbound line: %w", err)
	}
	return &l, nil
}

// UpdateLine cambia producto y cantidad de la línea.
func (r *InboundRepo) UpdateLine(ctx context.Context, lineID, productID int64, quantity int) error {
	cmd, err := r.q.Exec(ctx, `UPDATE inbound_lines SET product_id = $2, quantity = $3 WHERE id = $1`,
		lineID, productID, quantity)
	if err != nil {
		return fmt.Errorf("update inbound line: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: línea de entrada %d", domain.ErrNotFound, lineID)
	}
	return nil
}

// DeleteLine elimina la línea.
func (r *InboundRepo) DeleteLine(ctx context.Context, lineID int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM inbound_lines WHERE id = $1`, lineID)
	if err != nil {
		return fmt.Errorf("delete inbound line: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: línea de entrada %d", domain.ErrNotFound, lineID)
	}
	return nil
}

// CountLines cuenta las líneas restantes de la orden.
func (r *InboundRepo) CountLines(ctx context.Context, orderID int64) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM inbound_lines WHERE order_id = $1`, orderID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count inbound lines: %w", err)
	}
	return n, nil
}

// DeleteOrder elimina la cabecera (las líneas caen por ON DELETE CASCADE).
func (r *InboundRepo) DeleteOrder(ctx context.Context, orderID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM inbound_orders WHERE id = $1`, orderID); err != nil {
		return fmt.Errorf("delete inbound order: %w", err)
	}
	return nil
}

// UpdateHeader actualiza proveedor y fecha; false si la orden no existe.
func (r *InboundRepo) UpdateHeader(ctx context.Context, orderID int64, supplier string, receivedDate time.Time) (bool, error) {
	cmd, err := r.q.Exec(ctx, `UPDATE inbound_orders SET supplier = $2, received_date = $3 WHERE id = $1`,
		orderID, supplier, receivedDate)
	if err != nil {
		return false, fmt.Errorf("update inbound order: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}
