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

var _ repository.OutboundRepository = (*OutboundRepo)(nil)

// OutboundRepo implementación de OutboundRepository sobre PostgreSQL (usable con pool o tx).
type OutboundRepo struct {
	q Querier
}

// NewOutboundRepository construye el adaptador de órdenes de salida.
func NewOutboundRepository(q Querier) *OutboundRepo {
	return &OutboundRepo{q: q}
}

// CreateOrder inserta la cabecera y asigna order.ID.
func (r *OutboundRepo) CreateOrder(ctx context.Context, order *entity.OutboundOrder) error {
	query := `
		INSERT INTO outbound_orders (warehouse_id, shipped_date, address)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, order.WarehouseID, order.ShippedDate, order.Address).Scan(&order.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: bodega %d", domain.ErrNotFound, order.WarehouseID)
		}
		return fmt.Errorf("insert outbound order: %w", err)
	}
	return nil
}

// CreateLine inserta la línea y asigna line.ID.
func (r *OutboundRepo) CreateLine(ctx context.Context, line *entity.OutboundLine) error {
	query := `
		INSERT INTO outbound_lines (order_id, product_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, line.OrderID, line.ProductID, line.Quantity).Scan(&line.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: orden %d o producto %d", domain.ErrNotFound, line.OrderID, line.ProductID)
		}
		return fmt.Errorf("insert outbound line: %w", err)
	}
	return nil
}

// GetOrder obtiene la cabecera; nil si no existe.
func (r *OutboundRepo) GetOrder(ctx context.Context, id int64) (*entity.OutboundOrder, error) {
	query := `SELECT id, warehouse_id, shipped_date, address FROM outbound_orders WHERE id = $1`
	var o entity.OutboundOrder
	err := r.q.QueryRow(ctx, query, id).Scan(&o.ID, &o.WarehouseID, &o.ShippedDate, &o.Address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get outbound order: %w", err)
	}
	return &o, nil
}

// ListOrdersByWarehouse lista las cabeceras de una bodega.
func (r *OutboundRepo) ListOrdersByWarehouse(ctx context.Context, warehouseID int64) ([]*entity.OutboundOrder, error) {
	query := `
		SELECT id, warehouse_id, shipped_date, address
		FROM outbound_orders WHERE warehouse_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list outbound orders: %w", err)
	}
	defer rows.Close()
	list := []*entity.OutboundOrder{}
	for rows.Next() {
		var o entity.OutboundOrder
		if err := rows.Scan(&o.ID, &o.WarehouseID, &o.ShippedDate, &o.Address); err != nil {
			return nil, fmt.Errorf("scan outbound order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// ListLines lista las líneas de la orden con el nombre del producto.
func (r *OutboundRepo) ListLines(ctx context.Context, orderID int64) ([]*entity.OutboundLine, error) {
	query := `
		SELECT l.id, l.order_id, o.warehouse_id, l.product_id, p.name, l.quantity
		FROM outbound_lines l
		JOIN outbound_orders o ON o.id = l.order_id
		JOIN products p ON p.id = l.product_id
		WHERE l.order_id = $1
		ORDER BY l.id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list outbound lines: %w", err)
	}
	defer rows.Close()
	list := []*entity.OutboundLine{}
	for rows.Next() {
		var l entity.OutboundLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.WarehouseID, &l.ProductID, &l.ProductName, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan outbound line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// GetLineForUpdate obtiene la línea con la bodega de su orden y bloquea la fila de la línea.
func (r *OutboundRepo) GetLineForUpdate(ctx context.Context, lineID int64) (*entity.OutboundLine, error) {
	query := `
		SELECT l.id, l.order_id, o.warehouse_id, l.product_id, p.name, l.quantity
		FROM outbound_lines l
		JOIN outbound_orders o ON o.id = l.order_id
		JOIN products p ON p.id = l.product_id
		WHERE l.id = $1
		FOR UPDATE OF l`
	var l entity.OutboundLine
	err := r.q.QueryRow(ctx, query, lineID).Scan(&l.ID, &l.OrderID, &l.WarehouseID, &l.ProductID, &l.ProductName, &l.Quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get outbound line: %w", err)
	}
	return &l, nil
}

// UpdateLineQuantity cambia la cantidad de la línea.
func (r *OutboundRepo) UpdateLineQuantity(ctx context.Context, lineID int64, quantity int) error {
	cmd, err := r.q.Exec(ctx, `UPDATE outbound_lines SET quantity = $2 WHERE id = $1`, lineID, quantity)
	if err != nil {
		return fmt.Errorf("update outbound line: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: línea de salida %d", domain.ErrNotFound, lineID)
	}
	return nil
}

// DeleteLine elimina la línea.
func (r *OutboundRepo) DeleteLine(ctx context.Context, lineID int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM outbound_lines WHERE id = $1`, lineID)
	if err != nil {
		return fmt.Errorf("delete outbound line: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: línea de salida %d", domain.ErrNotFound, lineID)
	}
	return nil
}

// CountLines cuenta las líneas restantes de la orden.
func (r *OutboundRepo) CountLines(ctx context.Context, orderID int64) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM outbound_lines WHERE order_id = $1`, orderID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count outbound lines: %w", err)
	}
	return n, nil
}

// DeleteOrder elimina la cabecera (las líneas caen por ON DELETE CASCADE).
func (r *OutboundRepo) DeleteOrder(ctx context.Context, orderID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM outbound_orders WHERE id = $1`, orderID); err != nil {
		return fmt.Errorf("delete outbound order: %w", err)
	}
	return nil
}

// UpdateHeader actualiza fecha de despacho y dirección; false si la orden no existe.
func (r *OutboundRepo) UpdateHeader(ctx context.Context, orderID int64, shippedDate time.Time, address string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `UPDATE outbound_orders SET shipped_date = $2, address = $3 WHERE id = $1`,
		orderID, shippedDate, address)
	if err != nil {
		return false, fmt.Errorf("update outbound order: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}
