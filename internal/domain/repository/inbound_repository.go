package repository

import (
	"context"
	"time"

	"github.com/jhoicas/bodegas-api/internal/domain/entity"
)

// InboundRepository define el puerto de persistencia para órdenes de entrada y sus líneas.
type InboundRepository interface {
	// CreateOrder inserta la cabecera y asigna order.ID.
	CreateOrder(ctx context.Context, order *entity.InboundOrder) error
	// CreateLine inserta la línea y asigna line.ID.
	CreateLine(ctx context.Context, line *entity.InboundLine) error
	GetOrder(ctx context.Context, id int64) (*entity.InboundOrder, error)
	ListOrdersByWarehouse(ctx context.Context, warehouseID int64) ([]*entity.InboundOrder, error)
	ListLines(ctx context.Context, orderID int64) ([]*entity.InboundLine, error)
	// GetLineForUpdate obtiene la línea con la bodega de su orden y la bloquea.
	GetLineForUpdate(ctx context.Context, lineID int64) (*entity.InboundLine, error)
	UpdateLine(ctx context.Context, lineID, productID int64, quantity int) error
	DeleteLine(ctx context.Context, lineID int64) error
	CountLines(ctx context.Context, orderID int64) (int, error)
	DeleteOrder(ctx context.Context, orderID int64) error
	// UpdateHeader devuelve false si la orden no existe.
	UpdateHeader(ctx context.Context, orderID int64, supplier string, receivedDate time.Time) (bool, error)
}
