package repository

import (
	"context"
	"time"

	"github.com/jhoicas/bodegas-api/internal/domain/entity"
)

// OutboundRepository define el puerto de persistencia para órdenes de salida y sus líneas.
type OutboundRepository interface {
	CreateOrder(ctx context.Context, order *entity.OutboundOrder) error
	CreateLine(ctx context.Context, line *entity.OutboundLine) error
	GetOrder(ctx context.Context, id int64) (*entity.OutboundOrder, error)
	ListOrdersByWarehouse(ctx context.Context, warehouseID int64) ([]*entity.OutboundOrder, error)
	ListLines(ctx context.Context, orderID int64) ([]*entity.OutboundLine, error)
	GetLineForUpdate(ctx context.Context, lineID int64) (*entity.OutboundLine, error)
	UpdateLineQuantity(ctx context.Context, lineID int64, quantity int) error
	DeleteLine(ctx context.Context, lineID int64) error
	CountLines(ctx context.Context, orderID int64) (int, error)
	DeleteOrder(ctx context.Context, orderID int64) error
	UpdateHeader(ctx context.Context, orderID int64, shippedDate time.Time, address string) (bool, error)
}
