package repository

import (
	"context"

	"github.com/jhoicas/bodegas-api/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Warehouse, error)
	// GetForUpdate bloquea la fila de la bodega (SELECT FOR UPDATE) para serializar
	// las verificaciones de capacidad sobre la misma bodega.
	GetForUpdate(ctx context.Context, id int64) (*entity.Warehouse, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]*entity.Warehouse, error)
}
