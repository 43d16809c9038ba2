package inventory

import (
	"context"

	"github.com/jhoicas/bodegas-api/internal/domain/entity"
	"github.com/jhoicas/bodegas-api/internal/domain/repository"
)

// Repositories agrupa los repositorios atados a una misma transacción.
type Repositories struct {
	Warehouses repository.WarehouseRepository
	Products   repository.ProductRepository
	Stock      repository.StockRepository
	Inbound    repository.InboundRepository
	Outbound   repository.OutboundRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Commit si fn retorna nil; Rollback en cualquier otro caso. Garantiza atomicidad para el motor de inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repositories) error) error
}

// AuditNotifier registra eventos de auditoría en modo best-effort.
// Notify no bloquea ni falla: los errores del destino se registran como advertencia y se descartan.
type AuditNotifier interface {
	Notify(ctx context.Context, event entity.AuditEvent)
}
