package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/bodegas-api/internal/application/dto"
	"github.com/jhoicas/bodegas-api/internal/domain"
	"github.com/jhoicas/bodegas-api/internal/domain/entity"
	"github.com/jhoicas/bodegas-api/internal/domain/repository"
	"github.com/jhoicas/bodegas-api/pkg/logger"
)

// WarehouseCache caché opcional de bodegas por empleado. Las bodegas no cambian desde la API.
type WarehouseCache interface {
	Get(ctx context.Context, employeeID int64) ([]dto.WarehouseResponse, bool, error)
	Set(ctx context.Context, employeeID int64, list []dto.WarehouseResponse) error
}

// WarehouseUseCase resuelve las bodegas asignadas a un empleado.
type WarehouseUseCase struct {
	repo  repository.WarehouseRepository
	cache WarehouseCache
	log   *logger.Logger
}

// NewWarehouseUseCase construye el caso de uso. cache puede ser nil.
func NewWarehouseUseCase(repo repository.WarehouseRepository, cache WarehouseCache, log *logger.Logger) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, cache: cache, log: log}
}

// ListByEmployee devuelve las bodegas del empleado (lista vacía si no tiene).
// Un fallo de la caché se registra y se consulta directamente el repositorio.
func (uc *WarehouseUseCase) ListByEmployee(ctx context.Context, employeeID int64) ([]dto.WarehouseResponse, error) {
	if employeeID <= 0 {
		return nil, fmt.Errorf("%w: empId inválido", domain.ErrInvalidInput)
	}
	if uc.cache != nil {
		list, ok, err := uc.cache.Get(ctx, employeeID)
		if err != nil {
			uc.log.Warn().Err(err).Int64("employee_id", employeeID).Msg("caché de bodegas no disponible")
		} else if ok {
			return list, nil
		}
	}

	warehouses, err := uc.repo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarehouseResponse, 0, len(warehouses))
	for _, w := range warehouses {
		out = append(out, toWarehouseResponse(w))
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, employeeID, out); err != nil {
			uc.log.Warn().Err(err).Int64("employee_id", employeeID).Msg("no se pudo guardar en caché")
		}
	}
	return out, nil
}

func toWarehouseResponse(w *entity.Warehouse) dto.WarehouseResponse {
	return dto.WarehouseResponse{ID: w.ID, Name: w.Name, Capacity: w.Capacity}
}
