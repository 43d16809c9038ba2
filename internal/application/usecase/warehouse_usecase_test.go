package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodegas-api/internal/application/dto"
	"github.com/jhoicas/bodegas-api/internal/application/usecase"
	"github.com/jhoicas/bodegas-api/internal/domain"
	"github.com/jhoicas/bodegas-api/internal/infrastructure/memory"
	"github.com/jhoicas/bodegas-api/pkg/logger"
)

type mapCache struct {
	data   map[int64][]dto.WarehouseResponse
	getErr error
	sets   int
}

func (c *mapCache) Get(_ context.Context, id int64) ([]dto.WarehouseResponse, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	l, ok := c.data[id]
	return l, ok, nil
}

func (c *mapCache) Set(_ context.Context, id int64, l []dto.WarehouseResponse) error {
	c.sets++
	c.data[id] = l
	return nil
}

func TestWarehouseUseCase_ListByEmployee(t *testing.T) {
	s := memory.NewStore()
	capacity := decimal.NewFromInt(100)
	s.AddWarehouse(3, "Norte", &capacity)
	s.AddWarehouse(3, "Sur", nil)
	cache := &mapCache{data: map[int64][]dto.WarehouseResponse{}}
	uc := usecase.NewWarehouseUseCase(s.Warehouses(), cache, logger.Nop())

	list, err := uc.ListByEmployee(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Norte", list[0].Name)
	assert.True(t, list[0].Capacity.Equal(capacity))
	assert.Nil(t, list[1].Capacity)
	assert.Equal(t, 1, cache.sets)

	_, err = uc.ListByEmployee(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets, "la segunda lectura sale de la caché")
}

func TestWarehouseUseCase_SinBodegasListaVacia(t *testing.T) {
	uc := usecase.NewWarehouseUseCase(memory.NewStore().Warehouses(), nil, logger.Nop())

	list, err := uc.ListByEmployee(context.Background(), 42)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	_, err = uc.ListByEmployee(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWarehouseUseCase_FalloDeCacheNoFalla(t *testing.T) {
	s := memory.NewStore()
	s.AddWarehouse(1, "Central", nil)
	cache := &mapCache{data: map[int64][]dto.WarehouseResponse{}, getErr: errors.New("redis caído")}
	uc := usecase.NewWarehouseUseCase(s.Warehouses(), cache, logger.Nop())

	list, err := uc.ListByEmployee(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
