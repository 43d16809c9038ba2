package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodegas-api/internal/infrastructure/memory"
	"github.com/jhoicas/bodegas-api/internal/infrastructure/seed"
)

func TestLoadMemory_CargaBodegasYStock(t *testing.T) {
	store := memory.NewStore()
	ds := seed.Demo()
	require.NoError(t, seed.LoadMemory(store, ds))

	list, err := store.Warehouses().ListByEmployee(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	for _, s := range ds.Stock {
		q, ok := store.Quantity(s.WarehouseID, s.ProductID)
		require.True(t, ok)
		assert.Equal(t, s.Quantity, q)
	}
}

func TestLoadMemory_StoreNoVacioFalla(t *testing.T) {
	store := memory.NewStore()
	store.AddWarehouse(9, "previa", nil)
	assert.Error(t, seed.LoadMemory(store, seed.Demo()))
}

// Cada bodega con capacidad debe empezar dentro de su límite.
func TestDemo_DentroDeCapacidad(t *testing.T) {
	ds := seed.Demo()
	sizes := map[int64]float64{}
	for _, p := range ds.Products {
		if p.Size != nil {
			sizes[p.ID] = p.Size.InexactFloat64()
		}
	}
	used := map[int64]float64{}
	for _, s := range ds.Stock {
		used[s.WarehouseID] += float64(s.Quantity) * sizes[s.ProductID]
	}
	for _, w := range ds.Warehouses {
		if w.Capacity == nil {
			continue
		}
		assert.LessOrEqual(t, used[w.ID], w.Capacity.InexactFloat64(), w.Name)
	}
}
