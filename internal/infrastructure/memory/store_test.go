package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodegas-api/internal/application/inventory"
	"github.com/jhoicas/bodegas-api/internal/domain"
	"github.com/jhoicas/bodegas-api/internal/domain/entity"
	"github.com/jhoicas/bodegas-api/internal/infrastructure/memory"
)

func TestStore_RunCommitPublicaCambios(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	wh := s.AddWarehouse(1, "Central", nil)
	p := s.AddProduct("Caja", nil)

	err := s.Run(ctx, func(repos inventory.Repositories) error {
		if err := repos.Stock.CreateIfMissing(ctx, wh.ID, p.ID); err != nil {
			return err
		}
		return repos.Stock.UpdateQuantity(ctx, wh.ID, p.ID, 7)
	})
	require.NoError(t, err)

	qty, ok := s.Quantity(wh.ID, p.ID)
	assert.True(t, ok)
	assert.Equal(t, 7, qty)
}

func TestStore_RunErrorDescartaCambios(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	wh := s.AddWarehouse(1, "Central", nil)
	s.SetStock(wh.ID, s.AddProduct("Caja", nil).ID, 3)

	boom := errors.New("boom")
	err := s.Run(ctx, func(repos inventory.Repositories) error {
		if err := repos.Stock.UpdateQuantity(ctx, wh.ID, 1, 99); err != nil {
			return err
		}
		if err := repos.Products.Create(ctx, &entity.Product{Name: "Nuevo"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	qty, _ := s.Quantity(wh.ID, 1)
	assert.Equal(t, 3, qty)
	err = s.Run(ctx, func(repos inventory.Repositories) error {
		p, err := repos.Products.GetByName(ctx, "Nuevo")
		assert.Nil(t, p)
		return err
	})
	require.NoError(t, err)
}

func TestStore_RunContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := memory.NewStore().Run(ctx, func(inventory.Repositories) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestProductRepo_NombreDuplicado(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	s.AddProduct("Caja", nil)

	err := s.Run(ctx, func(repos inventory.Repositories) error {
		return repos.Products.Create(ctx, &entity.Product{Name: "caja"})
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestStockRepo_OcupacionIgnoraTamañoNulo(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	wh := s.AddWarehouse(1, "Central", nil)
	size := decimal.NewFromFloat(2.5)
	a := s.AddProduct("A", &size)
	b := s.AddProduct("B", nil)
	s.SetStock(wh.ID, a.ID, 4)
	s.SetStock(wh.ID, b.ID, 100)

	var occ decimal.Decimal
	err := s.Run(ctx, func(repos inventory.Repositories) error {
		var err error
		occ, err = repos.Stock.Occupancy(ctx, wh.ID)
		return err
	})
	require.NoError(t, err)
	assert.True(t, occ.Equal(decimal.NewFromInt(10)), occ.String())
}

func TestInboundRepo_LineasConBodegaYNombre(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	wh := s.AddWarehouse(1, "Central", nil)
	p := s.AddProduct("Caja", nil)

	err := s.Run(ctx, func(repos inventory.Repositories) error {
		o := &entity.InboundOrder{WarehouseID: wh.ID, Supplier: "ACME"}
		require.NoError(t, repos.Inbound.CreateOrder(ctx, o))
		l := &entity.InboundLine{OrderID: o.ID, ProductID: p.ID, Quantity: 2}
		require.NoError(t, repos.Inbound.CreateLine(ctx, l))

		got, err := repos.Inbound.GetLineForUpdate(ctx, l.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, wh.ID, got.WarehouseID)
		assert.Equal(t, "Caja", got.ProductName)

		missing, err := repos.Inbound.GetLineForUpdate(ctx, 999)
		assert.Nil(t, missing)
		return err
	})
	require.NoError(t, err)
}

func TestWarehouses_ListByEmployee(t *testing.T) {
	s := memory.NewStore()
	s.AddWarehouse(1, "A", nil)
	s.AddWarehouse(2, "B", nil)
	s.AddWarehouse(1, "C", nil)

	list, err := s.Warehouses().ListByEmployee(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].Name)
	assert.Equal(t, "C", list[1].Name)

	empty, err := s.Warehouses().ListByEmployee(context.Background(), 9)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
