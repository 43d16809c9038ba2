package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/bodegas-api/internal/application/dto"
	"github.com/jhoicas/bodegas-api/internal/domain"
	"github.com/jhoicas/bodegas-api/internal/domain/entity"
)

// StockUseCase consulta y ajusta directamente el stock de una bodega (PUT/POST/DELETE /api/stock).
type StockUseCase struct {
	txRunner TxRunner
	audit    auditor
}

// NewStockUseCase construye el caso de uso. notifier puede ser nil.
func NewStockUseCase(txRunner TxRunner, notifier AuditNotifier) *StockUseCase {
	return &StockUseCase{txRunner: txRunner, audit: auditor{notifier: notifier}}
}

// List devuelve el stock de la bodega con los datos del producto.
func (uc *StockUseCase) List(ctx context.Context, warehouseID int64) ([]dto.StockItemResponse, error) {
	var items []*entity.StockItem
	err := uc.txRunner.Run(ctx, func(repos Repositories) error {
		var err error
		items, err = repos.Stock.ListByWarehouse(ctx, warehouseID)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.StockItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			LastUpdated: it.UpdatedAt,
			Size:        it.Size,
			Weight:      it.Weight,
			Price:       it.Price,
		})
	}
	return out, nil
}

// SetQuantity fija la cantidad de un producto existente en la bodega, validando capacidad.
func (uc *StockUseCase) SetQuantity(ctx context.Context, actor Actor, warehouseID, productID int64, in dto.SetStockRequest) (*dto.SetStockResponse, error) {
	if err := actor.validate(); err != nil {
		return nil, err
	}
	if in.Quantity == nil {
		return nil, fmt.Errorf("%w: quantity es requerido", domain.ErrInvalidInput)
	}
	newQuantity := *in.Quantity
	if err := checkQuantity(newQuantity, "la cantidad"); err != nil {
		return nil, err
	}

	var oldQuantity int
	err := uc.txRunner.Run(ctx, func(repos Repositories) error {
		var err error
		oldQuantity, err = NewStockLedger(repos).SetQuantity(ctx, warehouseID, productID, newQuantity)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.audit.record(ctx, actor, entity.AuditUpdateStockQuantity, entity.AuditPayload{
		{Key: "warehouseId", Value: warehouseID},
		{Key: "productId", Value: productID},
		{Key: "oldQuantity", Value: oldQuantity},
		{Key: "newQuantity", Value: newQuantity},
	})
	return &dto.SetStockResponse{
		Success:     true,
		WarehouseID: warehouseID,
		ProductID:   productID,
		OldQuantity: oldQuantity,
		NewQuantity: newQuantity,
	}, nil
}

// Initialize resuelve o crea el producto por nombre y suma la cantidad al stock de la bodega
// (creando la fila si no existe), validando capacidad con el volumen agregado.
func (uc *StockUseCase) Initialize(ctx context.Context, actor Actor, warehouseID int64, in dto.InitializeStockRequest) (*dto.InitializeStockResponse, error) {
	if err := actor.validate(); err != nil {
		return nil, err
	}
	if err := checkQuantity(in.Quantity, "la cantidad"); err != nil {
		return nil, err
	}

	var (
		product  *entity.Product
		quantity int
	)
	err := uc.txRunner.Run(ctx, func(repos Repositories) error {
		var err error
		product, err = NewProductCatalog(repos.Products).ResolveOrCreate(ctx, in.ProductName, ProductAttrs{
			Size: in.Size, Weight: in.Weight, Price: in.Price,
		})
		if err != nil {
			return err
		}
		delta := []QuantityDelta{{ProductID: product.ID, Quantity: in.Quantity}}
		if err := NewCapacityOracle(repos).Require(ctx, warehouseID, delta); err != nil {
			return err
		}
		ledger := NewStockLedger(repos)
		if err := ledger.EnsureExists(ctx, warehouseID, product.ID); err != nil {
			return err
		}
		quantity, err = ledger.Adjust(ctx, warehouseID, product.ID, in.Quantity)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.audit.record(ctx, actor, entity.AuditInitializeStock, entity.AuditPayload{
		{Key: "warehouseId", Value: warehouseID},
		{Key: "productId", Value: product.ID},
		{Key: "productName", Value: product.Name},
		{Key: "quantity", Value: in.Quantity},
		{Key: "resultingQuantity", Value: quantity},
		{Key: "size", Value: in.Size},
		{Key: "weight", Value: in.Weight},
		{Key: "price", Value: in.Price},
	})
	return &dto.InitializeStockResponse{
		Success:     true,
		WarehouseID: warehouseID,
		ProductID:   product.ID,
		Quantity:    quantity,
	}, nil
}

// Delete elimina la fila de stock; falla con Conflict si la cantidad no es 0.
func (uc *StockUseCase) Delete(ctx context.Context, actor Actor, warehouseID, productID int64) error {
	if err := actor.validate(); err != nil {
		return err
	}
	err := uc.txRunner.Run(ctx, func(repos Repositories) error {
		return NewStockLedger(repos).Delete(ctx, warehouseID, productID)
	})
	if err != nil {
		return err
	}
	uc.audit.record(ctx, actor, entity.AuditStockDelete, entity.AuditPayload{
		{Key: "warehouseId", Value: warehouseID},
		{Key: "productId", Value: productID},
	})
	return nil
}
