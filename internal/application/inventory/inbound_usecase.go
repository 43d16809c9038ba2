package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/bodegas-api/internal/application/dto"
	"github.com/jhoicas/bodegas-api/internal/domain"
	"github.com/jhoicas/bodegas-api/internal/domain/entity"
)

// InboundUseCase crea, edita y elimina órdenes de entrada; cada línea suma al stock de la bodega.
type InboundUseCase struct {
	txRunner TxRunner
	audit    auditor
}

// NewInboundUseCase construye el caso de uso. notifier puede ser nil.
func NewInboundUseCase(txRunner TxRunner, notifier AuditNotifier) *InboundUseCase {
	return &InboundUseCase{txRunner: txRunner, audit: auditor{notifier: notifier}}
}

// CreateFull crea la cabecera y todas sus líneas en una sola transacción.
// La capacidad se valida una vez con el volumen agregado de todas las líneas: o se aplica todo o nada.
func (uc *InboundUseCase) CreateFull(ctx context.Context, actor Actor, warehouseID int64, in dto.CreateInboundRequest) (*dto.CreateInboundResponse, error) {
	if err := actor.validate(); err != nil {
		return nil, err
	}
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("%w: la orden requiere al menos una línea", domain.ErrInvalidInput)
	}
	for i, l := range in.Lines {
		if err := checkQuantity(l.Quantity, fmt.Sprintf("línea %d: la cantidad de entrada", i+1)); err != nil {
			return nil, err
		}
		if l.ProductID <= 0 && l.ProductName == "" {
			return nil, fmt.Errorf("%w: línea %d: se requiere product_id o product_name", domain.ErrInvalidInput, i+1)
		}
	}

	out := &dto.CreateInboundResponse{Success: true}
	productIDs := make([]int64, len(in.Lines))
	date := dateOrToday(in.ReceivedDate)
	err := uc.txRunner.Run(ctx, func(repos Repositories) error {
		catalog := NewProductCatalog(repos.Products)
		ledger := NewStockLedger(repos)

		// 1) Resolver/crear productos
		products := make([]*entity.Product, len(in.Lines))
		deltas := make([]QuantityDelta, len(in.Lines))
		for i, l := range in.Lines {
			p, err := catalog.ResolveForInbound(ctx, l.ProductID, l.ProductName, ProductAttrs{
				Size: l.Size, Weight: l.Weight, Price: l.Price,
			})
			if err != nil {
				return fmt.Errorf("línea %d: %w", i+1, err)
			}
			products[i] = p
			productIDs[i] = p.ID
			deltas[i] = QuantityDelta{ProductID: p.ID, Quantity: l.Quantity}
		}

		// 2) Capacidad con el delta agregado
		if err := NewCapacityOracle(repos).Require(ctx, warehouseID, deltas); err != nil {
			return err
		}

		// 3) Cabecera, líneas y stock
		order := &entity.InboundOrder{
			WarehouseID:  warehouseID,
			Supplier:     in.Supplier,
			ReceivedDate: date,
		}
		if err := repos.Inbound.CreateOrder(ctx, order); err != nil {
			return err
		}
		bal := newBalances()
		for i, l := range in.Lines {
			line := &entity.InboundLine{OrderID: order.ID, ProductID: products[i].ID, Quantity: l.Quantity}
			if err := repos.Inbound.CreateLine(ctx, line); err != nil {
				return err
			}
			if err := ledger.EnsureExists(ctx, warehouseID, line.ProductID); err != nil {
				return err
			}
			qty, err := ledger.Adjust(ctx, warehouseID, line.ProductID, l.Quantity)
			if err != nil {
				return err
			}
			bal.set(line.ProductID, qty)
			out.LineIDs = append(out.LineIDs, line.ID)
		}
		out.InboundID = order.ID
		out.Stock = bal.list()
		return nil
	})
	if err != nil {
		return nil, err
	}

	lines := make([]any, 0, len(in.Lines))
	for i, l := range in.Lines {
		lines = append(lines, entity.AuditPayload{
			{Key: "lineId", Value: out.LineIDs[i]},
			{Key: "productId", Value: productIDs[i]},
			{Key: "productName", Value: l.ProductName},
			{Key: "quantity", Value: l.Quantity},
		})
	}
	uc.audit.record(ctx, actor, entity.AuditInboundOrder, entity.AuditPayload{
		{Key: "inboundId", Value: out.InboundID},
		{Key: "warehouseId", Value: warehouseID},
		{Key: "supplier", Value: in.Supplier},
		{Key: "receivedDate", Value: dto.NewDate(date)},
		{Key: "details", Value: lines},
	})
	return out, nil
}

// UpdateLine cambia producto y cantidad de una línea: revierte la contribución anterior y aplica la nueva.
// Si el volumen neto aumenta, la capacidad de la bodega debe aceptarlo.
func (uc *InboundUseCase) UpdateLine(ctx context.Context, actor Actor, lineID int64, in dto.UpdateInboundLineRequest) (*dto.UpdateLineResponse, error) {
	if err := actor.validate(); err != nil {
		return nil, err
	}
	if in.Quantity == nil {
		return nil, fmt.Errorf("%w: quantity es requerido", domain.ErrInvalidInput)
	}
	newQuantity := *in.Quantity
	if err := checkQuantity(newQuantity, "la cantidad de la línea"); err != nil {
		return nil, err
	}
	if in.ProductID <= 0 {
		return nil, fmt.Errorf("%w: product_id es requerido", domain.ErrInvalidInput)
	}

	var (
		old entity.InboundLine
		out = &dto.UpdateLineResponse{Success: true, LineID: lineID, ProductID: in.ProductID, Quantity: newQuantity}
	)
	err := uc.txRunner.Run(ctx, func(repos Repositories) error {
		line, err := repos.Inbound.GetLineForUpdate(ctx, lineID)
		if err != nil {
			return err
		}
		if line == nil {
			return fmt.Errorf("%w: línea de entrada %d", domain.ErrNotFound, lineID)
		}
		old = *line
		out.OrderID = line.OrderID
		wh := line.WarehouseID

		if _, err := NewProductCatalog(repos.Products).Resolve(ctx, in.ProductID, ""); err != nil {
			return err
		}
		deltas := []QuantityDelta{
			{ProductID: old.ProductID, Quantity: -old.Quantity},
			{ProductID: in.ProductID, Quantity: newQuantity},
		}
		if err := NewCapacityOracle(repos).Require(ctx, wh, deltas); err != nil {
			return err
		}

		ledger := NewStockLedger(repos)
		bal := newBalances()
		// Revertir la contribución anterior
		if old.Quantity > 0 {
			current, _, err := ledger.Balance(ctx, wh, old.ProductID)
			if err != nil {
				return err
			}
			if current < old.Quantity {
				return fmt.Errorf("%w: revertir %d unidades dejaría negativo el stock del producto %d (actual %d)",
					domain.ErrConflict, old.Quantity, old.ProductID, current)
			}
			qty, err := ledger.Adjust(ctx, wh, old.ProductID, -old.Quantity)
			if err != nil {
				return err
			}
			bal.set(old.ProductID, qty)
		}
		// Aplicar la nueva
		if err := ledger.EnsureExists(ctx, wh, in.ProductID); err != nil {
			return err
		}
		qty, err := ledger.Adjust(ctx, wh, in.ProductID, newQuantity)
		if err != nil {
			return err
		}
		bal.set(in.ProductID, qty)

		if err := repos.Inbound.UpdateLine(ctx, lineID, in.ProductID, newQuantity); err != nil {
			return err
		}
		out.Stock = bal.list()
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.record(ctx, actor, entity.AuditInboundDetailUpdate, entity.AuditPayload{
		{Key: "detailId", Value: lineID},
		{Key: "warehouseId", Value: old.WarehouseID},
		{Key: "oldProductId", Value: old.ProductID},
		{Key: "newProductId", Value: in.ProductID},
		{Key: "oldQuantity", Value: old.Quantity},
		{Key: "newQuantity", Value: newQuantity},
	})
	return out, nil
}

// DeleteLine revierte la contribución de la línea, la elimina y, si era la última, elimina la orden.
func (uc *InboundUseCase) DeleteLine(ctx context.Context, actor Actor, lineID int64) (*dto.DeleteLineResponse, error) {
	if err := actor.validate(); err != nil {
		return nil, err
	}

	var (
		old entity.InboundLine
		out = &dto.DeleteLineResponse{Success: true, LineID: lineID}
	)
	err := uc.txRunner.Run(ctx, func(repos Repositories) error {
		line, err := repos.Inbound.GetLineForUpdate(ctx, lineID)
		if err != nil {
			return err
		}
		if line == nil {
			return fmt.Errorf("%w: línea de entrada %d", domain.ErrNotFound, lineID)
		}
		old = *line
		out.OrderID = line.OrderID

		if _, err := NewCapacityOracle(repos).Lock(ctx, old.WarehouseID); err != nil {
			return err
		}
		ledger := NewStockLedger(repos)
		bal := newBalances()
		if old.Quantity > 0 {
			current, _, err := ledger.Balance(ctx, old.WarehouseID, old.ProductID)
			if err != nil {
				return err
			}
			if current < old.Quantity {
				return fmt.Errorf("%w: revertir %d unidades dejaría negativo el stock del producto %d (actual %d)",
					domain.ErrConflict, old.Quantity, old.ProductID, current)
			}
			qty, err := ledger.Adjust(ctx, old.WarehouseID, old.ProductID, -old.Quantity)
			if err != nil {
				return err
			}
			bal.set(old.ProductID, qty)
		}
		if err := repos.Inbound.DeleteLine(ctx, lineID); err != nil {
			return err
		}
		remaining, err := repos.Inbound.CountLines(ctx, old.OrderID)
		if err != nil {
			return err
		}
		if remaining == 0 {
			if err := repos.Inbound.DeleteOrder(ctx, old.OrderID); err != nil {
				return err
			}
			out.OrderDeleted = true
		}
		out.Stock = bal.list()
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.record(ctx, actor, entity.AuditInboundDetailDelete, entity.AuditPayload{
		{Key: "detailId", Value: lineID},
		{Key: "inboundId", Value: old.OrderID},
		{Key: "warehouseId", Value: old.WarehouseID},
		{Key: "productId", Value: old.ProductID},
		{Key: "quantityReverted", Value: old.Quantity},
		{Key: "orderDeleted", Value: out.OrderDeleted},
	})
	return out, nil
}

// UpdateHeader actualiza proveedor y fecha de recepción (sin efecto en stock). Una fecha vacía conserva la actual.
func (uc *InboundUseCase) UpdateHeader(ctx context.Context, actor Actor, orderID int64, in dto.UpdateInboundOrderRequest) error {
	if err := actor.validate(); err != nil {
		return err
	}
	var received time.Time
	err := uc.txRunner.Run(ctx, func(repos Repositories) error {
		order, err := repos.Inbound.GetOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("%w: orden de entrada %d", domain.ErrNotFound, orderID)
		}
		received = order.ReceivedDate
		if !in.ReceivedDate.IsZero() {
			received = in.ReceivedDate.Time
		}
		ok, err := repos.Inbound.UpdateHeader(ctx, orderID, in.Supplier, received)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: orden de entrada %d", domain.ErrNotFound, orderID)
		}
		return nil
	})
	if err != nil {
		return err
	}
	uc.audit.record(ctx, actor, entity.AuditInboundOrderUpdate, entity.AuditPayload{
		{Key: "inboundId", Value: orderID},
		{Key: "newSupplier", Value: in.Supplier},
		{Key: "newDate", Value: dto.NewDate(received)},
	})
	return nil
}

// ListOrders lista las cabeceras de entrada de una bodega.
func (uc *InboundUseCase) ListOrders(ctx context.Context, warehouseID int64) ([]dto.InboundOrderResponse, error) {
	var orders []*entity.InboundOrder
	err := uc.txRunner.Run(ctx, func(repos Repositories) error {
		var err error
		orders, err = repos.Inbound.ListOrdersByWarehouse(ctx, warehouseID)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.InboundOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toInboundResponse(o))
	}
	return out, nil
}

// ListLines lista las líneas de una orden de entrada; NotFound si la orden no existe.
func (uc *InboundUseCase) ListLines(ctx context.Context, orderID int64) ([]dto.OrderLineResponse, error) {
	order, err := uc.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Lines == nil {
		return []dto.OrderLineResponse{}, nil
	}
	return order.Lines, nil
}

// GetOrder devuelve cabecera y líneas; NotFound si la orden no existe.
func (uc *InboundUseCase) GetOrder(ctx context.Context, orderID int64) (*dto.InboundOrderResponse, error) {
	var (
		order *entity.InboundOrder
		lines []*entity.InboundLine
	)
	err := uc.txRunner.Run(ctx, func(repos Repositories) error {
		var err error
		order, err = repos.Inbound.GetOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("%w: orden de entrada %d", domain.ErrNotFound, orderID)
		}
		lines, err = repos.Inbound.ListLines(ctx, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := toInboundResponse(order)
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.OrderLineResponse{
			LineID: l.ID, ProductID: l.ProductID, ProductName: l.ProductName, Quantity: l.Quantity,
		})
	}
	return &resp, nil
}

func toInboundResponse(o *entity.InboundOrder) dto.InboundOrderResponse {
	return dto.InboundOrderResponse{
		InboundID:    o.ID,
		WarehouseID:  o.WarehouseID,
		Supplier:     o.Supplier,
		ReceivedDate: dto.NewDate(o.ReceivedDate),
	}
}
