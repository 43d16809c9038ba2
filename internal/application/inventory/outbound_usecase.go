package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/bodegas-api/internal/application/dto"
	"github.com/jhoicas/bodegas-api/internal/domain"
	"github.com/jhoicas/bodegas-api/internal/domain/entity"
)

// OutboundUseCase crea, edita y elimina órdenes de salida; cada línea descuenta stock de la bodega.
// Crear una salida no consulta la capacidad; editar o eliminar una línea que devuelve stock sí.
type OutboundUseCase struct {
	txRunner TxRunner
	audit    auditor
}

// NewOutboundUseCase construye el caso de uso. notifier puede ser nil.
func NewOutboundUseCase(txRunner TxRunner, notifier AuditNotifier) *OutboundUseCase {
	return &OutboundUseCase{txRunner: txRunner, audit: auditor{notifier: notifier}}
}

// CreateFull crea la cabecera y las líneas. La disponibilidad se valida línea a línea contra el
// saldo vivo de la tx: las líneas anteriores de la misma orden afectan a las siguientes.
func (uc *OutboundUseCase) CreateFull(ctx context.Context, actor Actor, warehouseID int64, in dto.CreateOutboundRequest) (*dto.CreateOutboundResponse, error) {
	if err := actor.validate(); err != nil {
		return nil, err
	}
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("%w: la orden requiere al menos una línea", domain.ErrInvalidInput)
	}
	for i, l := range in.Lines {
		if l.Quantity <= 0 {
			return nil, fmt.Errorf("%w: línea %d: la cantidad de salida debe ser mayor a 0", domain.ErrInvalidInput, i+1)
		}
		if err := checkQuantity(l.Quantity, fmt.Sprintf("línea %d: la cantidad de salida", i+1)); err != nil {
			return nil, err
		}
	}

	out := &dto.CreateOutboundResponse{Success: true}
	productIDs := make([]int64, len(in.Lines))
	date := dateOrToday(in.ShippedDate)
	err := uc.txRunner.Run(ctx, func(repos Repositories) error {
		wh, err := repos.Warehouses.GetForUpdate(ctx, warehouseID)
		if err != nil {
			return err
		}
		if wh == nil {
			return fmt.Errorf("%w: bodega %d", domain.ErrNotFound, warehouseID)
		}

		catalog := NewProductCatalog(repos.Products)
		ledger := NewStockLedger(repos)
		order := &entity.OutboundOrder{
			WarehouseID: warehouseID,
			ShippedDate: date,
			Address:     in.Address,
		}
		if err := repos.Outbound.CreateOrder(ctx, order); err != nil {
			return err
		}

		bal := newBalances()
		for i, l := range in.Lines {
			p, err := catalog.Resolve(ctx, l.ProductID, l.ProductName)
			if err != nil {
				return fmt.Errorf("línea %d: %w", i+1, err)
			}
			productIDs[i] = p.ID
			available, exists, err := ledger.Balance(ctx, warehouseID, p.ID)
			if err != nil {
				return err
			}
			if !exists || available < l.Quantity {
				return fmt.Errorf("%w: producto %d, disponible %d, solicitado %d",
					domain.ErrInsufficientStock, p.ID, available, l.Quantity)
			}
			line := &entity.OutboundLine{OrderID: order.ID, ProductID: p.ID, Quantity: l.Quantity}
			if err := repos.Outbound.CreateLine(ctx, line); err != nil {
				return err
			}
			qty, err := ledger.Adjust(ctx, warehouseID, p.ID, -l.Quantity)
			if err != nil {
				return err
			}
			bal.set(p.ID, qty)
			out.LineIDs = append(out.LineIDs, line.ID)
		}
		out.OutboundID = order.ID
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
			{Key: "quantity", Value: l.Quantity},
		})
	}
	uc.audit.record(ctx, actor, entity.AuditOutboundOrderCreate, entity.AuditPayload{
		{Key: "outboundId", Value: out.OutboundID},
		{Key: "warehouseId", Value: warehouseID},
		{Key: "shippedDate", Value: dto.NewDate(date)},
		{Key: "address", Value: in.Address},
		{Key: "details", Value: lines},
	})
	return out, nil
}

// UpdateLineQuantity cambia la cantidad despachada de una línea y ajusta el stock por la diferencia
// (anterior - nueva): aumentar la salida consume stock, reducirla lo devuelve.
func (uc *OutboundUseCase) UpdateLineQuantity(ctx context.Context, actor Actor, lineID int64, in dto.UpdateOutboundLineRequest) (*dto.UpdateLineResponse, error) {
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

	var (
		old entity.OutboundLine
		out = &dto.UpdateLineResponse{Success: true, LineID: lineID, Quantity: newQuantity}
	)
	err := uc.txRunner.Run(ctx, func(repos Repositories) error {
		line, err := repos.Outbound.GetLineForUpdate(ctx, lineID)
		if err != nil {
			return err
		}
		if line == nil {
			return fmt.Errorf("%w: línea de salida %d", domain.ErrNotFound, lineID)
		}
		old = *line
		out.OrderID = line.OrderID
		out.ProductID = line.ProductID

		oracle := NewCapacityOracle(repos)
		if _, err := oracle.Lock(ctx, old.WarehouseID); err != nil {
			return err
		}
		ledger := NewStockLedger(repos)
		diff := old.Quantity - newQuantity
		available, exists, err := ledger.Balance(ctx, old.WarehouseID, old.ProductID)
		if err != nil {
			return err
		}
		if diff < 0 && (!exists || available+diff < 0) {
			return fmt.Errorf("%w: producto %d, disponible %d, se requieren %d adicionales",
				domain.ErrInsufficientStock, old.ProductID, available, -diff)
		}
		if diff > 0 {
			delta := []QuantityDelta{{ProductID: old.ProductID, Quantity: diff}}
			if err := oracle.Require(ctx, old.WarehouseID, delta); err != nil {
				return fmt.Errorf("devolver %d unidades del producto %d: %w; libere espacio en la bodega antes de reducir la salida",
					diff, old.ProductID, err)
			}
			if !exists {
				if err := ledger.EnsureExists(ctx, old.WarehouseID, old.ProductID); err != nil {
					return err
				}
			}
		}
		bal := newBalances()
		qty := available
		if diff != 0 {
			qty, err = ledger.Adjust(ctx, old.WarehouseID, old.ProductID, diff)
			if err != nil {
				return err
			}
		}
		bal.set(old.ProductID, qty)
		if err := repos.Outbound.UpdateLineQuantity(ctx, lineID, newQuantity); err != nil {
			return err
		}
		out.Stock = bal.list()
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.record(ctx, actor, entity.AuditOutboundDetailUpdate, entity.AuditPayload{
		{Key: "detailId", Value: lineID},
		{Key: "warehouseId", Value: old.WarehouseID},
		{Key: "productId", Value: old.ProductID},
		{Key: "oldQuantity", Value: old.Quantity},
		{Key: "newQuantity", Value: newQuantity},
	})
	return out, nil
}

// DeleteLine devuelve al stock la cantidad de la línea, la elimina y, si era la última, elimina la orden.
func (uc *OutboundUseCase) DeleteLine(ctx context.Context, actor Actor, lineID int64) (*dto.DeleteLineResponse, error) {
	if err := actor.validate(); err != nil {
		return nil, err
	}

	var (
		old entity.OutboundLine
		out = &dto.DeleteLineResponse{Success: true, LineID: lineID}
	)
	err := uc.txRunner.Run(ctx, func(repos Repositories) error {
		line, err := repos.Outbound.GetLineForUpdate(ctx, lineID)
		if err != nil {
			return err
		}
		if line == nil {
			return fmt.Errorf("%w: línea de salida %d", domain.ErrNotFound, lineID)
		}
		old = *line
		out.OrderID = line.OrderID

		ledger := NewStockLedger(repos)
		bal := newBalances()
		if old.Quantity > 0 {
			delta := []QuantityDelta{{ProductID: old.ProductID, Quantity: old.Quantity}}
			if err := NewCapacityOracle(repos).Require(ctx, old.WarehouseID, delta); err != nil {
				return fmt.Errorf("devolver %d unidades del producto %d: %w; libere espacio en la bodega antes de eliminar la línea",
					old.Quantity, old.ProductID, err)
			}
			if err := ledger.EnsureExists(ctx, old.WarehouseID, old.ProductID); err != nil {
				return err
			}
			qty, err := ledger.Adjust(ctx, old.WarehouseID, old.ProductID, old.Quantity)
			if err != nil {
				return err
			}
			bal.set(old.ProductID, qty)
		}
		if err := repos.Outbound.DeleteLine(ctx, lineID); err != nil {
			return err
		}
		remaining, err := repos.Outbound.CountLines(ctx, old.OrderID)
		if err != nil {
			return err
		}
		if remaining == 0 {
			if err := repos.Outbound.DeleteOrder(ctx, old.OrderID); err != nil {
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

	uc.audit.record(ctx, actor, entity.AuditOutboundDetailDelete, entity.AuditPayload{
		{Key: "detailId", Value: lineID},
		{Key: "outboundId", Value: old.OrderID},
		{Key: "warehouseId", Value: old.WarehouseID},
		{Key: "productId", Value: old.ProductID},
		{Key: "quantityReturned", Value: old.Quantity},
		{Key: "orderDeleted", Value: out.OrderDeleted},
	})
	return out, nil
}

// UpdateHeader actualiza fecha de despacho y dirección (sin efecto en stock). Una fecha vacía conserva la actual.
func (uc *OutboundUseCase) UpdateHeader(ctx context.Context, actor Actor, orderID int64, in dto.UpdateOutboundOrderRequest) error {
	if err := actor.validate(); err != nil {
		return err
	}
	var shipped time.Time
	err := uc.txRunner.Run(ctx, func(repos Repositories) error {
		order, err := repos.Outbound.GetOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("%w: orden de salida %d", domain.ErrNotFound, orderID)
		}
		shipped = order.ShippedDate
		if !in.ShippedDate.IsZero() {
			shipped = in.ShippedDate.Time
		}
		ok, err := repos.Outbound.UpdateHeader(ctx, orderID, shipped, in.Address)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: orden de salida %d", domain.ErrNotFound, orderID)
		}
		return nil
	})
	if err != nil {
		return err
	}
	uc.audit.record(ctx, actor, entity.AuditOutboundOrderUpdate, entity.AuditPayload{
		{Key: "outboundId", Value: orderID},
		{Key: "newDate", Value: dto.NewDate(shipped)},
		{Key: "newAddress", Value: in.Address},
	})
	return nil
}

// ListOrders lista las cabeceras de salida de una bodega.
func (uc *OutboundUseCase) ListOrders(ctx context.Context, warehouseID int64) ([]dto.OutboundOrderResponse, error) {
	var orders []*entity.OutboundOrder
	err := uc.txRunner.Run(ctx, func(repos Repositories) error {
		var err error
		orders, err = repos.Outbound.ListOrdersByWarehouse(ctx, warehouseID)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.OutboundOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOutboundResponse(o))
	}
	return out, nil
}

// ListLines lista las líneas de una orden de salida; NotFound si la orden no existe.
func (uc *OutboundUseCase) ListLines(ctx context.Context, orderID int64) ([]dto.OrderLineResponse, error) {
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
func (uc *OutboundUseCase) GetOrder(ctx context.Context, orderID int64) (*dto.OutboundOrderResponse, error) {
	var (
		order *entity.OutboundOrder
		lines []*entity.OutboundLine
	)
	err := uc.txRunner.Run(ctx, func(repos Repositories) error {
		var err error
		order, err = repos.Outbound.GetOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("%w: orden de salida %d", domain.ErrNotFound, orderID)
		}
		lines, err = repos.Outbound.ListLines(ctx, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := toOutboundResponse(order)
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.OrderLineResponse{
			LineID: l.ID, ProductID: l.ProductID, ProductName: l.ProductName, Quantity: l.Quantity,
		})
	}
	return &resp, nil
}

func toOutboundResponse(o *entity.OutboundOrder) dto.OutboundOrderResponse {
	return dto.OutboundOrderResponse{
		OutboundID:  o.ID,
		WarehouseID: o.WarehouseID,
		ShippedDate: dto.NewDate(o.ShippedDate),
		Address:     o.Address,
	}
}
