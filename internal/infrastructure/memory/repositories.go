package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodegas-api/internal/domain"
	"github.com/jhoicas/bodegas-api/internal/domain/entity"
)

type warehouseRepo struct {
	st *state
}

func (r *warehouseRepo) GetByID(_ context.Context, id int64) (*entity.Warehouse, error) {
	w, ok := r.st.warehouses[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r *warehouseRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Warehouse, error) {
	return r.GetByID(ctx, id)
}

func (r *warehouseRepo) ListByEmployee(_ context.Context, employeeID int64) ([]*entity.Warehouse, error) {
	out := []*entity.Warehouse{}
	for _, w := range r.st.warehouses {
		if w.EmployeeID == employeeID {
			w := w
			out = append(out, &w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type productRepo struct {
	st *state
}

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	for _, existing := range r.st.products {
		if strings.EqualFold(existing.Name, p.Name) {
			return fmt.Errorf("%w: producto %q", domain.ErrDuplicate, p.Name)
		}
	}
	r.st.seq.product++
	p.ID = r.st.seq.product
	r.st.products[p.ID] = *p
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	p, ok := r.st.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *productRepo) GetByName(_ context.Context, name string) (*entity.Product, error) {
	for _, p := range r.st.products {
		if strings.EqualFold(p.Name, name) {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *productRepo) UpdateSize(_ context.Context, id int64, size decimal.Decimal) error {
	p, ok := r.st.products[id]
	if !ok {
		return fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}
	p.Size = &size
	r.st.products[id] = p
	return nil
}

type stockRepo struct {
	st  *state
	now func() time.Time
}

func (r *stockRepo) Get(_ context.Context, warehouseID, productID int64) (*entity.Stock, error) {
	s, ok := r.st.stock[stockKey{warehouseID, productID}]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *stockRepo) GetForUpdate(ctx context.Context, warehouseID, productID int64) (*entity.Stock, error) {
	return r.Get(ctx, warehouseID, productID)
}

func (r *stockRepo) CreateIfMissing(_ context.Context, warehouseID, productID int64) error {
	if _, ok := r.st.warehouses[warehouseID]; !ok {
		return fmt.Errorf("%w: bodega %d", domain.ErrNotFound, warehouseID)
	}
	if _, ok := r.st.products[productID]; !ok {
		return fmt.Errorf("%w: producto %d", domain.ErrNotFound, productID)
	}
	key := stockKey{warehouseID, productID}
	if _, ok := r.st.stock[key]; ok {
		return nil
	}
	r.st.stock[key] = entity.Stock{WarehouseID: warehouseID, ProductID: productID, UpdatedAt: r.now()}
	return nil
}

func (r *stockRepo) UpdateQuantity(_ context.Context, warehouseID, productID int64, quantity int) error {
	key := stockKey{warehouseID, productID}
	s, ok := r.st.stock[key]
	if !ok {
		return fmt.Errorf("%w: stock bodega %d producto %d", domain.ErrNotFound, warehouseID, productID)
	}
	if quantity < 0 {
		return fmt.Errorf("%w: cantidad negativa", domain.ErrInvalidInput)
	}
	s.Quantity = quantity
	s.UpdatedAt = r.now()
	r.st.stock[key] = s
	return nil
}

func (r *stockRepo) Delete(_ context.Context, warehouseID, productID int64) error {
	key := stockKey{warehouseID, productID}
	if _, ok := r.st.stock[key]; !ok {
		return fmt.Errorf("%w: stock bodega %d producto %d", domain.ErrNotFound, warehouseID, productID)
	}
	delete(r.st.stock, key)
	return nil
}

func (r *stockRepo) ListByWarehouse(_ context.Context, warehouseID int64) ([]*entity.StockItem, error) {
	out := []*entity.StockItem{}
	for k, s := range r.st.stock {
		if k.warehouseID != warehouseID {
			continue
		}
		p := r.st.products[k.productID]
		out = append(out, &entity.StockItem{
			Stock: s, ProductName: p.Name, Size: p.Size, Weight: p.Weight, Price: p.Price,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func (r *stockRepo) Occupancy(_ context.Context, warehouseID int64) (decimal.Decimal, error) {
	total := decimal.Zero
	for k, s := range r.st.stock {
		if k.warehouseID != warehouseID {
			continue
		}
		p := r.st.products[k.productID]
		if p.Size == nil || !p.Size.IsPositive() {
			continue
		}
		total = total.Add(p.Size.Mul(decimal.NewFromInt(int64(s.Quantity))))
	}
	return total, nil
}

type inboundRepo struct {
	st *state
}

func (r *inboundRepo) CreateOrder(_ context.Context, o *entity.InboundOrder) error {
	if _, ok := r.st.warehouses[o.WarehouseID]; !ok {
		return fmt.Errorf("%w: bodega %d", domain.ErrNotFound, o.WarehouseID)
	}
	r.st.seq.inboundOrder++
	o.ID = r.st.seq.inboundOrder
	h := *o
	h.Lines = nil
	r.st.inbound[o.ID] = h
	return nil
}

func (r *inboundRepo) CreateLine(_ context.Context, l *entity.InboundLine) error {
	order, ok := r.st.inbound[l.OrderID]
	if !ok {
		return fmt.Errorf("%w: orden de entrada %d", domain.ErrNotFound, l.OrderID)
	}
	r.st.seq.inboundLine++
	l.ID = r.st.seq.inboundLine
	l.WarehouseID = order.WarehouseID
	r.st.inboundLines[l.ID] = *l
	return nil
}

func (r *inboundRepo) GetOrder(_ context.Context, id int64) (*entity.InboundOrder, error) {
	o, ok := r.st.inbound[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *inboundRepo) ListOrdersByWarehouse(_ context.Context, warehouseID int64) ([]*entity.InboundOrder, error) {
	out := []*entity.InboundOrder{}
	for _, o := range r.st.inbound {
		if o.WarehouseID == warehouseID {
			o := o
			out = append(out, &o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *inboundRepo) ListLines(_ context.Context, orderID int64) ([]*entity.InboundLine, error) {
	out := []*entity.InboundLine{}
	for _, l := range r.st.inboundLines {
		if l.OrderID == orderID {
			l := l
			l.ProductName = r.st.products[l.ProductID].Name
			out = append(out, &l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *inboundRepo) GetLineForUpdate(_ context.Context, lineID int64) (*entity.InboundLine, error) {
	l, ok := r.st.inboundLines[lineID]
	if !ok {
		return nil, nil
	}
	l.WarehouseID = r.st.inbound[l.OrderID].WarehouseID
	l.ProductName = r.st.products[l.ProductID].Name
	return &l, nil
}

func (r *inboundRepo) UpdateLine(_ context.Context, lineID, productID int64, quantity int) error {
	l, ok := r.st.inboundLines[lineID]
	if !ok {
		return fmt.Errorf("%w: línea de entrada %d", domain.ErrNotFound, lineID)
	}
	l.ProductID = productID
	l.Quantity = quantity
	r.st.inboundLines[lineID] = l
	return nil
}

func (r *inboundRepo) DeleteLine(_ context.Context, lineID int64) error {
	if _, ok := r.st.inboundLines[lineID]; !ok {
		return fmt.Errorf("%w: línea de entrada %d", domain.ErrNotFound, lineID)
	}
	delete(r.st.inboundLines, lineID)
	return nil
}

func (r *inboundRepo) CountLines(_ context.Context, orderID int64) (int, error) {
	n := 0
	for _, l := range r.st.inboundLines {
		if l.OrderID == orderID {
			n++
		}
	}
	return n, nil
}

func (r *inboundRepo) DeleteOrder(_ context.Context, orderID int64) error {
	for id, l := range r.st.inboundLines {
		if l.OrderID == orderID {
			delete(r.st.inboundLines, id)
		}
	}
	delete(r.st.inbound, orderID)
	return nil
}

func (r *inboundRepo) UpdateHeader(_ context.Context, orderID int64, supplier string, receivedDate time.Time) (bool, error) {
	o, ok := r.st.inbound[orderID]
	if !ok {
		return false, nil
	}
	o.Supplier = supplier
	o.ReceivedDate = receivedDate
	r.st.inbound[orderID] = o
	return true, nil
}

type outboundRepo struct {
	st *state
}

func (r *outboundRepo) CreateOrder(_ context.Context, o *entity.OutboundOrder) error {
	if _, ok := r.st.warehouses[o.WarehouseID]; !ok {
		return fmt.Errorf("%w: bodega %d", domain.ErrNotFound, o.WarehouseID)
	}
	r.st.seq.outboundOrder++
	o.ID = r.st.seq.outboundOrder
	h := *o
	h.Lines = nil
	r.st.outbound[o.ID] = h
	return nil
}

func (r *outboundRepo) CreateLine(_ context.Context, l *entity.OutboundLine) error {
	order, ok := r.st.outbound[l.OrderID]
	if !ok {
		return fmt.Errorf("%w: orden de salida %d", domain.ErrNotFound, l.OrderID)
	}
	r.st.seq.outboundLine++
	l.ID = r.st.seq.outboundLine
	l.WarehouseID = order.WarehouseID
	r.st.outboundLines[l.ID] = *l
	return nil
}

func (r *outboundRepo) GetOrder(_ context.Context, id int64) (*entity.OutboundOrder, error) {
	o, ok := r.st.outbound[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *outboundRepo) ListOrdersByWarehouse(_ context.Context, warehouseID int64) ([]*entity.OutboundOrder, error) {
	out := []*entity.OutboundOrder{}
	for _, o := range r.st.outbound {
		if o.WarehouseID == warehouseID {
			o := o
			out = append(out, &o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *outboundRepo) ListLines(_ context.Context, orderID int64) ([]*entity.OutboundLine, error) {
	out := []*entity.OutboundLine{}
	for _, l := range r.st.outboundLines {
		if l.OrderID == orderID {
			l := l
			l.ProductName = r.st.products[l.ProductID].Name
			out = append(out, &l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *outboundRepo) GetLineForUpdate(_ context.Context, lineID int64) (*entity.OutboundLine, error) {
	l, ok := r.st.outboundLines[lineID]
	if !ok {
		return nil, nil
	}
	l.WarehouseID = r.st.outbound[l.OrderID].WarehouseID
	l.ProductName = r.st.products[l.ProductID].Name
	return &l, nil
}

func (r *outboundRepo) UpdateLineQuantity(_ context.Context, lineID int64, quantity int) error {
	l, ok := r.st.outboundLines[lineID]
	if !ok {
		return fmt.Errorf("%w: línea de salida %d", domain.ErrNotFound, lineID)
	}
	l.Quantity = quantity
	r.st.outboundLines[lineID] = l
	return nil
}

func (r *outboundRepo) DeleteLine(_ context.Context, lineID int64) error {
	if _, ok := r.st.outboundLines[lineID]; !ok {
		return fmt.Errorf("%w: línea de salida %d", domain.ErrNotFound, lineID)
	}
	delete(r.st.outboundLines, lineID)
	return nil
}

func (r *outboundRepo) CountLines(_ context.Context, orderID int64) (int, error) {
	n := 0
	for _, l := range r.st.outboundLines {
		if l.OrderID == orderID {
			n++
		}
	}
	return n, nil
}

func (r *outboundRepo) DeleteOrder(_ context.Context, orderID int64) error {
	for id, l := range r.st.outboundLines {
		if l.OrderID == orderID {
			delete(r.st.outboundLines, id)
		}
	}
	delete(r.st.outbound, orderID)
	return nil
}

func (r *outboundRepo) UpdateHeader(_ context.Context, orderID int64, shippedDate time.Time, address string) (bool, error) {
	o, ok := r.st.outbound[orderID]
	if !ok {
		return false, nil
	}
	o.ShippedDate = shippedDate
	o.Address = address
	r.st.outbound[orderID] = o
	return true, nil
}
