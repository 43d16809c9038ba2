// Package memory implementa los puertos de persistencia en memoria con transacciones
// serializadas: cada Run trabaja sobre una copia del estado que solo se publica en commit.
// Se usa con DB_DRIVER=memory y en las pruebas del motor de inventario.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodegas-api/internal/application/inventory"
	"github.com/jhoicas/bodegas-api/internal/domain/entity"
	"github.com/jhoicas/bodegas-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

type stockKey struct {
	warehouseID int64
	productID   int64
}

type sequences struct {
	warehouse, product, inboundOrder, inboundLine, outboundOrder, outboundLine int64
}

type state struct {
	warehouses    map[int64]entity.Warehouse
	products      map[int64]entity.Product
	stock         map[stockKey]entity.Stock
	inbound       map[int64]entity.InboundOrder
	inboundLines  map[int64]entity.InboundLine
	outbound      map[int64]entity.OutboundOrder
	outboundLines map[int64]entity.OutboundLine
	seq           sequences
}

func newState() *state {
	return &state{
		warehouses:    map[int64]entity.Warehouse{},
		products:      map[int64]entity.Product{},
		stock:         map[stockKey]entity.Stock{},
		inbound:       map[int64]entity.InboundOrder{},
		inboundLines:  map[int64]entity.InboundLine{},
		outbound:      map[int64]entity.OutboundOrder{},
		outboundLines: map[int64]entity.OutboundLine{},
	}
}

// clone copia los mapas; los valores son structs sin punteros mutables (los decimales se reemplazan, no se mutan).
func (s *state) clone() *state {
	c := &state{
		warehouses:    make(map[int64]entity.Warehouse, len(s.warehouses)),
		products:      make(map[int64]entity.Product, len(s.products)),
		stock:         make(map[stockKey]entity.Stock, len(s.stock)),
		inbound:       make(map[int64]entity.InboundOrder, len(s.inbound)),
		inboundLines:  make(map[int64]entity.InboundLine, len(s.inboundLines)),
		outbound:      make(map[int64]entity.OutboundOrder, len(s.outbound)),
		outboundLines: make(map[int64]entity.OutboundLine, len(s.outboundLines)),
		seq:           s.seq,
	}
	for k, v := range s.warehouses {
		c.warehouses[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.stock {
		c.stock[k] = v
	}
	for k, v := range s.inbound {
		c.inbound[k] = v
	}
	for k, v := range s.inboundLines {
		c.inboundLines[k] = v
	}
	for k, v := range s.outbound {
		c.outbound[k] = v
	}
	for k, v := range s.outboundLines {
		c.outboundLines[k] = v
	}
	return c
}

// Store guarda el estado completo detrás de un mutex; una transacción a la vez.
type Store struct {
	mu  sync.Mutex
	st  *state
	now func() time.Time
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{st: newState(), now: time.Now}
}

// Run ejecuta fn con repositorios sobre una copia del estado. Si fn retorna nil la copia
// reemplaza al estado; si falla (o hace panic) el estado queda intacto.
func (s *Store) Run(ctx context.Context, fn func(repos inventory.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(s.repos(work)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	s.st = work
	return nil
}

func (s *Store) repos(st *state) inventory.Repositories {
	return inventory.Repositories{
		Warehouses: &warehouseRepo{st: st},
		Products:   &productRepo{st: st},
		Stock:      &stockRepo{st: st, now: s.now},
		Inbound:    &inboundRepo{st: st},
		Outbound:   &outboundRepo{st: st},
	}
}

// Warehouses devuelve un repositorio de bodegas fuera de transacción (lecturas con el lock del store).
func (s *Store) Warehouses() repository.WarehouseRepository {
	return &lockedWarehouses{s: s}
}

// AddWarehouse registra una bodega (las bodegas no se crean por la API).
func (s *Store) AddWarehouse(employeeID int64, name string, capacity *decimal.Decimal) entity.Warehouse {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.seq.warehouse++
	w := entity.Warehouse{ID: s.st.seq.warehouse, EmployeeID: employeeID, Name: name, Capacity: capacity}
	s.st.warehouses[w.ID] = w
	return w
}

// AddProduct registra un producto directamente en el catálogo.
func (s *Store) AddProduct(name string, size *decimal.Decimal) entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.seq.product++
	p := entity.Product{ID: s.st.seq.product, Name: name, Size: size}
	s.st.products[p.ID] = p
	return p
}

// SetStock fija una fila de stock sin validaciones (carga inicial y pruebas).
func (s *Store) SetStock(warehouseID, productID int64, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.stock[stockKey{warehouseID, productID}] = entity.Stock{
		WarehouseID: warehouseID, ProductID: productID, Quantity: quantity, UpdatedAt: s.now(),
	}
}

// Quantity devuelve la cantidad de la fila; exists=false si no hay fila.
func (s *Store) Quantity(warehouseID, productID int64) (quantity int, exists bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.st.stock[stockKey{warehouseID, productID}]
	return st.Quantity, ok
}

type lockedWarehouses struct {
	s *Store
}

func (l *lockedWarehouses) GetByID(ctx context.Context, id int64) (*entity.Warehouse, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&warehouseRepo{st: l.s.st}).GetByID(ctx, id)
}

func (l *lockedWarehouses) GetForUpdate(ctx context.Context, id int64) (*entity.Warehouse, error) {
	return l.GetByID(ctx, id)
}

func (l *lockedWarehouses) ListByEmployee(ctx context.Context, employeeID int64) ([]*entity.Warehouse, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&warehouseRepo{st: l.s.st}).ListByEmployee(ctx, employeeID)
}
