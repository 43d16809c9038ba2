// Package seed contiene el conjunto de datos de demostración (empleados, bodegas, productos y stock)
// que usan el modo en memoria y el comando cmd/seed.
package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodegas-api/internal/infrastructure/memory"
)

// Employee empleado de demostración.
type Employee struct {
	ID   int64
	Name string
}

// Warehouse bodega de demostración; Capacity nil = ilimitada.
type Warehouse struct {
	ID         int64
	EmployeeID int64
	Name       string
	Capacity   *decimal.Decimal
}

// Product producto de demostración.
type Product struct {
	ID   int64
	Name string
	Size *decimal.Decimal
}

// Stock cantidad inicial de un producto en una bodega.
type Stock struct {
	WarehouseID int64
	ProductID   int64
	Quantity    int
}

// Dataset conjunto completo. Los IDs son contiguos desde 1 en cada tabla.
type Dataset struct {
	Employees  []Employee
	Warehouses []Warehouse
	Products   []Product
	Stock      []Stock
}

func d(v string) *decimal.Decimal {
	x := decimal.RequireFromString(v)
	return &x
}

// Demo devuelve el conjunto de demostración.
func Demo() Dataset {
	return Dataset{
		Employees: []Employee{
			{ID: 1, Name: "Ana Torres"},
			{ID: 2, Name: "Luis Gómez"},
		},
		Warehouses: []Warehouse{
			{ID: 1, EmployeeID: 1, Name: "Bodega Central", Capacity: d("1000")},
			{ID: 2, EmployeeID: 1, Name: "Bodega Norte", Capacity: d("250.5")},
			{ID: 3, EmployeeID: 2, Name: "Patio Externo"},
		},
		Products: []Product{
			{ID: 1, Name: "Caja estándar", Size: d("2.5")},
			{ID: 2, Name: "Pallet", Size: d("40")},
			{ID: 3, Name: "Tornillería surtida", Size: d("0.2")},
			{ID: 4, Name: "Manual de usuario"},
		},
		Stock: []Stock{
			{WarehouseID: 1, ProductID: 1, Quantity: 120},
			{WarehouseID: 1, ProductID: 2, Quantity: 5},
			{WarehouseID: 2, ProductID: 3, Quantity: 300},
			{WarehouseID: 3, ProductID: 4, Quantity: 50},
		},
	}
}

// LoadMemory carga el conjunto en un store vacío. El store asigna los IDs en el mismo orden.
func LoadMemory(store *memory.Store, ds Dataset) error {
	for _, w := range ds.Warehouses {
		if got := store.AddWarehouse(w.EmployeeID, w.Name, w.Capacity); got.ID != w.ID {
			return fmt.Errorf("seed: bodega %q recibió id %d, se esperaba %d", w.Name, got.ID, w.ID)
		}
	}
	for _, p := range ds.Products {
		if got := store.AddProduct(p.Name, p.Size); got.ID != p.ID {
			return fmt.Errorf("seed: producto %q recibió id %d, se esperaba %d", p.Name, got.ID, p.ID)
		}
	}
	for _, s := range ds.Stock {
		store.SetStock(s.WarehouseID, s.ProductID, s.Quantity)
	}
	return nil
}

// LoadPostgres inserta el conjunto en una sola transacción. Es idempotente: las filas existentes
// no se tocan y las secuencias quedan por encima del mayor ID.
func LoadPostgres(ctx context.Context, pool *pgxpool.Pool, ds Dataset) error {
	return pgx.BeginTxFunc(ctx, pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, e := range ds.Employees {
			batch.Queue(`INSERT INTO employees (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`, e.ID, e.Name)
		}
		for _, w := range ds.Warehouses {
			batch.Queue(`INSERT INTO warehouses (id, employee_id, name, capacity) VALUES ($1, $2, $3, $4)
				ON CONFLICT (id) DO NOTHING`, w.ID, w.EmployeeID, w.Name, nullable(w.Capacity))
		}
		for _, p := range ds.Products {
			batch.Queue(`INSERT INTO products (id, name, size) VALUES ($1, $2, $3)
				ON CONFLICT DO NOTHING`, p.ID, p.Name, nullable(p.Size))
		}
		for _, s := range ds.Stock {
			batch.Queue(`INSERT INTO stock (warehouse_id, product_id, quantity) VALUES ($1, $2, $3)
				ON CONFLICT (warehouse_id, product_id) DO NOTHING`, s.WarehouseID, s.ProductID, s.Quantity)
		}
		for _, table := range []string{"employees", "warehouses", "products"} {
			batch.Queue(fmt.Sprintf(
				`SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), GREATEST((SELECT COALESCE(MAX(id), 1) FROM %[1]s), 1))`,
				table))
		}
		return tx.SendBatch(ctx, batch).Close()
	})
}

func nullable(v *decimal.Decimal) decimal.NullDecimal {
	if v == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *v, Valid: true}
}
