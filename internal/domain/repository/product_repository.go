package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodegas-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	// Create inserta el producto y asigna product.ID.
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	UpdateSize(ctx context.Context, id int64, size decimal.Decimal) error
}
