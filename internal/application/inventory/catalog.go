package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodegas-api/internal/domain"
	"github.com/jhoicas/bodegas-api/internal/domain/entity"
	"github.com/jhoicas/bodegas-api/internal/domain/repository"
)

// ProductCatalog resuelve productos por nombre o ID dentro de la tx.
type ProductCatalog struct {
	products repository.ProductRepository
}

// NewProductCatalog construye el catálogo con el repositorio de la tx.
func NewProductCatalog(products repository.ProductRepository) *ProductCatalog {
	return &ProductCatalog{products: products}
}

// ProductAttrs atributos declarados opcionales de un producto.
type ProductAttrs struct {
	Size   *decimal.Decimal
	Weight *decimal.Decimal
	Price  *decimal.Decimal
}

func (a ProductAttrs) validate() error {
	fields := []struct {
		name  string
		value *decimal.Decimal
	}{{"size", a.Size}, {"weight", a.Weight}, {"price", a.Price}}
	for _, f := range fields {
		if f.value != nil && f.value.IsNegative() {
			return fmt.Errorf("%w: %s no puede ser negativo", domain.ErrInvalidInput, f.name)
		}
	}
	return nil
}

// ResolveOrCreate busca el producto por nombre. Si existe y se envía Size, actualiza el tamaño
// (peso y precio solo se fijan al crear). Si no existe, lo crea con los atributos recibidos.
func (c *ProductCatalog) ResolveOrCreate(ctx context.Context, name string, attrs ProductAttrs) (*entity.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre del producto es requerido", domain.ErrInvalidInput)
	}
	if err := attrs.validate(); err != nil {
		return nil, err
	}
	p, err := c.products.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if p != nil {
		if err := c.backfillSize(ctx, p, attrs.Size); err != nil {
			return nil, err
		}
		return p, nil
	}
	p = &entity.Product{Name: name, Size: attrs.Size, Weight: attrs.Weight, Price: attrs.Price}
	if err := c.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Resolve obtiene un producto existente por ID (si id > 0) o por nombre, sin crearlo.
func (c *ProductCatalog) Resolve(ctx context.Context, id int64, name string) (*entity.Product, error) {
	var (
		p   *entity.Product
		err error
	)
	if id > 0 {
		p, err = c.products.GetByID(ctx, id)
	} else {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%w: se requiere product_id o product_name", domain.ErrInvalidInput)
		}
		p, err = c.products.GetByName(ctx, name)
	}
	if err != nil {
		return nil, err
	}
	if p == nil {
		if id > 0 {
			return nil, fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: producto %q", domain.ErrNotFound, name)
	}
	return p, nil
}

// ResolveForInbound resuelve la línea de una entrada: por ID (actualizando el tamaño si se envía)
// o por nombre con ResolveOrCreate.
func (c *ProductCatalog) ResolveForInbound(ctx context.Context, id int64, name string, attrs ProductAttrs) (*entity.Product, error) {
	if id <= 0 {
		return c.ResolveOrCreate(ctx, name, attrs)
	}
	if err := attrs.validate(); err != nil {
		return nil, err
	}
	p, err := c.Resolve(ctx, id, "")
	if err != nil {
		return nil, err
	}
	if err := c.backfillSize(ctx, p, attrs.Size); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *ProductCatalog) backfillSize(ctx context.Context, p *entity.Product, size *decimal.Decimal) error {
	if size == nil {
		return nil
	}
	if err := c.products.UpdateSize(ctx, p.ID, *size); err != nil {
		return err
	}
	s := *size
	p.Size = &s
	return nil
}
