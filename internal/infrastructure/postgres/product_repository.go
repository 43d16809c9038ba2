package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodegas-api/internal/domain"
	"github.com/jhoicas/bodegas-api/internal/domain/entity"
	"github.com/jhoicas/bodegas-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, size, weight, price`

// Create persiste un nuevo producto y asigna su ID. El nombre es único sin distinguir mayúsculas.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (name, size, weight, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		product.Name, fromNullable(product.Size), fromNullable(product.Weight), fromNullable(product.Price),
	).Scan(&product.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: producto %q", domain.ErrDuplicate, product.Name)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByName obtiene un producto por nombre.
func (r *ProductRepo) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE lower(name) = lower($1)`
	p, err := scanProduct(r.q.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by name: %w", err)
	}
	return p, nil
}

// UpdateSize actualiza el tamaño unitario declarado.
func (r *ProductRepo) UpdateSize(ctx context.Context, id int64, size decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET size = $2 WHERE id = $1`, id, size)
	if err != nil {
		return fmt.Errorf("update product size: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		p                   entity.Product
		size, weight, price decimal.NullDecimal
	)
	if err := row.Scan(&p.ID, &p.Name, &size, &weight, &price); err != nil {
		return nil, err
	}
	p.Size = toNullable(size)
	p.Weight = toNullable(weight)
	p.Price = toNullable(price)
	return &p, nil
}
