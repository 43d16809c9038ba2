package postgres

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgErrorClassification(t *testing.T) {
	unique := fmt.Errorf("insert product: %w", &pgconn.PgError{Code: "23505"})
	fk := fmt.Errorf("insert stock: %w", &pgconn.PgError{Code: "23503"})

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isUniqueViolation(fk))
	assert.True(t, isForeignKeyViolation(fk))
	assert.False(t, isForeignKeyViolation(unique))
	assert.False(t, isForeignKeyViolation(errors.New("connection reset")))
}

func TestNullableDecimal(t *testing.T) {
	assert.Nil(t, toNullable(decimal.NullDecimal{}))
	assert.False(t, fromNullable(nil).Valid)

	v := decimal.RequireFromString("12.75")
	n := fromNullable(&v)
	require.True(t, n.Valid)
	back := toNullable(n)
	require.NotNil(t, back)
	assert.True(t, back.Equal(v))
}

func TestMigrationsEmbebidas(t *testing.T) {
	names, err := fs.Glob(migrationFiles, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "migrations/001_init.sql", names[0])

	script, err := migrationFiles.ReadFile(names[0])
	require.NoError(t, err)
	for _, table := range []string{"warehouses", "products", "stock", "inbound_lines", "outbound_lines"} {
		assert.Contains(t, string(script), "CREATE TABLE IF NOT EXISTS "+table)
	}
}
