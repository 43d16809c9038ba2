package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/bodegas-api/internal/domain/inventory"
)

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestVolume_SizeNuloCuentaComoCero(t *testing.T) {
	assert.True(t, inventory.Volume(7, nil).IsZero())
	assert.True(t, inventory.Volume(7, dec(0)).IsZero())
	assert.True(t, inventory.Volume(7, dec(-3)).IsZero())
}

func TestVolume_CantidadPorTamaño(t *testing.T) {
	assert.True(t, inventory.Volume(6, dec(10)).Equal(decimal.NewFromInt(60)))
	assert.True(t, inventory.Volume(-5, dec(10)).Equal(decimal.NewFromInt(-50)),
		"un delta negativo produce volumen negativo (reversión)")
}

// Escenario A: capacidad 100, ocupación 50, entrada de 6 x 10 → 110 > 100.
func TestProject_ExcedeCapacidad(t *testing.T) {
	p := inventory.Project(dec(100), decimal.NewFromInt(50), inventory.Volume(6, dec(10)))
	assert.True(t, p.Projected.Equal(decimal.NewFromInt(110)))
	assert.False(t, p.Fits())
}

// Escenario B: 50 + 5 x 10 = 100 ≤ 100.
func TestProject_LimiteExactoCabe(t *testing.T) {
	p := inventory.Project(dec(100), decimal.NewFromInt(50), inventory.Volume(5, dec(10)))
	assert.True(t, p.Projected.Equal(decimal.NewFromInt(100)))
	assert.True(t, p.Fits())
}

func TestProject_CapacidadIlimitada(t *testing.T) {
	p := inventory.Project(nil, decimal.NewFromInt(1_000_000), decimal.NewFromInt(1_000_000))
	assert.True(t, p.Fits())
}

func TestProject_DeltaNegativo(t *testing.T) {
	p := inventory.Project(dec(100), decimal.NewFromInt(90), decimal.NewFromInt(-40))
	assert.True(t, p.Projected.Equal(decimal.NewFromInt(50)))
	assert.True(t, p.Fits())
}
