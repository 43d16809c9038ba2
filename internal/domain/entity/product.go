package entity

import "github.com/shopspring/decimal"

// Product representa un producto del catálogo (nombre único).
// Size, Weight y Price son opcionales; un Size nil cuenta como volumen 0.
type Product struct {
	ID     int64
	Name   string
	Size   *decimal.Decimal // volumen unitario
	Weight *decimal.Decimal
	Price  *decimal.Decimal
}
