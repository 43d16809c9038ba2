package dto

import (
	"fmt"
	"strings"
	"time"
)

// ErrorResponse cuerpo de error HTTP. Code es estable; Message es legible.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DateLayout formato de fechas de órdenes (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Date fecha de calendario; acepta "YYYY-MM-DD" o RFC 3339 en JSON y se serializa como "YYYY-MM-DD".
type Date struct {
	time.Time
}

// NewDate trunca t al día.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// UnmarshalJSON implementa json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{DateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			*d = NewDate(t)
			return nil
		}
	}
	return fmt.Errorf("fecha inválida %q, se espera YYYY-MM-DD", s)
}

// MarshalJSON implementa json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// StockBalance cantidad resultante de un producto tras una mutación (para reconciliar la vista del cliente).
type StockBalance struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// SuccessResponse respuesta mínima de éxito.
type SuccessResponse struct {
	Success bool `json:"success"`
}
