package entity

import (
	"bytes"
	"encoding/json"
	"time"
)

// Tipos de acción registrados en auditoría.
const (
	AuditUpdateStockQuantity  = "UPDATE_STOCK_QUANTITY"
	AuditInitializeStock      = "INITIALIZE_STOCK"
	AuditStockDelete          = "STOCK_DELETE"
	AuditInboundOrder         = "INBOUND_ORDER"
	AuditInboundOrderUpdate   = "INBOUND_ORDER_UPDATE"
	AuditInboundDetailUpdate  = "INBOUND_DETAIL_UPDATE"
	AuditInboundDetailDelete  = "INBOUND_DETAIL_DELETE"
	AuditOutboundOrderCreate  = "OUTBOUND_ORDER_CREATE"
	AuditOutboundOrderUpdate  = "OUTBOUND_ORDER_UPDATE"
	AuditOutboundDetailUpdate = "UPDATE_OUTBOUND_DETAIL"
	AuditOutboundDetailDelete = "OUTBOUND_DETAIL_DELETE"
)

// AuditEvent evento de auditoría (solo anexado, este servicio nunca lo lee).
type AuditEvent struct {
	ID         string
	Timestamp  time.Time
	ActorID    int64
	ActionType string
	Endpoint   string
	Payload    AuditPayload
}

// AuditField par clave/valor del payload. Value puede ser otro AuditPayload o un slice.
type AuditField struct {
	Key   string
	Value any
}

// AuditPayload mapa ordenado de campos; conserva el orden al serializar.
type AuditPayload []AuditField

// Get devuelve el valor de la clave y si existe.
func (p AuditPayload) Get(key string) (any, bool) {
	for _, f := range p {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// MarshalJSON serializa como objeto JSON respetando el orden de los campos.
func (p AuditPayload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
