package audit

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/bodegas-api/internal/application/dto"
	"github.com/jhoicas/bodegas-api/internal/domain/entity"
)

func sampleEvent() entity.AuditEvent {
	size := decimal.RequireFromString("2.50")
	return entity.AuditEvent{
		ID:         "evt-1",
		Timestamp:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		ActorID:    7,
		ActionType: entity.AuditInboundOrder,
		Endpoint:   "/api/inbound/full/1",
		Payload: entity.AuditPayload{
			{Key: "inboundId", Value: int64(10)},
			{Key: "receivedDate", Value: dto.NewDate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))},
			{Key: "size", Value: &size},
			{Key: "details", Value: []any{
				entity.AuditPayload{{Key: "productId", Value: int64(3)}, {Key: "quantity", Value: 5}},
			}},
		},
	}
}

func TestToDocument_TiposNativos(t *testing.T) {
	doc := toDocument(sampleEvent())

	m := doc.Map()
	assert.Equal(t, "evt-1", m["eventId"])
	assert.Equal(t, int64(7), m["empId"])
	assert.Equal(t, entity.AuditInboundOrder, m["actionType"])
	assert.IsType(t, primitive.DateTime(0), m["timestamp"])

	data, ok := m["data"].(bson.D)
	require.True(t, ok)
	assert.Equal(t, "inboundId", data[0].Key)
	assert.Equal(t, "2024-03-01", data[1].Value)
	dec, ok := data[2].Value.(primitive.Decimal128)
	require.True(t, ok)
	assert.Equal(t, "2.5", dec.String())
	details, ok := data[3].Value.(bson.A)
	require.True(t, ok)
	require.Len(t, details, 1)
	assert.IsType(t, bson.D{}, details[0])

	_, err := bson.Marshal(doc)
	assert.NoError(t, err)
}

func TestToBSON_DecimalNulo(t *testing.T) {
	var d *decimal.Decimal
	assert.Nil(t, toBSON(d))
}

func TestEncodeMessage_ClaveYOrden(t *testing.T) {
	msg, err := encodeMessage(sampleEvent())
	require.NoError(t, err)

	assert.Equal(t, []byte("evt-1"), msg.Key)
	assert.Contains(t, string(msg.Value), `"data":{"inboundId":10,"receivedDate":"2024-03-01","size":"2.5"`)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "INBOUND_ORDER", decoded["actionType"])
	assert.Equal(t, float64(7), decoded["empId"])
}
