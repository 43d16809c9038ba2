package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/bodegas-api/internal/domain/entity"
)

// messageWriter es la parte de *kafka.Writer que usa el destino.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink publica cada evento como un mensaje JSON con clave = ID del evento.
type KafkaSink struct {
	w messageWriter
}

// NewKafkaSink crea el productor para el tópico.
func NewKafkaSink(brokers []string, topic string) *KafkaSink {
	return &KafkaSink{w: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}}
}

// kafkaEvent forma del mensaje publicado.
type kafkaEvent struct {
	ID         string              `json:"id"`
	Timestamp  time.Time           `json:"timestamp"`
	EmpID      int64               `json:"empId"`
	ActionType string              `json:"actionType"`
	Endpoint   string              `json:"endpoint"`
	Data       entity.AuditPayload `json:"data"`
}

func encodeMessage(e entity.AuditEvent) (kafka.Message, error) {
	value, err := json.Marshal(kafkaEvent{
		ID:         e.ID,
		Timestamp:  e.Timestamp,
		EmpID:      e.ActorID,
		ActionType: e.ActionType,
		Endpoint:   e.Endpoint,
		Data:       e.Payload,
	})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode audit event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(e.ID),
		Value: value,
		Time:  e.Timestamp,
		Headers: []kafka.Header{
			{Key: "action", Value: []byte(e.ActionType)},
		},
	}, nil
}

func (s *KafkaSink) Name() string { return "kafka" }

func (s *KafkaSink) Write(ctx context.Context, e entity.AuditEvent) error {
	msg, err := encodeMessage(e)
	if err != nil {
		return err
	}
	if err := s.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish audit event: %w", err)
	}
	return nil
}

func (s *KafkaSink) Close(context.Context) error {
	return s.w.Close()
}
