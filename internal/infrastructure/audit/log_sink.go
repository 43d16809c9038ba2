package audit

import (
	"context"

	"github.com/jhoicas/bodegas-api/internal/domain/entity"
	"github.com/jhoicas/bodegas-api/pkg/logger"
)

// LogSink escribe cada evento como una línea de log estructurada (desarrollo y AUDIT_SINK=log).
type LogSink struct {
	log *logger.Logger
}

// NewLogSink construye el destino.
func NewLogSink(log *logger.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Write(_ context.Context, e entity.AuditEvent) error {
	s.log.Info().
		Str("event_id", e.ID).
		Time("timestamp", e.Timestamp).
		Int64("emp_id", e.ActorID).
		Str("action", e.ActionType).
		Str("endpoint", e.Endpoint).
		RawJSON("data", mustJSON(e.Payload)).
		Msg("audit")
	return nil
}

func (s *LogSink) Close(context.Context) error { return nil }

func mustJSON(p entity.AuditPayload) []byte {
	b, err := p.MarshalJSON()
	if err != nil {
		return []byte(`{}`)
	}
	return b
}
