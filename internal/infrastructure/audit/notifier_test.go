package audit

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodegas-api/internal/domain/entity"
	"github.com/jhoicas/bodegas-api/pkg/logger"
)

type fakeSink struct {
	mu      sync.Mutex
	events  []entity.AuditEvent
	err     error
	block   chan struct{}
	closed  bool
	hadDead bool
}

func (s *fakeSink) Name() string { return "fake" }

func (s *fakeSink) Write(ctx context.Context, e entity.AuditEvent) error {
	if s.block != nil {
		<-s.block
	}
	if _, ok := ctx.Deadline(); ok {
		s.mu.Lock()
		s.hadDead = true
		s.mu.Unlock()
	}
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

func (s *fakeSink) Close(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func event(id string) entity.AuditEvent {
	return entity.AuditEvent{ID: id, ActorID: 1, ActionType: entity.AuditStockDelete, Timestamp: time.Now().UTC()}
}

func TestNotifier_EntregaYCierraVaciandoCola(t *testing.T) {
	sink := &fakeSink{}
	n := NewNotifier(sink, logger.Nop(), Options{QueueSize: 8, WriteTimeout: time.Second})

	n.Notify(context.Background(), event("a"))
	n.Notify(context.Background(), event("b"))
	require.NoError(t, n.Close(context.Background()))

	assert.True(t, sink.closed)
	require.Len(t, sink.events, 2)
	assert.Equal(t, "a", sink.events[0].ID)
	assert.True(t, sink.hadDead, "la escritura usa su propio timeout")

	n.Notify(context.Background(), event("c"))
	assert.Len(t, sink.events, 2)
}

func TestNotifier_FalloDelDestinoSeRegistraYNoPropaga(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Out: &buf})
	sink := &fakeSink{err: errors.New("mongo caído")}
	n := NewNotifier(sink, log, Options{QueueSize: 1})

	n.Notify(context.Background(), event("a"))
	require.NoError(t, n.Close(context.Background()))

	assert.Contains(t, buf.String(), "fallo escribiendo auditoría")
	assert.Contains(t, buf.String(), "mongo caído")
}

func TestNotifier_ColaLlenaNoBloquea(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Out: &buf})
	sink := &fakeSink{block: make(chan struct{})}
	n := NewNotifier(sink, log, Options{QueueSize: 1})

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			n.Notify(context.Background(), event("x"))
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Notify bloqueó con la cola llena")
	}

	close(sink.block)
	require.NoError(t, n.Close(context.Background()))
	assert.Contains(t, buf.String(), "cola llena")
	assert.Less(t, len(sink.events), 10)
}

func TestNotifier_ActorCeroNoSeAudita(t *testing.T) {
	sink := &fakeSink{}
	n := NewNotifier(sink, logger.Nop(), Options{})

	e := event("a")
	e.ActorID = 0
	n.Notify(context.Background(), e)
	require.NoError(t, n.Close(context.Background()))

	assert.Empty(t, sink.events)
}

func TestNotifier_CloseRespetaContexto(t *testing.T) {
	sink := &fakeSink{block: make(chan struct{})}
	n := NewNotifier(sink, logger.Nop(), Options{})
	n.Notify(context.Background(), event("a"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := n.Close(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	close(sink.block)
}
