// Package audit entrega eventos de auditoría a un destino externo (MongoDB, Kafka o log) en modo
// best-effort: después del commit, sin bloquear la petición y sin propagar fallos.
package audit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/bodegas-api/internal/application/inventory"
	"github.com/jhoicas/bodegas-api/internal/domain/entity"
	"github.com/jhoicas/bodegas-api/pkg/logger"
)

var _ inventory.AuditNotifier = (*Notifier)(nil)

// Sink destino de los eventos. Write puede fallar; el Notifier registra el error y descarta el evento.
type Sink interface {
	Name() string
	Write(ctx context.Context, event entity.AuditEvent) error
	Close(ctx context.Context) error
}

// Options parámetros del Notifier.
type Options struct {
	QueueSize    int
	WriteTimeout time.Duration
}

// Notifier encola eventos y los escribe en un goroutine propio. Si la cola está llena el evento
// se descarta con una advertencia: la entrega es como máximo una vez.
type Notifier struct {
	sink    Sink
	log     *logger.Logger
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	queue  chan entity.AuditEvent
	done   chan struct{}
}

// NewNotifier arranca el worker de escritura.
func NewNotifier(sink Sink, log *logger.Logger, opts Options) *Notifier {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 256
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 5 * time.Second
	}
	n := &Notifier{
		sink:    sink,
		log:     log,
		timeout: opts.WriteTimeout,
		queue:   make(chan entity.AuditEvent, opts.QueueSize),
		done:    make(chan struct{}),
	}
	go n.run()
	return n
}

// Notify encola el evento sin bloquear. El ctx de la petición no se usa para la escritura:
// la petición ya terminó cuando el worker escribe.
func (n *Notifier) Notify(_ context.Context, event entity.AuditEvent) {
	if event.ActorID == 0 {
		return
	}
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		n.log.Warn().Str("action", event.ActionType).Msg("auditoría descartada: notifier cerrado")
		return
	}
	select {
	case n.queue <- event:
	default:
		n.log.Warn().
			Str("sink", n.sink.Name()).
			Str("event_id", event.ID).
			Str("action", event.ActionType).
			Msg("auditoría descartada: cola llena")
	}
}

func (n *Notifier) run() {
	defer close(n.done)
	for event := range n.queue {
		n.write(event)
	}
}

func (n *Notifier) write(event entity.AuditEvent) {
	defer func() {
		if r := recover(); r != nil {
			n.log.Error().Str("sink", n.sink.Name()).Str("event_id", event.ID).
				Str("panic", fmt.Sprint(r)).Msg("panic escribiendo auditoría")
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()
	if err := n.sink.Write(ctx, event); err != nil {
		n.log.Warn().Err(err).
			Str("sink", n.sink.Name()).
			Str("event_id", event.ID).
			Str("action", event.ActionType).
			Int64("emp_id", event.ActorID).
			Msg("fallo escribiendo auditoría")
	}
}

// Close deja de aceptar eventos, vacía la cola y cierra el destino. Si ctx vence antes, retorna su error.
func (n *Notifier) Close(ctx context.Context) error {
	n.mu.Lock()
	if !n.closed {
		n.closed = true
		close(n.queue)
	}
	n.mu.Unlock()

	select {
	case <-n.done:
	case <-ctx.Done():
		return fmt.Errorf("vaciar cola de auditoría: %w", ctx.Err())
	}
	return n.sink.Close(ctx)
}
