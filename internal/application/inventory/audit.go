package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/bodegas-api/internal/application/dto"
	"github.com/jhoicas/bodegas-api/internal/domain"
	"github.com/jhoicas/bodegas-api/internal/domain/entity"
)

// Actor identifica al empleado que ejecuta la mutación y el endpoint invocado (para auditoría).
type Actor struct {
	ID       int64
	Endpoint string
}

// validate rechaza mutaciones sin empleado antes de abrir la transacción.
func (a Actor) validate() error {
	if a.ID <= 0 {
		return fmt.Errorf("%w: falta un empId válido", domain.ErrInvalidInput)
	}
	return nil
}

// auditor emite eventos después del commit. Un notifier nil desactiva la auditoría.
type auditor struct {
	notifier AuditNotifier
	now      func() time.Time
}

func (a auditor) record(ctx context.Context, actor Actor, action string, payload entity.AuditPayload) {
	if a.notifier == nil || actor.ID == 0 {
		return
	}
	now := time.Now
	if a.now != nil {
		now = a.now
	}
	a.notifier.Notify(ctx, entity.AuditEvent{
		ID:         uuid.New().String(),
		Timestamp:  now().UTC(),
		ActorID:    actor.ID,
		ActionType: action,
		Endpoint:   actor.Endpoint,
		Payload:    payload,
	})
}

// balances convierte el mapa de cantidades resultantes en la lista ordenada de la respuesta.
type balances struct {
	order []int64
	qty   map[int64]int
}

func newBalances() *balances {
	return &balances{qty: make(map[int64]int)}
}

func (b *balances) set(productID int64, quantity int) {
	if _, ok := b.qty[productID]; !ok {
		b.order = append(b.order, productID)
	}
	b.qty[productID] = quantity
}

func (b *balances) list() []dto.StockBalance {
	out := make([]dto.StockBalance, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, dto.StockBalance{ProductID: id, Quantity: b.qty[id]})
	}
	return out
}

// dateOrToday usa la fecha recibida o, si viene vacía, la fecha actual (UTC).
func dateOrToday(d dto.Date) time.Time {
	if d.IsZero() {
		return dto.NewDate(time.Now().UTC()).Time
	}
	return d.Time
}
