package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventExchangeCreated   EventType = "exchange_created"
	EventExchangeAccepted  EventType = "exchange_accepted"
	EventExchangeCompleted EventType = "exchange_completed"
	EventExchangeCanceled  EventType = "exchange_canceled"
)

// ExchangeEvent is emitted after a lifecycle write commits. Counterpart
// fields are only set on cancellation and identify the participant who did
// not initiate it.
type ExchangeEvent struct {
	Type       EventType `json:"type"`
	ExchangeID uuid.UUID `json:"exchange_id"`
	Status     string    `json:"status"`

	ProviderID  uuid.UUID `json:"provider_id"`
	RequesterID uuid.UUID `json:"requester_id"`
	ActorID     uuid.UUID `json:"actor_id"`

	OfferingTitle string `json:"offering_title"`
	SkillName     string `json:"skill_name"`

	CounterpartName  string `json:"counterpart_name,omitempty"`
	CounterpartEmail string `json:"-"`

	OccurredAt time.Time `json:"occurred_at"`
}

// Notifier consumes exchange events best-effort. Implementations must never
// fail the lifecycle operation that produced the event.
type Notifier interface {
	Publish(ctx context.Context, evt ExchangeEvent)
}

type Fanout struct {
	targets []Notifier
}

func NewFanout(targets ...Notifier) *Fanout {
	out := make([]Notifier, 0, len(targets))
	for _, t := range targets {
		if t != nil {
			out = append(out, t)
		}
	}
	return &Fanout{targets: out}
}

func (f *Fanout) Publish(ctx context.Context, evt ExchangeEvent) {
	if f == nil {
		return
	}
	for _, t := range f.targets {
		t.Publish(ctx, evt)
	}
}
