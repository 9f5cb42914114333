package ws

import (
	"context"
	"encoding/json"

	"skillswap/internal/notify"

	"github.com/google/uuid"
)

// EventPublisher pushes exchange events to both participants' live
// connections. It satisfies notify.Notifier; delivery is best-effort.
type EventPublisher struct {
	hub *Hub
}

func NewEventPublisher(hub *Hub) *EventPublisher {
	return &EventPublisher{hub: hub}
}

func (p *EventPublisher) Publish(_ context.Context, evt notify.ExchangeEvent) {
	if p == nil || p.hub == nil {
		return
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		return
	}

	p.hub.SendToUsers([]uuid.UUID{evt.ProviderID, evt.RequesterID}, payload)
}
