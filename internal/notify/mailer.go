package notify

import (
	"context"
	"log"
)

// LogMailer stands in for the outbound email collaborator. It only reacts to
// cancellations: the counterpart gets a notice at their contact address. A
// missing address is a recoverable condition, logged and skipped.
type LogMailer struct {
	logger *log.Logger
}

func NewLogMailer(logger *log.Logger) *LogMailer {
	if logger == nil {
		logger = log.Default()
	}
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Publish(_ context.Context, evt ExchangeEvent) {
	if m == nil || evt.Type != EventExchangeCanceled {
		return
	}

	if evt.CounterpartEmail == "" {
		m.logger.Printf("mail skipped | exchange=%s reason=no_recipient_address recipient=%q",
			evt.ExchangeID, evt.CounterpartName)
		return
	}

	m.logger.Printf("mail queued | exchange=%s kind=cancellation recipient=%q address=%s offering=%q",
		evt.ExchangeID, evt.CounterpartName, evt.CounterpartEmail, evt.OfferingTitle)
}
