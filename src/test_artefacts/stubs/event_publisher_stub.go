package stubs

import (
	"context"
	"sync"
	"userconnections/src/services/events"
)

// EventPublisherStub captura os eventos publicados em memória.
type EventPublisherStub struct {
	mu        *sync.Mutex
	published *[]events.ConnectionsReconciledEvent
	err       error
}

func NewEventPublisherStub() EventPublisherStub {
	return EventPublisherStub{
		mu:        &sync.Mutex{},
		published: &[]events.ConnectionsReconciledEvent{},
	}
}

func (eps EventPublisherStub) WithError(err error) EventPublisherStub {
	eps.err = err
	return eps
}

func (eps EventPublisherStub) PublishReconciled(ctx context.Context, event events.ConnectionsReconciledEvent) error {
	if eps.err != nil {
		return eps.err
	}

	eps.mu.Lock()
	defer eps.mu.Unlock()

	*eps.published = append(*eps.published, event)
	return nil
}

func (eps EventPublisherStub) Published() []events.ConnectionsReconciledEvent {
	eps.mu.Lock()
	defer eps.mu.Unlock()

	published := make([]events.ConnectionsReconciledEvent, len(*eps.published))
	copy(published, *eps.published)
	return published
}
