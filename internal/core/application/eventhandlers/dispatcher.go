// Package eventhandlers wires the order aggregate's domain events to the
// stock ledger. Handlers run synchronously inside the command's transaction:
// a handler failure propagates to the command handler, which rolls back the
// order-side change along with any partial stock mutation.
package eventhandlers

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/order"
)

// Handler processes one kind of domain event.
type Handler interface {
	// EventName returns the event name the handler subscribes to.
	EventName() string

	// Handle applies the event's effect. Called inside the originating
	// command's transaction.
	Handle(ctx context.Context, event order.DomainEvent) error
}

// Dispatcher routes domain events to their registered handlers, in
// registration order, synchronously. The first handler error aborts the
// dispatch and is returned to the caller.
type Dispatcher struct {
	handlers map[string][]Handler
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string][]Handler),
	}
}

// Register subscribes a handler to its event name.
func (d *Dispatcher) Register(handler Handler) {
	name := handler.EventName()
	d.handlers[name] = append(d.handlers[name], handler)
}

// Dispatch delivers each event to its handlers, oldest event first.
// Events without a registered handler are an error: the reconciliation
// contract requires every staged event to be processed before commit.
func (d *Dispatcher) Dispatch(ctx context.Context, events []order.DomainEvent) error {
	for _, event := range events {
		handlers, ok := d.handlers[event.EventName()]
		if !ok {
			return fmt.Errorf("no handler registered for event %q", event.EventName())
		}
		for _, handler := range handlers {
			if err := handler.Handle(ctx, event); err != nil {
				return fmt.Errorf("handling %s: %w", event.EventName(), err)
			}
		}
	}
	return nil
}
