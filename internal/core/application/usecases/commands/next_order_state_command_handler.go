package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// NextOrderStateCommandHandler advances the order state machine and, once
// committed, publishes the new status as an integration event.
type NextOrderStateCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
}

// NewNextOrderStateCommandHandler creates a handler for order state advancement.
func NewNextOrderStateCommandHandler(uowFactory OrderUoWFactory, publisher ports.OrderEventPublisher) NextOrderStateCommandHandler {
	return NextOrderStateCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the state advancement. Transition guards (addresses set,
// payment covered, inventory allocated) are enforced by the aggregate and
// surface unchanged.
func (h *NextOrderStateCommandHandler) Handle(ctx context.Context, cmd NextOrderStateCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.Next(); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishOrderChanged(ctx, h.publisher, aggregate)
	return nil
}
