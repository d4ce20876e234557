package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/location"
)

// CreateStockLocationCommandHandler registers a new stock location with the
// next position in the creation sequence.
type CreateStockLocationCommandHandler struct {
	uowFactory LocationUoWFactory
	clock      kernel.Clock
}

// NewCreateStockLocationCommandHandler creates a handler for location registration.
func NewCreateStockLocationCommandHandler(uowFactory LocationUoWFactory, clock kernel.Clock) CreateStockLocationCommandHandler {
	return CreateStockLocationCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle processes the registration. The position is one past the highest
// existing position, so planner tie-breaks follow creation order.
func (h *CreateStockLocationCommandHandler) Handle(ctx context.Context, cmd CreateStockLocationCommand) error {
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

	existing, err := uow.StockLocationRepository().GetAll(ctx)
	if err != nil {
		return err
	}
	position := 1
	for _, l := range existing {
		if l.Position() >= position {
			position = l.Position() + 1
		}
	}

	aggregate, err := location.NewStockLocation(cmd.LocationID(), cmd.Name(), position, h.clock.Now())
	if err != nil {
		return err
	}

	if err = uow.StockLocationRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
