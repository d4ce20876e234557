package commands

import (
	"context"
)

// SetShippingMethodCommandHandler assigns the order's delivery method.
type SetShippingMethodCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewSetShippingMethodCommandHandler creates a handler for shipping method assignment.
func NewSetShippingMethodCommandHandler(uowFactory OrderUoWFactory) SetShippingMethodCommandHandler {
	return SetShippingMethodCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the shipping method change. The aggregate rejects the
// change once the order has moved past the Delivery step.
func (h *SetShippingMethodCommandHandler) Handle(ctx context.Context, cmd SetShippingMethodCommand) error {
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

	if err = aggregate.SetShippingMethod(cmd.ShippingMethodID()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
