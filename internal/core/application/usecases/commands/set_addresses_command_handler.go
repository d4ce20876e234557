package commands

import (
	"context"
)

// SetAddressesCommandHandler applies both checkout addresses to the order.
type SetAddressesCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewSetAddressesCommandHandler creates a handler for setting checkout addresses.
func NewSetAddressesCommandHandler(uowFactory OrderUoWFactory) SetAddressesCommandHandler {
	return SetAddressesCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the address change. The aggregate rejects the change once
// the order has moved past the Address step.
func (h *SetAddressesCommandHandler) Handle(ctx context.Context, cmd SetAddressesCommand) error {
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

	if err = aggregate.SetShippingAddress(cmd.ShippingAddress()); err != nil {
		return err
	}
	if err = aggregate.SetBillingAddress(cmd.BillingAddress()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
