package commands

import (
	"context"
)

// AddPaymentCommandHandler records a pending payment on the order.
type AddPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAddPaymentCommandHandler creates a handler for recording payments.
func NewAddPaymentCommandHandler(uowFactory OrderUoWFactory) AddPaymentCommandHandler {
	return AddPaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the payment command.
func (h *AddPaymentCommandHandler) Handle(ctx context.Context, cmd AddPaymentCommand) error {
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

	if _, err = aggregate.AddPayment(cmd.Amount()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
