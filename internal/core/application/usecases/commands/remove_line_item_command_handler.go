package commands

import (
	"context"
)

// RemoveLineItemCommandHandler removes a line item and reconciles the
// released reservations against the ledger before commit.
type RemoveLineItemCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRemoveLineItemCommandHandler creates a handler for line item removal.
func NewRemoveLineItemCommandHandler(uowFactory OrderUoWFactory) RemoveLineItemCommandHandler {
	return RemoveLineItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the removal command.
func (h *RemoveLineItemCommandHandler) Handle(ctx context.Context, cmd RemoveLineItemCommand) error {
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

	if err = aggregate.RemoveLineItem(cmd.LineItemID()); err != nil {
		return err
	}

	if err = reconcileAndSave(ctx, uow, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
