package commands

import (
	"context"
)

// AddLineItemCommandHandler loads the order, adds or merges the line item
// and persists the change.
type AddLineItemCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAddLineItemCommandHandler creates a handler for adding line items.
func NewAddLineItemCommandHandler(uowFactory OrderUoWFactory) AddLineItemCommandHandler {
	return AddLineItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the add line item command.
func (h *AddLineItemCommandHandler) Handle(ctx context.Context, cmd AddLineItemCommand) error {
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

	if _, err = aggregate.AddLineItem(cmd.VariantID(), cmd.SKU(), cmd.Quantity(), cmd.UnitPrice()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
