package commands

import (
	"context"
)

// UpdateLineItemQuantityCommandHandler changes a line item's quantity and
// reconciles any released units against the stock ledger before commit.
type UpdateLineItemQuantityCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateLineItemQuantityCommandHandler creates a handler for quantity changes.
func NewUpdateLineItemQuantityCommandHandler(uowFactory OrderUoWFactory) UpdateLineItemQuantityCommandHandler {
	return UpdateLineItemQuantityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the quantity change. A decrease below the allocated unit
// count raises release events; their reconciliation shares this transaction,
// so a ledger failure rolls back the quantity change too.
func (h *UpdateLineItemQuantityCommandHandler) Handle(ctx context.Context, cmd UpdateLineItemQuantityCommand) error {
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

	if err = aggregate.UpdateLineItemQuantity(cmd.LineItemID(), cmd.Quantity()); err != nil {
		return err
	}

	if err = reconcileAndSave(ctx, uow, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
