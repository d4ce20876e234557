package commands

import (
	"context"
)

// AdjustStockCommandHandler applies a signed on-hand correction to a ledger.
type AdjustStockCommandHandler struct {
	uowFactory StockUoWFactory
}

// NewAdjustStockCommandHandler creates a handler for stock adjustments.
func NewAdjustStockCommandHandler(uowFactory StockUoWFactory) AdjustStockCommandHandler {
	return AdjustStockCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the adjustment. A negative delta may not take on-hand
// below zero; the aggregate rejects it.
func (h *AdjustStockCommandHandler) Handle(ctx context.Context, cmd AdjustStockCommand) error {
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

	aggregate, err := uow.StockItemRepository().GetByVariantAndLocation(ctx, cmd.VariantID(), cmd.LocationID())
	if err != nil {
		return err
	}

	if err = aggregate.Adjust(cmd.Delta(), cmd.Originator()); err != nil {
		return err
	}

	if err = uow.StockItemRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
