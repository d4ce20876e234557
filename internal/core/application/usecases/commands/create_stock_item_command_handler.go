package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stock"
)

// CreateStockItemCommandHandler opens a stock ledger for a variant at a
// location. The initial quantity lands in the movement trail as an
// initial-stock entry.
type CreateStockItemCommandHandler struct {
	uowFactory StockUoWFactory
	clock      kernel.Clock
}

// NewCreateStockItemCommandHandler creates a handler for opening stock ledgers.
func NewCreateStockItemCommandHandler(uowFactory StockUoWFactory, clock kernel.Clock) CreateStockItemCommandHandler {
	return CreateStockItemCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle processes the ledger creation command.
func (h *CreateStockItemCommandHandler) Handle(ctx context.Context, cmd CreateStockItemCommand) error {
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

	aggregate, err := stock.NewStockItem(
		cmd.StockItemID(),
		cmd.VariantID(),
		cmd.LocationID(),
		cmd.SKU(),
		cmd.OnHand(),
		cmd.Backorderable(),
		cmd.MaxBackorderQuantity(),
		h.clock,
	)
	if err != nil {
		return err
	}

	if err = uow.StockItemRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
