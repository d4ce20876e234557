package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/guard"
)

var ErrPlanFulfillmentCommandIsNotConstructed = errors.New(
	"PlanFulfillmentCommand must be created via NewPlanFulfillmentCommand constructor",
)

// PlanFulfillmentCommand represents a request to plan and apply fulfillment
// for an order's unallocated line items using a named strategy.
type PlanFulfillmentCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	strategyName services.StrategyName

	guard guard.ConstructorGuard
}

// NewPlanFulfillmentCommand creates a command to plan fulfillment.
// The strategy name is resolved by the handler; unknown names fail there
// with services.ErrUnknownStrategy.
func NewPlanFulfillmentCommand(orderID kernel.UUID, strategyName services.StrategyName) (PlanFulfillmentCommand, error) {
	cmd := PlanFulfillmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return PlanFulfillmentCommand{}, err
	}

	cmd.strategyName = strategyName
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlanFulfillmentCommand) Validate() error {
	return c.guard.Validate(ErrPlanFulfillmentCommandIsNotConstructed)
}

// OrderID returns the order to plan for.
func (c PlanFulfillmentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// StrategyName returns the requested ranking policy.
func (c PlanFulfillmentCommand) StrategyName() services.StrategyName {
	return c.strategyName
}

func (c *PlanFulfillmentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
