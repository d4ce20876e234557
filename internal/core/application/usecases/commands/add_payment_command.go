package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrAddPaymentCommandIsNotConstructed = errors.New(
		"AddPaymentCommand must be created via NewAddPaymentCommand constructor",
	)
	ErrAmountIsInvalid = errors.New("amount must be greater than 0")
)

// AddPaymentCommand represents a request to record a pending payment
// against an order.
type AddPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	amount  int64

	guard guard.ConstructorGuard
}

// NewAddPaymentCommand creates a command to record a payment.
func NewAddPaymentCommand(orderID kernel.UUID, amount int64) (AddPaymentCommand, error) {
	cmd := AddPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAmount(amount),
	); err != nil {
		return AddPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddPaymentCommand) Validate() error {
	return c.guard.Validate(ErrAddPaymentCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c AddPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Amount returns the payment amount in minor currency units.
func (c AddPaymentCommand) Amount() int64 {
	return c.amount
}

func (c *AddPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AddPaymentCommand) setAmount(amount int64) error {
	if amount <= 0 {
		return ErrAmountIsInvalid
	}

	c.amount = amount
	return nil
}
