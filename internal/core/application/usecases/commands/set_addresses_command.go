package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrSetAddressesCommandIsNotConstructed = errors.New(
	"SetAddressesCommand must be created via NewSetAddressesCommand constructor",
)

// AddressFields carries the raw address input for command construction.
// Validation happens when the fields become an order.Address.
type AddressFields struct {
	FullName    string
	Line1       string
	City        string
	Zip         string
	CountryCode string
}

// SetAddressesCommand represents a request to set an order's shipping and
// billing addresses during checkout.
type SetAddressesCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	shippingAddress order.Address
	billingAddress  order.Address

	guard guard.ConstructorGuard
}

// NewSetAddressesCommand creates a command to set both checkout addresses.
// Address field validation happens here, so handlers only see valid addresses.
func NewSetAddressesCommand(orderID kernel.UUID, shipping, billing AddressFields) (SetAddressesCommand, error) {
	cmd := SetAddressesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return SetAddressesCommand{}, err
	}

	shippingAddress, err := order.NewAddress(shipping.FullName, shipping.Line1, shipping.City, shipping.Zip, shipping.CountryCode)
	if err != nil {
		return SetAddressesCommand{}, err
	}
	billingAddress, err := order.NewAddress(billing.FullName, billing.Line1, billing.City, billing.Zip, billing.CountryCode)
	if err != nil {
		return SetAddressesCommand{}, err
	}

	cmd.shippingAddress = shippingAddress
	cmd.billingAddress = billingAddress
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetAddressesCommand) Validate() error {
	return c.guard.Validate(ErrSetAddressesCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c SetAddressesCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ShippingAddress returns the destination address.
func (c SetAddressesCommand) ShippingAddress() order.Address {
	return c.shippingAddress
}

// BillingAddress returns the payer's address.
func (c SetAddressesCommand) BillingAddress() order.Address {
	return c.billingAddress
}

func (c *SetAddressesCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
