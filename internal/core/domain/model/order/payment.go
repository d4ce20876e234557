package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrPaymentIsNotConstructed is returned when using an improperly
// initialized Payment.
var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")

// PaymentState represents the lifecycle state of a payment.
// Gateway protocols are out of scope; the order only needs to know whether a
// payment still counts toward covering the order total.
type PaymentState int

const (
	// PaymentUnknown represents an invalid or undefined payment state.
	PaymentUnknown PaymentState = iota

	// PaymentPending indicates the payment is authorized but not yet captured.
	PaymentPending

	// PaymentCaptured indicates the funds were captured.
	PaymentCaptured

	// PaymentFailed indicates the payment was declined or errored.
	PaymentFailed

	// PaymentVoid indicates the payment was voided before capture.
	PaymentVoid
)

// String returns the human-readable name of the payment state.
func (s PaymentState) String() string {
	switch s {
	case PaymentPending:
		return "Pending"
	case PaymentCaptured:
		return "Captured"
	case PaymentFailed:
		return "Failed"
	case PaymentVoid:
		return "Void"
	default:
		return "Unknown"
	}
}

// Validate checks if the PaymentState value is valid.
func (s PaymentState) Validate() error {
	switch s {
	case PaymentPending, PaymentCaptured, PaymentFailed, PaymentVoid:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("payment state is invalid",
			fmt.Errorf("%d is not a valid payment state", s))
	}
}

// Payment records money applied against the order.
// Amounts are in the order's currency, minor units.
type Payment struct {
	id     kernel.UUID
	amount int64
	state  PaymentState
	guard  guard.ConstructorGuard
}

// NewPayment creates a pending payment for the given amount.
func NewPayment(id kernel.UUID, amount int64) (*Payment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is not greater than 0", amount))
	}

	return &Payment{
		id:     id,
		amount: amount,
		state:  PaymentPending,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// RestorePayment reconstructs a payment from persistent storage.
func RestorePayment(id kernel.UUID, amount int64, state PaymentState) (*Payment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := state.Validate(); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is not greater than 0", amount))
	}

	return &Payment{
		id:     id,
		amount: amount,
		state:  state,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Payment was properly constructed.
func (p *Payment) Validate() error {
	if p == nil {
		return ErrPaymentIsNotConstructed
	}
	return p.guard.Validate(ErrPaymentIsNotConstructed)
}

// ID returns the payment's unique identifier.
func (p *Payment) ID() kernel.UUID {
	return p.id
}

// Amount returns the payment amount in minor currency units.
func (p *Payment) Amount() int64 {
	return p.amount
}

// State returns the payment's current state.
func (p *Payment) State() PaymentState {
	return p.state
}

// Capture marks a pending payment as captured.
func (p *Payment) Capture() error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.state != PaymentPending {
		return errs.NewValueIsInvalidErrorWithCause("payment state is invalid",
			fmt.Errorf("%s is not a valid state to capture from", p.state.String()))
	}
	p.state = PaymentCaptured
	return nil
}

// Fail marks a pending payment as failed.
func (p *Payment) Fail() error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.state != PaymentPending {
		return errs.NewValueIsInvalidErrorWithCause("payment state is invalid",
			fmt.Errorf("%s is not a valid state to fail from", p.state.String()))
	}
	p.state = PaymentFailed
	return nil
}

// Void marks a pending payment as voided.
func (p *Payment) Void() error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.state != PaymentPending {
		return errs.NewValueIsInvalidErrorWithCause("payment state is invalid",
			fmt.Errorf("%s is not a valid state to void from", p.state.String()))
	}
	p.state = PaymentVoid
	return nil
}

// countsTowardTotal reports whether the payment still covers part of the
// order total: pending and captured payments count, failed and voided do not.
func (p *Payment) countsTowardTotal() bool {
	return p.state == PaymentPending || p.state == PaymentCaptured
}
