package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with a single forward path and a guarded
// cancel branch:
//
//	Cart ──> Address ──> Delivery ──> Payment ──> Confirm ──> Complete
//	  │         │           │            │           │
//	  └─────────┴───────────┴────────────┴───────────┴──> Canceled
//
// Complete and Canceled are terminal: no further transitions are allowed.
// The transition guards that depend on order content (addresses set, payment
// covered, inventory allocated) live on the Order aggregate; Status only
// enforces the shape of the graph.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusCart is the initial status: line items may be freely edited.
	StatusCart

	// StatusAddress indicates the checkout has started and addresses are being collected.
	StatusAddress

	// StatusDelivery indicates addresses are set and a shipping method is being chosen.
	StatusDelivery

	// StatusPayment indicates the shipping method is set and payment is being collected.
	StatusPayment

	// StatusConfirm indicates payment covers the order and the buyer is reviewing.
	StatusConfirm

	// StatusComplete indicates the order is placed. Terminal.
	StatusComplete

	// StatusCanceled indicates the order was abandoned or voided. Terminal.
	StatusCanceled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:  "Unknown",
		StatusCart:     "Cart",
		StatusAddress:  "Address",
		StatusDelivery: "Delivery",
		StatusPayment:  "Payment",
		StatusConfirm:  "Confirm",
		StatusComplete: "Complete",
		StatusCanceled: "Canceled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusCart:     "Cart",
		StatusAddress:  "Address",
		StatusDelivery: "Delivery",
		StatusPayment:  "Payment",
		StatusConfirm:  "Confirm",
		StatusComplete: "Complete",
		StatusCanceled: "Canceled",
	}
}

// Validate checks if the Status value is valid.
// StatusUnknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusComplete || s == StatusCanceled
}

// Next returns the next status on the forward checkout path.
//
// Valid transitions:
//   - Cart -> Address -> Delivery -> Payment -> Confirm -> Complete
//
// Returns an error for terminal or invalid statuses. Content-dependent guards
// (addresses set, sufficient payment, complete allocation) are enforced by
// Order.Next, not here.
func (s Status) Next() (Status, error) {
	switch s {
	case StatusCart:
		return StatusAddress, nil
	case StatusAddress:
		return StatusDelivery, nil
	case StatusDelivery:
		return StatusPayment, nil
	case StatusPayment:
		return StatusConfirm, nil
	case StatusConfirm:
		return StatusComplete, nil
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s has no next status", s.String()),
		)
	}
}

// Cancel transitions the status to Canceled.
//
// Valid from every non-terminal status. The shipped-items guard is enforced
// by Order.Cancel, which inspects shipments before delegating here.
func (s Status) Cancel() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s.IsTerminal() {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", s.String()),
		)
	}

	return StatusCanceled, nil
}
