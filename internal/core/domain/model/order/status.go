package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the fulfillment stage of an order.
// It implements a state machine with defined transitions to ensure orders
// follow the correct business workflow. The integer encoding is canonical:
// Received is always 1, Cancelled is always 5. Status is a value object that
// validates state transitions and provides string representations for
// persistence and display.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusReceived is the initial status when an order is placed by checkout.
	// Orders in this status have no delivery agent yet.
	StatusReceived

	// StatusProcessing indicates the order has been accepted and is being prepared.
	StatusProcessing

	// StatusShipped indicates the order is in route with a delivery agent.
	StatusShipped

	// StatusDelivered indicates the order reached the customer.
	// The only outward edge is the redelivery move back to Shipped.
	StatusDelivered

	// StatusCancelled is a terminal status. Orders are never deleted;
	// cancellation always carries a reason.
	StatusCancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "Unknown",
		StatusReceived:   "Received",
		StatusProcessing: "Processing",
		StatusShipped:    "Shipped",
		StatusDelivered:  "Delivered",
		StatusCancelled:  "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusReceived:   "Received",
		StatusProcessing: "Processing",
		StatusShipped:    "Shipped",
		StatusDelivered:  "Delivered",
		StatusCancelled:  "Cancelled",
	}
}

// StatusFromString parses a status name as used on the wire and in filters.
// Returns an error for unrecognized names.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status name", s))
}

// Validate checks if the Status value is valid.
// Valid statuses are Received, Processing, Shipped, Delivered and Cancelled.
// StatusUnknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Returns "Unknown" for invalid status values. Implements fmt.Stringer and is
// safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no outward edges exist from the status.
// Cancelled is the only terminal status; Delivered still allows redelivery.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled
}
