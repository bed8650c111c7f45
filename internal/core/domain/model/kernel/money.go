package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrMoneyIsNotConstructed is returned when attempting to use an improperly
// initialized Money value. Money must be created via NewMoneyFromCents to
// ensure validity.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoneyFromCents constructor")

// Money represents a non-negative monetary amount stored as integer cents.
// Money is an immutable value object; arithmetic never mutates the receiver.
// The zero value of Money is invalid and will fail validation - use the
// constructor to create instances.
//
// Example:
//
//	subtotal, err := kernel.NewMoneyFromCents(4048)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Printf("Subtotal: %s", subtotal) // Output: Subtotal: 40.48
type Money struct { //nolint:recvcheck //using for validation
	cents int64
	guard guard.ConstructorGuard
}

// NewMoneyFromCents creates a Money value from an amount in cents.
// The amount must not be negative.
func NewMoneyFromCents(cents int64) (Money, error) {
	money := Money{
		guard: guard.NewConstructorGuard(),
	}

	if err := money.setCents(cents); err != nil {
		return Money{}, err
	}

	return money, nil
}

// Cents returns the amount in cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Float64 returns the amount in currency units, e.g. 4848 cents -> 48.48.
// Intended for display and aggregation output only; comparisons and
// arithmetic must use cents.
func (m Money) Float64() float64 {
	return float64(m.cents) / 100
}

// Add returns the sum of two Money values.
// Both operands must be properly constructed.
func (m Money) Add(other Money) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if err := other.Validate(); err != nil {
		return Money{}, err
	}

	return NewMoneyFromCents(m.cents + other.cents)
}

// IsEqual compares two Money values for equality.
// Returns an error if either value was not properly constructed.
func (m Money) IsEqual(other Money) (bool, error) {
	if err := m.Validate(); err != nil {
		return false, err
	}
	if err := other.Validate(); err != nil {
		return false, err
	}

	return m.cents == other.cents, nil
}

// String returns the amount formatted with two decimal places, e.g. "48.48".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}

// Validate checks that the Money value was created through its constructor.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

func (m *Money) setCents(cents int64) error {
	if cents < 0 {
		return errs.NewValueIsInvalidErrorWithCause("money",
			fmt.Errorf("%d cents is negative", cents))
	}
	m.cents = cents
	return nil
}
