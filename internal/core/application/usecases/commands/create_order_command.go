package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrLineItemsAreRequired = errors.New("at least one line item is required")
)

// LineItemInput carries one order line as received from the client.
// Unit prices are integer cents.
type LineItemInput struct {
	ProductID      kernel.UUID
	Quantity       int
	UnitPriceCents int64
}

// CreateOrderCommand represents a request to place a new order.
// Carries the relation identifiers, the financial breakdown in cents and the
// line item snapshots. The total must equal subtotal plus delivery fee; the
// aggregate enforces this on construction.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), customerID,
//	    deliveryMethodID, paymentMethodID, addressID,
//	    4048, 800, 4848, "leave at the door", nil, items)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID             kernel.UUID
	customerID          kernel.UUID
	deliveryMethodID    kernel.UUID
	paymentMethodID     kernel.UUID
	shippingAddressID   kernel.UUID
	subtotalCents       int64
	deliveryFeeCents    int64
	totalCents          int64
	notes               string
	estimatedDeliveryAt *time.Time
	items               []LineItemInput

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates that all relation identifiers are valid and that at least one
// line item is present. Financial consistency is checked by the aggregate.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	deliveryMethodID kernel.UUID,
	paymentMethodID kernel.UUID,
	shippingAddressID kernel.UUID,
	subtotalCents int64,
	deliveryFeeCents int64,
	totalCents int64,
	notes string,
	estimatedDeliveryAt *time.Time,
	items []LineItemInput,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		subtotalCents:    subtotalCents,
		deliveryFeeCents: deliveryFeeCents,
		totalCents:       totalCents,
		notes:            notes,
		guard:            guard.NewConstructorGuard(),
	}

	if estimatedDeliveryAt != nil {
		t := *estimatedDeliveryAt
		orderCommand.estimatedDeliveryAt = &t
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setCustomerID(customerID),
		orderCommand.setDeliveryMethodID(deliveryMethodID),
		orderCommand.setPaymentMethodID(paymentMethodID),
		orderCommand.setShippingAddressID(shippingAddressID),
		orderCommand.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the identifier of the customer placing the order.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// DeliveryMethodID returns the identifier of the chosen delivery method.
func (c CreateOrderCommand) DeliveryMethodID() kernel.UUID {
	return c.deliveryMethodID
}

// PaymentMethodID returns the identifier of the chosen payment method.
func (c CreateOrderCommand) PaymentMethodID() kernel.UUID {
	return c.paymentMethodID
}

// ShippingAddressID returns the identifier of the shipping address.
func (c CreateOrderCommand) ShippingAddressID() kernel.UUID {
	return c.shippingAddressID
}

// SubtotalCents returns the sum of line amounts in cents.
func (c CreateOrderCommand) SubtotalCents() int64 {
	return c.subtotalCents
}

// DeliveryFeeCents returns the delivery fee in cents.
func (c CreateOrderCommand) DeliveryFeeCents() int64 {
	return c.deliveryFeeCents
}

// TotalCents returns the order total in cents.
func (c CreateOrderCommand) TotalCents() int64 {
	return c.totalCents
}

// Notes returns the optional free-text customer instruction.
func (c CreateOrderCommand) Notes() string {
	return c.notes
}

// EstimatedDeliveryAt returns the optional delivery target timestamp.
func (c CreateOrderCommand) EstimatedDeliveryAt() *time.Time {
	return c.estimatedDeliveryAt
}

// Items returns a copy of the line item inputs.
func (c CreateOrderCommand) Items() []LineItemInput {
	items := make([]LineItemInput, len(c.items))
	copy(items, c.items)
	return items
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setDeliveryMethodID(deliveryMethodID kernel.UUID) error {
	if err := deliveryMethodID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("deliveryMethodId", err)
	}

	c.deliveryMethodID = deliveryMethodID
	return nil
}

func (c *CreateOrderCommand) setPaymentMethodID(paymentMethodID kernel.UUID) error {
	if err := paymentMethodID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("paymentMethodId", err)
	}

	c.paymentMethodID = paymentMethodID
	return nil
}

func (c *CreateOrderCommand) setShippingAddressID(shippingAddressID kernel.UUID) error {
	if err := shippingAddressID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shippingAddressId", err)
	}

	c.shippingAddressID = shippingAddressID
	return nil
}

func (c *CreateOrderCommand) setItems(items []LineItemInput) error {
	if len(items) == 0 {
		return ErrLineItemsAreRequired
	}

	c.items = make([]LineItemInput, len(items))
	copy(c.items, items)
	return nil
}
