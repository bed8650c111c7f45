package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order is the aggregate root tracking a purchase from placement through
// delivery. All mutations go through validated methods: ApplyTransition is
// the single gate for status changes and AssignAgent for delivery-agent
// binding. Orders are never deleted; cancellation is a terminal status.
//
// Invariants:
//   - total always equals subtotal + deliveryFee
//   - cancellationReason is set if and only if status is Cancelled
//   - deliveredAt is set if and only if status is Delivered
//   - status changes follow the legal-edge table in transition.go
type Order struct {
	id                kernel.UUID
	customerID        kernel.UUID
	agentID           *kernel.UUID
	deliveryMethodID  kernel.UUID
	paymentMethodID   kernel.UUID
	shippingAddressID kernel.UUID

	status        Status
	paymentStatus PaymentStatus

	subtotal    kernel.Money
	deliveryFee kernel.Money
	total       kernel.Money

	notes               string
	cancellationReason  string
	estimatedDeliveryAt *time.Time
	deliveredAt         *time.Time

	items []LineItem

	isConstructed bool
}

// NewOrder creates an order in the initial Received status with payment
// Pending and no delivery agent. All relation identifiers are required, the
// financial breakdown must satisfy total == subtotal + deliveryFee, and at
// least one line item must be supplied.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	deliveryMethodID kernel.UUID,
	paymentMethodID kernel.UUID,
	shippingAddressID kernel.UUID,
	subtotal kernel.Money,
	deliveryFee kernel.Money,
	total kernel.Money,
	notes string,
	estimatedDeliveryAt *time.Time,
	items []LineItem,
) (*Order, error) {
	order := &Order{
		status:        StatusReceived,
		paymentStatus: PaymentPending,
		notes:         notes,
		isConstructed: true,
	}

	if estimatedDeliveryAt != nil {
		t := *estimatedDeliveryAt
		order.estimatedDeliveryAt = &t
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setDeliveryMethodID(deliveryMethodID),
		order.setPaymentMethodID(paymentMethodID),
		order.setShippingAddressID(shippingAddressID),
		order.setFinancials(subtotal, deliveryFee, total),
		order.setItems(items),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrderParams carries every persisted field needed to rehydrate an
// Order aggregate from storage.
type RestoreOrderParams struct {
	ID                  kernel.UUID
	CustomerID          kernel.UUID
	AgentID             *kernel.UUID
	DeliveryMethodID    kernel.UUID
	PaymentMethodID     kernel.UUID
	ShippingAddressID   kernel.UUID
	Status              Status
	PaymentStatus       PaymentStatus
	Subtotal            kernel.Money
	DeliveryFee         kernel.Money
	Total               kernel.Money
	Notes               string
	CancellationReason  string
	EstimatedDeliveryAt *time.Time
	DeliveredAt         *time.Time
	Items               []LineItem
}

// RestoreOrder rehydrates an Order from persistence. Unlike NewOrder it
// accepts any valid status and the optional fields that later lifecycle
// stages produce, but it still verifies every aggregate invariant so corrupt
// rows cannot become live aggregates.
func RestoreOrder(params RestoreOrderParams) (*Order, error) {
	order := &Order{
		notes:              params.Notes,
		cancellationReason: params.CancellationReason,
		isConstructed:      true,
	}

	if err := errors.Join(
		order.setID(params.ID),
		order.setCustomerID(params.CustomerID),
		order.setDeliveryMethodID(params.DeliveryMethodID),
		order.setPaymentMethodID(params.PaymentMethodID),
		order.setShippingAddressID(params.ShippingAddressID),
		order.setFinancials(params.Subtotal, params.DeliveryFee, params.Total),
		order.setItems(params.Items),
		params.Status.Validate(),
		params.PaymentStatus.Validate(),
	); err != nil {
		return nil, err
	}

	order.status = params.Status
	order.paymentStatus = params.PaymentStatus

	if params.AgentID != nil {
		if err := params.AgentID.Validate(); err != nil {
			return nil, err
		}
		agentID := *params.AgentID
		order.agentID = &agentID
	}
	if params.EstimatedDeliveryAt != nil {
		t := *params.EstimatedDeliveryAt
		order.estimatedDeliveryAt = &t
	}
	if params.DeliveredAt != nil {
		t := *params.DeliveredAt
		order.deliveredAt = &t
	}

	if order.status == StatusCancelled && order.cancellationReason == "" {
		return nil, errs.NewValueIsRequiredError("cancellationReason")
	}
	if order.status == StatusDelivered && order.deliveredAt == nil {
		return nil, errs.NewValueIsRequiredError("deliveredAt")
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory function. Call this when an Order crosses a trust boundary, e.g.
// before persisting.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the identifier of the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// AgentID returns the assigned delivery agent's identifier.
// Returns nil while no agent is assigned.
func (o *Order) AgentID() *kernel.UUID {
	return o.agentID
}

// DeliveryMethodID returns the identifier of the chosen delivery method.
func (o *Order) DeliveryMethodID() kernel.UUID {
	return o.deliveryMethodID
}

// PaymentMethodID returns the identifier of the chosen payment method.
func (o *Order) PaymentMethodID() kernel.UUID {
	return o.paymentMethodID
}

// ShippingAddressID returns the identifier of the shipping address.
func (o *Order) ShippingAddressID() kernel.UUID {
	return o.shippingAddressID
}

// Status returns the current fulfillment status.
func (o *Order) Status() Status {
	return o.status
}

// PaymentStatus returns the current payment status.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// Subtotal returns the sum of line amounts before the delivery fee.
func (o *Order) Subtotal() kernel.Money {
	return o.subtotal
}

// DeliveryFee returns the delivery fee charged for the order.
func (o *Order) DeliveryFee() kernel.Money {
	return o.deliveryFee
}

// Total returns the order total. Always subtotal + deliveryFee.
func (o *Order) Total() kernel.Money {
	return o.total
}

// Notes returns the optional free-text customer instruction.
func (o *Order) Notes() string {
	return o.notes
}

// CancellationReason returns the reason recorded when the order was
// cancelled. Empty unless status is Cancelled.
func (o *Order) CancellationReason() string {
	return o.cancellationReason
}

// EstimatedDeliveryAt returns the optional delivery target timestamp.
func (o *Order) EstimatedDeliveryAt() *time.Time {
	return o.estimatedDeliveryAt
}

// DeliveredAt returns the timestamp of the Delivered transition.
// Nil unless status is Delivered; redelivery clears it.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// Items returns a copy of the immutable line item snapshots.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// ApplyTransition moves the order to next if the state machine permits the
// edge for actor, applying the edge's side effects atomically with the status
// change: transitions into Delivered stamp deliveredAt with now, the
// redelivery move clears it, and transitions into Cancelled record reason.
//
// A missing cancellation reason on a cancelling edge fails with a
// ValueIsRequiredError before any field is touched; an illegal edge fails
// with an IllegalTransitionError. On failure the order is unchanged.
func (o *Order) ApplyTransition(next Status, actor Role, reason string, now time.Time) error {
	effect, err := o.status.TransitionTo(next, actor)
	if err != nil {
		return err
	}

	if effect.RequireCancellationReason && strings.TrimSpace(reason) == "" {
		return errs.NewValueIsRequiredError("cancellationReason")
	}

	o.status = next

	if effect.SetDeliveredAt {
		t := now
		o.deliveredAt = &t
	}
	if effect.ClearDeliveredAt {
		o.deliveredAt = nil
	}
	if effect.RequireCancellationReason {
		o.cancellationReason = reason
	}

	return nil
}

// AssignAgent binds the order to a delivery agent. Assigning the agent that
// already holds the order is a no-op, keeping the operation idempotent under
// retries. Reassigning to a different agent is rejected once the order is
// Shipped or Delivered (already in transit or completed), and assignment to a
// Cancelled order is always rejected.
//
// Assignment is not a status transition and records no timeline event.
func (o *Order) AssignAgent(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	if o.agentID != nil && o.agentID.IsEqual(agentID) {
		return nil
	}

	if o.status.IsTerminal() {
		return errs.NewInvalidAssignmentError(o.id.String(), o.status.String())
	}
	if o.agentID != nil && (o.status == StatusShipped || o.status == StatusDelivered) {
		return errs.NewInvalidAssignmentError(o.id.String(), o.status.String())
	}

	o.agentID = &agentID
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setDeliveryMethodID(deliveryMethodID kernel.UUID) error {
	if err := deliveryMethodID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("deliveryMethodId", err)
	}
	o.deliveryMethodID = deliveryMethodID
	return nil
}

func (o *Order) setPaymentMethodID(paymentMethodID kernel.UUID) error {
	if err := paymentMethodID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("paymentMethodId", err)
	}
	o.paymentMethodID = paymentMethodID
	return nil
}

func (o *Order) setShippingAddressID(shippingAddressID kernel.UUID) error {
	if err := shippingAddressID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shippingAddressId", err)
	}
	o.shippingAddressID = shippingAddressID
	return nil
}

func (o *Order) setFinancials(subtotal, deliveryFee, total kernel.Money) error {
	if err := errors.Join(subtotal.Validate(), deliveryFee.Validate(), total.Validate()); err != nil {
		return err
	}

	expected, err := subtotal.Add(deliveryFee)
	if err != nil {
		return err
	}

	equal, err := total.IsEqual(expected)
	if err != nil {
		return err
	}
	if !equal {
		return errs.NewValueIsInvalidErrorWithCause("total",
			fmt.Errorf("total %s does not equal subtotal %s plus delivery fee %s",
				total, subtotal, deliveryFee))
	}

	o.subtotal = subtotal
	o.deliveryFee = deliveryFee
	o.total = total
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("lineItems")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	return nil
}
