package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrApplyTransitionCommandIsNotConstructed = errors.New(
	"ApplyTransitionCommand must be created via NewApplyTransitionCommand constructor",
)

// ApplyTransitionCommand represents a request to move an order to a new
// fulfillment status. The actor's role decides whether the edge is permitted;
// cancelling edges additionally require a reason.
//
// Example:
//
//	cmd, err := NewApplyTransitionCommand(orderID, order.StatusShipped,
//	    agentID, order.RoleAgent, "", "picked up by agent")
//	if err != nil {
//	    return err
//	}
//
//	handler := NewApplyTransitionCommandHandler(uowFactory, locks)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("transition failed: %w", err)
//	}
type ApplyTransitionCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	next        order.Status
	actorID     kernel.UUID
	actorRole   order.Role
	reason      string
	description string

	guard guard.ConstructorGuard
}

// NewApplyTransitionCommand creates a command to change an order's status.
// Validates the identifiers, the target status and the actor role. Whether
// the edge itself is legal is decided by the aggregate under lock.
func NewApplyTransitionCommand(
	orderID kernel.UUID,
	next order.Status,
	actorID kernel.UUID,
	actorRole order.Role,
	reason string,
	description string,
) (ApplyTransitionCommand, error) {
	cmd := ApplyTransitionCommand{
		reason:      reason,
		description: description,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setNext(next),
		cmd.setActor(actorID, actorRole),
	); err != nil {
		return ApplyTransitionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrApplyTransitionCommandIsNotConstructed if validation fails.
func (c ApplyTransitionCommand) Validate() error {
	return c.guard.Validate(ErrApplyTransitionCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c ApplyTransitionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Next returns the requested target status.
func (c ApplyTransitionCommand) Next() order.Status {
	return c.next
}

// ActorID returns the identifier of the user requesting the transition.
func (c ApplyTransitionCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the role the actor holds.
func (c ApplyTransitionCommand) ActorRole() order.Role {
	return c.actorRole
}

// Reason returns the cancellation reason. Empty for non-cancelling edges.
func (c ApplyTransitionCommand) Reason() string {
	return c.reason
}

// Description returns the optional free-text note recorded on the ledger event.
func (c ApplyTransitionCommand) Description() string {
	return c.description
}

func (c *ApplyTransitionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ApplyTransitionCommand) setNext(next order.Status) error {
	if err := next.Validate(); err != nil {
		return err
	}

	c.next = next
	return nil
}

func (c *ApplyTransitionCommand) setActor(actorID kernel.UUID, actorRole order.Role) error {
	if err := errors.Join(actorID.Validate(), actorRole.Validate()); err != nil {
		return err
	}

	c.actorID = actorID
	c.actorRole = actorRole
	return nil
}
