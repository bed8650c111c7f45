package timeline

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// ErrEventIsNotConstructed is returned when an Event was not created through
// the NewEvent or RestoreEvent factory functions.
var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent or RestoreEvent")

// Event records one status change on one order: the status entered, who
// performed the transition, when, and an optional human-readable description.
// Events are immutable once constructed.
type Event struct {
	id          kernel.UUID
	orderID     kernel.UUID
	status      order.Status
	actorID     kernel.UUID
	actorRole   order.Role
	description string
	occurredAt  time.Time

	isConstructed bool
}

// NewEvent creates a ledger event for a status change on orderID performed by
// the actor at occurredAt.
func NewEvent(
	id kernel.UUID,
	orderID kernel.UUID,
	status order.Status,
	actorID kernel.UUID,
	actorRole order.Role,
	description string,
	occurredAt time.Time,
) (*Event, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		status.Validate(),
		actorID.Validate(),
		actorRole.Validate(),
	); err != nil {
		return nil, err
	}
	if occurredAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("occurredAt")
	}

	return &Event{
		id:            id,
		orderID:       orderID,
		status:        status,
		actorID:       actorID,
		actorRole:     actorRole,
		description:   description,
		occurredAt:    occurredAt,
		isConstructed: true,
	}, nil
}

// RestoreEvent rehydrates an Event from persistence.
// It applies the same validation as NewEvent.
func RestoreEvent(
	id kernel.UUID,
	orderID kernel.UUID,
	status order.Status,
	actorID kernel.UUID,
	actorRole order.Role,
	description string,
	occurredAt time.Time,
) (*Event, error) {
	return NewEvent(id, orderID, status, actorID, actorRole, description, occurredAt)
}

// Validate ensures the Event was created through a factory function.
func (e *Event) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

// ID returns the event's unique identifier.
func (e *Event) ID() kernel.UUID {
	return e.id
}

// OrderID returns the identifier of the order this event belongs to.
func (e *Event) OrderID() kernel.UUID {
	return e.orderID
}

// Status returns the status the order entered with this event.
func (e *Event) Status() order.Status {
	return e.status
}

// ActorID returns the identifier of the user who performed the transition.
func (e *Event) ActorID() kernel.UUID {
	return e.actorID
}

// ActorRole returns the role the actor held when performing the transition.
func (e *Event) ActorRole() order.Role {
	return e.actorRole
}

// Description returns the optional free-text description of the change.
func (e *Event) Description() string {
	return e.description
}

// OccurredAt returns the server-clock timestamp of the transition.
func (e *Event) OccurredAt() time.Time {
	return e.occurredAt
}

// ValidateWalk verifies that an ascending event history is a legal walk of
// the fulfillment state machine: the first event enters Received, timestamps
// never move backward, and every consecutive status pair is a legal edge.
// An empty history is valid (order not yet created).
func ValidateWalk(events []*Event) error {
	if len(events) == 0 {
		return nil
	}

	if events[0].Status() != order.StatusReceived {
		return errs.NewValueIsInvalidErrorWithCause("history",
			errors.New("first event must enter Received"))
	}

	for i := 1; i < len(events); i++ {
		prev, cur := events[i-1], events[i]
		if cur.OccurredAt().Before(prev.OccurredAt()) {
			return errs.NewValueIsInvalidErrorWithCause("history",
				errors.New("event timestamps must not move backward"))
		}
		if !prev.Status().CanReach(cur.Status()) {
			return errs.NewIllegalTransitionError(
				prev.Status().String(), cur.Status().String(), "history", "no such edge")
		}
	}

	return nil
}
