package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/timeline"
)

// TimelineRepository defines the persistence contract for the append-only
// status-change ledger. Events are write-once: there is deliberately no
// update or delete method on this interface.
type TimelineRepository interface {
	// Append persists a new ledger event. Appending an event with an id that
	// already exists is an error.
	Append(ctx context.Context, event *timeline.Event) error

	// History retrieves every event for the order, ordered ascending by
	// occurrence time. Returns an empty slice for an order with no events.
	History(ctx context.Context, orderID kernel.UUID) ([]*timeline.Event, error)

	// LatestBefore retrieves the most recent event for the order that
	// occurred at or before the cutoff. Returns an ObjectNotFoundError when
	// no such event exists. Used to reconstruct an order's status at a day
	// boundary for stats correctness.
	LatestBefore(ctx context.Context, orderID kernel.UUID, cutoff time.Time) (*timeline.Event, error)
}
