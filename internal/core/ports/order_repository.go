package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities.
// It is the only component allowed to write order state.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order while acquiring an exclusive row lock
	// for the duration of the surrounding transaction. Used by the transition
	// path to serialize concurrent writers across service instances.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllByAgent retrieves every order assigned to the given delivery agent.
	// Used by the dashboard aggregation.
	GetAllByAgent(ctx context.Context, agentID kernel.UUID) ([]*order.Order, error)

	// GetAllOverdue retrieves orders whose estimated delivery target has
	// passed as of the given instant and that are neither Delivered nor
	// Cancelled. Used by the overdue-delivery watchdog.
	GetAllOverdue(ctx context.Context, asOf time.Time) ([]*order.Order, error)
}
