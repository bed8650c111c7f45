package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrOrderHistoryQueryIsNotConstructed = errors.New(
	"OrderHistoryQuery must be created via NewOrderHistoryQuery constructor",
)

// OrderHistoryQuery retrieves the full status-change ledger for one order,
// oldest first. This is the audit view: every transition ever applied, who
// performed it and when.
type OrderHistoryQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewOrderHistoryQuery creates a history query for the given order.
func NewOrderHistoryQuery(orderID kernel.UUID) (OrderHistoryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return OrderHistoryQuery{}, err
	}

	return OrderHistoryQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrOrderHistoryQueryIsNotConstructed if validation fails.
func (q OrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrOrderHistoryQueryIsNotConstructed)
}

// OrderID returns the identifier of the order whose history is requested.
func (q OrderHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderHistoryEntry represents one ledger event in the response.
type OrderHistoryEntry struct {
	EventID     kernel.UUID
	Status      order.Status
	ActorID     kernel.UUID
	ActorRole   order.Role
	Description string
	OccurredAt  time.Time
}

// OrderHistoryQueryResponse is the ordered ledger for one order.
type OrderHistoryQueryResponse struct {
	OrderID kernel.UUID
	Events  []OrderHistoryEntry
}
