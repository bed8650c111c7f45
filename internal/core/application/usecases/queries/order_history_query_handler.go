package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderHistoryQueryHandler retrieves the status-change ledger for one order.
type OrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewOrderHistoryQueryHandler creates a handler for order history queries.
// Requires a GORM database connection for query execution.
func NewOrderHistoryQueryHandler(db *gorm.DB) OrderHistoryQueryHandler {
	return OrderHistoryQueryHandler{db: db}
}

// Handle returns the order's events oldest first. An unknown order id is an
// error; an existing order always has at least its placement event.
func (h OrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query OrderHistoryQuery,
) (OrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderHistoryQueryResponse{}, err
	}

	var orderCount int64
	if err := h.db.WithContext(ctx).Table("orders").
		Where("id = ?", query.OrderID().Bytes()).
		Count(&orderCount).Error; err != nil {
		return OrderHistoryQueryResponse{}, err
	}
	if orderCount == 0 {
		return OrderHistoryQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			actor_id,
			actor_role,
			description,
			occurred_at
		FROM timeline_events
		WHERE order_id = ?
		ORDER BY occurred_at, id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return OrderHistoryQueryResponse{}, err
	}
	defer rows.Close()

	entries := make([]OrderHistoryEntry, 0)
	for rows.Next() {
		var id, actorID uuid.UUID
		var status, actorRole int
		var description string
		var occurredAt time.Time

		if err = rows.Scan(&id, &status, &actorID, &actorRole, &description, &occurredAt); err != nil {
			return OrderHistoryQueryResponse{}, err
		}

		eventID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return OrderHistoryQueryResponse{}, idErr
		}

		actor, idErr := kernel.UUIDFromBytes(actorID[:])
		if idErr != nil {
			return OrderHistoryQueryResponse{}, idErr
		}

		entries = append(entries, OrderHistoryEntry{
			EventID:     eventID,
			Status:      order.Status(status),
			ActorID:     actor,
			ActorRole:   order.Role(actorRole),
			Description: description,
			OccurredAt:  occurredAt,
		})
	}

	if err = rows.Err(); err != nil {
		return OrderHistoryQueryResponse{}, err
	}

	return OrderHistoryQueryResponse{
		OrderID: query.OrderID(),
		Events:  entries,
	}, nil
}
