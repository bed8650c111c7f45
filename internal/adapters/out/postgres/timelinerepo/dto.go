// Package timelinerepo persists the append-only status-change ledger.
// Events are written once and never updated or deleted.
package timelinerepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/timeline"

	"github.com/google/uuid"
)

// EventDTO represents the database structure for persisting timeline events.
// The composite index serves both ascending history reads and the
// latest-before-cutoff lookup used by the stats day window.
type EventDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index:idx_timeline_order_occurred,priority:1"`
	Status      int
	ActorID     uuid.UUID `gorm:"type:uuid"`
	ActorRole   int
	Description string
	OccurredAt  time.Time `gorm:"index:idx_timeline_order_occurred,priority:2"`
}

// TableName specifies the database table name for timeline events.
func (EventDTO) TableName() string {
	return "timeline_events"
}

func fromDomain(event *timeline.Event) EventDTO {
	return EventDTO{
		ID:          event.ID().Bytes(),
		OrderID:     event.OrderID().Bytes(),
		Status:      int(event.Status()),
		ActorID:     event.ActorID().Bytes(),
		ActorRole:   int(event.ActorRole()),
		Description: event.Description(),
		OccurredAt:  event.OccurredAt(),
	}
}

func toDomain(dto EventDTO) (*timeline.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return nil, err
	}

	return timeline.RestoreEvent(
		id,
		orderID,
		order.Status(dto.Status),
		actorID,
		order.Role(dto.ActorRole),
		dto.Description,
		dto.OccurredAt,
	)
}
