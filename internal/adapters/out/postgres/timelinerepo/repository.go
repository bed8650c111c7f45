package timelinerepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/timeline"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTimelineRepository implements TimelineRepository using GORM.
type GormTimelineRepository struct {
	db *gorm.DB
}

// NewGormTimelineRepository creates a new GORM timeline repository.
func NewGormTimelineRepository(db *gorm.DB) *GormTimelineRepository {
	return &GormTimelineRepository{db: db}
}

// Append persists a new ledger event. The primary key constraint rejects a
// second write with the same event id.
func (r *GormTimelineRepository) Append(ctx context.Context, event *timeline.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := fromDomain(event)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// History retrieves every event for the order in ascending occurrence order.
// Event id breaks ties between events sharing a timestamp so the walk is
// deterministic.
func (r *GormTimelineRepository) History(ctx context.Context, orderID kernel.UUID) ([]*timeline.Event, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EventDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("occurred_at asc, id asc").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	events := make([]*timeline.Event, 0, len(dtos))
	for _, dto := range dtos {
		event, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}

// LatestBefore retrieves the most recent event for the order occurring at or
// before the cutoff.
func (r *GormTimelineRepository) LatestBefore(ctx context.Context, orderID kernel.UUID, cutoff time.Time) (*timeline.Event, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto EventDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ? AND occurred_at <= ?", orderID.Bytes(), cutoff).
		Order("occurred_at desc, id desc").
		First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("timeline event", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
