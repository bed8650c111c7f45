package services

import (
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// AgentStats is the derived dashboard snapshot for one delivery agent.
// It is computed on demand and never stored.
type AgentStats struct {
	// PendingCount is the number of the agent's orders in Received or Processing.
	PendingCount int

	// InRouteCount is the number of the agent's orders in Shipped.
	InRouteCount int

	// DeliveredTodayCount is the number of orders delivered within the
	// current calendar day of the requested timezone, up to the asOf instant.
	DeliveredTodayCount int

	// EarningsTodayCents is the sum of delivery fees over the orders counted
	// in DeliveredTodayCount.
	EarningsTodayCents int64
}

// StatsAggregator computes per-agent dashboard metrics from order aggregates.
//
// The aggregator is a pure domain service: callers load the agent's orders
// from a consistent read snapshot and pass them in, so the computation never
// holds the per-order transition lock.
type StatsAggregator struct{}

// NewStatsAggregator creates a StatsAggregator instance.
func NewStatsAggregator() StatsAggregator {
	return StatsAggregator{}
}

// Dashboard computes AgentStats over the supplied orders as of the given
// instant. The delivered-today window is [startOfDay(asOf), asOf] in loc:
// an order delivered at 23:59 yesterday or one second after asOf is excluded.
//
// Orders whose status is Delivered but whose deliveredAt lies outside the
// window count toward nothing: they are neither pending nor in route nor
// delivered today.
func (StatsAggregator) Dashboard(orders []*order.Order, asOf time.Time, loc *time.Location) AgentStats {
	local := asOf.In(loc)
	startOfDay := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	var stats AgentStats
	for _, o := range orders {
		switch o.Status() {
		case order.StatusReceived, order.StatusProcessing:
			stats.PendingCount++
		case order.StatusShipped:
			stats.InRouteCount++
		case order.StatusDelivered:
			deliveredAt := o.DeliveredAt()
			if deliveredAt == nil {
				continue
			}
			if deliveredAt.Before(startOfDay) || deliveredAt.After(asOf) {
				continue
			}
			stats.DeliveredTodayCount++
			stats.EarningsTodayCents += o.DeliveryFee().Cents()
		case order.StatusUnknown, order.StatusCancelled:
			// Cancelled orders contribute to no metric.
		}
	}

	return stats
}
