package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// AgentDashboardQueryHandler computes per-agent dashboard metrics.
// Loads the agent's orders in one read and delegates the counting to the
// StatsAggregator domain service, so day-window rules live in one place.
type AgentDashboardQueryHandler struct {
	orderRepo  ports.OrderRepository
	aggregator services.StatsAggregator
	location   *time.Location
}

// NewAgentDashboardQueryHandler creates a handler for agent dashboard queries.
// The location defines the calendar day used for the delivered-today window.
func NewAgentDashboardQueryHandler(
	orderRepo ports.OrderRepository,
	aggregator services.StatsAggregator,
	location *time.Location,
) AgentDashboardQueryHandler {
	return AgentDashboardQueryHandler{
		orderRepo:  orderRepo,
		aggregator: aggregator,
		location:   location,
	}
}

// Handle computes the dashboard snapshot for the requested agent.
// An agent with no orders gets a zero snapshot, not an error.
func (h AgentDashboardQueryHandler) Handle(
	ctx context.Context,
	query AgentDashboardQuery,
) (AgentDashboardQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return AgentDashboardQueryResponse{}, err
	}

	orders, err := h.orderRepo.GetAllByAgent(ctx, query.AgentID())
	if err != nil {
		return AgentDashboardQueryResponse{}, err
	}

	asOf := time.Now().UTC()
	if query.AsOf() != nil {
		asOf = *query.AsOf()
	}

	stats := h.aggregator.Dashboard(orders, asOf, h.location)

	return AgentDashboardQueryResponse{
		PendingCount:        stats.PendingCount,
		InRouteCount:        stats.InRouteCount,
		DeliveredTodayCount: stats.DeliveredTodayCount,
		EarningsTodayCents:  stats.EarningsTodayCents,
	}, nil
}
