package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrAgentDashboardQueryIsNotConstructed = errors.New(
	"AgentDashboardQuery must be created via NewAgentDashboardQuery constructor",
)

// AgentDashboardQuery retrieves the work snapshot for one delivery agent:
// how many orders are pending, how many are in route, and what was delivered
// and earned so far today.
type AgentDashboardQuery struct {
	agentID kernel.UUID
	asOf    *time.Time

	guard guard.ConstructorGuard
}

// NewAgentDashboardQuery creates a dashboard query for the given agent.
// A nil asOf evaluates the snapshot at the current time; pinning it makes
// the day-boundary window reproducible.
func NewAgentDashboardQuery(agentID kernel.UUID, asOf *time.Time) (AgentDashboardQuery, error) {
	if err := agentID.Validate(); err != nil {
		return AgentDashboardQuery{}, err
	}

	query := AgentDashboardQuery{
		agentID: agentID,
		guard:   guard.NewConstructorGuard(),
	}
	if asOf != nil {
		t := *asOf
		query.asOf = &t
	}
	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrAgentDashboardQueryIsNotConstructed if validation fails.
func (q AgentDashboardQuery) Validate() error {
	return q.guard.Validate(ErrAgentDashboardQueryIsNotConstructed)
}

// AgentID returns the identifier of the agent to report on.
func (q AgentDashboardQuery) AgentID() kernel.UUID {
	return q.agentID
}

// AsOf returns the optional evaluation instant. Nil means now.
func (q AgentDashboardQuery) AsOf() *time.Time {
	return q.asOf
}

// AgentDashboardQueryResponse is the computed dashboard snapshot.
// "Today" is the calendar day of the service's configured timezone.
type AgentDashboardQueryResponse struct {
	PendingCount        int
	InRouteCount        int
	DeliveredTodayCount int
	EarningsTodayCents  int64
}
