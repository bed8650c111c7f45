package order

import (
	"sort"

	"fulfillment/internal/pkg/errs"
)

// Effect describes the side effects a permitted transition requires.
// The aggregate applies these together with the status change; the validator
// itself performs no I/O and touches no state.
type Effect struct {
	// SetDeliveredAt requires stamping the delivery time on the order.
	SetDeliveredAt bool

	// ClearDeliveredAt requires removing the delivery time (redelivery).
	ClearDeliveredAt bool

	// RequireCancellationReason requires a non-empty cancellation reason.
	RequireCancellationReason bool
}

type edge struct {
	from Status
	to   Status
}

// legalEdges is the authoritative state machine definition: every legal
// (from, to) pair, the roles permitted to perform it, and the side effects
// the move carries. Any pair absent from this table is illegal for everyone.
var legalEdges = map[edge]struct {
	roles  []Role
	effect Effect
}{
	{StatusReceived, StatusProcessing}: {
		roles: []Role{RoleAdmin, RoleSystem},
	},
	{StatusReceived, StatusCancelled}: {
		roles:  []Role{RoleCustomer, RoleAdmin},
		effect: Effect{RequireCancellationReason: true},
	},
	{StatusProcessing, StatusShipped}: {
		roles: []Role{RoleAgent, RoleAdmin},
	},
	{StatusProcessing, StatusCancelled}: {
		roles:  []Role{RoleCustomer, RoleAdmin},
		effect: Effect{RequireCancellationReason: true},
	},
	{StatusShipped, StatusDelivered}: {
		roles:  []Role{RoleAgent, RoleAdmin},
		effect: Effect{SetDeliveredAt: true},
	},
	// Redelivery: the only backward move in the machine.
	{StatusDelivered, StatusShipped}: {
		roles:  []Role{RoleCustomer, RoleAdmin},
		effect: Effect{ClearDeliveredAt: true},
	},
}

// TransitionTo checks whether the machine permits moving from s to next when
// requested by actor. On success it returns the side effects the move
// requires. On rejection it returns an IllegalTransitionError naming the
// current status, the requested status and whether the edge is missing or
// merely not permitted for the actor.
//
// TransitionTo is a pure function: it reads nothing but its arguments, which
// is what makes the state machine independently unit-testable.
func (s Status) TransitionTo(next Status, actor Role) (Effect, error) {
	if err := s.Validate(); err != nil {
		return Effect{}, err
	}
	if err := next.Validate(); err != nil {
		return Effect{}, err
	}
	if err := actor.Validate(); err != nil {
		return Effect{}, err
	}

	def, ok := legalEdges[edge{s, next}]
	if !ok {
		var permitted []string
		for _, status := range s.NextStatuses() {
			permitted = append(permitted, status.String())
		}
		return Effect{}, errs.NewIllegalTransitionError(
			s.String(), next.String(), actor.String(), "no such edge", permitted...)
	}

	for _, role := range def.roles {
		if role == actor {
			return def.effect, nil
		}
	}

	permitted := make([]string, 0, len(def.roles))
	for _, role := range def.roles {
		permitted = append(permitted, role.String())
	}
	return Effect{}, errs.NewIllegalTransitionError(
		s.String(), next.String(), actor.String(), "actor not permitted for this edge", permitted...)
}

// CanReach reports whether a legal edge from s to next exists for any role.
// Used by the timeline ledger to verify that a recorded status sequence is a
// valid walk of the machine.
func (s Status) CanReach(next Status) bool {
	_, ok := legalEdges[edge{s, next}]
	return ok
}

// NextStatuses returns all statuses reachable from s by any role, in
// canonical encoding order. Transition rejections report them as the
// permitted alternatives.
func (s Status) NextStatuses() []Status {
	var next []Status
	for e := range legalEdges {
		if e.from == s {
			next = append(next, e.to)
		}
	}
	sort.Slice(next, func(i, j int) bool { return next[i] < next[j] })
	return next
}
