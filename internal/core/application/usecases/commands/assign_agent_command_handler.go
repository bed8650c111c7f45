package commands

import (
	"context"
)

// AssignAgentCommandHandler handles delivery agent assignment.
// Repeating an assignment with the agent that already holds the order
// succeeds without writing anything; reassignment rules are enforced by the
// aggregate.
type AssignAgentCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAssignAgentCommandHandler creates a handler for agent assignment operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewAssignAgentCommandHandler(uowFactory OrderUoWFactory) AssignAgentCommandHandler {
	return AssignAgentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the agent assignment command.
// Reads the order under a row lock so concurrent assignments serialize, then
// persists the binding unless the assignment was a no-op.
func (h *AssignAgentCommandHandler) Handle(ctx context.Context, cmd AssignAgentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	alreadyAssigned := aggregate.AgentID() != nil && aggregate.AgentID().IsEqual(cmd.AgentID())
	if err = aggregate.AssignAgent(cmd.AgentID()); err != nil {
		return err
	}

	if alreadyAssigned {
		// Nothing changed; the deferred rollback closes the transaction.
		return nil
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
