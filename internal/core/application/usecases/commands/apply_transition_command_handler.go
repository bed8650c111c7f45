package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/timeline"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/orderlock"
)

// transitionAttempts bounds how often a transition is retried when the
// transaction fails to commit before the caller gets a conflict error.
const transitionAttempts = 3

// ApplyTransitionCommandHandler handles status transitions on orders.
//
// Transitions on the same order are serialized twice: a process-local keyed
// lock covers the whole read-validate-write-append sequence, and the order
// row is read with a FOR UPDATE lock so concurrent service instances
// serialize on the database. Requesting the status the order already has is
// a no-op: no write, no ledger event, success.
type ApplyTransitionCommandHandler struct {
	uowFactory UoWFactory
	locks      *orderlock.Keyed
}

// NewApplyTransitionCommandHandler creates a handler for status transitions.
func NewApplyTransitionCommandHandler(
	uowFactory UoWFactory, locks *orderlock.Keyed,
) ApplyTransitionCommandHandler {
	return ApplyTransitionCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
	}
}

// Handle processes the transition command.
// The status change and its ledger event commit in one transaction. Commit
// failures are retried up to transitionAttempts times; when the budget is
// exhausted the caller receives a ConflictError.
func (h *ApplyTransitionCommandHandler) Handle(ctx context.Context, cmd ApplyTransitionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	key := cmd.OrderID().String()
	h.locks.Lock(key)
	defer h.locks.Unlock(key)

	var lastErr error
	for attempt := 0; attempt < transitionAttempts; attempt++ {
		retry, err := h.runTransition(ctx, cmd)
		if err == nil {
			return nil
		}
		if !retry {
			return err
		}
		lastErr = err
	}

	return errs.NewConflictError(cmd.OrderID().String(), lastErr)
}

// runTransition executes one transactional attempt. The second return value
// reports whether the error is worth retrying.
func (h *ApplyTransitionCommandHandler) runTransition(
	ctx context.Context, cmd ApplyTransitionCommand,
) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return false, err
	}

	// Idempotent retry of an already-applied transition.
	if aggregate.Status() == cmd.Next() {
		return false, nil
	}

	now := time.Now().UTC()
	if err = aggregate.ApplyTransition(cmd.Next(), cmd.ActorRole(), cmd.Reason(), now); err != nil {
		return false, err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return false, err
	}

	event, err := timeline.NewEvent(
		kernel.NewUUID(),
		aggregate.ID(),
		cmd.Next(),
		cmd.ActorID(),
		cmd.ActorRole(),
		cmd.Description(),
		now,
	)
	if err != nil {
		return false, err
	}

	if err = uow.TimelineRepository().Append(ctx, event); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return true, err
	}

	return false, nil
}
