package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/timeline"
)

// CreateOrderCommandHandler handles the business logic for order placement.
// Creates the order in the initial Received status and writes the first
// ledger event in the same transaction, so every order's history starts
// with a Received entry.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order placement operations.
// Requires a UoWFactory spanning the order aggregate and the ledger.
func NewCreateOrderCommandHandler(uowFactory UoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order placement command.
// Builds the aggregate, persists it together with the initial Received
// ledger event, and rolls everything back if any step fails.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	newOrder, err := buildOrder(cmd)
	if err != nil {
		return err
	}

	event, err := timeline.NewEvent(
		kernel.NewUUID(),
		newOrder.ID(),
		order.StatusReceived,
		cmd.CustomerID(),
		order.RoleCustomer,
		"order placed",
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.TimelineRepository().Append(ctx, event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func buildOrder(cmd CreateOrderCommand) (*order.Order, error) {
	subtotal, err := kernel.NewMoneyFromCents(cmd.SubtotalCents())
	if err != nil {
		return nil, err
	}

	deliveryFee, err := kernel.NewMoneyFromCents(cmd.DeliveryFeeCents())
	if err != nil {
		return nil, err
	}

	total, err := kernel.NewMoneyFromCents(cmd.TotalCents())
	if err != nil {
		return nil, err
	}

	inputs := cmd.Items()
	items := make([]order.LineItem, 0, len(inputs))
	for _, input := range inputs {
		unitPrice, itemErr := kernel.NewMoneyFromCents(input.UnitPriceCents)
		if itemErr != nil {
			return nil, itemErr
		}

		item, itemErr := order.NewLineItem(input.ProductID, input.Quantity, unitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		cmd.DeliveryMethodID(),
		cmd.PaymentMethodID(),
		cmd.ShippingAddressID(),
		subtotal,
		deliveryFee,
		total,
		cmd.Notes(),
		cmd.EstimatedDeliveryAt(),
		items,
	)
}
