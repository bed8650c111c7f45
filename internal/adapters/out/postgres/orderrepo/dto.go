// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. This package implements the repository pattern for the
// order aggregate, handling the conversion between domain entities and
// database representations.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed for the dominant read paths: by customer, by agent, by status and
// by delivery time (stats day window).
type OrderDTO struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID          uuid.UUID  `gorm:"type:uuid;index"`
	AgentID             *uuid.UUID `gorm:"type:uuid;index"`
	DeliveryMethodID    uuid.UUID  `gorm:"type:uuid"`
	PaymentMethodID     uuid.UUID  `gorm:"type:uuid"`
	ShippingAddressID   uuid.UUID  `gorm:"type:uuid"`
	Status              int        `gorm:"index"`
	PaymentStatus       int
	SubtotalCents       int64
	DeliveryFeeCents    int64
	TotalCents          int64
	Notes               string
	CancellationReason  string
	EstimatedDeliveryAt *time.Time
	DeliveredAt         *time.Time    `gorm:"index"`
	CreatedAt           time.Time     `gorm:"autoCreateTime;index"`
	Items               []LineItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO represents one immutable order line in the database.
// Rows are written once at order creation and never updated.
type LineItemDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;index"`
	ProductID      uuid.UUID `gorm:"type:uuid"`
	Quantity       int
	UnitPriceCents int64
}

// TableName specifies the database table name for order line items.
func (LineItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation.
// Line item rows get fresh identifiers; they are only ever inserted together
// with a new order.
func fromDomain(aggregate *order.Order) OrderDTO {
	var agentID *uuid.UUID
	if id := aggregate.AgentID(); id != nil {
		raw := id.Bytes()
		agentID = &raw
	}

	items := aggregate.Items()
	itemDTOs := make([]LineItemDTO, 0, len(items))
	for _, item := range items {
		itemDTOs = append(itemDTOs, LineItemDTO{
			ID:             uuid.New(),
			OrderID:        aggregate.ID().Bytes(),
			ProductID:      item.ProductID().Bytes(),
			Quantity:       item.Quantity(),
			UnitPriceCents: item.UnitPrice().Cents(),
		})
	}

	return OrderDTO{
		ID:                  aggregate.ID().Bytes(),
		CustomerID:          aggregate.CustomerID().Bytes(),
		AgentID:             agentID,
		DeliveryMethodID:    aggregate.DeliveryMethodID().Bytes(),
		PaymentMethodID:     aggregate.PaymentMethodID().Bytes(),
		ShippingAddressID:   aggregate.ShippingAddressID().Bytes(),
		Status:              int(aggregate.Status()),
		PaymentStatus:       int(aggregate.PaymentStatus()),
		SubtotalCents:       aggregate.Subtotal().Cents(),
		DeliveryFeeCents:    aggregate.DeliveryFee().Cents(),
		TotalCents:          aggregate.Total().Cents(),
		Notes:               aggregate.Notes(),
		CancellationReason:  aggregate.CancellationReason(),
		EstimatedDeliveryAt: aggregate.EstimatedDeliveryAt(),
		DeliveredAt:         aggregate.DeliveredAt(),
		Items:               itemDTOs,
	}
}

// toDomain converts a database DTO to an order aggregate.
// Reconstructs the complete aggregate including line items using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var agentID *kernel.UUID
	if dto.AgentID != nil {
		aID, agentErr := kernel.UUIDFromBytes((*dto.AgentID)[:])
		if agentErr != nil {
			return nil, agentErr
		}
		agentID = &aID
	}

	deliveryMethodID, err := kernel.UUIDFromBytes(dto.DeliveryMethodID[:])
	if err != nil {
		return nil, err
	}

	paymentMethodID, err := kernel.UUIDFromBytes(dto.PaymentMethodID[:])
	if err != nil {
		return nil, err
	}

	shippingAddressID, err := kernel.UUIDFromBytes(dto.ShippingAddressID[:])
	if err != nil {
		return nil, err
	}

	subtotal, err := kernel.NewMoneyFromCents(dto.SubtotalCents)
	if err != nil {
		return nil, err
	}

	deliveryFee, err := kernel.NewMoneyFromCents(dto.DeliveryFeeCents)
	if err != nil {
		return nil, err
	}

	total, err := kernel.NewMoneyFromCents(dto.TotalCents)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, itemErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		unitPrice, itemErr := kernel.NewMoneyFromCents(itemDTO.UnitPriceCents)
		if itemErr != nil {
			return nil, itemErr
		}

		item, itemErr := order.NewLineItem(productID, itemDTO.Quantity, unitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                  id,
		CustomerID:          customerID,
		AgentID:             agentID,
		DeliveryMethodID:    deliveryMethodID,
		PaymentMethodID:     paymentMethodID,
		ShippingAddressID:   shippingAddressID,
		Status:              order.Status(dto.Status),
		PaymentStatus:       order.PaymentStatus(dto.PaymentStatus),
		Subtotal:            subtotal,
		DeliveryFee:         deliveryFee,
		Total:               total,
		Notes:               dto.Notes,
		CancellationReason:  dto.CancellationReason,
		EstimatedDeliveryAt: dto.EstimatedDeliveryAt,
		DeliveredAt:         dto.DeliveredAt,
		Items:               items,
	})
}
