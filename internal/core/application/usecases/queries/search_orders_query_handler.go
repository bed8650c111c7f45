package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SearchOrdersQueryHandler executes order searches against the read model.
// Reads the orders table directly; search results never become aggregates.
type SearchOrdersQueryHandler struct {
	db *gorm.DB
}

// NewSearchOrdersQueryHandler creates a handler for order search queries.
// Requires a GORM database connection for query execution.
func NewSearchOrdersQueryHandler(db *gorm.DB) SearchOrdersQueryHandler {
	return SearchOrdersQueryHandler{db: db}
}

// orderRow is the scan target for one search result row.
type orderRow struct {
	ID                  uuid.UUID
	CustomerID          uuid.UUID
	AgentID             *uuid.UUID
	Status              int
	PaymentStatus       int
	TotalCents          int64
	Notes               string
	EstimatedDeliveryAt *time.Time
	DeliveredAt         *time.Time
	CreatedAt           time.Time
}

// sortColumns maps the whitelisted sort keys onto real column names.
var sortColumns = map[string]string{
	SortByID:                  "id",
	SortByTotal:               "total_cents",
	SortByStatus:              "status",
	SortByEstimatedDeliveryAt: "estimated_delivery_at",
	SortByDeliveredAt:         "delivered_at",
}

// Handle executes the search and returns one result page.
// Sorting always appends an ascending id tie-break so pages are stable when
// the primary sort column has duplicates.
func (h SearchOrdersQueryHandler) Handle(
	ctx context.Context,
	query SearchOrdersQuery,
) (SearchOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return SearchOrdersQueryResponse{}, err
	}

	params := query.Params()

	var total int64
	if err := h.applyFilters(h.db.WithContext(ctx).Table("orders"), params).
		Count(&total).Error; err != nil {
		return SearchOrdersQueryResponse{}, err
	}

	direction := "asc"
	if params.SortDesc {
		direction = "desc"
	}
	orderClause := sortColumns[params.SortBy] + " " + direction
	if params.SortBy != SortByID {
		orderClause += ", id asc"
	}

	var rows []orderRow
	if err := h.applyFilters(h.db.WithContext(ctx).Table("orders"), params).
		Order(orderClause).
		Offset((params.Page - 1) * params.PageSize).
		Limit(params.PageSize).
		Scan(&rows).Error; err != nil {
		return SearchOrdersQueryResponse{}, err
	}

	summaries := make([]OrderSummary, 0, len(rows))
	for _, row := range rows {
		summary, err := toSummary(row)
		if err != nil {
			return SearchOrdersQueryResponse{}, err
		}
		summaries = append(summaries, summary)
	}

	totalPages := int((total + int64(params.PageSize) - 1) / int64(params.PageSize))

	return SearchOrdersQueryResponse{
		Orders:     summaries,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (h SearchOrdersQueryHandler) applyFilters(db *gorm.DB, params SearchOrdersParams) *gorm.DB {
	if params.CustomerID != nil {
		db = db.Where("customer_id = ?", params.CustomerID.Bytes())
	}
	if params.AgentID != nil {
		db = db.Where("agent_id = ?", params.AgentID.Bytes())
	}
	if params.Status != nil {
		db = db.Where("status = ?", int(*params.Status))
	}
	if params.PaymentStatus != nil {
		db = db.Where("payment_status = ?", int(*params.PaymentStatus))
	}
	if params.PlacedFrom != nil {
		db = db.Where("created_at >= ?", *params.PlacedFrom)
	}
	if params.PlacedTo != nil {
		db = db.Where("created_at <= ?", *params.PlacedTo)
	}
	if params.FreeText != "" {
		pattern := "%" + params.FreeText + "%"
		db = db.Where("(id::text ILIKE ? OR notes ILIKE ?)", pattern, pattern)
	}
	return db
}

func toSummary(row orderRow) (OrderSummary, error) {
	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return OrderSummary{}, err
	}

	customerID, err := kernel.UUIDFromBytes(row.CustomerID[:])
	if err != nil {
		return OrderSummary{}, err
	}

	var agentID *kernel.UUID
	if row.AgentID != nil {
		aID, agentErr := kernel.UUIDFromBytes((*row.AgentID)[:])
		if agentErr != nil {
			return OrderSummary{}, agentErr
		}
		agentID = &aID
	}

	return OrderSummary{
		ID:                  id,
		CustomerID:          customerID,
		AgentID:             agentID,
		Status:              order.Status(row.Status),
		PaymentStatus:       order.PaymentStatus(row.PaymentStatus),
		TotalCents:          row.TotalCents,
		Notes:               row.Notes,
		EstimatedDeliveryAt: row.EstimatedDeliveryAt,
		DeliveredAt:         row.DeliveredAt,
		PlacedAt:            row.CreatedAt,
	}, nil
}
