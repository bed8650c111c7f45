package http

import (
	"fmt"
	"strconv"
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// parseSearchParams reads the order search filters from the query string.
// Absent parameters stay nil; malformed values fail the whole request.
func parseSearchParams(ctx echo.Context) (queries.SearchOrdersParams, error) {
	var params queries.SearchOrdersParams

	if raw := ctx.QueryParam("customerId"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return params, fmt.Errorf("invalid customerId: %w", err)
		}
		params.CustomerID = &id
	}

	if raw := ctx.QueryParam("agentId"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return params, fmt.Errorf("invalid agentId: %w", err)
		}
		params.AgentID = &id
	}

	if raw := ctx.QueryParam("status"); raw != "" {
		status, err := order.StatusFromString(raw)
		if err != nil {
			return params, fmt.Errorf("invalid status: %w", err)
		}
		params.Status = &status
	}

	if raw := ctx.QueryParam("paymentStatus"); raw != "" {
		paymentStatus, err := order.PaymentStatusFromString(raw)
		if err != nil {
			return params, fmt.Errorf("invalid paymentStatus: %w", err)
		}
		params.PaymentStatus = &paymentStatus
	}

	if raw := ctx.QueryParam("placedFrom"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return params, fmt.Errorf("invalid placedFrom: %w", err)
		}
		params.PlacedFrom = &from
	}

	if raw := ctx.QueryParam("placedTo"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return params, fmt.Errorf("invalid placedTo: %w", err)
		}
		params.PlacedTo = &to
	}

	params.FreeText = ctx.QueryParam("q")
	params.SortBy = ctx.QueryParam("sortBy")

	if raw := ctx.QueryParam("sortDesc"); raw != "" {
		desc, err := strconv.ParseBool(raw)
		if err != nil {
			return params, fmt.Errorf("invalid sortDesc: %w", err)
		}
		params.SortDesc = desc
	}

	if raw := ctx.QueryParam("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return params, fmt.Errorf("invalid page: %w", err)
		}
		params.Page = page
	}

	if raw := ctx.QueryParam("pageSize"); raw != "" {
		pageSize, err := strconv.Atoi(raw)
		if err != nil {
			return params, fmt.Errorf("invalid pageSize: %w", err)
		}
		params.PageSize = pageSize
	}

	return params, nil
}
