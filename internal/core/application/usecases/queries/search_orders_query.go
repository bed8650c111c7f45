// Package queries contains read-only operations for retrieving system state.
// Implements the Query side of the CQRS architecture: handlers read the
// database directly (or through repositories) and never mutate anything.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrSearchOrdersQueryIsNotConstructed = errors.New(
	"SearchOrdersQuery must be created via NewSearchOrdersQuery constructor",
)

// Sort keys accepted by the order search. Anything else is rejected at
// construction time so arbitrary column names never reach the database.
const (
	SortByID                  = "id"
	SortByTotal               = "total"
	SortByStatus              = "status"
	SortByEstimatedDeliveryAt = "estimated_delivery_at"
	SortByDeliveredAt         = "delivered_at"
)

const maxPageSize = 100

var allowedSortKeys = map[string]struct{}{
	SortByID:                  {},
	SortByTotal:               {},
	SortByStatus:              {},
	SortByEstimatedDeliveryAt: {},
	SortByDeliveredAt:         {},
}

// SearchOrdersParams carries the optional filters for an order search.
// Nil fields mean "no filter". CustomerID and AgentID scope the search to
// one customer's or one agent's orders; with neither set the search spans
// all orders (back-office scope).
type SearchOrdersParams struct {
	CustomerID    *kernel.UUID
	AgentID       *kernel.UUID
	Status        *order.Status
	PaymentStatus *order.PaymentStatus
	PlacedFrom    *time.Time
	PlacedTo      *time.Time
	FreeText      string
	SortBy        string
	SortDesc      bool
	Page          int
	PageSize      int
}

// SearchOrdersQuery retrieves a filtered, sorted, paginated page of orders.
//
// Example:
//
//	status := order.StatusProcessing
//	query, err := NewSearchOrdersQuery(SearchOrdersParams{
//	    Status:   &status,
//	    SortBy:   SortByTotal,
//	    SortDesc: true,
//	    Page:     1,
//	    PageSize: 20,
//	})
type SearchOrdersQuery struct {
	params SearchOrdersParams

	guard guard.ConstructorGuard
}

// NewSearchOrdersQuery creates an order search query.
// An empty sort key defaults to id; a zero page or page size defaults to the
// first page of 20. Unknown sort keys, non-positive pages and page sizes
// above 100 are rejected.
func NewSearchOrdersQuery(params SearchOrdersParams) (SearchOrdersQuery, error) {
	if params.SortBy == "" {
		params.SortBy = SortByID
	}
	if params.Page == 0 {
		params.Page = 1
	}
	if params.PageSize == 0 {
		params.PageSize = 20
	}

	if _, ok := allowedSortKeys[params.SortBy]; !ok {
		return SearchOrdersQuery{}, errs.NewValueIsInvalidError("sortBy " + params.SortBy)
	}
	if params.Page < 1 {
		return SearchOrdersQuery{}, errs.NewValueIsInvalidError("page must be positive")
	}
	if params.PageSize < 1 || params.PageSize > maxPageSize {
		return SearchOrdersQuery{}, errs.NewValueIsInvalidError("pageSize must be between 1 and 100")
	}

	if err := validateOptionalFilters(params); err != nil {
		return SearchOrdersQuery{}, err
	}

	return SearchOrdersQuery{
		params: params,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func validateOptionalFilters(params SearchOrdersParams) error {
	if params.CustomerID != nil {
		if err := params.CustomerID.Validate(); err != nil {
			return err
		}
	}
	if params.AgentID != nil {
		if err := params.AgentID.Validate(); err != nil {
			return err
		}
	}
	if params.Status != nil {
		if err := params.Status.Validate(); err != nil {
			return err
		}
	}
	if params.PaymentStatus != nil {
		if err := params.PaymentStatus.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrSearchOrdersQueryIsNotConstructed if validation fails.
func (q SearchOrdersQuery) Validate() error {
	return q.guard.Validate(ErrSearchOrdersQueryIsNotConstructed)
}

// Params returns the search parameters.
func (q SearchOrdersQuery) Params() SearchOrdersParams {
	return q.params
}

// OrderSummary represents one order row in a search result page.
type OrderSummary struct {
	ID                  kernel.UUID
	CustomerID          kernel.UUID
	AgentID             *kernel.UUID
	Status              order.Status
	PaymentStatus       order.PaymentStatus
	TotalCents          int64
	Notes               string
	EstimatedDeliveryAt *time.Time
	DeliveredAt         *time.Time
	PlacedAt            time.Time
}

// SearchOrdersQueryResponse is one page of search results with the totals
// needed to render pagination controls.
type SearchOrdersQueryResponse struct {
	Orders     []OrderSummary
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}
