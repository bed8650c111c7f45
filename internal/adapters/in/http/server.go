// Package http exposes the fulfillment engine over HTTP.
// Handlers translate requests into commands and queries and map domain error
// kinds onto status codes; no business rules live here. Actor identity and
// role come from the request body, supplied by the trusted edge.
package http

import (
	"errors"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler     commands.CreateOrderCommandHandler
	applyTransitionHandler commands.ApplyTransitionCommandHandler
	assignAgentHandler     commands.AssignAgentCommandHandler

	// Query handlers
	searchOrdersHandler   queries.SearchOrdersQueryHandler
	agentDashboardHandler queries.AgentDashboardQueryHandler
	orderHistoryHandler   queries.OrderHistoryQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	applyTransitionHandler commands.ApplyTransitionCommandHandler,
	assignAgentHandler commands.AssignAgentCommandHandler,
	searchOrdersHandler queries.SearchOrdersQueryHandler,
	agentDashboardHandler queries.AgentDashboardQueryHandler,
	orderHistoryHandler queries.OrderHistoryQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:     createOrderHandler,
		applyTransitionHandler: applyTransitionHandler,
		assignAgentHandler:     assignAgentHandler,
		searchOrdersHandler:    searchOrdersHandler,
		agentDashboardHandler:  agentDashboardHandler,
		orderHistoryHandler:    orderHistoryHandler,
	}
}

// RegisterRoutes mounts all API routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.SearchOrders)
	api.GET("/orders/:id/history", s.GetOrderHistory)
	api.POST("/orders/:id/transition", s.ApplyTransition)
	api.POST("/orders/:id/agent", s.AssignAgent)
	api.GET("/agents/:id/dashboard", s.GetAgentDashboard)
	e.GET("/health", s.Health)
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type lineItemRequest struct {
	ProductID      string `json:"productId"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

type createOrderRequest struct {
	CustomerID          string            `json:"customerId"`
	DeliveryMethodID    string            `json:"deliveryMethodId"`
	PaymentMethodID     string            `json:"paymentMethodId"`
	ShippingAddressID   string            `json:"shippingAddressId"`
	SubtotalCents       int64             `json:"subtotalCents"`
	DeliveryFeeCents    int64             `json:"deliveryFeeCents"`
	TotalCents          int64             `json:"totalCents"`
	Notes               string            `json:"notes"`
	EstimatedDeliveryAt *time.Time        `json:"estimatedDeliveryAt"`
	Items               []lineItemRequest `json:"items"`
}

type createOrderResponse struct {
	ID string `json:"id"`
}

// CreateOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customerId: "+err.Error())
	}
	deliveryMethodID, err := kernel.UUIDFromString(req.DeliveryMethodID)
	if err != nil {
		return badRequest(ctx, "Invalid deliveryMethodId: "+err.Error())
	}
	paymentMethodID, err := kernel.UUIDFromString(req.PaymentMethodID)
	if err != nil {
		return badRequest(ctx, "Invalid paymentMethodId: "+err.Error())
	}
	shippingAddressID, err := kernel.UUIDFromString(req.ShippingAddressID)
	if err != nil {
		return badRequest(ctx, "Invalid shippingAddressId: "+err.Error())
	}

	items := make([]commands.LineItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		productID, itemErr := kernel.UUIDFromString(item.ProductID)
		if itemErr != nil {
			return badRequest(ctx, "Invalid productId: "+itemErr.Error())
		}
		items = append(items, commands.LineItemInput{
			ProductID:      productID,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, customerID, deliveryMethodID, paymentMethodID, shippingAddressID,
		req.SubtotalCents, req.DeliveryFeeCents, req.TotalCents,
		req.Notes, req.EstimatedDeliveryAt, items,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createOrderResponse{ID: orderID.String()})
}

type applyTransitionRequest struct {
	Status      string `json:"status"`
	ActorID     string `json:"actorId"`
	ActorRole   string `json:"actorRole"`
	Reason      string `json:"reason"`
	Description string `json:"description"`
}

// ApplyTransition handles POST /api/v1/orders/:id/transition - moves an order
// to a new status.
func (s *Server) ApplyTransition(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req applyTransitionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	next, err := order.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+err.Error())
	}
	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actorId: "+err.Error())
	}
	actorRole, err := order.RoleFromString(req.ActorRole)
	if err != nil {
		return badRequest(ctx, "Invalid actorRole: "+err.Error())
	}

	cmd, err := commands.NewApplyTransitionCommand(
		orderID, next, actorID, actorRole, req.Reason, req.Description)
	if err != nil {
		return badRequest(ctx, "Invalid transition data: "+err.Error())
	}

	if err = s.applyTransitionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type assignAgentRequest struct {
	AgentID string `json:"agentId"`
}

// AssignAgent handles POST /api/v1/orders/:id/agent - binds an order to a
// delivery agent.
func (s *Server) AssignAgent(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req assignAgentRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	agentID, err := kernel.UUIDFromString(req.AgentID)
	if err != nil {
		return badRequest(ctx, "Invalid agentId: "+err.Error())
	}

	cmd, err := commands.NewAssignAgentCommand(orderID, agentID)
	if err != nil {
		return badRequest(ctx, "Invalid assignment data: "+err.Error())
	}

	if err = s.assignAgentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type orderSummaryResponse struct {
	ID                  string     `json:"id"`
	CustomerID          string     `json:"customerId"`
	AgentID             *string    `json:"agentId,omitempty"`
	Status              string     `json:"status"`
	PaymentStatus       string     `json:"paymentStatus"`
	TotalCents          int64      `json:"totalCents"`
	Notes               string     `json:"notes,omitempty"`
	EstimatedDeliveryAt *time.Time `json:"estimatedDeliveryAt,omitempty"`
	DeliveredAt         *time.Time `json:"deliveredAt,omitempty"`
	PlacedAt            time.Time  `json:"placedAt"`
}

type searchOrdersResponse struct {
	Orders     []orderSummaryResponse `json:"orders"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"pageSize"`
	TotalPages int                    `json:"totalPages"`
}

// SearchOrders handles GET /api/v1/orders - filtered, sorted, paginated search.
func (s *Server) SearchOrders(ctx echo.Context) error {
	params, err := parseSearchParams(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewSearchOrdersQuery(params)
	if err != nil {
		return badRequest(ctx, "Invalid search parameters: "+err.Error())
	}

	result, err := s.searchOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	orders := make([]orderSummaryResponse, len(result.Orders))
	for i, summary := range result.Orders {
		var agentID *string
		if summary.AgentID != nil {
			id := summary.AgentID.String()
			agentID = &id
		}
		orders[i] = orderSummaryResponse{
			ID:                  summary.ID.String(),
			CustomerID:          summary.CustomerID.String(),
			AgentID:             agentID,
			Status:              summary.Status.String(),
			PaymentStatus:       summary.PaymentStatus.String(),
			TotalCents:          summary.TotalCents,
			Notes:               summary.Notes,
			EstimatedDeliveryAt: summary.EstimatedDeliveryAt,
			DeliveredAt:         summary.DeliveredAt,
			PlacedAt:            summary.PlacedAt,
		}
	}

	return ctx.JSON(http.StatusOK, searchOrdersResponse{
		Orders:     orders,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	})
}

type historyEntryResponse struct {
	EventID     string    `json:"eventId"`
	Status      string    `json:"status"`
	ActorID     string    `json:"actorId"`
	ActorRole   string    `json:"actorRole"`
	Description string    `json:"description,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}

type orderHistoryResponse struct {
	OrderID string                 `json:"orderId"`
	Events  []historyEntryResponse `json:"events"`
}

// GetOrderHistory handles GET /api/v1/orders/:id/history - the audit ledger.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	query, err := queries.NewOrderHistoryQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	result, err := s.orderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	events := make([]historyEntryResponse, len(result.Events))
	for i, entry := range result.Events {
		events[i] = historyEntryResponse{
			EventID:     entry.EventID.String(),
			Status:      entry.Status.String(),
			ActorID:     entry.ActorID.String(),
			ActorRole:   entry.ActorRole.String(),
			Description: entry.Description,
			OccurredAt:  entry.OccurredAt,
		}
	}

	return ctx.JSON(http.StatusOK, orderHistoryResponse{
		OrderID: result.OrderID.String(),
		Events:  events,
	})
}

type agentDashboardResponse struct {
	PendingCount        int   `json:"pendingCount"`
	InRouteCount        int   `json:"inRouteCount"`
	DeliveredTodayCount int   `json:"deliveredTodayCount"`
	EarningsTodayCents  int64 `json:"earningsTodayCents"`
}

// GetAgentDashboard handles GET /api/v1/agents/:id/dashboard - the agent's
// work snapshot. An optional asOf query parameter (RFC 3339) pins the
// evaluation instant; absent means now.
func (s *Server) GetAgentDashboard(ctx echo.Context) error {
	agentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid agent id: "+err.Error())
	}

	var asOf *time.Time
	if raw := ctx.QueryParam("asOf"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return badRequest(ctx, "Invalid asOf: "+err.Error())
		}
		asOf = &t
	}

	query, err := queries.NewAgentDashboardQuery(agentID, asOf)
	if err != nil {
		return badRequest(ctx, "Invalid agent id: "+err.Error())
	}

	result, err := s.agentDashboardHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, agentDashboardResponse{
		PendingCount:        result.PendingCount,
		InRouteCount:        result.InRouteCount,
		DeliveredTodayCount: result.DeliveredTodayCount,
		EarningsTodayCents:  result.EarningsTodayCents,
	})
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// mapDomainError translates domain error kinds onto HTTP status codes.
func mapDomainError(ctx echo.Context, err error) error {
	var status int
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrIllegalTransition):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrInvalidAssignment),
		errors.Is(err, errs.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}

	return ctx.JSON(status, errorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
