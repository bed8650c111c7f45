package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/timelinerepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockAggregateTracker is a no-op tracker for seeding test data.
type mockAggregateTracker struct{}

func (mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type SearchOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.SearchOrdersQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *SearchOrdersQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.LineItemDTO{}, &timelinerepo.EventDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewSearchOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *SearchOrdersQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)
}

func (suite *SearchOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

type seedOrder struct {
	customerID kernel.UUID
	agentID    *kernel.UUID
	status     order.Status
	totalCents int64
	notes      string
}

func (suite *SearchOrdersQueryHandlerTestSuite) seed(spec seedOrder) *order.Order {
	money := func(cents int64) kernel.Money {
		m, err := kernel.NewMoneyFromCents(cents)
		suite.Require().NoError(err)
		return m
	}
	item, err := order.NewLineItem(kernel.NewUUID(), 1, money(spec.totalCents-800))
	suite.Require().NoError(err)

	var reason string
	var deliveredAt *time.Time
	if spec.status == order.StatusCancelled {
		reason = "changed my mind"
	}
	if spec.status == order.StatusDelivered {
		now := time.Now().UTC()
		deliveredAt = &now
	}

	seeded, err := order.RestoreOrder(order.RestoreOrderParams{
		ID:                 kernel.NewUUID(),
		CustomerID:         spec.customerID,
		AgentID:            spec.agentID,
		DeliveryMethodID:   kernel.NewUUID(),
		PaymentMethodID:    kernel.NewUUID(),
		ShippingAddressID:  kernel.NewUUID(),
		Status:             spec.status,
		PaymentStatus:      order.PaymentPaid,
		Subtotal:           money(spec.totalCents - 800),
		DeliveryFee:        money(800),
		Total:              money(spec.totalCents),
		Notes:              spec.notes,
		CancellationReason: reason,
		DeliveredAt:        deliveredAt,
		Items:              []order.LineItem{item},
	})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), seeded))
	return seeded
}

func (suite *SearchOrdersQueryHandlerTestSuite) TestHandle_NoFilters_ReturnsAllOrders() {
	customerID := kernel.NewUUID()
	suite.seed(seedOrder{customerID: customerID, status: order.StatusReceived, totalCents: 3000})
	suite.seed(seedOrder{customerID: customerID, status: order.StatusProcessing, totalCents: 4000})
	suite.seed(seedOrder{customerID: kernel.NewUUID(), status: order.StatusReceived, totalCents: 5000})

	query, err := queries.NewSearchOrdersQuery(queries.SearchOrdersParams{})
	suite.Require().NoError(err)

	resp, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal(int64(3), resp.Total)
	suite.Len(resp.Orders, 3)
	suite.Equal(1, resp.TotalPages)
}

func (suite *SearchOrdersQueryHandlerTestSuite) TestHandle_CustomerScope() {
	customerID := kernel.NewUUID()
	mine := suite.seed(seedOrder{customerID: customerID, status: order.StatusReceived, totalCents: 3000})
	suite.seed(seedOrder{customerID: kernel.NewUUID(), status: order.StatusReceived, totalCents: 5000})

	query, err := queries.NewSearchOrdersQuery(queries.SearchOrdersParams{CustomerID: &customerID})
	suite.Require().NoError(err)

	resp, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(resp.Orders, 1)
	suite.Equal(mine.ID(), resp.Orders[0].ID)
}

func (suite *SearchOrdersQueryHandlerTestSuite) TestHandle_AgentScopeAndStatusFilter() {
	agentID := kernel.NewUUID()
	shipped := suite.seed(seedOrder{
		customerID: kernel.NewUUID(), agentID: &agentID,
		status: order.StatusShipped, totalCents: 3000,
	})
	suite.seed(seedOrder{
		customerID: kernel.NewUUID(), agentID: &agentID,
		status: order.StatusProcessing, totalCents: 4000,
	})
	suite.seed(seedOrder{customerID: kernel.NewUUID(), status: order.StatusShipped, totalCents: 5000})

	status := order.StatusShipped
	query, err := queries.NewSearchOrdersQuery(queries.SearchOrdersParams{
		AgentID: &agentID,
		Status:  &status,
	})
	suite.Require().NoError(err)

	resp, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(resp.Orders, 1)
	suite.Equal(shipped.ID(), resp.Orders[0].ID)
	suite.Equal(order.StatusShipped, resp.Orders[0].Status)
}

func (suite *SearchOrdersQueryHandlerTestSuite) TestHandle_FreeTextOverNotes() {
	suite.seed(seedOrder{
		customerID: kernel.NewUUID(), status: order.StatusReceived,
		totalCents: 3000, notes: "Ring the DOORBELL twice",
	})
	suite.seed(seedOrder{
		customerID: kernel.NewUUID(), status: order.StatusReceived,
		totalCents: 4000, notes: "leave at reception",
	})

	query, err := queries.NewSearchOrdersQuery(queries.SearchOrdersParams{FreeText: "doorbell"})
	suite.Require().NoError(err)

	resp, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(resp.Orders, 1)
	suite.Contains(resp.Orders[0].Notes, "DOORBELL")
}

func (suite *SearchOrdersQueryHandlerTestSuite) TestHandle_FreeTextOverID() {
	seeded := suite.seed(seedOrder{
		customerID: kernel.NewUUID(), status: order.StatusReceived, totalCents: 3000,
	})
	suite.seed(seedOrder{customerID: kernel.NewUUID(), status: order.StatusReceived, totalCents: 4000})

	// Search by a fragment of the order id
	fragment := seeded.ID().String()[:8]
	query, err := queries.NewSearchOrdersQuery(queries.SearchOrdersParams{FreeText: fragment})
	suite.Require().NoError(err)

	resp, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(resp.Orders, 1)
	suite.Equal(seeded.ID(), resp.Orders[0].ID)
}

func (suite *SearchOrdersQueryHandlerTestSuite) TestHandle_SortByTotalDescending() {
	suite.seed(seedOrder{customerID: kernel.NewUUID(), status: order.StatusReceived, totalCents: 3000})
	suite.seed(seedOrder{customerID: kernel.NewUUID(), status: order.StatusReceived, totalCents: 5000})
	suite.seed(seedOrder{customerID: kernel.NewUUID(), status: order.StatusReceived, totalCents: 4000})

	query, err := queries.NewSearchOrdersQuery(queries.SearchOrdersParams{
		SortBy:   queries.SortByTotal,
		SortDesc: true,
	})
	suite.Require().NoError(err)

	resp, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(resp.Orders, 3)
	suite.Equal(int64(5000), resp.Orders[0].TotalCents)
	suite.Equal(int64(4000), resp.Orders[1].TotalCents)
	suite.Equal(int64(3000), resp.Orders[2].TotalCents)
}

func (suite *SearchOrdersQueryHandlerTestSuite) TestHandle_Pagination() {
	for range 5 {
		suite.seed(seedOrder{customerID: kernel.NewUUID(), status: order.StatusReceived, totalCents: 3000})
	}

	query, err := queries.NewSearchOrdersQuery(queries.SearchOrdersParams{Page: 2, PageSize: 2})
	suite.Require().NoError(err)

	resp, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal(int64(5), resp.Total)
	suite.Len(resp.Orders, 2)
	suite.Equal(2, resp.Page)
	suite.Equal(3, resp.TotalPages)
}

func (suite *SearchOrdersQueryHandlerTestSuite) TestHandle_PaginationIsStableAcrossPages() {
	for range 4 {
		// Identical totals force the id tie-break to order the pages
		suite.seed(seedOrder{customerID: kernel.NewUUID(), status: order.StatusReceived, totalCents: 3000})
	}

	seen := make(map[string]bool)
	for page := 1; page <= 2; page++ {
		query, err := queries.NewSearchOrdersQuery(queries.SearchOrdersParams{
			SortBy:   queries.SortByTotal,
			Page:     page,
			PageSize: 2,
		})
		suite.Require().NoError(err)

		resp, err := suite.handler.Handle(context.Background(), query)
		suite.Require().NoError(err)
		for _, o := range resp.Orders {
			suite.False(seen[o.ID.String()], "order %s appeared on two pages", o.ID)
			seen[o.ID.String()] = true
		}
	}
	suite.Len(seen, 4)
}

func (suite *SearchOrdersQueryHandlerTestSuite) TestHandle_EmptyResult() {
	status := order.StatusDelivered
	query, err := queries.NewSearchOrdersQuery(queries.SearchOrdersParams{Status: &status})
	suite.Require().NoError(err)

	resp, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Empty(resp.Orders)
	suite.Equal(int64(0), resp.Total)
	suite.Equal(0, resp.TotalPages)
}

func TestSearchOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SearchOrdersQueryHandlerTestSuite))
}
