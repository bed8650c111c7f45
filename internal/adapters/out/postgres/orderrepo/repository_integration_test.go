package orderrepo_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
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

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.LineItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)

	// Create fresh repository and tracker for each test
	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.assertLineItemCount(2)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_ReturnsOrder() {
	ctx := context.Background()

	originalOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", originalOrder.ID(), originalOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, originalOrder))

	retrievedOrder, err := suite.repository.Get(ctx, originalOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(originalOrder.ID(), retrievedOrder.ID())
	suite.Equal(originalOrder.CustomerID(), retrievedOrder.CustomerID())
	suite.Equal(order.StatusReceived, retrievedOrder.Status())
	suite.Equal(order.PaymentPending, retrievedOrder.PaymentStatus())
	suite.Equal(int64(4048), retrievedOrder.Subtotal().Cents())
	suite.Equal(int64(800), retrievedOrder.DeliveryFee().Cents())
	suite.Equal(int64(4848), retrievedOrder.Total().Cents())
	suite.Nil(retrievedOrder.AgentID())
	suite.Nil(retrievedOrder.DeliveredAt())
	suite.Len(retrievedOrder.Items(), 2)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	nonExistentID := kernel.NewUUID()
	retrievedOrder, err := suite.repository.Get(ctx, nonExistentID)

	suite.Nil(retrievedOrder)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StatusTransition_Persisted() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// Received -> Processing by an admin
	err := testOrder.ApplyTransition(order.StatusProcessing, order.RoleAdmin, "", time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrievedOrder, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusProcessing, retrievedOrder.Status())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_RedeliveryClearsDeliveredAt() {
	ctx := context.Background()

	deliveredAt := time.Now().UTC().Truncate(time.Second)
	agentID := kernel.NewUUID()
	testOrder := suite.createTestOrderWithStatus(order.StatusDelivered, &agentID, &deliveredAt)

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// Customer disputes the delivery: Delivered -> Shipped clears the stamp
	err := testOrder.ApplyTransition(order.StatusShipped, order.RoleCustomer, "", time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrievedOrder, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusShipped, retrievedOrder.Status())
	suite.Nil(retrievedOrder.DeliveredAt())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsError() {
	ctx := context.Background()

	nonExistentOrder := suite.createTestOrder()

	err := suite.repository.Update(ctx, nonExistentOrder)
	suite.Require().Error(err)
	suite.Contains(strings.ToLower(err.Error()), "record not found")

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllByAgent_ReturnsOnlyAssignedOrders() {
	ctx := context.Background()

	agentID := kernel.NewUUID()
	otherAgentID := kernel.NewUUID()

	assigned1 := suite.createTestOrderWithStatus(order.StatusProcessing, &agentID, nil)
	assigned2 := suite.createTestOrderWithStatus(order.StatusShipped, &agentID, nil)
	otherAgents := suite.createTestOrderWithStatus(order.StatusProcessing, &otherAgentID, nil)
	unassigned := suite.createTestOrder()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(4)
	for _, o := range []*order.Order{assigned1, assigned2, otherAgents, unassigned} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	agentOrders, err := suite.repository.GetAllByAgent(ctx, agentID)
	suite.Require().NoError(err)
	suite.Len(agentOrders, 2)
	for _, o := range agentOrders {
		suite.Require().NotNil(o.AgentID())
		suite.True(o.AgentID().IsEqual(agentID))
	}

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllByAgent_NoOrders_ReturnsEmptySlice() {
	ctx := context.Background()

	agentOrders, err := suite.repository.GetAllByAgent(ctx, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Empty(agentOrders)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllOverdue_FiltersByTargetAndStatus() {
	ctx := context.Background()

	asOf := time.Now().UTC()
	past := asOf.Add(-2 * time.Hour)
	future := asOf.Add(2 * time.Hour)
	deliveredAt := asOf.Add(-time.Hour)

	overdue := suite.createTestOrderWithTarget(order.StatusProcessing, &past, nil, "")
	onTime := suite.createTestOrderWithTarget(order.StatusProcessing, &future, nil, "")
	noTarget := suite.createTestOrder()
	deliveredLate := suite.createTestOrderWithTarget(order.StatusDelivered, &past, &deliveredAt, "")
	cancelledLate := suite.createTestOrderWithTarget(order.StatusCancelled, &past, nil, "changed my mind")

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(5)
	for _, o := range []*order.Order{overdue, onTime, noTarget, deliveredLate, cancelledLate} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	overdueOrders, err := suite.repository.GetAllOverdue(ctx, asOf)
	suite.Require().NoError(err)
	suite.Require().Len(overdueOrders, 1)
	suite.Equal(overdue.ID(), overdueOrders[0].ID())

	suite.tracker.AssertExpectations(suite.T())
}

// TestOrderRepository_ErrorScenarios verifies error handling for various failure cases.
func (suite *OrderRepositoryIntegrationTestSuite) TestOrderRepository_ErrorScenarios() {
	testCases := []struct {
		name      string
		operation func() error
		expected  string
	}{
		{
			name: "get with invalid UUID",
			operation: func() error {
				invalidID := kernel.UUID{}
				_, err := suite.repository.Get(context.Background(), invalidID)
				return err
			},
			expected: "UUID",
		},
		{
			name: "get non-existent order",
			operation: func() error {
				nonExistentID := kernel.NewUUID()
				_, err := suite.repository.Get(context.Background(), nonExistentID)
				return err
			},
			expected: "not found",
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			err := tc.operation()
			suite.Require().Error(err)
			suite.Contains(err.Error(), tc.expected)
			suite.tracker.AssertExpectations(suite.T())
		})
	}
}

// createTestOrder creates a basic test order with default values.
func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		suite.money(4048),
		suite.money(800),
		suite.money(4848),
		"leave at the door",
		nil,
		[]order.LineItem{suite.lineItem(2, 1024), suite.lineItem(1, 2000)},
	)
	suite.Require().NoError(err)
	return testOrder
}

// createTestOrderWithStatus restores a test order in the given status.
func (suite *OrderRepositoryIntegrationTestSuite) createTestOrderWithStatus(
	status order.Status, agentID *kernel.UUID, deliveredAt *time.Time,
) *order.Order {
	var reason string
	if status == order.StatusCancelled {
		reason = "changed my mind"
	}

	testOrder, err := order.RestoreOrder(order.RestoreOrderParams{
		ID:                 kernel.NewUUID(),
		CustomerID:         kernel.NewUUID(),
		AgentID:            agentID,
		DeliveryMethodID:   kernel.NewUUID(),
		PaymentMethodID:    kernel.NewUUID(),
		ShippingAddressID:  kernel.NewUUID(),
		Status:             status,
		PaymentStatus:      order.PaymentPaid,
		Subtotal:           suite.money(4048),
		DeliveryFee:        suite.money(800),
		Total:              suite.money(4848),
		CancellationReason: reason,
		DeliveredAt:        deliveredAt,
		Items:              []order.LineItem{suite.lineItem(2, 1024)},
	})
	suite.Require().NoError(err)
	return testOrder
}

// createTestOrderWithTarget restores a test order with an estimated delivery target.
func (suite *OrderRepositoryIntegrationTestSuite) createTestOrderWithTarget(
	status order.Status, target *time.Time, deliveredAt *time.Time, reason string,
) *order.Order {
	testOrder, err := order.RestoreOrder(order.RestoreOrderParams{
		ID:                  kernel.NewUUID(),
		CustomerID:          kernel.NewUUID(),
		DeliveryMethodID:    kernel.NewUUID(),
		PaymentMethodID:     kernel.NewUUID(),
		ShippingAddressID:   kernel.NewUUID(),
		Status:              status,
		PaymentStatus:       order.PaymentPaid,
		Subtotal:            suite.money(4048),
		DeliveryFee:         suite.money(800),
		Total:               suite.money(4848),
		CancellationReason:  reason,
		EstimatedDeliveryAt: target,
		DeliveredAt:         deliveredAt,
		Items:               []order.LineItem{suite.lineItem(2, 1024)},
	})
	suite.Require().NoError(err)
	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) money(cents int64) kernel.Money {
	m, err := kernel.NewMoneyFromCents(cents)
	suite.Require().NoError(err)
	return m
}

func (suite *OrderRepositoryIntegrationTestSuite) lineItem(quantity int, unitPriceCents int64) order.LineItem {
	item, err := order.NewLineItem(kernel.NewUUID(), quantity, suite.money(unitPriceCents))
	suite.Require().NoError(err)
	return item
}

// assertOrderCount verifies the number of orders in the database.
func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

// assertLineItemCount verifies the number of line item rows in the database.
func (suite *OrderRepositoryIntegrationTestSuite) assertLineItemCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.LineItemDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
