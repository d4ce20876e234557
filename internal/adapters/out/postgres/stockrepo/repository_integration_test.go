package stockrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/stockrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stock"
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

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// StockItemRepositoryIntegrationTestSuite provides integration tests for
// StockItemRepository using PostgreSQL containers, covering the optimistic
// version guard and the append-only movement trail.
type StockItemRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *stockrepo.GormStockItemRepository
	tracker    *MockAggregateTracker
}

func (suite *StockItemRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&stockrepo.StockItemDTO{}, &stockrepo.MovementDTO{}))
}

func (suite *StockItemRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE stock_items, stock_movements").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = stockrepo.NewGormStockItemRepository(suite.db, suite.tracker, kernel.SystemClock{})
}

func (suite *StockItemRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *StockItemRepositoryIntegrationTestSuite) createStockItem(onHand int) *stock.StockItem {
	item, err := stock.NewStockItem(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"SKU-1", onHand, true, nil, kernel.SystemClock{},
	)
	suite.Require().NoError(err)
	return item
}

func (suite *StockItemRepositoryIntegrationTestSuite) movementCount() int64 {
	var count int64
	suite.Require().NoError(suite.db.Model(&stockrepo.MovementDTO{}).Count(&count).Error)
	return count
}

func (suite *StockItemRepositoryIntegrationTestSuite) TestAdd_PersistsItemAndInitialMovement() {
	ctx := context.Background()

	item := suite.createStockItem(10)
	suite.Require().NoError(suite.repository.Add(ctx, item))

	var count int64
	suite.Require().NoError(suite.db.Model(&stockrepo.StockItemDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
	suite.Equal(int64(1), suite.movementCount())
	suite.Empty(item.UncommittedMovements())
}

func (suite *StockItemRepositoryIntegrationTestSuite) TestGetByVariantAndLocation_RoundTrips() {
	ctx := context.Background()

	item := suite.createStockItem(10)
	suite.Require().NoError(suite.repository.Add(ctx, item))

	retrieved, err := suite.repository.GetByVariantAndLocation(ctx, item.VariantID(), item.LocationID())
	suite.Require().NoError(err)

	suite.True(retrieved.ID().IsEqual(item.ID()))
	suite.Equal(10, retrieved.QuantityOnHand())
	suite.Equal(0, retrieved.QuantityReserved())
	suite.True(retrieved.IsBackorderable())
}

func (suite *StockItemRepositoryIntegrationTestSuite) TestGet_NonExistentItem_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *StockItemRepositoryIntegrationTestSuite) TestUpdate_AppendsMovements() {
	ctx := context.Background()

	item := suite.createStockItem(10)
	suite.Require().NoError(suite.repository.Add(ctx, item))

	loaded, err := suite.repository.Get(ctx, item.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.Reserve(4, kernel.NewUUID()))
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	suite.Equal(int64(2), suite.movementCount())

	retrieved, err := suite.repository.Get(ctx, item.ID())
	suite.Require().NoError(err)
	suite.Equal(4, retrieved.QuantityReserved())
}

func (suite *StockItemRepositoryIntegrationTestSuite) TestUpdate_ConcurrentChange_ReturnsVersionConflict() {
	ctx := context.Background()

	item := suite.createStockItem(10)
	suite.Require().NoError(suite.repository.Add(ctx, item))

	// Two repositories load the same row, both mutate, second write loses.
	other := stockrepo.NewGormStockItemRepository(suite.db, suite.tracker, kernel.SystemClock{})

	first, err := suite.repository.Get(ctx, item.ID())
	suite.Require().NoError(err)
	second, err := other.Get(ctx, item.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Reserve(4, kernel.NewUUID()))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.Reserve(2, kernel.NewUUID()))
	err = other.Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
}

func (suite *StockItemRepositoryIntegrationTestSuite) TestUpdate_WithoutLoad_ReturnsVersionConflict() {
	ctx := context.Background()

	item := suite.createStockItem(10)
	suite.Require().NoError(suite.repository.Add(ctx, item))

	fresh := stockrepo.NewGormStockItemRepository(suite.db, suite.tracker, kernel.SystemClock{})
	err := fresh.Update(ctx, item)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
}

func (suite *StockItemRepositoryIntegrationTestSuite) TestGetAllByVariant_ReturnsEveryLocation() {
	ctx := context.Background()

	variantID := kernel.NewUUID()
	for range 3 {
		item, err := stock.NewStockItem(
			kernel.NewUUID(), variantID, kernel.NewUUID(),
			"SKU-1", 5, false, nil, kernel.SystemClock{},
		)
		suite.Require().NoError(err)
		suite.Require().NoError(suite.repository.Add(ctx, item))
	}
	suite.Require().NoError(suite.repository.Add(ctx, suite.createStockItem(5)))

	items, err := suite.repository.GetAllByVariant(ctx, variantID)
	suite.Require().NoError(err)
	suite.Len(items, 3)
}

func TestStockItemRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(StockItemRepositoryIntegrationTestSuite))
}
