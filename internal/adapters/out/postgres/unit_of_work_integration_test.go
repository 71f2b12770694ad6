package postgres_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	postgres_adapter "fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/cartrepo"
	"fulfillment/internal/adapters/out/postgres/inventoryrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/voucher"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite races units of work against a real
// PostgreSQL so row locks and conditional updates behave as in production.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	if testing.Short() {
		suite.T().Skip("needs docker")
	}
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE delivery_assignments, order_lines, orders, vouchers, cart_lines, inventory_units, products").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) seedUnit(stock int) kernel.UUID {
	product := cartrepo.ProductDTO{ID: uuid.New(), Name: "tee", BasePrice: 200000}
	suite.Require().NoError(suite.db.Create(&product).Error)
	unit := inventoryrepo.UnitDTO{ID: uuid.New(), ProductID: product.ID, Color: "white", Size: "L", StockQuantity: stock}
	suite.Require().NoError(suite.db.Create(&unit).Error)
	return kernel.UUIDFrom(unit.ID)
}

type checkoutFactory func() commands.CheckoutUoW

func (f checkoutFactory) Create() commands.CheckoutUoW { return f() }

func (suite *UnitOfWorkIntegrationTestSuite) seedCartLine(customer kernel.UUID, unitID kernel.UUID, qty int) kernel.UUID {
	line := cartrepo.CartLineDTO{ID: uuid.New(), UserID: customer.Value(), UnitID: unitID.Value(), Quantity: qty}
	suite.Require().NoError(suite.db.Create(&line).Error)
	return kernel.UUIDFrom(line.ID)
}

func (suite *UnitOfWorkIntegrationTestSuite) checkoutHandler(tracking services.TrackingNumbers) commands.PlaceOrderCommandHandler {
	factory := checkoutFactory(func() commands.CheckoutUoW { return suite.factory.Create() })
	return commands.NewPlaceOrderCommandHandler(factory, nil, 30000, tracking)
}

// raceCheckouts places one cash order per cart line, all released at once.
func (suite *UnitOfWorkIntegrationTestSuite) raceCheckouts(h commands.PlaceOrderCommandHandler, customers, lines []kernel.UUID) ([]commands.PlaceOrderResult, []error) {
	now := time.Now().UTC()
	cmds := make([]commands.PlaceOrderCommand, len(lines))
	for i := range lines {
		cmd, err := commands.NewPlaceOrderCommand(commands.PlaceOrderInput{
			CustomerID:    customers[i],
			AddressID:     kernel.NewUUID(),
			CartLineIDs:   []kernel.UUID{lines[i]},
			PaymentMethod: order.CashOnDelivery,
		}, now)
		suite.Require().NoError(err)
		cmds[i] = cmd
	}

	start := make(chan struct{})
	results := make([]commands.PlaceOrderResult, len(cmds))
	errs := make([]error, len(cmds))
	var wg sync.WaitGroup
	for i := range cmds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			results[i], errs[i] = h.Handle(context.Background(), cmds[i])
		}()
	}
	close(start)
	wg.Wait()
	return results, errs
}

func (suite *UnitOfWorkIntegrationTestSuite) orderCount() int64 {
	var n int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&n).Error)
	return n
}

// race runs fn in n goroutines released at the same instant, each inside its
// own unit of work, and returns every outcome.
func (suite *UnitOfWorkIntegrationTestSuite) race(n int, fn func(ctx context.Context, uow ports.UnitOfWork) error) []error {
	ctx := context.Background()
	start := make(chan struct{})
	results := make([]error, n)

	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			uow := suite.factory.Create()
			if err := uow.Begin(ctx); err != nil {
				results[i] = err
				return
			}
			defer func() { _ = uow.Rollback(ctx) }()
			if err := fn(ctx, uow); err != nil {
				results[i] = err
				return
			}
			results[i] = uow.Commit(ctx)
		}()
	}
	close(start)
	wg.Wait()
	return results
}

func (suite *UnitOfWorkIntegrationTestSuite) TestLastUnitIsReservedExactlyOnce() {
	unitID := suite.seedUnit(1)

	results := suite.race(8, func(ctx context.Context, uow ports.UnitOfWork) error {
		return uow.InventoryLedger().Reserve(ctx, unitID, 1)
	})

	var won, short int
	for _, err := range results {
		switch {
		case err == nil:
			won++
		case errors.Is(err, inventory.ErrInsufficientStock):
			short++
		default:
			suite.Failf("unexpected error", "%v", err)
		}
	}
	suite.Equal(1, won)
	suite.Equal(7, short)

	unit, err := suite.factory.Create().InventoryLedger().Get(context.Background(), unitID)
	suite.Require().NoError(err)
	suite.Equal(0, unit.Stock())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestLastVoucherUseIsRedeemedExactlyOnce() {
	ctx := context.Background()
	now := time.Now().UTC()
	v, err := voucher.NewVoucher(kernel.NewUUID(), voucher.Spec{
		Code:          "LASTONE",
		DiscountType:  voucher.Fixed,
		DiscountValue: decimal.NewFromInt(20000),
		UsageLimit:    1,
		StartDate:     now.Add(-time.Hour),
		EndDate:       now.Add(time.Hour),
	})
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.VoucherRepository().Add(ctx, v))
	suite.Require().NoError(uow.Commit(ctx))

	results := suite.race(6, func(ctx context.Context, uow ports.UnitOfWork) error {
		locked, err := uow.VoucherRepository().GetByCode(ctx, "LASTONE")
		if err != nil {
			return err
		}
		if _, err = locked.Evaluate(kernel.NewUUID(), 100000, time.Now()); err != nil {
			return err
		}
		return uow.VoucherRepository().Redeem(ctx, locked)
	})

	var won, exhausted int
	for _, err := range results {
		var ineligible *voucher.IneligibleError
		switch {
		case err == nil:
			won++
		case errors.As(err, &ineligible) && ineligible.Reason == voucher.ReasonUsageExhausted:
			exhausted++
		default:
			suite.Failf("unexpected error", "%v", err)
		}
	}
	suite.Equal(1, won)
	suite.Equal(5, exhausted)

	stored, err := suite.factory.Create().VoucherRepository().Get(ctx, v.ID())
	suite.Require().NoError(err)
	suite.Equal(1, stored.UsedCount())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestReleaseRestoresStockAfterCommit() {
	ctx := context.Background()
	unitID := suite.seedUnit(2)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.InventoryLedger().Reserve(ctx, unitID, 2))
	suite.Require().NoError(uow.InventoryLedger().Release(ctx, unitID, 1))
	suite.Require().NoError(uow.Commit(ctx))

	unit, err := suite.factory.Create().InventoryLedger().Get(ctx, unitID)
	suite.Require().NoError(err)
	suite.Equal(1, unit.Stock())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestParallelCheckoutsOfLastUnitPlaceOneOrder() {
	const n = 6
	unitID := suite.seedUnit(1)
	customers := make([]kernel.UUID, n)
	lines := make([]kernel.UUID, n)
	for i := range n {
		customers[i] = kernel.NewUUID()
		lines[i] = suite.seedCartLine(customers[i], unitID, 1)
	}

	results, errs := suite.raceCheckouts(suite.checkoutHandler(services.NewTrackingNumbers()), customers, lines)

	var placed, short int
	for i, err := range errs {
		switch {
		case err == nil:
			placed++
			suite.NotEmpty(results[i].TrackingNumber)
		case errors.Is(err, inventory.ErrInsufficientStock):
			short++
		default:
			suite.Failf("unexpected error", "%v", err)
		}
	}
	suite.Equal(1, placed)
	suite.Equal(n-1, short)
	suite.EqualValues(1, suite.orderCount())

	unit, err := suite.factory.Create().InventoryLedger().Get(context.Background(), unitID)
	suite.Require().NoError(err)
	suite.Equal(0, unit.Stock())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestParallelCheckoutsDrawingTheSameTrackingNumberBothSucceed() {
	var mu sync.Mutex
	draws := 0
	tracking := services.NewTrackingNumbersWithSource(func(n int) (string, error) {
		mu.Lock()
		defer mu.Unlock()
		draws++
		if draws <= 2 {
			return "SAME01", nil
		}
		return strings.Repeat("Z", n-1) + string(rune('0'+draws%10)), nil
	})

	customers := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}
	lines := []kernel.UUID{
		suite.seedCartLine(customers[0], suite.seedUnit(1), 1),
		suite.seedCartLine(customers[1], suite.seedUnit(1), 1),
	}

	results, errs := suite.raceCheckouts(suite.checkoutHandler(tracking), customers, lines)

	suite.Require().NoError(errs[0])
	suite.Require().NoError(errs[1])
	suite.NotEqual(results[0].TrackingNumber, results[1].TrackingNumber)
	suite.True(strings.HasSuffix(results[0].TrackingNumber, "SAME01") ||
		strings.HasSuffix(results[1].TrackingNumber, "SAME01"))
	suite.EqualValues(2, suite.orderCount())
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
