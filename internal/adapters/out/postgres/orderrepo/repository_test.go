package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/testdb"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type OrderRepositoryTestSuite struct {
	suite.Suite
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
	now        time.Time
}

func (suite *OrderRepositoryTestSuite) SetupTest() {
	suite.db = testdb.Open(suite.T())
	suite.tracker = &MockAggregateTracker{}
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Return()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
	suite.now = time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)
}

func (suite *OrderRepositoryTestSuite) newOrder(method order.PaymentMethod) *order.Order {
	first, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), 2, 150000)
	suite.Require().NoError(err)
	second, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), 1, 90000)
	suite.Require().NoError(err)

	voucherID := kernel.NewUUID()
	o, err := order.NewOrder(order.Draft{
		ID:             kernel.NewUUID(),
		TrackingNumber: "ORD260504K7Q2ZX",
		CustomerID:     kernel.NewUUID(),
		AddressID:      kernel.NewUUID(),
		VoucherID:      &voucherID,
		VoucherCode:    "SPRING",
		ShippingFee:    30000,
		Discount:       40000,
		PaymentMethod:  method,
		Note:           "leave at the door",
		CreatedAt:      suite.now,
		Lines:          []*order.Line{first, second},
	})
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryTestSuite) TestAdd_ThenGet_RoundTripsOrderAndLines() {
	ctx := context.Background()
	o := suite.newOrder(order.Gateway)

	suite.Require().NoError(suite.repository.Add(ctx, o))
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", o.ID(), o)

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	want, got := o.Snapshot(), loaded.Snapshot()
	suite.Equal(want.TrackingNumber, got.TrackingNumber)
	suite.Equal(kernel.Money(390000), got.Subtotal)
	suite.Equal(kernel.Money(380000), got.Final)
	suite.Equal(order.Pending, got.Status)
	suite.Equal(order.PaymentPending, got.PaymentStatus)
	suite.Equal(order.ReturnNone, got.ReturnStatus)
	suite.Require().NotNil(got.VoucherID)
	suite.True(want.VoucherID.IsEqual(*got.VoucherID))
	suite.Require().Len(got.Lines, 2)
	suite.True(want.Lines[0].ID().IsEqual(got.Lines[0].ID()), "lines keep their checkout order")
	suite.Equal(2, got.Lines[0].Quantity())
	suite.Equal(kernel.Money(90000), got.Lines[1].UnitPrice())
}

func (suite *OrderRepositoryTestSuite) TestGetByTrackingNumber() {
	ctx := context.Background()
	o := suite.newOrder(order.CashOnDelivery)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	loaded, err := suite.repository.GetByTrackingNumber(ctx, "ORD260504K7Q2ZX")
	suite.Require().NoError(err)
	suite.True(o.ID().IsEqual(loaded.ID()))

	_, err = suite.repository.GetByTrackingNumber(ctx, "ORD260504NOPE00")
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	_, err = suite.repository.GetByTrackingNumber(ctx, "")
	suite.ErrorIs(err, errs.ErrValueIsRequired)
}

func (suite *OrderRepositoryTestSuite) TestExistsTrackingNumber() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder(order.CashOnDelivery)))

	exists, err := suite.repository.ExistsTrackingNumber(ctx, "ORD260504K7Q2ZX")
	suite.Require().NoError(err)
	suite.True(exists)

	exists, err = suite.repository.ExistsTrackingNumber(ctx, "ORD260504ZZZZZZ")
	suite.Require().NoError(err)
	suite.False(exists)
}

func (suite *OrderRepositoryTestSuite) TestAdd_TakenTrackingNumber_ReturnsTaken() {
	ctx := context.Background()
	first := suite.newOrder(order.CashOnDelivery)
	suite.Require().NoError(suite.repository.Add(ctx, first))

	second := suite.newOrder(order.Gateway)
	err := suite.repository.Add(ctx, second)

	suite.ErrorIs(err, order.ErrTrackingNumberTaken)
	suite.tracker.AssertNotCalled(suite.T(), "TrackAggregate", second.ID(), second)
	_, err = suite.repository.Get(ctx, second.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryTestSuite) TestUpdate_PersistsLifecycleAndReturnQuantities() {
	ctx := context.Background()
	o := suite.newOrder(order.CashOnDelivery)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(o.Confirm(suite.now))
	suite.Require().NoError(o.StartDelivery(suite.now))
	suite.Require().NoError(o.Complete(suite.now))
	lines := o.Lines()
	suite.Require().NoError(o.RequestReturn(o.CustomerID(),
		[]order.ReturnItem{{LineID: lines[0].ID(), Quantity: 1}},
		order.ReasonDamaged, []string{"proofs/a.jpg"}, suite.now.Add(time.Hour)))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	s := loaded.Snapshot()
	suite.Equal(order.Completed, s.Status)
	suite.Equal(order.PaymentPaid, s.PaymentStatus)
	suite.Equal(order.ReturnPending, s.ReturnStatus)
	suite.Equal(order.ReasonDamaged, s.ReturnReason)
	suite.Equal([]string{"proofs/a.jpg"}, s.ReturnEvidence)
	suite.Require().NotNil(s.CompletedAt)
	suite.Equal(1, s.Lines[0].ReturnQuantity())
	suite.Equal(0, s.Lines[1].ReturnQuantity())
}

func (suite *OrderRepositoryTestSuite) TestUpdate_UnknownOrder_ReturnsNotFound() {
	err := suite.repository.Update(context.Background(), suite.newOrder(order.Gateway))
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func TestOrderRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryTestSuite))
}
