package commands_test

import (
	"context"
	"net/url"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/voucher"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetByTrackingNumber(ctx context.Context, tn string) (*order.Order, error) {
	args := m.Called(ctx, tn)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) ExistsTrackingNumber(ctx context.Context, tn string) (bool, error) {
	args := m.Called(ctx, tn)
	return args.Bool(0), args.Error(1)
}

type MockInventoryLedger struct{ mock.Mock }

func (m *MockInventoryLedger) Add(ctx context.Context, u *inventory.Unit) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockInventoryLedger) Get(ctx context.Context, id kernel.UUID) (*inventory.Unit, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*inventory.Unit)
	return u, args.Error(1)
}

func (m *MockInventoryLedger) Reserve(ctx context.Context, unitID kernel.UUID, qty int) error {
	return m.Called(ctx, unitID, qty).Error(0)
}

func (m *MockInventoryLedger) Release(ctx context.Context, unitID kernel.UUID, qty int) error {
	return m.Called(ctx, unitID, qty).Error(0)
}

type MockVoucherRepository struct{ mock.Mock }

func (m *MockVoucherRepository) Add(ctx context.Context, v *voucher.Voucher) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVoucherRepository) Update(ctx context.Context, v *voucher.Voucher) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVoucherRepository) Get(ctx context.Context, id kernel.UUID) (*voucher.Voucher, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*voucher.Voucher)
	return v, args.Error(1)
}

func (m *MockVoucherRepository) GetByCode(ctx context.Context, code string) (*voucher.Voucher, error) {
	args := m.Called(ctx, code)
	v, _ := args.Get(0).(*voucher.Voucher)
	return v, args.Error(1)
}

func (m *MockVoucherRepository) Redeem(ctx context.Context, v *voucher.Voucher) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVoucherRepository) ListExpiredActive(ctx context.Context, now time.Time) ([]*voucher.Voucher, error) {
	args := m.Called(ctx, now)
	vs, _ := args.Get(0).([]*voucher.Voucher)
	return vs, args.Error(1)
}

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, a *delivery.Assignment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, a *delivery.Assignment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockDeliveryRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*delivery.Assignment, error) {
	args := m.Called(ctx, orderID)
	a, _ := args.Get(0).(*delivery.Assignment)
	return a, args.Error(1)
}

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) GetSelected(ctx context.Context, userID kernel.UUID, ids []kernel.UUID) ([]ports.CartLine, error) {
	args := m.Called(ctx, userID, ids)
	lines, _ := args.Get(0).([]ports.CartLine)
	return lines, args.Error(1)
}

func (m *MockCartRepository) DeleteLines(ctx context.Context, ids []kernel.UUID) error {
	return m.Called(ctx, ids).Error(0)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) CreatePaymentData(ctx context.Context, req ports.PaymentRequest) (ports.PaymentData, error) {
	args := m.Called(ctx, req)
	data, _ := args.Get(0).(ports.PaymentData)
	return data, args.Error(1)
}

func (m *MockPaymentGateway) VerifyCallback(params url.Values) (ports.PaymentCallback, error) {
	args := m.Called(params)
	cb, _ := args.Get(0).(ports.PaymentCallback)
	return cb, args.Error(1)
}

type MockProofStorage struct{ mock.Mock }

func (m *MockProofStorage) Save(ctx context.Context, key, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, key, contentType, data)
	return args.String(0), args.Error(1)
}

// MockUoW satisfies every narrowed unit of work. Repositories left nil panic
// when a handler reaches for one it should not need.
type MockUoW struct {
	mock.Mock
	orders     *MockOrderRepository
	ledger     *MockInventoryLedger
	vouchers   *MockVoucherRepository
	deliveries *MockDeliveryRepository
	carts      *MockCartRepository
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		orders:     new(MockOrderRepository),
		ledger:     new(MockInventoryLedger),
		vouchers:   new(MockVoucherRepository),
		deliveries: new(MockDeliveryRepository),
		carts:      new(MockCartRepository),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository       { return m.orders }
func (m *MockUoW) InventoryLedger() ports.InventoryLedger       { return m.ledger }
func (m *MockUoW) VoucherRepository() ports.VoucherRepository   { return m.vouchers }
func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository { return m.deliveries }
func (m *MockUoW) CartRepository() ports.CartRepository         { return m.carts }

// expectTx sets up a transaction that commits, or not when commit is false.
func (m *MockUoW) expectTx(commit bool) {
	m.On("Begin", mock.Anything).Return(nil).Once()
	if commit {
		m.On("Commit", mock.Anything).Return(nil).Once()
	}
	m.On("Rollback", mock.Anything).Return(nil).Maybe()
}

func (m *MockUoW) assertAll(t mock.TestingT) {
	m.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.ledger.AssertExpectations(t)
	m.vouchers.AssertExpectations(t)
	m.deliveries.AssertExpectations(t)
	m.carts.AssertExpectations(t)
}

type uowFactory struct{ uow *MockUoW }

func (f uowFactory) order() commands.OrderUoWFactory {
	return orderFactory(func() commands.OrderUoW { return f.uow })
}

func (f uowFactory) restock() commands.RestockUoWFactory {
	return restockFactory(func() commands.RestockUoW { return f.uow })
}

func (f uowFactory) cancel() commands.CancelUoWFactory {
	return cancelFactory(func() commands.CancelUoW { return f.uow })
}

func (f uowFactory) delivery() commands.DeliveryUoWFactory {
	return deliveryFactory(func() commands.DeliveryUoW { return f.uow })
}

func (f uowFactory) voucher() commands.VoucherUoWFactory {
	return voucherFactory(func() commands.VoucherUoW { return f.uow })
}

func (f uowFactory) checkout() commands.CheckoutUoWFactory {
	return checkoutFactory(func() commands.CheckoutUoW { return f.uow })
}

type orderFactory func() commands.OrderUoW

func (f orderFactory) Create() commands.OrderUoW { return f() }

type restockFactory func() commands.RestockUoW

func (f restockFactory) Create() commands.RestockUoW { return f() }

type cancelFactory func() commands.CancelUoW

func (f cancelFactory) Create() commands.CancelUoW { return f() }

type deliveryFactory func() commands.DeliveryUoW

func (f deliveryFactory) Create() commands.DeliveryUoW { return f() }

type voucherFactory func() commands.VoucherUoW

func (f voucherFactory) Create() commands.VoucherUoW { return f() }

type checkoutFactory func() commands.CheckoutUoW

func (f checkoutFactory) Create() commands.CheckoutUoW { return f() }
