package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConfirmOrderCommandHandler_Handle_CreatesAssignment(t *testing.T) {
	f := newOrderFixture(t, order.CashOnDelivery)
	uow := newMockUoW()
	uow.expectTx(true)
	uow.orders.On("GetByTrackingNumber", mock.Anything, "ORD260615TEST01").Return(f.order, nil).Once()
	uow.orders.On("Update", mock.Anything, f.order).Return(nil).Once()
	uow.deliveries.On("Add", mock.Anything, mock.MatchedBy(func(a *delivery.Assignment) bool {
		return a.OrderID().IsEqual(f.order.ID()) && a.Status() == delivery.Created
	})).Return(nil).Once()

	cmd, err := commands.NewConfirmOrderCommand(" ord260615test01 ", now)
	require.NoError(t, err)
	h := commands.NewConfirmOrderCommandHandler(uowFactory{uow}.delivery())
	require.NoError(t, h.Handle(t.Context(), cmd))

	assert.Equal(t, order.Confirmed, f.order.Status())
	uow.assertAll(t)
}

func TestConfirmOrderCommandHandler_Handle_NotPending(t *testing.T) {
	f := newOrderFixture(t, order.CashOnDelivery).confirmed(t)
	uow := newMockUoW()
	uow.expectTx(false)
	uow.orders.On("GetByTrackingNumber", mock.Anything, "ORD260615TEST01").Return(f.order, nil).Once()

	cmd, _ := commands.NewConfirmOrderCommand("ORD260615TEST01", now)
	h := commands.NewConfirmOrderCommandHandler(uowFactory{uow}.delivery())
	require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrInvalidTransition)
	uow.assertAll(t)
}

func TestConfirmOrderCommandHandler_Handle_UnknownOrder(t *testing.T) {
	uow := newMockUoW()
	uow.expectTx(false)
	uow.orders.On("GetByTrackingNumber", mock.Anything, "ORD260615NOPE00").
		Return(nil, errs.NewObjectNotFoundError("trackingNumber", "ORD260615NOPE00")).Once()

	cmd, _ := commands.NewConfirmOrderCommand("ORD260615NOPE00", now)
	h := commands.NewConfirmOrderCommandHandler(uowFactory{uow}.delivery())
	require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrObjectNotFound)
}

func TestNewConfirmOrderCommand_RequiresTrackingNumber(t *testing.T) {
	_, err := commands.NewConfirmOrderCommand("  ", now)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestCancelOrderCommandHandler_Handle_CustomerRestocksEveryLine(t *testing.T) {
	f := newOrderFixture(t, order.CashOnDelivery)
	uow := newMockUoW()
	uow.expectTx(true)
	uow.orders.On("GetByTrackingNumber", mock.Anything, "ORD260615TEST01").Return(f.order, nil).Once()
	uow.ledger.On("Release", mock.Anything, f.unitA, 2).Return(nil).Once()
	uow.ledger.On("Release", mock.Anything, f.unitB, 1).Return(nil).Once()
	uow.orders.On("Update", mock.Anything, f.order).Return(nil).Once()

	actor, err := commands.CustomerActor(f.customerID)
	require.NoError(t, err)
	cmd, _ := commands.NewCancelOrderCommand("ORD260615TEST01", actor, now)
	h := commands.NewCancelOrderCommandHandler(uowFactory{uow}.cancel())
	require.NoError(t, h.Handle(t.Context(), cmd))

	assert.Equal(t, order.Cancelled, f.order.Status())
	uow.assertAll(t)
}

func TestCancelOrderCommandHandler_Handle_CustomerCannotCancelConfirmed(t *testing.T) {
	f := newOrderFixture(t, order.CashOnDelivery).confirmed(t)
	uow := newMockUoW()
	uow.expectTx(false)
	uow.orders.On("GetByTrackingNumber", mock.Anything, "ORD260615TEST01").Return(f.order, nil).Once()

	actor, _ := commands.CustomerActor(f.customerID)
	cmd, _ := commands.NewCancelOrderCommand("ORD260615TEST01", actor, now)
	h := commands.NewCancelOrderCommandHandler(uowFactory{uow}.cancel())
	require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrInvalidTransition)

	assert.Equal(t, order.Confirmed, f.order.Status())
	uow.ledger.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelOrderCommandHandler_Handle_OtherCustomerIsForbidden(t *testing.T) {
	f := newOrderFixture(t, order.CashOnDelivery)
	uow := newMockUoW()
	uow.expectTx(false)
	uow.orders.On("GetByTrackingNumber", mock.Anything, "ORD260615TEST01").Return(f.order, nil).Once()

	actor, _ := commands.CustomerActor(kernel.NewUUID())
	cmd, _ := commands.NewCancelOrderCommand("ORD260615TEST01", actor, now)
	h := commands.NewCancelOrderCommandHandler(uowFactory{uow}.cancel())
	require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrForbidden)
}

func TestCancelOrderCommandHandler_Handle_AdminCancelsDelivering(t *testing.T) {
	f := newOrderFixture(t, order.CashOnDelivery).delivering(t)
	a, err := delivery.NewAssignment(kernel.NewUUID(), f.order.ID(), now)
	require.NoError(t, err)
	require.NoError(t, a.Claim(kernel.NewUUID(), now))

	uow := newMockUoW()
	uow.expectTx(true)
	uow.orders.On("GetByTrackingNumber", mock.Anything, "ORD260615TEST01").Return(f.order, nil).Once()
	uow.ledger.On("Release", mock.Anything, mock.Anything, mock.Anything).Return(nil).Twice()
	uow.deliveries.On("GetByOrderID", mock.Anything, f.order.ID()).Return(a, nil).Once()
	uow.deliveries.On("Update", mock.Anything, a).Return(nil).Once()
	uow.orders.On("Update", mock.Anything, f.order).Return(nil).Once()

	cmd, _ := commands.NewCancelOrderCommand("ORD260615TEST01", commands.AdminActor(), now)
	h := commands.NewCancelOrderCommandHandler(uowFactory{uow}.cancel())
	require.NoError(t, h.Handle(t.Context(), cmd))
	assert.Equal(t, order.Cancelled, f.order.Status())
	assert.Equal(t, delivery.Cancelled, a.Status(), "the shipper can no longer deliver")
	uow.assertAll(t)
}

func TestCancelOrderCommandHandler_Handle_AdminCancelsConfirmedClosesAssignment(t *testing.T) {
	f := newOrderFixture(t, order.CashOnDelivery).confirmed(t)
	a, err := delivery.NewAssignment(kernel.NewUUID(), f.order.ID(), now)
	require.NoError(t, err)

	uow := newMockUoW()
	uow.expectTx(true)
	uow.orders.On("GetByTrackingNumber", mock.Anything, "ORD260615TEST01").Return(f.order, nil).Once()
	uow.ledger.On("Release", mock.Anything, mock.Anything, mock.Anything).Return(nil).Twice()
	uow.deliveries.On("GetByOrderID", mock.Anything, f.order.ID()).Return(a, nil).Once()
	uow.deliveries.On("Update", mock.Anything, a).Return(nil).Once()
	uow.orders.On("Update", mock.Anything, f.order).Return(nil).Once()

	cmd, _ := commands.NewCancelOrderCommand("ORD260615TEST01", commands.AdminActor(), now)
	h := commands.NewCancelOrderCommandHandler(uowFactory{uow}.cancel())
	require.NoError(t, h.Handle(t.Context(), cmd))
	assert.Equal(t, delivery.Cancelled, a.Status())
	uow.assertAll(t)
}

func TestCancelOrderCommandHandler_Handle_CompletedIsTerminal(t *testing.T) {
	f := newOrderFixture(t, order.CashOnDelivery).completed(t)
	uow := newMockUoW()
	uow.expectTx(false)
	uow.orders.On("GetByTrackingNumber", mock.Anything, "ORD260615TEST01").Return(f.order, nil).Once()

	cmd, _ := commands.NewCancelOrderCommand("ORD260615TEST01", commands.AdminActor(), now)
	h := commands.NewCancelOrderCommandHandler(uowFactory{uow}.cancel())
	require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrInvalidTransition)
}

func TestCompleteOrderCommandHandler_Handle_CustomerReceiptMarksCashPaid(t *testing.T) {
	f := newOrderFixture(t, order.CashOnDelivery).delivering(t)
	uow := newMockUoW()
	uow.expectTx(true)
	uow.orders.On("GetByTrackingNumber", mock.Anything, "ORD260615TEST01").Return(f.order, nil).Once()
	uow.orders.On("Update", mock.Anything, f.order).Return(nil).Once()

	actor, _ := commands.CustomerActor(f.customerID)
	cmd, _ := commands.NewCompleteOrderCommand("ORD260615TEST01", actor, now)
	h := commands.NewCompleteOrderCommandHandler(uowFactory{uow}.order())
	require.NoError(t, h.Handle(t.Context(), cmd))

	assert.Equal(t, order.Completed, f.order.Status())
	assert.Equal(t, order.PaymentPaid, f.order.PaymentStatus())
	require.NotNil(t, f.order.CompletedAt())
	assert.Equal(t, now, *f.order.CompletedAt())
	uow.assertAll(t)
}

func TestCompleteOrderCommandHandler_Handle_ConfirmedCannotComplete(t *testing.T) {
	f := newOrderFixture(t, order.Gateway).confirmed(t)
	uow := newMockUoW()
	uow.expectTx(false)
	uow.orders.On("GetByTrackingNumber", mock.Anything, "ORD260615TEST01").Return(f.order, nil).Once()

	cmd, _ := commands.NewCompleteOrderCommand("ORD260615TEST01", commands.AdminActor(), now)
	h := commands.NewCompleteOrderCommandHandler(uowFactory{uow}.order())
	require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrInvalidTransition)
}

func TestCustomerActor_RequiresID(t *testing.T) {
	_, err := commands.CustomerActor(kernel.UUID{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.True(t, commands.AdminActor().IsAdmin())
}
