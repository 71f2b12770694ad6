package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/logging"

	"go.opentelemetry.io/otel/attribute"
)

// PaymentOutcome is what a verified callback did to the order.
type PaymentOutcome int

const (
	PaymentRecorded PaymentOutcome = iota + 1
	PaymentDeclined
	PaymentAlreadySettled
)

// HandlePaymentCallbackCommandHandler settles gateway payments.
//
//   - bad signature: order.ErrPaymentVerificationFailed, nothing written
//   - amount mismatch: order.ErrPaymentAmountMismatch, nothing written
//   - cash on delivery order: invalid transition
//   - already PAID: PaymentAlreadySettled, nothing written
//   - response code "00": PAID, PaymentRecorded
//   - any other code: FAILED is committed, then PaymentDeclined with order.ErrPaymentDeclined
//
// The order is never cancelled here; an unpaid order waits for a retry or an admin.
type HandlePaymentCallbackCommandHandler struct {
	uowFactory OrderUoWFactory
	gateway    ports.PaymentGateway
}

func NewHandlePaymentCallbackCommandHandler(uowFactory OrderUoWFactory, gateway ports.PaymentGateway) HandlePaymentCallbackCommandHandler {
	return HandlePaymentCallbackCommandHandler{uowFactory: uowFactory, gateway: gateway}
}

func (h *HandlePaymentCallbackCommandHandler) Handle(ctx context.Context, cmd HandlePaymentCallbackCommand) (_ PaymentOutcome, err error) {
	if err = cmd.Validate(); err != nil {
		return 0, err
	}

	ctx, span := startSpan(ctx, "HandlePaymentCallback")
	defer func() { endSpan(span, err) }()

	callback, err := h.gateway.VerifyCallback(cmd.Params())
	if err != nil {
		return 0, err
	}
	span.SetAttributes(
		trackingAttr(callback.TrackingNumber),
		attribute.String("payment.response_code", callback.ResponseCode))

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetByTrackingNumber(ctx, callback.TrackingNumber)
	if err != nil {
		return 0, err
	}
	// Cash on delivery orders fall through to the domain, which refuses them.
	if o.PaymentMethod() == order.Gateway {
		if o.PaymentStatus() == order.PaymentPaid {
			return PaymentAlreadySettled, nil
		}
		if callback.Amount != o.Final() {
			return 0, fmt.Errorf("%w: got %d, order total is %d",
				order.ErrPaymentAmountMismatch, callback.Amount, o.Final())
		}
	}

	if callback.Succeeded() {
		err = o.MarkPaid(callback.TransactionRef, cmd.Now())
	} else {
		err = o.MarkPaymentFailed(callback.TransactionRef, cmd.Now())
	}
	if err != nil {
		return 0, err
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return 0, err
	}
	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	if !callback.Succeeded() {
		logging.FromContext(ctx).WarnContext(ctx, "gateway payment declined",
			"tracking_number", o.TrackingNumber(),
			"response_code", callback.ResponseCode)
		return PaymentDeclined, fmt.Errorf("%w: response code %s", order.ErrPaymentDeclined, callback.ResponseCode)
	}
	return PaymentRecorded, nil
}
