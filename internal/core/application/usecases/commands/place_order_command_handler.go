package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/voucher"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/logging"

	"go.opentelemetry.io/otel/attribute"
)

// PlaceOrderResult is what the customer sees right after checkout.
type PlaceOrderResult struct {
	OrderID        kernel.UUID
	TrackingNumber string
	Subtotal       kernel.Money
	ShippingFee    kernel.Money
	Discount       kernel.Money
	Final          kernel.Money
	PaymentMethod  order.PaymentMethod
	// Payment is set for gateway orders only.
	Payment *ports.PaymentData
}

// maxCheckoutAttempts bounds the restarts after a concurrent checkout took
// the same tracking number.
const maxCheckoutAttempts = 3

// PlaceOrderCommandHandler runs checkout in one transaction: lock the
// selected cart lines, reserve stock, price, apply and redeem the voucher,
// persist the order and drop the consumed cart lines.
type PlaceOrderCommandHandler struct {
	uowFactory      CheckoutUoWFactory
	gateway         ports.PaymentGateway
	shippingFee     kernel.Money
	builder         services.OrderBuilder
	trackingNumbers services.TrackingNumbers
}

func NewPlaceOrderCommandHandler(
	uowFactory CheckoutUoWFactory,
	gateway ports.PaymentGateway,
	shippingFee kernel.Money,
	trackingNumbers services.TrackingNumbers,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory:      uowFactory,
		gateway:         gateway,
		shippingFee:     shippingFee,
		builder:         services.NewOrderBuilder(),
		trackingNumbers: trackingNumbers,
	}
}

func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (result PlaceOrderResult, err error) {
	if err = cmd.Validate(); err != nil {
		return PlaceOrderResult{}, err
	}

	ctx, span := startSpan(ctx, "PlaceOrder",
		attribute.String("customer.id", cmd.CustomerID().String()),
		attribute.Int("cart.lines", len(cmd.CartLineIDs())),
		attribute.String("payment.method", cmd.PaymentMethod().String()))
	defer func() { endSpan(span, err) }()

	var o *order.Order
	for attempt := 1; ; attempt++ {
		o, err = h.checkout(ctx, cmd)
		if !errors.Is(err, order.ErrTrackingNumberTaken) {
			break
		}
		if attempt == maxCheckoutAttempts {
			err = errors.Join(order.ErrTrackingNumberExhausted, err)
			break
		}
		logging.FromContext(ctx).WarnContext(ctx, "tracking number taken concurrently, retrying checkout",
			"attempt", attempt, "error", err)
	}
	if err != nil {
		return PlaceOrderResult{}, err
	}

	result = PlaceOrderResult{
		OrderID:        o.ID(),
		TrackingNumber: o.TrackingNumber(),
		Subtotal:       o.Subtotal(),
		ShippingFee:    o.ShippingFee(),
		Discount:       o.Discount(),
		Final:          o.Final(),
		PaymentMethod:  o.PaymentMethod(),
	}
	span.SetAttributes(trackingAttr(o.TrackingNumber()))

	logging.FromContext(ctx).InfoContext(ctx, "order placed",
		"tracking_number", o.TrackingNumber(),
		"final_amount", int64(o.Final()),
		"payment_method", o.PaymentMethod().String())

	if o.PaymentMethod() != order.Gateway {
		return result, nil
	}

	// The order is committed PENDING either way; a payload failure leaves it
	// for the stale payment report.
	data, err := h.gateway.CreatePaymentData(ctx, ports.PaymentRequest{
		TrackingNumber: o.TrackingNumber(),
		Amount:         o.Final(),
		ClientIP:       cmd.ClientIP(),
		Description:    "Payment for order " + o.TrackingNumber(),
	})
	if err != nil {
		return result, err
	}
	result.Payment = &data
	return result, nil
}

func (h *PlaceOrderCommandHandler) checkout(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	lines, err := uow.CartRepository().GetSelected(ctx, cmd.CustomerID(), cmd.CartLineIDs())
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, order.ErrEmptySelection
	}

	ledger := uow.InventoryLedger()
	items := make([]services.PricedItem, 0, len(lines))
	consumed := make([]kernel.UUID, 0, len(lines))
	for _, line := range lines {
		if err = ledger.Reserve(ctx, line.UnitID, line.Quantity); err != nil {
			return nil, err
		}
		items = append(items, services.PricedItem{
			UnitID:          line.UnitID,
			Quantity:        line.Quantity,
			BasePrice:       line.BasePrice,
			ProductDiscount: line.ProductDiscount,
			PriceAdjustment: line.PriceAdjustment,
		})
		consumed = append(consumed, line.ID)
	}

	var v *voucher.Voucher
	if cmd.VoucherCode() != "" {
		if v, err = uow.VoucherRepository().GetByCode(ctx, cmd.VoucherCode()); err != nil {
			return nil, err
		}
	}

	orders := uow.OrderRepository()
	trackingNumber, err := h.trackingNumbers.Next(ctx, cmd.Now(), orders)
	if err != nil {
		return nil, err
	}

	o, err := h.builder.Build(services.BuildInput{
		OrderID:        kernel.NewUUID(),
		TrackingNumber: trackingNumber,
		CustomerID:     cmd.CustomerID(),
		AddressID:      cmd.AddressID(),
		PaymentMethod:  cmd.PaymentMethod(),
		Note:           cmd.Note(),
		ShippingFee:    h.shippingFee,
		Items:          items,
		Voucher:        v,
		Now:            cmd.Now(),
	})
	if err != nil {
		return nil, err
	}

	if v != nil {
		if err = uow.VoucherRepository().Redeem(ctx, v); err != nil {
			return nil, err
		}
	}
	if err = orders.Add(ctx, o); err != nil {
		return nil, err
	}
	if err = uow.CartRepository().DeleteLines(ctx, consumed); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return o, nil
}
