package services

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/voucher"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// PricedItem is a selected cart line joined with its SKU and catalog prices.
type PricedItem struct {
	UnitID          kernel.UUID
	Quantity        int
	BasePrice       kernel.Money
	ProductDiscount decimal.Decimal
	PriceAdjustment decimal.Decimal
}

// UnitPrice is base * (1 - discount%) * (1 + adjustment%), rounded to a minor unit.
func (p PricedItem) UnitPrice() kernel.Money {
	return kernel.ApplyPercentages(p.BasePrice, p.ProductDiscount, p.PriceAdjustment)
}

type BuildInput struct {
	OrderID        kernel.UUID
	TrackingNumber string
	CustomerID     kernel.UUID
	AddressID      kernel.UUID
	PaymentMethod  order.PaymentMethod
	Note           string
	ShippingFee    kernel.Money
	Items          []PricedItem
	// Voucher is nil when the customer applied no code.
	Voucher *voucher.Voucher
	Now     time.Time
}

type OrderBuilder struct{}

func NewOrderBuilder() OrderBuilder {
	return OrderBuilder{}
}

// Build prices the items, evaluates and redeems the voucher in memory and
// returns the new order. Stock must already be reserved by the caller.
func (OrderBuilder) Build(in BuildInput) (*order.Order, error) {
	if len(in.Items) == 0 {
		return nil, order.ErrEmptySelection
	}

	lines := make([]*order.Line, 0, len(in.Items))
	var subtotal kernel.Money
	for _, item := range in.Items {
		price := item.UnitPrice()
		if price < 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause("unitPrice",
				errors.New("catalog discount exceeds the base price"))
		}
		line, err := order.NewLine(kernel.NewUUID(), item.UnitID, item.Quantity, price)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
		subtotal = subtotal.Add(line.Subtotal())
	}

	draft := order.Draft{
		ID:             in.OrderID,
		TrackingNumber: in.TrackingNumber,
		CustomerID:     in.CustomerID,
		AddressID:      in.AddressID,
		ShippingFee:    in.ShippingFee,
		PaymentMethod:  in.PaymentMethod,
		Note:           in.Note,
		CreatedAt:      in.Now,
		Lines:          lines,
	}

	if in.Voucher != nil {
		discount, err := in.Voucher.Evaluate(in.CustomerID, subtotal, in.Now)
		if err != nil {
			return nil, err
		}
		if err = in.Voucher.Redeem(); err != nil {
			return nil, err
		}
		voucherID := in.Voucher.ID()
		draft.VoucherID = &voucherID
		draft.VoucherCode = in.Voucher.Code()
		draft.Discount = discount
	}

	return order.NewOrder(draft)
}
