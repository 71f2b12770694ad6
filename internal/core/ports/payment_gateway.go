package ports

import (
	"context"
	"net/url"

	"fulfillment/internal/core/domain/model/kernel"
)

type PaymentRequest struct {
	TrackingNumber string
	Amount         kernel.Money
	ClientIP       string
	Description    string
}

// PaymentData is the redirect payload handed to the customer.
type PaymentData struct {
	PaymentURL   string
	SignedParams map[string]string
}

// PaymentCallback is a verified callback from the provider.
type PaymentCallback struct {
	TrackingNumber string
	TransactionRef string
	ResponseCode   string
	Amount         kernel.Money
}

// SuccessResponseCode is the only code that settles a payment.
const SuccessResponseCode = "00"

func (c PaymentCallback) Succeeded() bool {
	return c.ResponseCode == SuccessResponseCode
}

type PaymentGateway interface {
	CreatePaymentData(ctx context.Context, req PaymentRequest) (PaymentData, error)
	// VerifyCallback fails with order.ErrPaymentVerificationFailed on a bad signature.
	VerifyCallback(params url.Values) (PaymentCallback, error)
}
