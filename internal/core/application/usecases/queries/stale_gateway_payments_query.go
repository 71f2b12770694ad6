package queries

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrStaleGatewayPaymentsQueryIsNotConstructed = errors.New(
		"StaleGatewayPaymentsQuery must be created via NewStaleGatewayPaymentsQuery constructor",
	)
)

// StaleGatewayPaymentsQuery finds live gateway orders whose payment is still
// PENDING after maxAge. Nothing is changed; the orders are only reported.
type StaleGatewayPaymentsQuery struct {
	cutoff time.Time
	guard  guard.ConstructorGuard
}

func NewStaleGatewayPaymentsQuery(now time.Time, maxAge time.Duration) (StaleGatewayPaymentsQuery, error) {
	if maxAge <= 0 {
		return StaleGatewayPaymentsQuery{}, errs.NewValueIsOutOfRangeError("maxAge", maxAge, "1ns", "unbounded")
	}
	return StaleGatewayPaymentsQuery{cutoff: now.Add(-maxAge).UTC(), guard: guard.NewConstructorGuard()}, nil
}

func (q StaleGatewayPaymentsQuery) Validate() error {
	return q.guard.Validate(ErrStaleGatewayPaymentsQueryIsNotConstructed)
}

func (q StaleGatewayPaymentsQuery) Cutoff() time.Time { return q.cutoff }

type StalePayment struct {
	TrackingNumber string
	FinalAmount    int64
	CreatedAt      time.Time
}
