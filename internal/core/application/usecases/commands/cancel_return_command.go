package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCancelReturnCommandIsNotConstructed = errors.New(
	"CancelReturnCommand must be created via NewCancelReturnCommand constructor",
)

// CancelReturnCommand withdraws the customer's own pending return.
type CancelReturnCommand struct { //nolint:recvcheck //using for validation
	customerID     kernel.UUID
	trackingNumber string
	now            time.Time

	guard guard.ConstructorGuard
}

func NewCancelReturnCommand(customerID kernel.UUID, trackingNumber string, now time.Time) (CancelReturnCommand, error) {
	tn, tnErr := normalizeTrackingNumber(trackingNumber)
	if err := errors.Join(requireID("customerID", customerID), tnErr); err != nil {
		return CancelReturnCommand{}, err
	}
	return CancelReturnCommand{
		customerID:     customerID,
		trackingNumber: tn,
		now:            now,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c CancelReturnCommand) Validate() error {
	return c.guard.Validate(ErrCancelReturnCommandIsNotConstructed)
}

func (c CancelReturnCommand) CustomerID() kernel.UUID { return c.customerID }

func (c CancelReturnCommand) TrackingNumber() string { return c.trackingNumber }

func (c CancelReturnCommand) Now() time.Time { return c.now }
