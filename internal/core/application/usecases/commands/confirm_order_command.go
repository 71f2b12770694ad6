package commands

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/guard"
)

var ErrConfirmOrderCommandIsNotConstructed = errors.New(
	"ConfirmOrderCommand must be created via NewConfirmOrderCommand constructor",
)

// ConfirmOrderCommand is an admin accepting a pending order for fulfillment.
type ConfirmOrderCommand struct { //nolint:recvcheck //using for validation
	trackingNumber string
	now            time.Time

	guard guard.ConstructorGuard
}

func NewConfirmOrderCommand(trackingNumber string, now time.Time) (ConfirmOrderCommand, error) {
	tn, err := normalizeTrackingNumber(trackingNumber)
	if err != nil {
		return ConfirmOrderCommand{}, err
	}
	return ConfirmOrderCommand{trackingNumber: tn, now: now, guard: guard.NewConstructorGuard()}, nil
}

func (c ConfirmOrderCommand) Validate() error {
	return c.guard.Validate(ErrConfirmOrderCommandIsNotConstructed)
}

func (c ConfirmOrderCommand) TrackingNumber() string { return c.trackingNumber }

func (c ConfirmOrderCommand) Now() time.Time { return c.now }
