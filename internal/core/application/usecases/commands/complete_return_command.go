package commands

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/guard"
)

var ErrCompleteReturnCommandIsNotConstructed = errors.New(
	"CompleteReturnCommand must be created via NewCompleteReturnCommand constructor",
)

// CompleteReturnCommand is an admin receiving the returned units.
type CompleteReturnCommand struct { //nolint:recvcheck //using for validation
	trackingNumber string
	now            time.Time

	guard guard.ConstructorGuard
}

func NewCompleteReturnCommand(trackingNumber string, now time.Time) (CompleteReturnCommand, error) {
	tn, err := normalizeTrackingNumber(trackingNumber)
	if err != nil {
		return CompleteReturnCommand{}, err
	}
	return CompleteReturnCommand{trackingNumber: tn, now: now, guard: guard.NewConstructorGuard()}, nil
}

func (c CompleteReturnCommand) Validate() error {
	return c.guard.Validate(ErrCompleteReturnCommandIsNotConstructed)
}

func (c CompleteReturnCommand) TrackingNumber() string { return c.trackingNumber }

func (c CompleteReturnCommand) Now() time.Time { return c.now }
