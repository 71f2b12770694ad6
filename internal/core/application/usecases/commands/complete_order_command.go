package commands

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/guard"
)

var ErrCompleteOrderCommandIsNotConstructed = errors.New(
	"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
)

// CompleteOrderCommand is the customer confirming receipt or an admin
// marking the order delivered.
type CompleteOrderCommand struct { //nolint:recvcheck //using for validation
	trackingNumber string
	actor          Actor
	now            time.Time

	guard guard.ConstructorGuard
}

func NewCompleteOrderCommand(trackingNumber string, actor Actor, now time.Time) (CompleteOrderCommand, error) {
	tn, err := normalizeTrackingNumber(trackingNumber)
	if err != nil {
		return CompleteOrderCommand{}, err
	}
	return CompleteOrderCommand{trackingNumber: tn, actor: actor, now: now, guard: guard.NewConstructorGuard()}, nil
}

func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

func (c CompleteOrderCommand) TrackingNumber() string { return c.trackingNumber }

func (c CompleteOrderCommand) Actor() Actor { return c.actor }

func (c CompleteOrderCommand) Now() time.Time { return c.now }
