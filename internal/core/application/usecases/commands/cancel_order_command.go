package commands

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand cancels an order and puts its units back in stock.
// Customers may cancel their own PENDING orders; admins may cancel anything
// not yet COMPLETED.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	trackingNumber string
	actor          Actor
	now            time.Time

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(trackingNumber string, actor Actor, now time.Time) (CancelOrderCommand, error) {
	tn, err := normalizeTrackingNumber(trackingNumber)
	if err != nil {
		return CancelOrderCommand{}, err
	}
	return CancelOrderCommand{trackingNumber: tn, actor: actor, now: now, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) TrackingNumber() string { return c.trackingNumber }

func (c CancelOrderCommand) Actor() Actor { return c.actor }

func (c CancelOrderCommand) Now() time.Time { return c.now }
