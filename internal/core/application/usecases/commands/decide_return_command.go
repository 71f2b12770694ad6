package commands

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/guard"
)

var ErrDecideReturnCommandIsNotConstructed = errors.New(
	"DecideReturnCommand must be created via NewDecideReturnCommand constructor",
)

// DecideReturnCommand is an admin approving or rejecting a pending return.
type DecideReturnCommand struct { //nolint:recvcheck //using for validation
	trackingNumber string
	approve        bool
	now            time.Time

	guard guard.ConstructorGuard
}

func NewDecideReturnCommand(trackingNumber string, approve bool, now time.Time) (DecideReturnCommand, error) {
	tn, err := normalizeTrackingNumber(trackingNumber)
	if err != nil {
		return DecideReturnCommand{}, err
	}
	return DecideReturnCommand{trackingNumber: tn, approve: approve, now: now, guard: guard.NewConstructorGuard()}, nil
}

func (c DecideReturnCommand) Validate() error {
	return c.guard.Validate(ErrDecideReturnCommandIsNotConstructed)
}

func (c DecideReturnCommand) TrackingNumber() string { return c.trackingNumber }

func (c DecideReturnCommand) Approve() bool { return c.approve }

func (c DecideReturnCommand) Now() time.Time { return c.now }
