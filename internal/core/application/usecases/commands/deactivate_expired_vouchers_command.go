package commands

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/guard"
)

var ErrDeactivateExpiredVouchersCommandIsNotConstructed = errors.New(
	"DeactivateExpiredVouchersCommand must be created via NewDeactivateExpiredVouchersCommand constructor",
)

type DeactivateExpiredVouchersCommand struct { //nolint:recvcheck //using for validation
	now time.Time

	guard guard.ConstructorGuard
}

func NewDeactivateExpiredVouchersCommand(now time.Time) DeactivateExpiredVouchersCommand {
	return DeactivateExpiredVouchersCommand{now: now, guard: guard.NewConstructorGuard()}
}

func (c DeactivateExpiredVouchersCommand) Validate() error {
	return c.guard.Validate(ErrDeactivateExpiredVouchersCommandIsNotConstructed)
}

func (c DeactivateExpiredVouchersCommand) Now() time.Time { return c.now }
