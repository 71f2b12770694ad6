package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCorrectVoucherUsageCommandIsNotConstructed = errors.New(
	"CorrectVoucherUsageCommand must be created via NewCorrectVoucherUsageCommand constructor",
)

// CorrectVoucherUsageCommand is the explicit admin path that may lower a
// voucher's used count, for instance after orders placed with it were cancelled.
type CorrectVoucherUsageCommand struct { //nolint:recvcheck //using for validation
	code      string
	usedCount int

	guard guard.ConstructorGuard
}

func NewCorrectVoucherUsageCommand(code string, usedCount int) (CorrectVoucherUsageCommand, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	var codeErr, countErr error
	if code == "" {
		codeErr = errs.NewValueIsRequiredError("code")
	}
	if usedCount < 0 {
		countErr = errs.NewValueIsOutOfRangeError("usedCount", usedCount, 0, "usage limit")
	}
	if err := errors.Join(codeErr, countErr); err != nil {
		return CorrectVoucherUsageCommand{}, err
	}
	return CorrectVoucherUsageCommand{code: code, usedCount: usedCount, guard: guard.NewConstructorGuard()}, nil
}

func (c CorrectVoucherUsageCommand) Validate() error {
	return c.guard.Validate(ErrCorrectVoucherUsageCommandIsNotConstructed)
}

func (c CorrectVoucherUsageCommand) Code() string { return c.code }

func (c CorrectVoucherUsageCommand) UsedCount() int { return c.usedCount }
