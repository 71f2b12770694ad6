package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/voucher"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateVoucherCommandIsNotConstructed = errors.New(
	"CreateVoucherCommand must be created via NewCreateVoucherCommand constructor",
)

type CreateVoucherCommand struct { //nolint:recvcheck //using for validation
	voucherID kernel.UUID
	spec      voucher.Spec

	guard guard.ConstructorGuard
}

// NewCreateVoucherCommand normalises the code to upper case. The rest of the
// spec is checked by the voucher itself when the handler builds it.
func NewCreateVoucherCommand(voucherID kernel.UUID, spec voucher.Spec) (CreateVoucherCommand, error) {
	if err := requireID("voucherID", voucherID); err != nil {
		return CreateVoucherCommand{}, err
	}
	spec.Code = strings.ToUpper(strings.TrimSpace(spec.Code))
	return CreateVoucherCommand{voucherID: voucherID, spec: spec, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateVoucherCommand) Validate() error {
	return c.guard.Validate(ErrCreateVoucherCommandIsNotConstructed)
}

func (c CreateVoucherCommand) VoucherID() kernel.UUID { return c.voucherID }

func (c CreateVoucherCommand) Spec() voucher.Spec { return c.spec }
