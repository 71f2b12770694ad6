package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/voucher"
)

type CreateVoucherCommandHandler struct {
	uowFactory VoucherUoWFactory
}

func NewCreateVoucherCommandHandler(uowFactory VoucherUoWFactory) CreateVoucherCommandHandler {
	return CreateVoucherCommandHandler{uowFactory: uowFactory}
}

func (h *CreateVoucherCommandHandler) Handle(ctx context.Context, cmd CreateVoucherCommand) (err error) {
	if err = cmd.Validate(); err != nil {
		return err
	}

	v, err := voucher.NewVoucher(cmd.VoucherID(), cmd.Spec())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.VoucherRepository().Add(ctx, v); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
