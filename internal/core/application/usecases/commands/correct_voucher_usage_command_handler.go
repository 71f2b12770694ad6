package commands

import (
	"context"
)

type CorrectVoucherUsageCommandHandler struct {
	uowFactory VoucherUoWFactory
}

func NewCorrectVoucherUsageCommandHandler(uowFactory VoucherUoWFactory) CorrectVoucherUsageCommandHandler {
	return CorrectVoucherUsageCommandHandler{uowFactory: uowFactory}
}

func (h *CorrectVoucherUsageCommandHandler) Handle(ctx context.Context, cmd CorrectVoucherUsageCommand) (err error) {
	if err = cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	v, err := uow.VoucherRepository().GetByCode(ctx, cmd.Code())
	if err != nil {
		return err
	}
	if err = v.CorrectUsage(cmd.UsedCount()); err != nil {
		return err
	}
	if err = uow.VoucherRepository().Update(ctx, v); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
