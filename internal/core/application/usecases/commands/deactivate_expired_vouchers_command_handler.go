package commands

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
)

// DeactivateExpiredVouchersCommandHandler switches off every active voucher
// whose end date has passed and reports how many it touched.
type DeactivateExpiredVouchersCommandHandler struct {
	uowFactory VoucherUoWFactory
}

func NewDeactivateExpiredVouchersCommandHandler(uowFactory VoucherUoWFactory) DeactivateExpiredVouchersCommandHandler {
	return DeactivateExpiredVouchersCommandHandler{uowFactory: uowFactory}
}

func (h *DeactivateExpiredVouchersCommandHandler) Handle(ctx context.Context, cmd DeactivateExpiredVouchersCommand) (n int, err error) {
	if err = cmd.Validate(); err != nil {
		return 0, err
	}

	ctx, span := startSpan(ctx, "DeactivateExpiredVouchers")
	defer func() {
		span.SetAttributes(attribute.Int("vouchers.deactivated", n))
		endSpan(span, err)
	}()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.VoucherRepository()
	expired, err := repo.ListExpiredActive(ctx, cmd.Now())
	if err != nil {
		return 0, err
	}
	for _, v := range expired {
		v.Deactivate()
		if err = repo.Update(ctx, v); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return len(expired), nil
}
