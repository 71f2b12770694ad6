package commands

import (
	"context"
)

// CompleteReturnCommandHandler closes an APPROVED return and restocks exactly
// the returned quantities. The order status does not change.
type CompleteReturnCommandHandler struct {
	uowFactory RestockUoWFactory
}

func NewCompleteReturnCommandHandler(uowFactory RestockUoWFactory) CompleteReturnCommandHandler {
	return CompleteReturnCommandHandler{uowFactory: uowFactory}
}

func (h *CompleteReturnCommandHandler) Handle(ctx context.Context, cmd CompleteReturnCommand) (err error) {
	if err = cmd.Validate(); err != nil {
		return err
	}

	ctx, span := startSpan(ctx, "CompleteReturn", trackingAttr(cmd.TrackingNumber()))
	defer func() { endSpan(span, err) }()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetByTrackingNumber(ctx, cmd.TrackingNumber())
	if err != nil {
		return err
	}
	restocks, err := o.CompleteReturn(cmd.Now())
	if err != nil {
		return err
	}
	if err = release(ctx, uow.InventoryLedger(), restocks); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
