package commands

import (
	"context"
)

type CancelReturnCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCancelReturnCommandHandler(uowFactory OrderUoWFactory) CancelReturnCommandHandler {
	return CancelReturnCommandHandler{uowFactory: uowFactory}
}

func (h *CancelReturnCommandHandler) Handle(ctx context.Context, cmd CancelReturnCommand) (err error) {
	if err = cmd.Validate(); err != nil {
		return err
	}

	ctx, span := startSpan(ctx, "CancelReturn", trackingAttr(cmd.TrackingNumber()))
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
	if err = o.CancelReturn(cmd.CustomerID(), cmd.Now()); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
