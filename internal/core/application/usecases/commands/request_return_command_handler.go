package commands

import (
	"context"
)

type RequestReturnCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewRequestReturnCommandHandler(uowFactory OrderUoWFactory) RequestReturnCommandHandler {
	return RequestReturnCommandHandler{uowFactory: uowFactory}
}

// Handle records the request with its per-line quantities. Nothing is
// restocked until an admin completes the return.
func (h *RequestReturnCommandHandler) Handle(ctx context.Context, cmd RequestReturnCommand) (err error) {
	if err = cmd.Validate(); err != nil {
		return err
	}

	ctx, span := startSpan(ctx, "RequestReturn", trackingAttr(cmd.TrackingNumber()))
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
	if err = o.RequestReturn(cmd.CustomerID(), cmd.Items(), cmd.Reason(), cmd.Evidence(), cmd.Now()); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
