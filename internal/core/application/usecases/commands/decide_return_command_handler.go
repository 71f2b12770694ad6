package commands

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
)

type DecideReturnCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewDecideReturnCommandHandler(uowFactory OrderUoWFactory) DecideReturnCommandHandler {
	return DecideReturnCommandHandler{uowFactory: uowFactory}
}

func (h *DecideReturnCommandHandler) Handle(ctx context.Context, cmd DecideReturnCommand) (err error) {
	if err = cmd.Validate(); err != nil {
		return err
	}

	ctx, span := startSpan(ctx, "DecideReturn",
		trackingAttr(cmd.TrackingNumber()),
		attribute.Bool("return.approve", cmd.Approve()))
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
	if cmd.Approve() {
		err = o.ApproveReturn(cmd.Now())
	} else {
		err = o.RejectReturn(cmd.Now())
	}
	if err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
