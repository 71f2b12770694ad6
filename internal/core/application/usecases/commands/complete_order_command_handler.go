package commands

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
)

// CompleteOrderCommandHandler moves a DELIVERING order to COMPLETED. Cash on
// delivery orders become PAID in the same write.
type CompleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCompleteOrderCommandHandler(uowFactory OrderUoWFactory) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{uowFactory: uowFactory}
}

func (h *CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) (err error) {
	if err = cmd.Validate(); err != nil {
		return err
	}

	ctx, span := startSpan(ctx, "CompleteOrder",
		trackingAttr(cmd.TrackingNumber()),
		attribute.Bool("actor.admin", cmd.Actor().IsAdmin()))
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

	if cmd.Actor().IsAdmin() {
		err = o.Complete(cmd.Now())
	} else {
		err = o.CompleteByCustomer(cmd.Actor().CustomerID(), cmd.Now())
	}
	if err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
