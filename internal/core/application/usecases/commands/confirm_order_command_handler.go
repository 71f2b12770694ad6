package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
)

// ConfirmOrderCommandHandler moves a PENDING order to CONFIRMED and opens its
// delivery assignment in the same transaction, so shippers can claim it.
type ConfirmOrderCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

func NewConfirmOrderCommandHandler(uowFactory DeliveryUoWFactory) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{uowFactory: uowFactory}
}

func (h *ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) (err error) {
	if err = cmd.Validate(); err != nil {
		return err
	}

	ctx, span := startSpan(ctx, "ConfirmOrder", trackingAttr(cmd.TrackingNumber()))
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
	if err = o.Confirm(cmd.Now()); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	assignment, err := delivery.NewAssignment(kernel.NewUUID(), o.ID(), cmd.Now())
	if err != nil {
		return err
	}
	if err = uow.DeliveryRepository().Add(ctx, assignment); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
