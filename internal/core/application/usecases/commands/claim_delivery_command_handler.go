package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"go.opentelemetry.io/otel/attribute"
)

// ClaimDeliveryCommandHandler lets a shipper pick up a CONFIRMED order. The
// assignment and the order move to DELIVERING together.
type ClaimDeliveryCommandHandler struct {
	uowFactory  DeliveryUoWFactory
	coordinator services.DeliveryCoordinator
}

func NewClaimDeliveryCommandHandler(uowFactory DeliveryUoWFactory) ClaimDeliveryCommandHandler {
	return ClaimDeliveryCommandHandler{
		uowFactory:  uowFactory,
		coordinator: services.NewDeliveryCoordinator(),
	}
}

func (h *ClaimDeliveryCommandHandler) Handle(ctx context.Context, cmd ClaimDeliveryCommand) (err error) {
	if err = cmd.Validate(); err != nil {
		return err
	}

	ctx, span := startSpan(ctx, "ClaimDelivery",
		trackingAttr(cmd.TrackingNumber()),
		attribute.String("shipper.id", cmd.ShipperID().String()))
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
	assignment, err := loadAssignment(ctx, uow, o.ID())
	if err != nil {
		return err
	}

	if err = h.coordinator.Claim(o, assignment, cmd.ShipperID(), cmd.Now()); err != nil {
		return err
	}
	if err = uow.DeliveryRepository().Update(ctx, assignment); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// loadAssignment returns nil without error when the order has no assignment
// yet, which only happens before confirmation.
func loadAssignment(ctx context.Context, uow DeliveryRepoFactory, orderID kernel.UUID) (*delivery.Assignment, error) {
	a, err := uow.DeliveryRepository().GetByOrderID(ctx, orderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	return a, err
}
