package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"go.opentelemetry.io/otel/attribute"
)

// ConfirmDeliveryCommandHandler stores the proof image and records it on the
// assignment. The order stays DELIVERING until it is completed, but its
// delivered event goes out with the commit.
type ConfirmDeliveryCommandHandler struct {
	uowFactory  DeliveryUoWFactory
	storage     ports.ProofStorage
	coordinator services.DeliveryCoordinator
}

func NewConfirmDeliveryCommandHandler(uowFactory DeliveryUoWFactory, storage ports.ProofStorage) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory:  uowFactory,
		storage:     storage,
		coordinator: services.NewDeliveryCoordinator(),
	}
}

// Handle returns the stored proof reference.
func (h *ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) (ref string, err error) {
	if err = cmd.Validate(); err != nil {
		return "", err
	}

	ctx, span := startSpan(ctx, "ConfirmDelivery",
		trackingAttr(cmd.TrackingNumber()),
		attribute.String("shipper.id", cmd.ShipperID().String()),
		attribute.Int("proof.bytes", len(cmd.Proof().Data())))
	defer func() { endSpan(span, err) }()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return "", err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetByTrackingNumber(ctx, cmd.TrackingNumber())
	if err != nil {
		return "", err
	}
	assignment, err := uow.DeliveryRepository().GetByOrderID(ctx, o.ID())
	if err != nil {
		return "", err
	}
	if err = h.coordinator.CanDeliver(o, assignment, cmd.ShipperID()); err != nil {
		return "", err
	}

	proof := cmd.Proof()
	key := fmt.Sprintf("proofs/%s/%s%s", o.TrackingNumber(), kernel.NewUUID(), proof.Extension())
	ref, err = h.storage.Save(ctx, key, proof.ContentType(), proof.Data())
	if err != nil {
		return "", err
	}

	if err = h.coordinator.Deliver(o, assignment, cmd.ShipperID(), ref, cmd.Now()); err != nil {
		return "", err
	}
	if err = uow.DeliveryRepository().Update(ctx, assignment); err != nil {
		return "", err
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}
	return ref, nil
}
