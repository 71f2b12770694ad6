package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"

	"go.opentelemetry.io/otel/attribute"
)

type CancelOrderCommandHandler struct {
	uowFactory  CancelUoWFactory
	coordinator services.DeliveryCoordinator
}

func NewCancelOrderCommandHandler(uowFactory CancelUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{uowFactory: uowFactory, coordinator: services.NewDeliveryCoordinator()}
}

// Handle cancels the order and releases every line's full quantity in the
// same transaction. An open delivery assignment is closed with it, so a
// shipper can no longer upload a proof.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (err error) {
	if err = cmd.Validate(); err != nil {
		return err
	}

	ctx, span := startSpan(ctx, "CancelOrder",
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

	// Assignments are created on confirmation.
	hadAssignment := o.Status() != order.Pending

	var restocks []order.Restock
	if cmd.Actor().IsAdmin() {
		restocks, err = o.CancelByAdmin(cmd.Now())
	} else {
		restocks, err = o.CancelByCustomer(cmd.Actor().CustomerID(), cmd.Now())
	}
	if err != nil {
		return err
	}

	if err = release(ctx, uow.InventoryLedger(), restocks); err != nil {
		return err
	}
	if hadAssignment {
		if err = h.closeAssignment(ctx, uow, o); err != nil {
			return err
		}
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *CancelOrderCommandHandler) closeAssignment(ctx context.Context, uow CancelUoW, o *order.Order) error {
	a, err := loadAssignment(ctx, uow, o.ID())
	if err != nil {
		return err
	}
	if a == nil {
		return nil
	}
	before := a.Status()
	if err = h.coordinator.Cancel(o, a); err != nil {
		return err
	}
	if a.Status() == before {
		return nil
	}
	return uow.DeliveryRepository().Update(ctx, a)
}
