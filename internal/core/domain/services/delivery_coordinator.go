package services

import (
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// DeliveryCoordinator is the only place where a delivery transition changes
// the order status.
type DeliveryCoordinator struct{}

func NewDeliveryCoordinator() DeliveryCoordinator {
	return DeliveryCoordinator{}
}

// Claim moves the assignment to DELIVERING and the order with it. A nil
// assignment means the order was never confirmed.
func (DeliveryCoordinator) Claim(o *order.Order, a *delivery.Assignment, shipperID kernel.UUID, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if a == nil {
		return delivery.ErrOrderNotConfirmed
	}
	switch a.Status() {
	case delivery.Delivering:
		return delivery.ErrAlreadyClaimed
	case delivery.Delivered:
		return delivery.ErrAlreadyDelivered
	}
	if o.Status() != order.Confirmed {
		return delivery.ErrOrderNotConfirmed
	}
	if err := a.Claim(shipperID, now); err != nil {
		return err
	}
	return o.StartDelivery(now)
}

// CanDeliver runs every Deliver check that does not need the proof, so an
// image is only stored for a delivery that will be recorded.
func (DeliveryCoordinator) CanDeliver(o *order.Order, a *delivery.Assignment, shipperID kernel.UUID) error {
	if o.Status() != order.Delivering {
		return errs.NewInvalidTransitionError("delivery", "order "+o.Status().String(), delivery.Delivered.String())
	}
	return a.CanBeDeliveredBy(shipperID)
}

// Deliver records the proof on the assignment and raises the delivered event
// on the order. The order stays DELIVERING until the customer or an admin
// completes it.
func (DeliveryCoordinator) Deliver(o *order.Order, a *delivery.Assignment, shipperID kernel.UUID, proofRef string, now time.Time) error {
	if o.Status() != order.Delivering {
		return errs.NewInvalidTransitionError("delivery", "order "+o.Status().String(), delivery.Delivered.String())
	}
	if err := a.Deliver(shipperID, proofRef, now); err != nil {
		return err
	}
	return o.RecordDelivery(now)
}

// Cancel closes the assignment of a cancelled order. A missing assignment
// (the order was never confirmed) and a delivered one are left alone.
func (DeliveryCoordinator) Cancel(o *order.Order, a *delivery.Assignment) error {
	if o.Status() != order.Cancelled {
		return errs.NewInvalidTransitionError("delivery", "order "+o.Status().String(), delivery.Cancelled.String())
	}
	if a == nil || a.Status() == delivery.Delivered || a.Status() == delivery.Cancelled {
		return nil
	}
	return a.Cancel()
}
