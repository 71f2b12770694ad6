package order

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

type EventType string

const (
	EventPlaced          EventType = "order.placed"
	EventConfirmed       EventType = "order.confirmed"
	EventCancelled       EventType = "order.cancelled"
	EventDelivering      EventType = "order.delivering"
	EventDelivered       EventType = "order.delivered"
	EventCompleted       EventType = "order.completed"
	EventPaymentPaid     EventType = "order.payment_paid"
	EventPaymentFailed   EventType = "order.payment_failed"
	EventReturnRequested EventType = "order.return_requested"
	EventReturnApproved  EventType = "order.return_approved"
	EventReturnRejected  EventType = "order.return_rejected"
	EventReturnCompleted EventType = "order.return_completed"
	EventReturnCancelled EventType = "order.return_cancelled"
)

// Event is a snapshot of the order's states right after a change.
type Event struct {
	Type           EventType
	OrderID        kernel.UUID
	TrackingNumber string
	CustomerID     kernel.UUID
	OrderStatus    Status
	PaymentStatus  PaymentStatus
	ReturnStatus   ReturnStatus
	OccurredAt     time.Time
}
