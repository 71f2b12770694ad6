package eventbus

import (
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// Message is the wire form of an order event.
type Message struct {
	Type           string    `json:"type"`
	OrderID        string    `json:"order_id"`
	TrackingNumber string    `json:"tracking_number"`
	CustomerID     string    `json:"customer_id"`
	OrderStatus    string    `json:"order_status"`
	PaymentStatus  string    `json:"payment_status"`
	ReturnStatus   string    `json:"return_status"`
	OccurredAt     time.Time `json:"occurred_at"`
}

func NewMessage(e order.Event) Message {
	return Message{
		Type:           string(e.Type),
		OrderID:        e.OrderID.String(),
		TrackingNumber: e.TrackingNumber,
		CustomerID:     e.CustomerID.String(),
		OrderStatus:    e.OrderStatus.String(),
		PaymentStatus:  e.PaymentStatus.String(),
		ReturnStatus:   e.ReturnStatus.String(),
		OccurredAt:     e.OccurredAt.UTC(),
	}
}
