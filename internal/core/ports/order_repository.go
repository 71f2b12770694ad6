package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository persists orders together with their lines.
type OrderRepository interface {
	Add(ctx context.Context, aggregate *order.Order) error
	Update(ctx context.Context, aggregate *order.Order) error
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByTrackingNumber locks the order row for the rest of the transaction,
	// serialising concurrent transitions on the same order.
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*order.Order, error)

	ExistsTrackingNumber(ctx context.Context, trackingNumber string) (bool, error)
}
