package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
)

type DeliveryRepository interface {
	Add(ctx context.Context, aggregate *delivery.Assignment) error
	Update(ctx context.Context, aggregate *delivery.Assignment) error
	// GetByOrderID locks the assignment row.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*delivery.Assignment, error)
}
