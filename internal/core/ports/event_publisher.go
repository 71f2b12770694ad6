package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// EventPublisher receives order events after their transaction committed.
type EventPublisher interface {
	Publish(ctx context.Context, events []order.Event) error
}
