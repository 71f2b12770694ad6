package cache

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// OrderInvalidator drops cached order views whenever their order changes.
// It is registered as an event publisher so it runs after commit.
type OrderInvalidator struct {
	cache ports.Cache
}

func NewOrderInvalidator(cache ports.Cache) *OrderInvalidator {
	return &OrderInvalidator{cache: cache}
}

func (i *OrderInvalidator) Publish(ctx context.Context, events []order.Event) error {
	seen := make(map[string]struct{}, len(events))
	keys := make([]string, 0, len(events))
	for _, e := range events {
		if _, ok := seen[e.TrackingNumber]; ok {
			continue
		}
		seen[e.TrackingNumber] = struct{}{}
		keys = append(keys, ports.OrderCacheKey(e.TrackingNumber))
	}
	return i.cache.Delete(ctx, keys...)
}
