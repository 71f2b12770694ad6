package eventbus

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// Fanout hands the same events to every publisher, in order. One failing
// publisher does not stop the rest.
type Fanout []ports.EventPublisher

func (f Fanout) Publish(ctx context.Context, events []order.Event) error {
	var errList []error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, events); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}
