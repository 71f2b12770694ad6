// Package ports declares what the application core needs from the outside
// world: repositories bound to a unit of work, the payment gateway, proof
// storage, event publication and the read cache.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
)

// InventoryLedger owns stock counts.
type InventoryLedger interface {
	Add(ctx context.Context, unit *inventory.Unit) error
	Get(ctx context.Context, id kernel.UUID) (*inventory.Unit, error)

	// Reserve checks and decrements stock in one atomic step. It returns
	// *inventory.InsufficientStockError when stock is short and
	// *errs.ObjectNotFoundError when the unit does not exist.
	Reserve(ctx context.Context, unitID kernel.UUID, qty int) error

	// Release increments stock. Call it once per physical restitution.
	Release(ctx context.Context, unitID kernel.UUID, qty int) error
}
