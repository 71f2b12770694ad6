package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

func release(ctx context.Context, ledger ports.InventoryLedger, restocks []order.Restock) error {
	for _, r := range restocks {
		if r.Quantity == 0 {
			continue
		}
		if err := ledger.Release(ctx, r.UnitID, r.Quantity); err != nil {
			return err
		}
	}
	return nil
}
