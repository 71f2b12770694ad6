package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// CartLine is a selected cart entry joined with the SKU and catalog prices
// current at checkout time.
type CartLine struct {
	ID              kernel.UUID
	UserID          kernel.UUID
	UnitID          kernel.UUID
	Quantity        int
	BasePrice       kernel.Money
	ProductDiscount decimal.Decimal
	PriceAdjustment decimal.Decimal
}

// CartRepository is the checkout's view of the cart and catalog. The core
// never writes catalog data.
type CartRepository interface {
	// GetSelected returns the caller's lines among ids, locked so a second
	// checkout of the same lines waits and then finds nothing.
	GetSelected(ctx context.Context, userID kernel.UUID, ids []kernel.UUID) ([]CartLine, error)
	DeleteLines(ctx context.Context, ids []kernel.UUID) error
}
