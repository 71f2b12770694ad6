package ports

import (
	"context"
)

// UnitOfWorkFactory creates one UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the explicit transaction boundary shared by the ledger,
// voucher, order, delivery and cart repositories. Events of the orders it
// touched are published only after Commit succeeds.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	InventoryLedger() InventoryLedger
	VoucherRepository() VoucherRepository
	OrderRepository() OrderRepository
	DeliveryRepository() DeliveryRepository
	CartRepository() CartRepository
}
