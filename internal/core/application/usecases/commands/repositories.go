// Package commands contains the operations that change state. Every handler
// validates its command, opens one unit of work, loads what it changes with
// row locks, applies domain rules and commits. A handler never commits
// partially: any error rolls the whole transaction back.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of work interfaces, narrowed to what each group of handlers touches.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	InventoryLedgerFactory interface {
		InventoryLedger() ports.InventoryLedger
	}

	VoucherRepoFactory interface {
		VoucherRepository() ports.VoucherRepository
	}

	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	CartRepoFactory interface {
		CartRepository() ports.CartRepository
	}

	// OrderUoW serves transitions that touch nothing but the order.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// RestockUoW serves transitions that put units back on the shelf.
	RestockUoW interface {
		TxManager
		OrderRepoFactory
		InventoryLedgerFactory
	}

	RestockUoWFactory interface {
		Create() RestockUoW
	}

	// CancelUoW serves cancellation, which restocks and closes the
	// delivery assignment together.
	CancelUoW interface {
		TxManager
		OrderRepoFactory
		InventoryLedgerFactory
		DeliveryRepoFactory
	}

	CancelUoWFactory interface {
		Create() CancelUoW
	}

	// DeliveryUoW couples the order with its delivery assignment.
	DeliveryUoW interface {
		TxManager
		OrderRepoFactory
		DeliveryRepoFactory
	}

	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	VoucherUoW interface {
		TxManager
		VoucherRepoFactory
	}

	VoucherUoWFactory interface {
		Create() VoucherUoW
	}

	// CheckoutUoW spans everything order placement writes:
	//
	//	uow := factory.Create()
	//	err := uow.Begin(ctx)
	//	defer uow.Rollback(ctx)
	//
	//	lines, err := uow.CartRepository().GetSelected(ctx, customerID, ids)
	//	err = uow.InventoryLedger().Reserve(ctx, unitID, qty)
	//	err = uow.VoucherRepository().Redeem(ctx, v)
	//	err = uow.OrderRepository().Add(ctx, o)
	//
	//	err = uow.Commit(ctx)
	CheckoutUoW interface {
		TxManager
		CartRepoFactory
		InventoryLedgerFactory
		VoucherRepoFactory
		OrderRepoFactory
	}

	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}
)
