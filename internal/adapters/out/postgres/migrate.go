package postgres

import (
	"fulfillment/internal/adapters/out/postgres/cartrepo"
	"fulfillment/internal/adapters/out/postgres/deliveryrepo"
	"fulfillment/internal/adapters/out/postgres/inventoryrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/voucherrepo"

	"gorm.io/gorm"
)

// Models lists every table the service reads or writes, parents first.
func Models() []any {
	return []any{
		&cartrepo.ProductDTO{},
		&inventoryrepo.UnitDTO{},
		&cartrepo.CartLineDTO{},
		&voucherrepo.VoucherDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&deliveryrepo.AssignmentDTO{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
