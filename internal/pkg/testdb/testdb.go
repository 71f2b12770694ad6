// Package testdb opens throwaway SQLite databases carrying the production
// schema, and seeds the catalog rows the core only reads.
package testdb

import (
	"fmt"
	"testing"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/cartrepo"
	"fulfillment/internal/adapters/out/postgres/inventoryrepo"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a migrated in-memory database private to t. The pool holds a
// single connection, so an open transaction blocks every other statement.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, postgres.Migrate(db))
	return db
}

type Product struct {
	BasePrice int64
	Discount  float64
}

// SeedUnit inserts a product with one SKU and returns the SKU id.
func SeedUnit(t testing.TB, db *gorm.DB, p Product, adjustment float64, stock int) uuid.UUID {
	t.Helper()

	product := cartrepo.ProductDTO{
		ID:        uuid.New(),
		Name:      "product",
		BasePrice: p.BasePrice,
		Discount:  decimal.NewFromFloat(p.Discount),
	}
	require.NoError(t, db.Create(&product).Error)

	unit := inventoryrepo.UnitDTO{
		ID:              uuid.New(),
		ProductID:       product.ID,
		Color:           "black",
		Size:            "M",
		StockQuantity:   stock,
		PriceAdjustment: decimal.NewFromFloat(adjustment),
	}
	require.NoError(t, db.Create(&unit).Error)
	return unit.ID
}

func SeedCartLine(t testing.TB, db *gorm.DB, userID, unitID uuid.UUID, qty int) uuid.UUID {
	t.Helper()

	line := cartrepo.CartLineDTO{ID: uuid.New(), UserID: userID, UnitID: unitID, Quantity: qty}
	require.NoError(t, db.Create(&line).Error)
	return line.ID
}

func Stock(t testing.TB, db *gorm.DB, unitID uuid.UUID) int {
	t.Helper()

	var unit inventoryrepo.UnitDTO
	require.NoError(t, db.Take(&unit, "id = ?", unitID).Error)
	return unit.StockQuantity
}
