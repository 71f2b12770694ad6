// Package cartrepo reads the cart and catalog tables owned by the storefront.
// The DTOs exist so tests and local setups can migrate those tables; the core
// only reads products and units and deletes consumed cart lines.
package cartrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name      string          `gorm:"size:255;not null"`
	BasePrice int64           `gorm:"not null"`
	Discount  decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`
}

func (ProductDTO) TableName() string {
	return "products"
}

type CartLineDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	UnitID    uuid.UUID `gorm:"type:uuid;not null"`
	Quantity  int       `gorm:"not null"`
	CreatedAt time.Time
}

func (CartLineDTO) TableName() string {
	return "cart_lines"
}

type selectedLineRow struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	UnitID          uuid.UUID
	Quantity        int
	BasePrice       int64
	ProductDiscount decimal.Decimal
	PriceAdjustment decimal.Decimal
}
