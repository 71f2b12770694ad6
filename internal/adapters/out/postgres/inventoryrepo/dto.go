package inventoryrepo

import (
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UnitDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Color           string          `gorm:"size:64"`
	Size            string          `gorm:"size:32"`
	StockQuantity   int             `gorm:"not null;check:stock_quantity >= 0"`
	PriceAdjustment decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
}

func (UnitDTO) TableName() string {
	return "inventory_units"
}

func fromDomain(u *inventory.Unit) UnitDTO {
	return UnitDTO{
		ID:              u.ID().Value(),
		ProductID:       u.ProductID().Value(),
		Color:           u.Color(),
		Size:            u.Size(),
		StockQuantity:   u.Stock(),
		PriceAdjustment: u.PriceAdjustment(),
	}
}

func toDomain(dto UnitDTO) (*inventory.Unit, error) {
	return inventory.RestoreUnit(
		kernel.UUIDFrom(dto.ID),
		kernel.UUIDFrom(dto.ProductID),
		dto.Color,
		dto.Size,
		dto.StockQuantity,
		dto.PriceAdjustment,
	)
}
