package cartrepo

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// GetSelected joins the lines with unit and product pricing. Lines come back
// ordered by unit so concurrent checkouts reserve rows in the same order.
func (r *GormCartRepository) GetSelected(ctx context.Context, userID kernel.UUID, ids []kernel.UUID) ([]ports.CartLine, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []selectedLineRow
	err := r.db.WithContext(ctx).
		Table("cart_lines").
		Select("cart_lines.id, cart_lines.user_id, cart_lines.unit_id, cart_lines.quantity, " +
			"products.base_price, products.discount AS product_discount, inventory_units.price_adjustment").
		Joins("JOIN inventory_units ON inventory_units.id = cart_lines.unit_id").
		Joins("JOIN products ON products.id = inventory_units.product_id").
		Where("cart_lines.user_id = ? AND cart_lines.id IN ?", userID.Value(), rawIDs(ids)).
		Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "cart_lines"}}).
		Order("cart_lines.unit_id, cart_lines.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	lines := make([]ports.CartLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, ports.CartLine{
			ID:              kernel.UUIDFrom(row.ID),
			UserID:          kernel.UUIDFrom(row.UserID),
			UnitID:          kernel.UUIDFrom(row.UnitID),
			Quantity:        row.Quantity,
			BasePrice:       kernel.Money(row.BasePrice),
			ProductDiscount: row.ProductDiscount,
			PriceAdjustment: row.PriceAdjustment,
		})
	}
	return lines, nil
}

func (r *GormCartRepository) DeleteLines(ctx context.Context, ids []kernel.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", rawIDs(ids)).Delete(&CartLineDTO{}).Error
}

func rawIDs(ids []kernel.UUID) []uuid.UUID {
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Value())
	}
	return raw
}
