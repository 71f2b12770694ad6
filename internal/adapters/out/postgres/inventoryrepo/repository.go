package inventoryrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormInventoryLedger keeps stock in inventory_units. Reserve never reads
// before it writes: the check and the decrement are one UPDATE.
type GormInventoryLedger struct {
	db *gorm.DB
}

func NewGormInventoryLedger(db *gorm.DB) *GormInventoryLedger {
	return &GormInventoryLedger{db: db}
}

func (r *GormInventoryLedger) Add(ctx context.Context, unit *inventory.Unit) error {
	if err := unit.Validate(); err != nil {
		return err
	}
	dto := fromDomain(unit)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormInventoryLedger) Get(ctx context.Context, id kernel.UUID) (*inventory.Unit, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	var dto UnitDTO
	if err := r.db.WithContext(ctx).Take(&dto, "id = ?", id.Value()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("inventoryUnit", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormInventoryLedger) Reserve(ctx context.Context, unitID kernel.UUID, qty int) error {
	if err := inventory.ValidateQuantity(qty); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&UnitDTO{}).
		Where("id = ? AND stock_quantity >= ?", unitID.Value(), qty).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 1 {
		return nil
	}

	// Nothing matched: tell a missing unit apart from short stock.
	var dto UnitDTO
	if err := r.db.WithContext(ctx).Select("id", "stock_quantity").Take(&dto, "id = ?", unitID.Value()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("inventoryUnit", unitID.String())
		}
		return err
	}
	return inventory.NewInsufficientStockError(unitID, qty, dto.StockQuantity)
}

func (r *GormInventoryLedger) Release(ctx context.Context, unitID kernel.UUID, qty int) error {
	if err := inventory.ValidateQuantity(qty); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&UnitDTO{}).
		Where("id = ?", unitID.Value()).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("inventoryUnit", unitID.String())
	}
	return nil
}
