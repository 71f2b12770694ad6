package voucherrepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/voucher"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormVoucherRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormVoucherRepository(db *gorm.DB, tracker aggregateTracker) *GormVoucherRepository {
	return &GormVoucherRepository{db: db, tracker: tracker}
}

func (r *GormVoucherRepository) Add(ctx context.Context, aggregate *voucher.Voucher) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes admin-controlled fields. used_count is written as is, which
// makes this the correction path; checkout goes through Redeem.
func (r *GormVoucherRepository) Update(ctx context.Context, aggregate *voucher.Voucher) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&VoucherDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"discount_type":           dto.DiscountType,
		"discount_amount":         dto.DiscountAmount,
		"maximum_discount_amount": dto.MaximumDiscountAmount,
		"minimum_order_amount":    dto.MinimumOrderAmount,
		"usage_limit":             dto.UsageLimit,
		"used_count":              dto.UsedCount,
		"start_date":              dto.StartDate,
		"end_date":                dto.EndDate,
		"is_public":               dto.IsPublic,
		"owner_id":                dto.OwnerID,
		"is_active":               dto.IsActive,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("voucher", aggregate.ID().String())
	}
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormVoucherRepository) Get(ctx context.Context, id kernel.UUID) (*voucher.Voucher, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	var dto VoucherDTO
	if err := r.db.WithContext(ctx).Take(&dto, "id = ?", id.Value()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("voucher", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormVoucherRepository) GetByCode(ctx context.Context, code string) (*voucher.Voucher, error) {
	var dto VoucherDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Take(&dto, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, voucher.NewNotFoundError(code)
		}
		return nil, err
	}
	return toDomain(dto)
}

// Redeem is the compare-and-increment that keeps used_count <= usage_limit
// under concurrent checkouts.
func (r *GormVoucherRepository) Redeem(ctx context.Context, aggregate *voucher.Voucher) error {
	result := r.db.WithContext(ctx).Model(&VoucherDTO{}).
		Where("id = ? AND is_active AND used_count < usage_limit", aggregate.ID().Value()).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return voucher.NewIneligibleError(aggregate.Code(), voucher.ReasonUsageExhausted)
	}
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormVoucherRepository) ListExpiredActive(ctx context.Context, now time.Time) ([]*voucher.Voucher, error) {
	var dtos []VoucherDTO
	if err := r.db.WithContext(ctx).
		Where("is_active AND end_date < ?", now.UTC()).
		Order("end_date").
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	vouchers := make([]*voucher.Voucher, 0, len(dtos))
	for _, dto := range dtos {
		v, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		vouchers = append(vouchers, v)
	}
	return vouchers, nil
}
