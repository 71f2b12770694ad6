package voucherrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/voucher"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type VoucherDTO struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Code                  string          `gorm:"size:64;uniqueIndex;not null"`
	DiscountType          string          `gorm:"size:16;not null"`
	DiscountAmount        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	MaximumDiscountAmount int64           `gorm:"not null;default:0"`
	MinimumOrderAmount    int64           `gorm:"not null;default:0"`
	UsageLimit            int             `gorm:"not null"`
	UsedCount             int             `gorm:"not null;default:0"`
	StartDate             time.Time       `gorm:"not null"`
	EndDate               time.Time       `gorm:"not null;index"`
	IsPublic              bool            `gorm:"not null"`
	OwnerID               *uuid.UUID      `gorm:"type:uuid;index"`
	IsActive              bool            `gorm:"not null"`
}

func (VoucherDTO) TableName() string {
	return "vouchers"
}

func fromDomain(v *voucher.Voucher) VoucherDTO {
	var ownerID *uuid.UUID
	if owner := v.OwnerID(); owner != nil {
		raw := owner.Value()
		ownerID = &raw
	}
	return VoucherDTO{
		ID:                    v.ID().Value(),
		Code:                  v.Code(),
		DiscountType:          v.DiscountType().String(),
		DiscountAmount:        v.DiscountValue(),
		MaximumDiscountAmount: int64(v.MaximumDiscount()),
		MinimumOrderAmount:    int64(v.MinimumOrder()),
		UsageLimit:            v.UsageLimit(),
		UsedCount:             v.UsedCount(),
		StartDate:             v.StartDate().UTC(),
		EndDate:               v.EndDate().UTC(),
		IsPublic:              v.IsPublic(),
		OwnerID:               ownerID,
		IsActive:              v.IsActive(),
	}
}

func toDomain(dto VoucherDTO) (*voucher.Voucher, error) {
	discountType, err := voucher.ParseDiscountType(dto.DiscountType)
	if err != nil {
		return nil, err
	}
	var ownerID *kernel.UUID
	if dto.OwnerID != nil && !dto.IsPublic {
		owner := kernel.UUIDFrom(*dto.OwnerID)
		ownerID = &owner
	}
	return voucher.RestoreVoucher(kernel.UUIDFrom(dto.ID), voucher.Spec{
		Code:            dto.Code,
		DiscountType:    discountType,
		DiscountValue:   dto.DiscountAmount,
		MaximumDiscount: kernel.Money(dto.MaximumDiscountAmount),
		MinimumOrder:    kernel.Money(dto.MinimumOrderAmount),
		UsageLimit:      dto.UsageLimit,
		StartDate:       dto.StartDate,
		EndDate:         dto.EndDate,
		OwnerID:         ownerID,
	}, dto.UsedCount, dto.IsActive)
}
