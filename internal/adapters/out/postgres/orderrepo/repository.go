package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order and its lines in one statement batch. Losing a race
// for the tracking number yields order.ErrTrackingNumberTaken; the
// transaction is then unusable and the caller starts over.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", order.ErrTrackingNumberTaken, aggregate.TrackingNumber())
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the mutable columns. Prices and quantities are frozen at
// checkout, so only return quantities are written back on lines.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	result := db.Model(&OrderDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"payment_status":      dto.PaymentStatus,
		"order_status":        dto.OrderStatus,
		"return_status":       dto.ReturnStatus,
		"completed_at":        dto.CompletedAt,
		"payment_ref":         dto.PaymentRef,
		"return_reason":       dto.ReturnReason,
		"return_evidence":     dto.ReturnEvidence,
		"return_requested_at": dto.ReturnRequestedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	for _, line := range dto.Lines {
		if err = db.Model(&OrderLineDTO{}).
			Where("id = ? AND order_id = ?", line.ID, dto.ID).
			UpdateColumn("return_quantity", line.ReturnQuantity).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.load(ctx, "order", id.String(), "id = ?", id.Value())
}

func (r *GormOrderRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*order.Order, error) {
	if trackingNumber == "" {
		return nil, errs.NewValueIsRequiredError("trackingNumber")
	}
	return r.load(ctx, "trackingNumber", trackingNumber, "tracking_number = ?", trackingNumber)
}

func (r *GormOrderRepository) ExistsTrackingNumber(ctx context.Context, trackingNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("tracking_number = ?", trackingNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// load locks the order row, then reads its lines in a second query so the
// lock clause never reaches the preload.
func (r *GormOrderRepository) load(ctx context.Context, param, key string, query string, args ...any) (*order.Order, error) {
	db := r.db.WithContext(ctx)

	var dto OrderDTO
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).Where(query, args...).Take(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(param, key)
		}
		return nil, err
	}

	if err := db.Where("order_id = ?", dto.ID).Order("position").Find(&dto.Lines).Error; err != nil {
		return nil, err
	}

	return toDomain(dto)
}
