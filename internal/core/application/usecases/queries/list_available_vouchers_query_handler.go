package queries

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ListAvailableVouchersQueryHandler struct {
	db *gorm.DB
}

func NewListAvailableVouchersQueryHandler(db *gorm.DB) ListAvailableVouchersQueryHandler {
	return ListAvailableVouchersQueryHandler{db: db}
}

// Handle returns the vouchers ordered by the soonest to expire.
func (h ListAvailableVouchersQueryHandler) Handle(
	ctx context.Context,
	query ListAvailableVouchersQuery,
) ([]AvailableVoucher, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			code,
			discount_type,
			discount_amount,
			maximum_discount_amount,
			minimum_order_amount,
			usage_limit - used_count,
			end_date,
			is_public
		FROM vouchers
		WHERE is_active = ?
			AND start_date <= ?
			AND end_date >= ?
			AND used_count < usage_limit
			AND (is_public = ? OR owner_id = ?)
		ORDER BY end_date, code
	`, true, query.now, query.now, true, query.customerID.Value()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vouchers := make([]AvailableVoucher, 0)
	for rows.Next() {
		var v AvailableVoucher
		var value decimal.Decimal
		var endDate time.Time
		var public bool

		err = rows.Scan(
			&v.Code,
			&v.DiscountType,
			&value,
			&v.MaximumDiscount,
			&v.MinimumOrder,
			&v.RemainingUses,
			&endDate,
			&public,
		)
		if err != nil {
			return nil, err
		}
		v.DiscountValue = value
		v.EndDate = endDate.UTC()
		v.Personal = !public
		vouchers = append(vouchers, v)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return vouchers, nil
}
