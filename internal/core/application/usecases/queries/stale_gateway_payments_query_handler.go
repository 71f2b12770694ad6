package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"

	"gorm.io/gorm"
)

type StaleGatewayPaymentsQueryHandler struct {
	db *gorm.DB
}

func NewStaleGatewayPaymentsQueryHandler(db *gorm.DB) StaleGatewayPaymentsQueryHandler {
	return StaleGatewayPaymentsQueryHandler{db: db}
}

// Handle lists the stale orders, oldest first. Cancelled orders are skipped.
func (h StaleGatewayPaymentsQueryHandler) Handle(
	ctx context.Context,
	query StaleGatewayPaymentsQuery,
) ([]StalePayment, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			tracking_number,
			final_amount,
			created_at
		FROM orders
		WHERE payment_method = ?
			AND payment_status = ?
			AND order_status != ?
			AND created_at < ?
		ORDER BY created_at, tracking_number
	`, order.Gateway.String(), order.PaymentPending.String(), order.Cancelled.String(), query.cutoff).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stale := make([]StalePayment, 0)
	for rows.Next() {
		var p StalePayment
		var createdAt time.Time
		if err = rows.Scan(&p.TrackingNumber, &p.FinalAmount, &createdAt); err != nil {
			return nil, err
		}
		p.CreatedAt = createdAt.UTC()
		stale = append(stale, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return stale, nil
}
