package queries

import (
	"context"

	"gorm.io/gorm"
)

type ListCustomerOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListCustomerOrdersQueryHandler(db *gorm.DB) ListCustomerOrdersQueryHandler {
	return ListCustomerOrdersQueryHandler{db: db}
}

func (h ListCustomerOrdersQueryHandler) Handle(ctx context.Context, query ListCustomerOrdersQuery) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).
		Table("orders").
		Select("tracking_number, order_status AS status, payment_method, payment_status, " +
			"return_status, final_amount, created_at").
		Where("customer_id = ?", query.customerID.Value())
	if query.status != "" {
		tx = tx.Where("order_status = ?", query.status)
	}

	summaries := make([]OrderSummary, 0)
	err := tx.Order("created_at DESC").Order("tracking_number").
		Limit(query.limit).
		Offset(query.offset).
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	for i := range summaries {
		summaries[i].CreatedAt = summaries[i].CreatedAt.UTC()
	}
	return summaries, nil
}
