package queries

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrListCustomerOrdersQueryIsNotConstructed = errors.New(
		"ListCustomerOrdersQuery must be created via NewListCustomerOrdersQuery constructor",
	)
)

// ListCustomerOrdersQuery pages through a customer's orders, newest first,
// optionally narrowed to one order status.
type ListCustomerOrdersQuery struct {
	customerID kernel.UUID
	status     string
	limit      int
	offset     int
	guard      guard.ConstructorGuard
}

// NewListCustomerOrdersQuery accepts an empty status for all orders and a
// zero limit for the default page size.
func NewListCustomerOrdersQuery(customerID kernel.UUID, status string, limit, offset int) (ListCustomerOrdersQuery, error) {
	var statusErr error
	if status != "" {
		var parsed order.Status
		parsed, statusErr = order.ParseStatus(strings.ToUpper(status))
		status = parsed.String()
	}
	limit, offset, pageErr := page(limit, offset)
	if err := errors.Join(requireID("customerID", customerID), statusErr, pageErr); err != nil {
		return ListCustomerOrdersQuery{}, err
	}
	return ListCustomerOrdersQuery{
		customerID: customerID,
		status:     status,
		limit:      limit,
		offset:     offset,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListCustomerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListCustomerOrdersQueryIsNotConstructed)
}

type OrderSummary struct {
	TrackingNumber string    `json:"tracking_number"`
	Status         string    `json:"order_status"`
	PaymentMethod  string    `json:"payment_method"`
	PaymentStatus  string    `json:"payment_status"`
	ReturnStatus   string    `json:"return_status,omitempty"`
	FinalAmount    int64     `json:"final_amount"`
	CreatedAt      time.Time `json:"created_at"`
}
