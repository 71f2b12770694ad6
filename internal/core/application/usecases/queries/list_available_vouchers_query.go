package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrListAvailableVouchersQueryIsNotConstructed = errors.New(
		"ListAvailableVouchersQuery must be created via NewListAvailableVouchersQuery constructor",
	)
)

// ListAvailableVouchersQuery lists the vouchers a customer could apply now:
// active, inside their validity window, not used up, and public or owned by
// the customer. The order minimum is not checked here.
type ListAvailableVouchersQuery struct {
	customerID kernel.UUID
	now        time.Time
	guard      guard.ConstructorGuard
}

func NewListAvailableVouchersQuery(customerID kernel.UUID, now time.Time) (ListAvailableVouchersQuery, error) {
	if err := requireID("customerID", customerID); err != nil {
		return ListAvailableVouchersQuery{}, err
	}
	return ListAvailableVouchersQuery{customerID: customerID, now: now.UTC(), guard: guard.NewConstructorGuard()}, nil
}

func (q ListAvailableVouchersQuery) Validate() error {
	return q.guard.Validate(ErrListAvailableVouchersQueryIsNotConstructed)
}

type AvailableVoucher struct {
	Code            string          `json:"code"`
	DiscountType    string          `json:"discount_type"`
	DiscountValue   decimal.Decimal `json:"discount_value"`
	MaximumDiscount int64           `json:"maximum_discount"`
	MinimumOrder    int64           `json:"minimum_order"`
	RemainingUses   int             `json:"remaining_uses"`
	EndDate         time.Time       `json:"end_date"`
	Personal        bool            `json:"personal"`
}
