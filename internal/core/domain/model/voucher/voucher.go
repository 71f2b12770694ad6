package voucher

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var maxPercentage = decimal.NewFromInt(100)

// Spec carries the admin-supplied terms of a voucher. A nil OwnerID makes
// the voucher public. MaximumDiscount of zero means no cap.
type Spec struct {
	Code            string
	DiscountType    DiscountType
	DiscountValue   decimal.Decimal
	MaximumDiscount kernel.Money
	MinimumOrder    kernel.Money
	UsageLimit      int
	StartDate       time.Time
	EndDate         time.Time
	OwnerID         *kernel.UUID
}

type Voucher struct {
	id        kernel.UUID
	spec      Spec
	usedCount int
	isActive  bool
	guard     guard.ConstructorGuard
}

// NewVoucher creates an active, unused voucher.
func NewVoucher(id kernel.UUID, spec Spec) (*Voucher, error) {
	return RestoreVoucher(id, spec, 0, true)
}

func RestoreVoucher(id kernel.UUID, spec Spec, usedCount int, isActive bool) (*Voucher, error) {
	v := &Voucher{isActive: isActive, guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		v.setID(id),
		v.setSpec(spec),
	); err != nil {
		return nil, err
	}
	if usedCount < 0 || usedCount > spec.UsageLimit {
		return nil, errs.NewValueIsOutOfRangeError("usedCount", usedCount, 0, spec.UsageLimit)
	}
	v.usedCount = usedCount
	return v, nil
}

func (v *Voucher) Validate() error {
	if v == nil {
		return ErrVoucherIsNotConstructed
	}
	return v.guard.Validate(ErrVoucherIsNotConstructed)
}

func (v *Voucher) ID() kernel.UUID                 { return v.id }
func (v *Voucher) Code() string                    { return v.spec.Code }
func (v *Voucher) DiscountType() DiscountType      { return v.spec.DiscountType }
func (v *Voucher) DiscountValue() decimal.Decimal  { return v.spec.DiscountValue }
func (v *Voucher) MaximumDiscount() kernel.Money   { return v.spec.MaximumDiscount }
func (v *Voucher) MinimumOrder() kernel.Money      { return v.spec.MinimumOrder }
func (v *Voucher) UsageLimit() int                 { return v.spec.UsageLimit }
func (v *Voucher) UsedCount() int                  { return v.usedCount }
func (v *Voucher) StartDate() time.Time            { return v.spec.StartDate }
func (v *Voucher) EndDate() time.Time              { return v.spec.EndDate }
func (v *Voucher) IsActive() bool                  { return v.isActive }
func (v *Voucher) IsPublic() bool                  { return v.spec.OwnerID == nil }

// OwnerID returns nil for public vouchers.
func (v *Voucher) OwnerID() *kernel.UUID {
	if v.spec.OwnerID == nil {
		return nil
	}
	owner := *v.spec.OwnerID
	return &owner
}

// CheckEligibility reports the first failing rule, in a fixed order so that
// clients see a stable reason.
func (v *Voucher) CheckEligibility(userID kernel.UUID, subtotal kernel.Money, now time.Time) error {
	switch {
	case !v.isActive:
		return NewIneligibleError(v.spec.Code, ReasonInactive)
	case now.Before(v.spec.StartDate):
		return NewIneligibleError(v.spec.Code, ReasonNotStarted)
	case now.After(v.spec.EndDate):
		return NewIneligibleError(v.spec.Code, ReasonExpired)
	case v.usedCount >= v.spec.UsageLimit:
		return NewIneligibleError(v.spec.Code, ReasonUsageExhausted)
	case v.spec.OwnerID != nil && !v.spec.OwnerID.IsEqual(userID):
		return NewIneligibleError(v.spec.Code, ReasonNotOwner)
	case subtotal < v.spec.MinimumOrder:
		return NewIneligibleError(v.spec.Code, ReasonBelowMinimum)
	}
	return nil
}

// Evaluate checks eligibility and returns the discount the voucher grants on subtotal.
func (v *Voucher) Evaluate(userID kernel.UUID, subtotal kernel.Money, now time.Time) (kernel.Money, error) {
	if err := v.CheckEligibility(userID, subtotal, now); err != nil {
		return 0, err
	}
	return v.Discount(subtotal), nil
}

// Discount computes the raw discount without eligibility checks.
func (v *Voucher) Discount(subtotal kernel.Money) kernel.Money {
	var discount kernel.Money
	switch v.spec.DiscountType {
	case Percentage:
		discount = subtotal.Percent(v.spec.DiscountValue)
	case Fixed:
		discount = kernel.MoneyFromDecimal(v.spec.DiscountValue)
	}
	if v.spec.MaximumDiscount > 0 {
		discount = discount.Min(v.spec.MaximumDiscount)
	}
	return discount
}

// Redeem consumes one use.
func (v *Voucher) Redeem() error {
	if v.usedCount >= v.spec.UsageLimit {
		return NewIneligibleError(v.spec.Code, ReasonUsageExhausted)
	}
	v.usedCount++
	return nil
}

// CorrectUsage sets the counter to an admin-supplied value.
func (v *Voucher) CorrectUsage(usedCount int) error {
	if usedCount < 0 || usedCount > v.spec.UsageLimit {
		return errs.NewValueIsOutOfRangeError("usedCount", usedCount, 0, v.spec.UsageLimit)
	}
	v.usedCount = usedCount
	return nil
}

func (v *Voucher) IsExpired(now time.Time) bool {
	return now.After(v.spec.EndDate)
}

func (v *Voucher) Deactivate() {
	v.isActive = false
}

func (v *Voucher) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}

func (v *Voucher) setSpec(spec Spec) error {
	spec.Code = strings.TrimSpace(spec.Code)
	var problems []error
	if spec.Code == "" {
		problems = append(problems, errs.NewValueIsRequiredError("code"))
	}
	if err := spec.DiscountType.Validate(); err != nil {
		problems = append(problems, err)
	}
	if !spec.DiscountValue.IsPositive() {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("discountValue",
			fmt.Errorf("%s is not greater than 0", spec.DiscountValue)))
	}
	if spec.DiscountType == Percentage && spec.DiscountValue.GreaterThan(maxPercentage) {
		problems = append(problems, errs.NewValueIsOutOfRangeError("discountValue", spec.DiscountValue, 0, 100))
	}
	if err := spec.MaximumDiscount.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := spec.MinimumOrder.Validate(); err != nil {
		problems = append(problems, err)
	}
	if spec.UsageLimit <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("usageLimit",
			fmt.Errorf("%d is not greater than 0", spec.UsageLimit)))
	}
	if spec.StartDate.IsZero() || spec.EndDate.IsZero() || spec.EndDate.Before(spec.StartDate) {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("validity",
			errors.New("end date must not precede start date")))
	}
	if spec.OwnerID != nil && spec.OwnerID.IsZero() {
		problems = append(problems, errs.NewValueIsInvalidError("ownerID"))
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}
	v.spec = spec
	return nil
}
