package voucher

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

type DiscountType int

const (
	UnknownDiscountType DiscountType = iota
	Percentage
	Fixed
)

var discountTypeNames = map[DiscountType]string{
	Percentage: "PERCENTAGE",
	Fixed:      "FIXED",
}

func (d DiscountType) String() string {
	if name, ok := discountTypeNames[d]; ok {
		return name
	}
	return "UNKNOWN"
}

func (d DiscountType) Validate() error {
	if _, ok := discountTypeNames[d]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("discountType", fmt.Errorf("%d is not a valid discount type", d))
	}
	return nil
}

// ParseDiscountType accepts the persisted/wire names.
func ParseDiscountType(s string) (DiscountType, error) {
	for d, name := range discountTypeNames {
		if name == s {
			return d, nil
		}
	}
	return UnknownDiscountType, errs.NewValueIsInvalidErrorWithCause("discountType", fmt.Errorf("%q is not a valid discount type", s))
}
