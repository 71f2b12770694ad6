package kernel

import (
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Money is an amount in the currency's smallest unit. All pricing in the
// core is single-currency.
type Money int64

func (m Money) Validate() error {
	if m < 0 {
		return errs.NewValueIsOutOfRangeError("money", int64(m), 0, "unbounded")
	}
	return nil
}

func (m Money) Add(other Money) Money { return m + other }

func (m Money) Sub(other Money) Money { return m - other }

func (m Money) Times(quantity int) Money { return m * Money(quantity) }

// Min returns the smaller of m and other.
func (m Money) Min(other Money) Money {
	if other < m {
		return other
	}
	return m
}

// Percent returns rate% of m rounded half away from zero.
func (m Money) Percent(rate decimal.Decimal) Money {
	return MoneyFromDecimal(m.Decimal().Mul(rate).Div(hundred))
}

func (m Money) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(m))
}

// MoneyFromDecimal rounds d half away from zero to a whole minor unit.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money(d.Round(0).IntPart())
}

// Percentage is a rate such as a catalog discount or a price adjustment.
// Stored as decimal so 12.5 stays exact.
func Percentage(value float64) decimal.Decimal {
	return decimal.NewFromFloat(value)
}

// ApplyPercentages scales base by (1 - discount/100) * (1 + adjustment/100).
func ApplyPercentages(base Money, discount, adjustment decimal.Decimal) Money {
	one := decimal.NewFromInt(1)
	factor := one.Sub(discount.Div(hundred)).Mul(one.Add(adjustment.Div(hundred)))
	return MoneyFromDecimal(base.Decimal().Mul(factor))
}
