package voucher_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/voucher"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	start = time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	end   = time.Date(2025, 10, 31, 23, 59, 59, 0, time.UTC)
	now   = time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
)

func percentSpec() voucher.Spec {
	return voucher.Spec{
		Code:            "OCT10",
		DiscountType:    voucher.Percentage,
		DiscountValue:   decimal.NewFromInt(10),
		MaximumDiscount: 40_000,
		MinimumOrder:    100_000,
		UsageLimit:      5,
		StartDate:       start,
		EndDate:         end,
	}
}

func mustVoucher(t *testing.T, spec voucher.Spec) *voucher.Voucher {
	t.Helper()
	v, err := voucher.NewVoucher(kernel.NewUUID(), spec)
	require.NoError(t, err)
	return v
}

func TestNewVoucher(t *testing.T) {
	t.Run("should create active unused voucher", func(t *testing.T) {
		v := mustVoucher(t, percentSpec())

		require.NoError(t, v.Validate())
		assert.True(t, v.IsActive())
		assert.True(t, v.IsPublic())
		assert.Equal(t, 0, v.UsedCount())
	})

	t.Run("should collect every invalid field", func(t *testing.T) {
		spec := voucher.Spec{DiscountValue: decimal.Zero, EndDate: start, StartDate: end}

		_, err := voucher.NewVoucher(kernel.NewUUID(), spec)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "code")
		assert.Contains(t, err.Error(), "usageLimit")
		assert.Contains(t, err.Error(), "validity")
	})

	t.Run("should reject percentage above one hundred", func(t *testing.T) {
		spec := percentSpec()
		spec.DiscountValue = decimal.NewFromInt(101)

		_, err := voucher.NewVoucher(kernel.NewUUID(), spec)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject restored usage above limit", func(t *testing.T) {
		_, err := voucher.RestoreVoucher(kernel.NewUUID(), percentSpec(), 6, true)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestVoucher_Evaluate(t *testing.T) {
	user := kernel.NewUUID()

	t.Run("should cap percentage discount", func(t *testing.T) {
		v := mustVoucher(t, percentSpec())

		discount, err := v.Evaluate(user, 500_000, now)

		require.NoError(t, err)
		assert.Equal(t, kernel.Money(40_000), discount)
	})

	t.Run("should not cap when maximum is zero", func(t *testing.T) {
		spec := percentSpec()
		spec.MaximumDiscount = 0
		v := mustVoucher(t, spec)

		discount, err := v.Evaluate(user, 500_000, now)

		require.NoError(t, err)
		assert.Equal(t, kernel.Money(50_000), discount)
	})

	t.Run("should cap fixed discount", func(t *testing.T) {
		spec := percentSpec()
		spec.DiscountType = voucher.Fixed
		spec.DiscountValue = decimal.NewFromInt(60_000)
		v := mustVoucher(t, spec)

		discount, err := v.Evaluate(user, 500_000, now)

		require.NoError(t, err)
		assert.Equal(t, kernel.Money(40_000), discount)
	})

	inactive := mustVoucher(t, percentSpec())
	inactive.Deactivate()
	exhausted, err := voucher.RestoreVoucher(kernel.NewUUID(), percentSpec(), 5, true)
	require.NoError(t, err)
	otherOwner := kernel.NewUUID()
	private := percentSpec()
	private.OwnerID = &otherOwner

	tests := []struct {
		name     string
		voucher  *voucher.Voucher
		subtotal kernel.Money
		at       time.Time
		reason   voucher.Reason
	}{
		{"inactive", inactive, 500_000, now, voucher.ReasonInactive},
		{"not started", mustVoucher(t, percentSpec()), 500_000, start.Add(-time.Second), voucher.ReasonNotStarted},
		{"expired", mustVoucher(t, percentSpec()), 500_000, end.Add(time.Second), voucher.ReasonExpired},
		{"usage exhausted", exhausted, 500_000, now, voucher.ReasonUsageExhausted},
		{"not owner", mustVoucher(t, private), 500_000, now, voucher.ReasonNotOwner},
		{"below minimum", mustVoucher(t, percentSpec()), 99_999, now, voucher.ReasonBelowMinimum},
	}
	for _, tt := range tests {
		t.Run("should be ineligible when "+tt.name, func(t *testing.T) {
			_, err := tt.voucher.Evaluate(user, tt.subtotal, tt.at)

			require.ErrorIs(t, err, voucher.ErrIneligible)
			var ineligible *voucher.IneligibleError
			require.ErrorAs(t, err, &ineligible)
			assert.Equal(t, tt.reason, ineligible.Reason)
		})
	}

	t.Run("owner should be eligible for private voucher", func(t *testing.T) {
		v := mustVoucher(t, private)

		_, err := v.Evaluate(otherOwner, 500_000, now)

		require.NoError(t, err)
	})

	t.Run("window bounds are inclusive", func(t *testing.T) {
		v := mustVoucher(t, percentSpec())

		_, err := v.Evaluate(user, 500_000, start)
		require.NoError(t, err)
		_, err = v.Evaluate(user, 500_000, end)
		require.NoError(t, err)
	})
}

func TestVoucher_Redeem(t *testing.T) {
	t.Run("should stop at usage limit", func(t *testing.T) {
		spec := percentSpec()
		spec.UsageLimit = 2
		v := mustVoucher(t, spec)

		require.NoError(t, v.Redeem())
		require.NoError(t, v.Redeem())
		err := v.Redeem()

		require.ErrorIs(t, err, voucher.ErrIneligible)
		assert.Equal(t, 2, v.UsedCount())
	})
}

func TestVoucher_CorrectUsage(t *testing.T) {
	v, err := voucher.RestoreVoucher(kernel.NewUUID(), percentSpec(), 4, true)
	require.NoError(t, err)

	require.NoError(t, v.CorrectUsage(1))
	assert.Equal(t, 1, v.UsedCount())
	require.ErrorIs(t, v.CorrectUsage(-1), errs.ErrValueIsOutOfRange)
	require.ErrorIs(t, v.CorrectUsage(6), errs.ErrValueIsOutOfRange)
	assert.Equal(t, 1, v.UsedCount())
}

func TestParseDiscountType(t *testing.T) {
	d, err := voucher.ParseDiscountType("FIXED")
	require.NoError(t, err)
	assert.Equal(t, voucher.Fixed, d)

	_, err = voucher.ParseDiscountType("BOGO")
	require.Error(t, err)
}
