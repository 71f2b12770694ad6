package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/voucher"
)

type VoucherRepository interface {
	Add(ctx context.Context, aggregate *voucher.Voucher) error
	Update(ctx context.Context, aggregate *voucher.Voucher) error
	Get(ctx context.Context, id kernel.UUID) (*voucher.Voucher, error)

	// GetByCode reads the voucher row locked for update. Unknown codes yield
	// *voucher.NotFoundError.
	GetByCode(ctx context.Context, code string) (*voucher.Voucher, error)

	// Redeem increments used_count only while it is below usage_limit.
	Redeem(ctx context.Context, aggregate *voucher.Voucher) error

	ListExpiredActive(ctx context.Context, now time.Time) ([]*voucher.Voucher, error)
}
