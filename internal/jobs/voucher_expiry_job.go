package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

type VoucherDeactivator interface {
	Handle(ctx context.Context, cmd commands.DeactivateExpiredVouchersCommand) (int, error)
}

// VoucherExpiryJob switches off active vouchers whose end date has passed.
type VoucherExpiryJob struct {
	handler  VoucherDeactivator
	schedule string
	cron     *cron.Cron
	now      func() time.Time
	logger   *slog.Logger
}

func NewVoucherExpiryJob(handler VoucherDeactivator, schedule string, logger *slog.Logger) *VoucherExpiryJob {
	return &VoucherExpiryJob{
		handler:  handler,
		schedule: schedule,
		cron:     newCron(),
		now:      time.Now,
		logger:   logger.With("component", "voucher_expiry_job"),
	}
}

// Run performs one pass and reports how many vouchers were deactivated.
func (j *VoucherExpiryJob) Run(ctx context.Context) (int, error) {
	n, err := j.handler.Handle(ctx, commands.NewDeactivateExpiredVouchersCommand(j.now()))
	if err != nil {
		j.logger.ErrorContext(ctx, "voucher expiry job failed", "error", err)
		return n, err
	}
	if n > 0 {
		j.logger.InfoContext(ctx, "expired vouchers deactivated", "count", n)
	}
	return n, nil
}

func (j *VoucherExpiryJob) Start(ctx context.Context) error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		_, _ = j.Run(ctx)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(ctx, "voucher expiry job started", "schedule", j.schedule)
	return nil
}

func (j *VoucherExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "voucher expiry job stopped")
}
