package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Schedules are six-field cron expressions (with seconds).
type Schedules struct {
	VoucherExpiry   string
	StalePayments   string
	StalePaymentAge time.Duration
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	voucherExpiryJob      *VoucherExpiryJob
	stalePaymentReportJob *StalePaymentReportJob
}

func NewJobManager(
	deactivator VoucherDeactivator,
	staleReader StalePaymentsReader,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		voucherExpiryJob:      NewVoucherExpiryJob(deactivator, schedules.VoucherExpiry, logger),
		stalePaymentReportJob: NewStalePaymentReportJob(staleReader, schedules.StalePayments, schedules.StalePaymentAge, logger),
	}
}

// StartAll starts every job. ctx is handed to each run; cancel it to abort
// in-flight work.
func (jm *JobManager) StartAll(ctx context.Context) error {
	if err := jm.voucherExpiryJob.Start(ctx); err != nil {
		return fmt.Errorf("failed to start voucher expiry job: %w", err)
	}

	if err := jm.stalePaymentReportJob.Start(ctx); err != nil {
		jm.voucherExpiryJob.Stop()
		return fmt.Errorf("failed to start stale payment report job: %w", err)
	}

	return nil
}

// StopAll stops the schedulers and waits for running jobs to return.
func (jm *JobManager) StopAll() {
	jm.stalePaymentReportJob.Stop()
	jm.voucherExpiryJob.Stop()
}

func newCron() *cron.Cron {
	return cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
}
