package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

type StalePaymentsReader interface {
	Handle(ctx context.Context, query queries.StaleGatewayPaymentsQuery) ([]queries.StalePayment, error)
}

// StalePaymentReportJob logs gateway orders still waiting for a payment
// callback. It never changes them.
type StalePaymentReportJob struct {
	handler  StalePaymentsReader
	schedule string
	maxAge   time.Duration
	cron     *cron.Cron
	now      func() time.Time
	logger   *slog.Logger
}

func NewStalePaymentReportJob(
	handler StalePaymentsReader,
	schedule string,
	maxAge time.Duration,
	logger *slog.Logger,
) *StalePaymentReportJob {
	return &StalePaymentReportJob{
		handler:  handler,
		schedule: schedule,
		maxAge:   maxAge,
		cron:     newCron(),
		now:      time.Now,
		logger:   logger.With("component", "stale_payment_report_job"),
	}
}

func (j *StalePaymentReportJob) Run(ctx context.Context) ([]queries.StalePayment, error) {
	query, err := queries.NewStaleGatewayPaymentsQuery(j.now(), j.maxAge)
	if err != nil {
		return nil, err
	}
	stale, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "stale payment report failed", "error", err)
		return nil, err
	}

	for _, p := range stale {
		j.logger.WarnContext(ctx, "gateway payment still pending",
			"tracking_number", p.TrackingNumber,
			"final_amount", p.FinalAmount,
			"created_at", p.CreatedAt,
			"age", j.now().Sub(p.CreatedAt).Round(time.Second).String())
	}
	if len(stale) > 0 {
		j.logger.InfoContext(ctx, "stale payment report", "count", len(stale), "cutoff", query.Cutoff())
	}
	return stale, nil
}

func (j *StalePaymentReportJob) Start(ctx context.Context) error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		_, _ = j.Run(ctx)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(ctx, "stale payment report job started", "schedule", j.schedule, "max_age", j.maxAge.String())
	return nil
}

func (j *StalePaymentReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "stale payment report job stopped")
}
