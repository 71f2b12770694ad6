// Package jobs provides scheduled background tasks for the fulfillment core.
//
// Jobs are cron schedules (github.com/robfig/cron/v3, with seconds) around
// one command or query:
//
//  1. VoucherExpiryJob deactivates vouchers whose end date has passed.
//  2. StalePaymentReportJob logs gateway orders whose payment is still
//     PENDING after a configured age. Those orders are left untouched.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(deactivateHandler, staleHandler, jobs.Schedules{
//		VoucherExpiry:   "0 */5 * * * *",
//		StalePayments:   "0 */10 * * * *",
//		StalePaymentAge: 30 * time.Minute,
//	}, logger)
//
//	if err := jobManager.StartAll(ctx); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// A run that is still going when its next tick fires is skipped, not queued.
package jobs
