// Package jobs provides scheduled background tasks for the order service.
//
// Jobs are built on github.com/robfig/cron/v3 with second-level schedules.
//
// # Available Jobs
//
// 1. OrderStatusReportJob - counts orders by last status, updates the
// orders_by_status gauge and logs the counts. Runs every minute by default
// (STATUS_REPORT_SCHEDULE).
//
// # Usage
//
//	report := jobs.NewOrderStatusReportJob(countHandler, orderMetrics, jobMetrics, cfg.StatusReportSchedule, log)
//	jobManager := jobs.NewJobManager(report)
//
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and counted in job_failure_total; the next tick runs
// again. Jobs only read, so they never contend with request handling for the
// version of an order.
package jobs
