package jobs

import (
	"context"
	"time"

	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/logger"

	"github.com/robfig/cron/v3"
)

const orderStatusReportJobName = "order_status_report"

// DefaultOrderStatusReportSchedule runs the report at second 0 of every minute.
const DefaultOrderStatusReportSchedule = "0 * * * * *"

// OrderCounter is satisfied by queries.CountOrdersByStatusQueryHandler.
type OrderCounter interface {
	Handle(ctx context.Context, query queries.CountOrdersByStatusQuery) (map[order.Status]int64, error)
}

// JobObserver records the outcome of a job run.
type JobObserver interface {
	Observe(job string, took time.Duration, err error)
}

// OrderStatusReportJob periodically counts orders per status, publishes the
// counts as a gauge and logs them.
type OrderStatusReportJob struct {
	counter  OrderCounter
	metrics  ports.StatusMetrics
	observer JobObserver
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *logger.Logger
}

// NewOrderStatusReportJob creates the job. schedule is a six-field cron
// expression with seconds; an empty schedule uses DefaultOrderStatusReportSchedule.
func NewOrderStatusReportJob(
	counter OrderCounter,
	metrics ports.StatusMetrics,
	observer JobObserver,
	schedule string,
	log *logger.Logger,
) *OrderStatusReportJob {
	if schedule == "" {
		schedule = DefaultOrderStatusReportSchedule
	}

	return &OrderStatusReportJob{
		counter:  counter,
		metrics:  metrics,
		observer: observer,
		schedule: schedule,
		timeout:  10 * time.Second,
		cron:     cron.New(cron.WithSeconds()),
		logger:   log,
	}
}

// Start registers the job with its schedule and starts the scheduler.
func (j *OrderStatusReportJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()
		_ = j.Run(ctx)
	}); err != nil {
		return err
	}

	j.cron.Start()
	ctx := j.logger.WithField(context.Background(), "component", orderStatusReportJobName)
	j.logger.InfoFields(ctx, "order status report job started", map[string]any{"schedule": j.schedule})
	return nil
}

// Run executes one report. Start calls it on every tick.
func (j *OrderStatusReportJob) Run(ctx context.Context) error {
	ctx = j.logger.WithField(ctx, "component", orderStatusReportJobName)
	start := time.Now()

	counts, err := j.counter.Handle(ctx, queries.NewCountOrdersByStatusQuery())
	j.observer.Observe(orderStatusReportJobName, time.Since(start), err)
	if err != nil {
		j.logger.Error(ctx, "order status report failed", err)
		return err
	}

	j.metrics.SetOrdersByStatus(counts)

	fields := make(map[string]any, len(counts))
	for status, count := range counts {
		fields[status.String()] = count
	}
	j.logger.InfoFields(ctx, "orders by status", fields)
	return nil
}

// Stop stops the scheduler and waits for a running report to finish.
func (j *OrderStatusReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info(j.logger.WithField(context.Background(), "component", orderStatusReportJobName), "order status report job stopped")
}
