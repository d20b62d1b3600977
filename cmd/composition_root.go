package cmd

import (
	"context"
	"errors"
	"strings"

	"orders/internal/adapters/in/http"
	"orders/internal/adapters/out/kafka/orderevents"
	"orders/internal/adapters/out/postgres"
	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/adapters/out/redis/ordercache"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/services"
	"orders/internal/core/ports"
	"orders/internal/jobs"
	"orders/internal/pkg/clock"
	"orders/internal/pkg/logger"
	"orders/internal/pkg/metrics"
	"orders/internal/seed"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *logger.Logger

	clock     ports.Clock
	cache     ports.OrderCache
	publisher ports.OrderEventPublisher

	registry     *prometheus.Registry
	orderMetrics *metrics.OrderMetrics
	jobMetrics   *metrics.JobMetrics

	closers []func() error
}

// NewCompositionRoot connects the optional adapters: the redis cache when
// REDIS_ADDR is set and the kafka publisher when KAFKA_HOST is set.
func NewCompositionRoot(ctx context.Context, cfg Config, gormDB *gorm.DB, log *logger.Logger) (*CompositionRoot, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	c := &CompositionRoot{
		cfg:          cfg,
		gormDB:       gormDB,
		uowFactory:   postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:       log,
		clock:        clock.System{},
		cache:        ordercache.NoopOrderCache{},
		publisher:    orderevents.NoopPublisher{},
		registry:     registry,
		orderMetrics: metrics.NewOrderMetrics(registry),
		jobMetrics:   metrics.NewJobMetrics(registry),
	}

	if cfg.RedisAddr != "" {
		client, err := ordercache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		c.cache = ordercache.NewRedisOrderCache(client, cfg.OrderCacheTTL)
		c.closers = append(c.closers, client.Close)
		log.InfoFields(ctx, "order cache enabled", map[string]any{"addr": cfg.RedisAddr})
	}

	if cfg.KafkaHost != "" {
		publisher := orderevents.NewPublisher(strings.Split(cfg.KafkaHost, ","), cfg.KafkaOrderChangedTopic)
		c.publisher = publisher
		c.closers = append(c.closers, publisher.Close)
		log.InfoFields(ctx, "order events enabled", map[string]any{"topic": cfg.KafkaOrderChangedTopic})
	}

	return c, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uowFactory, c.clock, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateStatusAppender() *commands.StatusAppender {
	return commands.NewStatusAppender(c.uowFactory, c.clock, c.cache, c.publisher, c.orderMetrics, c.logger)
}

func (c *CompositionRoot) CreateStateMachine() (*services.StateMachine, error) {
	return services.NewStateMachine(c.CreateStatusAppender())
}

func (c *CompositionRoot) CreateAppendOrderStatusCommandHandler() (*commands.AppendOrderStatusCommandHandler, error) {
	stateMachine, err := c.CreateStateMachine()
	if err != nil {
		return nil, err
	}
	return commands.NewAppendOrderStatusCommandHandler(c.uowFactory, stateMachine), nil
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() *commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.uowFactory, c.cache, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() *queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(orderrepo.NewGormOrderRepository(c.gormDB), c.cache, c.logger)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() *queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCountOrdersByStatusQueryHandler() *queries.CountOrdersByStatusQueryHandler {
	return queries.NewCountOrdersByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	report := jobs.NewOrderStatusReportJob(
		c.CreateCountOrdersByStatusQueryHandler(),
		c.orderMetrics,
		c.jobMetrics,
		c.cfg.StatusReportSchedule,
		c.logger,
	)
	return jobs.NewJobManager(report)
}

func (c *CompositionRoot) CreateSeedLoader() *seed.Loader {
	return seed.NewLoader(c.CreateCreateOrderCommandHandler(), c.logger)
}

// CreateHTTPHandler builds the echo router serving the order API, /health,
// /metrics and /swagger.
func (c *CompositionRoot) CreateHTTPHandler() (*echo.Echo, error) {
	appendHandler, err := c.CreateAppendOrderStatusCommandHandler()
	if err != nil {
		return nil, err
	}

	server := http.NewServer(
		c.CreateCreateOrderCommandHandler(),
		appendHandler,
		c.CreateDeleteOrderCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateListOrdersQueryHandler(),
		c.logger,
	)

	return http.NewRouter(server, http.RouterOptions{
		Logger:   c.logger,
		Gatherer: c.registry,
	})
}

// Close releases the cache and publisher connections. The database handle
// belongs to the caller.
func (c *CompositionRoot) Close() error {
	var err error
	for i := len(c.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, c.closers[i]())
	}
	c.closers = nil
	return err
}
