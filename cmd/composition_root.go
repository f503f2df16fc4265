package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	httpin "orderflow/internal/adapters/in/http"
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/redislock"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/jobs"
	"orderflow/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	pushSender ports.PushSender
	locker     *redislock.Locker
	fees       order.FeeSchedule
	policy     commands.UnknownItemPolicy
	registry   *prometheus.Registry
	metrics    *metrics.Metrics
	logger     *slog.Logger

	fanout *jobs.NotificationFanout
}

// NewCompositionRoot wires the application. locker may be nil when no Redis is
// configured.
func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	pushSender ports.PushSender,
	locker *redislock.Locker,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	deliveryFee, err := kernel.MoneyFromString(cfg.DeliveryFee)
	if err != nil {
		return nil, fmt.Errorf("delivery fee: %w", err)
	}
	platformFee, err := kernel.MoneyFromString(cfg.PlatformFee)
	if err != nil {
		return nil, fmt.Errorf("platform fee: %w", err)
	}
	if err = errors.Join(centScale("delivery fee", deliveryFee), centScale("platform fee", platformFee)); err != nil {
		return nil, err
	}
	fees, err := order.NewFeeSchedule(deliveryFee, platformFee)
	if err != nil {
		return nil, err
	}
	policy, err := commands.ParseUnknownItemPolicy(cfg.UnknownItemPolicy)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		pushSender: pushSender,
		locker:     locker,
		fees:       fees,
		policy:     policy,
		registry:   registry,
		metrics:    metrics.New(registry),
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) notificationUoWFactory() commands.NotificationUoWFactory {
	return FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	h := commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.fees, c.policy)
	return &h
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() *commands.ChangeOrderStatusCommandHandler {
	h := commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateExpireStaleOrdersCommandHandler() *commands.ExpireStaleOrdersCommandHandler {
	h := commands.NewExpireStaleOrdersCommandHandler(
		c.orderUoWFactory(),
		c.CreateChangeOrderStatusCommandHandler(),
		c.logger,
	)
	return &h
}

func (c *CompositionRoot) CreateDispatchNotificationCommandHandler() *commands.DispatchNotificationCommandHandler {
	h := commands.NewDispatchNotificationCommandHandler(c.notificationUoWFactory(), c.pushSender, c.logger)
	return &h
}

func (c *CompositionRoot) CreateSendNotificationCommandHandler() *commands.SendNotificationCommandHandler {
	h := commands.NewSendNotificationCommandHandler(
		c.notificationUoWFactory(),
		c.CreateDispatchNotificationCommandHandler(),
	)
	return &h
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

// NotificationFanout is shared by the API and the expiry job.
func (c *CompositionRoot) NotificationFanout() *jobs.NotificationFanout {
	if c.fanout == nil {
		c.fanout = jobs.NewNotificationFanout(
			c.CreateDispatchNotificationCommandHandler(),
			c.cfg.DispatchWorkers,
			c.cfg.DispatchQueueSize,
			c.metrics,
			c.logger,
		)
	}
	return c.fanout
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	cfg := jobs.OrderExpiryConfig{
		Interval: c.cfg.OrderExpiryInterval,
		MaxAge:   c.cfg.OrderExpiryAfter,
	}

	// A nil *Locker must not reach the job as a non-nil interface.
	var lock jobs.ExclusiveRunner
	if c.locker != nil {
		lock = c.locker
	}
	expiry := jobs.NewOrderExpiryJob(
		c.CreateExpireStaleOrdersCommandHandler(), lock, c.NotificationFanout(), cfg, c.metrics, c.logger)

	return jobs.NewJobManager(expiry, c.NotificationFanout())
}

func (c *CompositionRoot) CreateEcho() (*echo.Echo, error) {
	server := httpin.NewServer(httpin.Handlers{
		CreateOrder:          c.CreateCreateOrderCommandHandler(),
		ChangeOrderStatus:    c.CreateChangeOrderStatusCommandHandler(),
		ExpireStaleOrders:    c.CreateExpireStaleOrdersCommandHandler(),
		DispatchNotification: c.CreateDispatchNotificationCommandHandler(),
		SendNotification:     c.CreateSendNotificationCommandHandler(),
		GetOrder:             c.CreateGetOrderQueryHandler(),
	}, c.NotificationFanout(), c.cfg.OrderExpiryAfter, c.metrics, c.logger)

	return httpin.NewEcho(server, c.metrics, c.registry, c.logger)
}

// centScale rejects amounts finer than the numeric(12,2) money columns store.
func centScale(name string, m kernel.Money) error {
	if !m.Decimal().Equal(m.Decimal().Round(2)) {
		return fmt.Errorf("%s %s has more than two decimal places", name, m.Decimal())
	}
	return nil
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}
