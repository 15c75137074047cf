package cmd

import (
	"log/slog"

	"github.com/dehanf/Smart-takeout-system/internal/adapters/out/postgres"
	"github.com/dehanf/Smart-takeout-system/internal/core/application/usecases/commands"
	"github.com/dehanf/Smart-takeout-system/internal/core/application/usecases/queries"
	"github.com/dehanf/Smart-takeout-system/internal/core/domain/services"
	"github.com/dehanf/Smart-takeout-system/internal/core/ports"
	"github.com/dehanf/Smart-takeout-system/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	provider   ports.ETAProvider
	publisher  ports.NotificationPublisher
	logger     *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	provider ports.ETAProvider,
	publisher ports.NotificationPublisher,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		provider:   provider,
		publisher:  publisher,
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateProcessLocationUpdateCommandHandler() commands.ProcessLocationUpdateCommandHandler {
	return commands.NewProcessLocationUpdateCommandHandler(
		c.orderUoWFactory(),
		c.provider,
		c.publisher,
		services.NewPrepScheduler(c.config.SlackBufferMinutes),
		c.config.ProviderCooldown,
		c.logger,
	)
}

func (c *CompositionRoot) CreateMarkOrderReadyCommandHandler() commands.MarkOrderReadyCommandHandler {
	return commands.NewMarkOrderReadyCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetTrackedOrdersQueryHandler() queries.GetTrackedOrdersQueryHandler {
	return queries.NewGetTrackedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.orderUoWFactory(), c.config.StaleWindow, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
