package cmd

import (
	"log/slog"
	"time"

	httpin "riderdispatch/internal/adapters/in/http"
	"riderdispatch/internal/adapters/out/postgres"
	"riderdispatch/internal/core/application/usecases/commands"
	"riderdispatch/internal/core/application/usecases/queries"
	"riderdispatch/internal/core/domain/services"
	"riderdispatch/internal/core/ports"
	"riderdispatch/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
	now        func() time.Time
}

// NewCompositionRoot wires the application. publisher may be nil.
func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger),
		logger:     logger,
		now:        time.Now,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) riderUoWFactory() commands.RiderUoWFactory {
	return FuncRiderUoWFactory(func() commands.RiderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) notificationUoWFactory() commands.NotificationUoWFactory {
	return FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	h := commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.now)
	return &h
}

func (c *CompositionRoot) CreateAdvanceDeliveryCommandHandler() *commands.AdvanceDeliveryCommandHandler {
	h := commands.NewAdvanceDeliveryCommandHandler(c.fullUoWFactory(), c.now)
	return &h
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() *commands.CancelOrderCommandHandler {
	h := commands.NewCancelOrderCommandHandler(c.fullUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateCreateRiderCommandHandler() *commands.CreateRiderCommandHandler {
	h := commands.NewCreateRiderCommandHandler(c.riderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateApproveRiderCommandHandler() *commands.ApproveRiderCommandHandler {
	h := commands.NewApproveRiderCommandHandler(c.riderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateSetRiderOnlineCommandHandler() *commands.SetRiderOnlineCommandHandler {
	h := commands.NewSetRiderOnlineCommandHandler(c.riderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateAcceptNotificationCommandHandler() *commands.AcceptNotificationCommandHandler {
	h := commands.NewAcceptNotificationCommandHandler(c.fullUoWFactory(), c.now)
	return &h
}

func (c *CompositionRoot) CreateDeclineNotificationCommandHandler() *commands.DeclineNotificationCommandHandler {
	h := commands.NewDeclineNotificationCommandHandler(c.notificationUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateDispatchOrdersCommandHandler() (*commands.DispatchOrdersCommandHandler, error) {
	dispatcher, err := services.NewNotificationDispatcher(c.configs.DispatchFanout)
	if err != nil {
		return nil, err
	}
	h := commands.NewDispatchOrdersCommandHandler(c.fullUoWFactory(), dispatcher, c.now)
	return &h, nil
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRiderQueryHandler() queries.GetRiderQueryHandler {
	return queries.NewGetRiderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRiderNotificationsQueryHandler() queries.GetRiderNotificationsQueryHandler {
	return queries.NewGetRiderNotificationsQueryHandler(c.gormDB)
}

// CreateServer builds the HTTP adapter with every use case it exposes.
func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateOrder:         c.CreateCreateOrderCommandHandler(),
		AdvanceDelivery:     c.CreateAdvanceDeliveryCommandHandler(),
		CancelOrder:         c.CreateCancelOrderCommandHandler(),
		CreateRider:         c.CreateCreateRiderCommandHandler(),
		ApproveRider:        c.CreateApproveRiderCommandHandler(),
		SetRiderOnline:      c.CreateSetRiderOnlineCommandHandler(),
		AcceptNotification:  c.CreateAcceptNotificationCommandHandler(),
		DeclineNotification: c.CreateDeclineNotificationCommandHandler(),

		GetOrder:              c.CreateGetOrderQueryHandler(),
		GetRider:              c.CreateGetRiderQueryHandler(),
		GetRiderNotifications: c.CreateGetRiderNotificationsQueryHandler(),
	})
}

// CreateJobManager builds the scheduled jobs.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	dispatchHandler, err := c.CreateDispatchOrdersCommandHandler()
	if err != nil {
		return nil, err
	}
	return jobs.NewJobManager(dispatchHandler, jobs.DispatchConfig{
		Schedule:  c.configs.DispatchSchedule,
		BatchSize: c.configs.DispatchBatch,
	}, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncRiderUoWFactory func() commands.RiderUoW

func (f FuncRiderUoWFactory) Create() commands.RiderUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
