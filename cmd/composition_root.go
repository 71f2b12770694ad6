package cmd

import (
	"log/slog"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

// Adapters are the outbound dependencies built by main. Publisher and Cache
// may be nil.
type Adapters struct {
	Gateway      ports.PaymentGateway
	ProofStorage ports.ProofStorage
	Publisher    ports.EventPublisher
	Cache        ports.Cache
	Logger       *slog.Logger
}

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	adapters   Adapters
	uowFactory *postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, adapters Adapters) CompositionRoot {
	if adapters.Logger == nil {
		adapters.Logger = slog.Default()
	}
	opts := []postgres.Option{postgres.WithLogger(adapters.Logger)}
	if adapters.Publisher != nil {
		opts = append(opts, postgres.WithEventPublisher(adapters.Publisher))
	}
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		adapters:   adapters,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, opts...),
	}
}

func (c *CompositionRoot) checkoutUoW() commands.CheckoutUoWFactory {
	return FuncCheckoutUoWFactory(func() commands.CheckoutUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) orderUoW() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) restockUoW() commands.RestockUoWFactory {
	return FuncRestockUoWFactory(func() commands.RestockUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) cancelUoW() commands.CancelUoWFactory {
	return FuncCancelUoWFactory(func() commands.CancelUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) deliveryUoW() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) voucherUoW() commands.VoucherUoWFactory {
	return FuncVoucherUoWFactory(func() commands.VoucherUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.checkoutUoW(), c.adapters.Gateway,
		kernel.Money(c.cfg.ShippingFee), services.NewTrackingNumbers())
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	return commands.NewConfirmOrderCommandHandler(c.deliveryUoW())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.cancelUoW())
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(c.orderUoW())
}

func (c *CompositionRoot) CreateClaimDeliveryCommandHandler() commands.ClaimDeliveryCommandHandler {
	return commands.NewClaimDeliveryCommandHandler(c.deliveryUoW())
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	return commands.NewConfirmDeliveryCommandHandler(c.deliveryUoW(), c.adapters.ProofStorage)
}

func (c *CompositionRoot) CreateRequestReturnCommandHandler() commands.RequestReturnCommandHandler {
	return commands.NewRequestReturnCommandHandler(c.orderUoW())
}

func (c *CompositionRoot) CreateDecideReturnCommandHandler() commands.DecideReturnCommandHandler {
	return commands.NewDecideReturnCommandHandler(c.orderUoW())
}

func (c *CompositionRoot) CreateCompleteReturnCommandHandler() commands.CompleteReturnCommandHandler {
	return commands.NewCompleteReturnCommandHandler(c.restockUoW())
}

func (c *CompositionRoot) CreateCancelReturnCommandHandler() commands.CancelReturnCommandHandler {
	return commands.NewCancelReturnCommandHandler(c.orderUoW())
}

func (c *CompositionRoot) CreateHandlePaymentCallbackCommandHandler() commands.HandlePaymentCallbackCommandHandler {
	return commands.NewHandlePaymentCallbackCommandHandler(c.orderUoW(), c.adapters.Gateway)
}

func (c *CompositionRoot) CreateCreateVoucherCommandHandler() commands.CreateVoucherCommandHandler {
	return commands.NewCreateVoucherCommandHandler(c.voucherUoW())
}

func (c *CompositionRoot) CreateCorrectVoucherUsageCommandHandler() commands.CorrectVoucherUsageCommandHandler {
	return commands.NewCorrectVoucherUsageCommandHandler(c.voucherUoW())
}

func (c *CompositionRoot) CreateDeactivateExpiredVouchersCommandHandler() commands.DeactivateExpiredVouchersCommandHandler {
	return commands.NewDeactivateExpiredVouchersCommandHandler(c.voucherUoW())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB, c.adapters.Cache, c.cfg.OrderCacheTTL)
}

func (c *CompositionRoot) CreateListCustomerOrdersQueryHandler() queries.ListCustomerOrdersQueryHandler {
	return queries.NewListCustomerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListAvailableVouchersQueryHandler() queries.ListAvailableVouchersQueryHandler {
	return queries.NewListAvailableVouchersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateStaleGatewayPaymentsQueryHandler() queries.StaleGatewayPaymentsQueryHandler {
	return queries.NewStaleGatewayPaymentsQueryHandler(c.gormDB)
}

// HTTPHandlers collects every use case the HTTP adapter serves.
func (c *CompositionRoot) HTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		PlaceOrder:            c.CreatePlaceOrderCommandHandler(),
		ConfirmOrder:          c.CreateConfirmOrderCommandHandler(),
		CancelOrder:           c.CreateCancelOrderCommandHandler(),
		CompleteOrder:         c.CreateCompleteOrderCommandHandler(),
		ClaimDelivery:         c.CreateClaimDeliveryCommandHandler(),
		ConfirmDelivery:       c.CreateConfirmDeliveryCommandHandler(),
		RequestReturn:         c.CreateRequestReturnCommandHandler(),
		DecideReturn:          c.CreateDecideReturnCommandHandler(),
		CompleteReturn:        c.CreateCompleteReturnCommandHandler(),
		CancelReturn:          c.CreateCancelReturnCommandHandler(),
		PaymentCallback:       c.CreateHandlePaymentCallbackCommandHandler(),
		CreateVoucher:         c.CreateCreateVoucherCommandHandler(),
		CorrectVoucherUsage:   c.CreateCorrectVoucherUsageCommandHandler(),
		GetOrder:              c.CreateGetOrderQueryHandler(),
		ListCustomerOrders:    c.CreateListCustomerOrdersQueryHandler(),
		ListAvailableVouchers: c.CreateListAvailableVouchersQueryHandler(),
	}
}

func (c *CompositionRoot) JobManager() *jobs.JobManager {
	deactivate := c.CreateDeactivateExpiredVouchersCommandHandler()
	stale := c.CreateStaleGatewayPaymentsQueryHandler()
	return jobs.NewJobManager(&deactivate, &stale, jobs.Schedules{
		VoucherExpiry:   c.cfg.VoucherExpirySchedule,
		StalePayments:   c.cfg.StalePaymentSchedule,
		StalePaymentAge: c.cfg.StalePaymentAge,
	}, c.adapters.Logger)
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncRestockUoWFactory func() commands.RestockUoW

func (f FuncRestockUoWFactory) Create() commands.RestockUoW {
	return f()
}

type FuncCancelUoWFactory func() commands.CancelUoW

func (f FuncCancelUoWFactory) Create() commands.CancelUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncVoucherUoWFactory func() commands.VoucherUoW

func (f FuncVoucherUoWFactory) Create() commands.VoucherUoW {
	return f()
}
