package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Handlers are the use cases the HTTP adapter exposes.
type Handlers struct {
	PlaceOrder          commands.PlaceOrderCommandHandler
	ConfirmOrder        commands.ConfirmOrderCommandHandler
	CancelOrder         commands.CancelOrderCommandHandler
	CompleteOrder       commands.CompleteOrderCommandHandler
	ClaimDelivery       commands.ClaimDeliveryCommandHandler
	ConfirmDelivery     commands.ConfirmDeliveryCommandHandler
	RequestReturn       commands.RequestReturnCommandHandler
	DecideReturn        commands.DecideReturnCommandHandler
	CompleteReturn      commands.CompleteReturnCommandHandler
	CancelReturn        commands.CancelReturnCommandHandler
	PaymentCallback     commands.HandlePaymentCallbackCommandHandler
	CreateVoucher       commands.CreateVoucherCommandHandler
	CorrectVoucherUsage commands.CorrectVoucherUsageCommandHandler

	GetOrder              queries.GetOrderQueryHandler
	ListCustomerOrders    queries.ListCustomerOrdersQueryHandler
	ListAvailableVouchers queries.ListAvailableVouchersQueryHandler
}

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	h      Handlers
	checks map[string]ReadinessCheck
	now    func() time.Time
}

func NewServer(h Handlers, checks map[string]ReadinessCheck) *Server {
	return &Server{h: h, checks: checks, now: time.Now}
}

// NewEcho builds the echo instance with middleware and every route.
func NewEcho(s *Server, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler

	e.Use(middleware.Recover(), middleware.RequestID(), RequestLogger(logger))
	s.Register(e)
	return e
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/health/live", s.Live)
	e.GET("/health/ready", s.Ready)

	api := e.Group("/api/v1")

	orders := api.Group("/orders")
	orders.POST("", s.PlaceOrder)
	orders.GET("", s.ListOrders)
	orders.GET("/:tracking", s.GetOrder)
	orders.POST("/:tracking/cancel", s.CancelOrder)
	orders.POST("/:tracking/receipt", s.ConfirmReceipt)
	orders.POST("/:tracking/returns", s.RequestReturn)
	orders.DELETE("/:tracking/returns", s.CancelReturn)

	api.GET("/vouchers/available", s.ListAvailableVouchers)

	deliveries := api.Group("/deliveries")
	deliveries.POST("/:tracking/claim", s.ClaimDelivery)
	deliveries.POST("/:tracking/proof", s.ConfirmDelivery)

	admin := api.Group("/admin")
	admin.GET("/orders/:tracking", s.AdminGetOrder)
	admin.POST("/orders/:tracking/confirm", s.AdminConfirmOrder)
	admin.POST("/orders/:tracking/cancel", s.AdminCancelOrder)
	admin.POST("/orders/:tracking/complete", s.AdminCompleteOrder)
	admin.POST("/orders/:tracking/returns/approve", s.decideReturn(true))
	admin.POST("/orders/:tracking/returns/reject", s.decideReturn(false))
	admin.POST("/orders/:tracking/returns/complete", s.AdminCompleteReturn)
	admin.POST("/vouchers", s.AdminCreateVoucher)
	admin.PUT("/vouchers/:code/usage", s.AdminCorrectVoucherUsage)

	api.GET("/payments/callback", s.PaymentCallback)
}

func (s *Server) Live(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// Ready runs every readiness check and reports the failing ones.
func (s *Server) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	failing := map[string]string{}
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			failing[name] = err.Error()
		}
	}
	if len(failing) > 0 {
		return c.JSON(http.StatusServiceUnavailable, map[string]any{"status": "unavailable", "failing": failing})
	}
	return c.JSON(http.StatusOK, map[string]any{"status": "ok"})
}
