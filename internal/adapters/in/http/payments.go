package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/logging"

	"github.com/labstack/echo/v4"
)

// GatewayAck is the acknowledgement body the payment provider expects.
type GatewayAck struct {
	RspCode string `json:"RspCode"`
	Message string `json:"Message"`
}

var (
	ackConfirmed      = GatewayAck{RspCode: "00", Message: "Confirm Success"}
	ackUnknownOrder   = GatewayAck{RspCode: "01", Message: "Order not found"}
	ackAlreadyHandled = GatewayAck{RspCode: "02", Message: "Order already confirmed"}
	ackInvalidAmount  = GatewayAck{RspCode: "04", Message: "Invalid amount"}
	ackBadSignature   = GatewayAck{RspCode: "97", Message: "Invalid signature"}
	ackUnknownError   = GatewayAck{RspCode: "99", Message: "Unknown error"}
)

// PaymentCallback answers the provider with its own acknowledgement codes
// rather than the JSON error body clients get; the provider retries on
// anything but a well-formed ack. A processed decline is confirmed like a
// payment so the provider stops retrying it.
func (s *Server) PaymentCallback(c echo.Context) error {
	ctx := c.Request().Context()

	var outcome commands.PaymentOutcome
	cmd, err := commands.NewHandlePaymentCallbackCommand(c.QueryParams(), s.now())
	if err == nil {
		outcome, err = s.h.PaymentCallback.Handle(ctx, cmd)
	}

	ack := ackConfirmed
	switch {
	case err == nil && outcome == commands.PaymentAlreadySettled:
		ack = ackAlreadyHandled
	case err == nil:
	case errors.Is(err, order.ErrPaymentDeclined):
		return c.JSON(http.StatusOK, ack)
	case errors.Is(err, order.ErrPaymentAmountMismatch):
		ack = ackInvalidAmount
	case errors.Is(err, order.ErrPaymentVerificationFailed):
		ack = ackBadSignature
	case errors.Is(err, errs.ErrObjectNotFound):
		ack = ackUnknownOrder
	case errors.Is(err, errs.ErrInvalidTransition):
		ack = ackAlreadyHandled
	default:
		ack = ackUnknownError
	}
	if err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "payment callback rejected", "error", err, "rsp_code", ack.RspCode)
	}
	return c.JSON(http.StatusOK, ack)
}

// ListAvailableVouchers handles GET /api/v1/vouchers/available.
func (s *Server) ListAvailableVouchers(c echo.Context) error {
	customerID, err := identity(c, HeaderUserID)
	if err != nil {
		return err
	}
	query, err := queries.NewListAvailableVouchersQuery(customerID, s.now())
	if err != nil {
		return err
	}
	list, err := s.h.ListAvailableVouchers.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}
