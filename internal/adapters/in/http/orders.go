package http

import (
	"net/http"
	"strconv"
	"strings"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/logging"

	"github.com/labstack/echo/v4"
)

type PlaceOrderRequest struct {
	AddressID     string   `json:"address_id"`
	CartLineIDs   []string `json:"cart_line_ids"`
	VoucherCode   string   `json:"voucher_code"`
	PaymentMethod string   `json:"payment_method"`
	Note          string   `json:"note"`
}

type PaymentResponse struct {
	PaymentURL string            `json:"payment_url"`
	Params     map[string]string `json:"params"`
}

type PlaceOrderResponse struct {
	OrderID        string           `json:"order_id"`
	TrackingNumber string           `json:"tracking_number"`
	SubtotalAmount int64            `json:"subtotal_amount"`
	ShippingFee    int64            `json:"shipping_fee"`
	DiscountAmount int64            `json:"discount_amount"`
	FinalAmount    int64            `json:"final_amount"`
	PaymentMethod  string           `json:"payment_method"`
	Payment        *PaymentResponse `json:"payment,omitempty"`
}

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(c echo.Context) error {
	customerID, err := identity(c, HeaderUserID)
	if err != nil {
		return err
	}

	var req PlaceOrderRequest
	if err = c.Bind(&req); err != nil {
		return err
	}

	addressID, err := parseID("address_id", req.AddressID)
	if err != nil {
		return err
	}
	lineIDs := make([]kernel.UUID, 0, len(req.CartLineIDs))
	for _, raw := range req.CartLineIDs {
		id, idErr := parseID("cart_line_ids", raw)
		if idErr != nil {
			return idErr
		}
		lineIDs = append(lineIDs, id)
	}
	method, err := order.ParsePaymentMethod(strings.ToUpper(req.PaymentMethod))
	if err != nil {
		return err
	}

	cmd, err := commands.NewPlaceOrderCommand(commands.PlaceOrderInput{
		CustomerID:    customerID,
		AddressID:     addressID,
		CartLineIDs:   lineIDs,
		VoucherCode:   req.VoucherCode,
		PaymentMethod: method,
		Note:          req.Note,
		ClientIP:      c.RealIP(),
	}, s.now())
	if err != nil {
		return err
	}

	result, err := s.h.PlaceOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		if result.TrackingNumber == "" {
			return err
		}
		ctx := c.Request().Context()
		logging.FromContext(ctx).WarnContext(ctx, "payment payload not built",
			"tracking_number", result.TrackingNumber, "error", err)
	}

	resp := PlaceOrderResponse{
		OrderID:        result.OrderID.String(),
		TrackingNumber: result.TrackingNumber,
		SubtotalAmount: int64(result.Subtotal),
		ShippingFee:    int64(result.ShippingFee),
		DiscountAmount: int64(result.Discount),
		FinalAmount:    int64(result.Final),
		PaymentMethod:  result.PaymentMethod.String(),
	}
	if result.Payment != nil {
		resp.Payment = &PaymentResponse{PaymentURL: result.Payment.PaymentURL, Params: result.Payment.SignedParams}
	}
	// The order exists even without a payment payload; the stale payment
	// report picks it up.
	return c.JSON(http.StatusCreated, resp)
}

// ListOrders handles GET /api/v1/orders?status=&limit=&offset=.
func (s *Server) ListOrders(c echo.Context) error {
	customerID, err := identity(c, HeaderUserID)
	if err != nil {
		return err
	}
	limit, err := intParam(c, "limit")
	if err != nil {
		return err
	}
	offset, err := intParam(c, "offset")
	if err != nil {
		return err
	}

	query, err := queries.NewListCustomerOrdersQuery(customerID, c.QueryParam("status"), limit, offset)
	if err != nil {
		return err
	}
	list, err := s.h.ListCustomerOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// GetOrder handles GET /api/v1/orders/:tracking for the owning customer.
func (s *Server) GetOrder(c echo.Context) error {
	customerID, err := identity(c, HeaderUserID)
	if err != nil {
		return err
	}
	query, err := queries.NewGetCustomerOrderQuery(customerID, c.Param("tracking"))
	if err != nil {
		return err
	}
	view, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

func (s *Server) CancelOrder(c echo.Context) error {
	actor, err := s.customerActor(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewCancelOrderCommand(c.Param("tracking"), actor, s.now())
	if err != nil {
		return err
	}
	if err = s.h.CancelOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ConfirmReceipt handles POST /api/v1/orders/:tracking/receipt: the customer
// confirms the parcel arrived, which completes the order.
func (s *Server) ConfirmReceipt(c echo.Context) error {
	actor, err := s.customerActor(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewCompleteOrderCommand(c.Param("tracking"), actor, s.now())
	if err != nil {
		return err
	}
	if err = s.h.CompleteOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type ReturnItemRequest struct {
	LineID   string `json:"line_id"`
	Quantity int    `json:"quantity"`
}

type RequestReturnRequest struct {
	Items    []ReturnItemRequest `json:"items"`
	Reason   string              `json:"reason"`
	Evidence []string            `json:"evidence"`
}

func (s *Server) RequestReturn(c echo.Context) error {
	customerID, err := identity(c, HeaderUserID)
	if err != nil {
		return err
	}
	var req RequestReturnRequest
	if err = c.Bind(&req); err != nil {
		return err
	}

	items := make([]order.ReturnItem, 0, len(req.Items))
	for _, item := range req.Items {
		lineID, idErr := parseID("line_id", item.LineID)
		if idErr != nil {
			return idErr
		}
		items = append(items, order.ReturnItem{LineID: lineID, Quantity: item.Quantity})
	}

	cmd, err := commands.NewRequestReturnCommand(customerID, c.Param("tracking"), items,
		order.ReturnReason(strings.ToUpper(req.Reason)), req.Evidence, s.now())
	if err != nil {
		return err
	}
	if err = s.h.RequestReturn.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusAccepted)
}

func (s *Server) CancelReturn(c echo.Context) error {
	customerID, err := identity(c, HeaderUserID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewCancelReturnCommand(customerID, c.Param("tracking"), s.now())
	if err != nil {
		return err
	}
	if err = s.h.CancelReturn.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) customerActor(c echo.Context) (commands.Actor, error) {
	customerID, err := identity(c, HeaderUserID)
	if err != nil {
		return commands.Actor{}, err
	}
	return commands.CustomerActor(customerID)
}

func parseID(param, raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return id, nil
}

func intParam(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return n, nil
}
