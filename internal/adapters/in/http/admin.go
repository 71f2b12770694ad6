package http

import (
	"net/http"
	"strings"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/voucher"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func (s *Server) AdminGetOrder(c echo.Context) error {
	query, err := queries.NewGetOrderQuery(c.Param("tracking"))
	if err != nil {
		return err
	}
	view, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

func (s *Server) AdminConfirmOrder(c echo.Context) error {
	cmd, err := commands.NewConfirmOrderCommand(c.Param("tracking"), s.now())
	if err != nil {
		return err
	}
	if err = s.h.ConfirmOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) AdminCancelOrder(c echo.Context) error {
	cmd, err := commands.NewCancelOrderCommand(c.Param("tracking"), commands.AdminActor(), s.now())
	if err != nil {
		return err
	}
	if err = s.h.CancelOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) AdminCompleteOrder(c echo.Context) error {
	cmd, err := commands.NewCompleteOrderCommand(c.Param("tracking"), commands.AdminActor(), s.now())
	if err != nil {
		return err
	}
	if err = s.h.CompleteOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) decideReturn(approve bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		cmd, err := commands.NewDecideReturnCommand(c.Param("tracking"), approve, s.now())
		if err != nil {
			return err
		}
		if err = s.h.DecideReturn.Handle(c.Request().Context(), cmd); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func (s *Server) AdminCompleteReturn(c echo.Context) error {
	cmd, err := commands.NewCompleteReturnCommand(c.Param("tracking"), s.now())
	if err != nil {
		return err
	}
	if err = s.h.CompleteReturn.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type CreateVoucherRequest struct {
	Code            string          `json:"code"`
	DiscountType    string          `json:"discount_type"`
	DiscountValue   decimal.Decimal `json:"discount_value"`
	MaximumDiscount int64           `json:"maximum_discount"`
	MinimumOrder    int64           `json:"minimum_order"`
	UsageLimit      int             `json:"usage_limit"`
	StartDate       time.Time       `json:"start_date"`
	EndDate         time.Time       `json:"end_date"`
	OwnerID         string          `json:"owner_id"`
}

type CreateVoucherResponse struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}

func (s *Server) AdminCreateVoucher(c echo.Context) error {
	var req CreateVoucherRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	discountType, err := voucher.ParseDiscountType(strings.ToUpper(req.DiscountType))
	if err != nil {
		return err
	}
	spec := voucher.Spec{
		Code:            req.Code,
		DiscountType:    discountType,
		DiscountValue:   req.DiscountValue,
		MaximumDiscount: kernel.Money(req.MaximumDiscount),
		MinimumOrder:    kernel.Money(req.MinimumOrder),
		UsageLimit:      req.UsageLimit,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
	}
	if req.OwnerID != "" {
		owner, idErr := parseID("owner_id", req.OwnerID)
		if idErr != nil {
			return idErr
		}
		spec.OwnerID = &owner
	}

	cmd, err := commands.NewCreateVoucherCommand(kernel.NewUUID(), spec)
	if err != nil {
		return err
	}
	if err = s.h.CreateVoucher.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, CreateVoucherResponse{ID: cmd.VoucherID().String(), Code: cmd.Spec().Code})
}

type CorrectVoucherUsageRequest struct {
	UsedCount int `json:"used_count"`
}

func (s *Server) AdminCorrectVoucherUsage(c echo.Context) error {
	var req CorrectVoucherUsageRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	cmd, err := commands.NewCorrectVoucherUsageCommand(c.Param("code"), req.UsedCount)
	if err != nil {
		return err
	}
	if err = s.h.CorrectVoucherUsage.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
