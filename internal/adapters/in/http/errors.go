package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/voucher"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/logging"

	"github.com/labstack/echo/v4"
)

// Error kinds returned to clients.
const (
	KindInsufficientStock         = "INSUFFICIENT_STOCK"
	KindVoucherNotFound           = "VOUCHER_NOT_FOUND"
	KindVoucherIneligible         = "VOUCHER_INELIGIBLE"
	KindInvalidTransition         = "INVALID_TRANSITION"
	KindEmptySelection            = "EMPTY_SELECTION"
	KindPaymentVerificationFailed = "PAYMENT_VERIFICATION_FAILED"
	KindAlreadyClaimed            = "ALREADY_CLAIMED"
	KindAlreadyDelivered          = "ALREADY_DELIVERED"
	KindOrderNotConfirmed         = "ORDER_NOT_CONFIRMED"
	KindInvalidProofImage         = "INVALID_PROOF_IMAGE"
	KindReturnNotAllowed          = "RETURN_NOT_ALLOWED"
	KindNotFound                  = "NOT_FOUND"
	KindValidation                = "VALIDATION"
	KindUnauthenticated           = "UNAUTHENTICATED"
	KindForbidden                 = "FORBIDDEN"
	KindInternal                  = "INTERNAL"
)

var errMissingIdentity = errors.New("missing identity header")

type ErrorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

// classification is checked top to bottom; domain errors come before the
// generic validation sentinels they may be joined with.
var classification = []struct {
	target error
	status int
	kind   string
}{
	{inventory.ErrInsufficientStock, http.StatusConflict, KindInsufficientStock},
	{voucher.ErrNotFound, http.StatusNotFound, KindVoucherNotFound},
	{voucher.ErrIneligible, http.StatusUnprocessableEntity, KindVoucherIneligible},
	{order.ErrEmptySelection, http.StatusConflict, KindEmptySelection},
	{order.ErrPaymentVerificationFailed, http.StatusBadRequest, KindPaymentVerificationFailed},
	{order.ErrReturnNotAllowed, http.StatusConflict, KindReturnNotAllowed},
	{delivery.ErrAlreadyClaimed, http.StatusConflict, KindAlreadyClaimed},
	{delivery.ErrAlreadyDelivered, http.StatusConflict, KindAlreadyDelivered},
	{delivery.ErrOrderNotConfirmed, http.StatusConflict, KindOrderNotConfirmed},
	{delivery.ErrInvalidProofImage, http.StatusBadRequest, KindInvalidProofImage},
	{errs.ErrInvalidTransition, http.StatusConflict, KindInvalidTransition},
	{errs.ErrForbidden, http.StatusForbidden, KindForbidden},
	{errs.ErrObjectNotFound, http.StatusNotFound, KindNotFound},
	{errMissingIdentity, http.StatusUnauthorized, KindUnauthenticated},
	{errs.ErrValueIsRequired, http.StatusBadRequest, KindValidation},
	{errs.ErrValueIsInvalid, http.StatusBadRequest, KindValidation},
	{errs.ErrValueIsOutOfRange, http.StatusBadRequest, KindValidation},
}

// Classify maps an error to its HTTP status and stable kind.
func Classify(err error) (int, ErrorResponse) {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		msg, ok := httpErr.Message.(string)
		if !ok {
			msg = http.StatusText(httpErr.Code)
		}
		return httpErr.Code, ErrorResponse{Kind: kindForStatus(httpErr.Code), Message: msg}
	}

	for _, c := range classification {
		if !errors.Is(err, c.target) {
			continue
		}
		resp := ErrorResponse{Kind: c.kind, Message: err.Error()}
		var ineligible *voucher.IneligibleError
		if errors.As(err, &ineligible) {
			resp.Reason = string(ineligible.Reason)
		}
		return c.status, resp
	}

	return http.StatusInternalServerError, ErrorResponse{Kind: KindInternal, Message: "internal error"}
}

func kindForStatus(status int) string {
	switch status {
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return KindNotFound
	case http.StatusUnauthorized:
		return KindUnauthenticated
	case http.StatusForbidden:
		return KindForbidden
	}
	if status >= http.StatusInternalServerError {
		return KindInternal
	}
	return KindValidation
}

// ErrorHandler renders every error as an ErrorResponse. Internal errors are
// logged with their cause; the client only sees the kind.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, resp := Classify(err)
	if status >= http.StatusInternalServerError {
		ctx := c.Request().Context()
		logging.FromContext(ctx).ErrorContext(ctx, "request failed", "error", err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, resp)
	}
	if err != nil {
		c.Logger().Error(err)
	}
}
