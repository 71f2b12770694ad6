package commands

import (
	"errors"
	"net/url"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrHandlePaymentCallbackCommandIsNotConstructed = errors.New(
	"HandlePaymentCallbackCommand must be created via NewHandlePaymentCallbackCommand constructor",
)

// HandlePaymentCallbackCommand carries the raw, still unverified query
// parameters the gateway redirected back with.
type HandlePaymentCallbackCommand struct { //nolint:recvcheck //using for validation
	params url.Values
	now    time.Time

	guard guard.ConstructorGuard
}

func NewHandlePaymentCallbackCommand(params url.Values, now time.Time) (HandlePaymentCallbackCommand, error) {
	if len(params) == 0 {
		return HandlePaymentCallbackCommand{}, errs.NewValueIsRequiredError("params")
	}
	copied := make(url.Values, len(params))
	for k, v := range params {
		copied[k] = append([]string(nil), v...)
	}
	return HandlePaymentCallbackCommand{params: copied, now: now, guard: guard.NewConstructorGuard()}, nil
}

func (c HandlePaymentCallbackCommand) Validate() error {
	return c.guard.Validate(ErrHandlePaymentCallbackCommandIsNotConstructed)
}

func (c HandlePaymentCallbackCommand) Params() url.Values { return c.params }

func (c HandlePaymentCallbackCommand) Now() time.Time { return c.now }
