package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

type PaymentMethod int

const (
	UnknownPaymentMethod PaymentMethod = iota
	CashOnDelivery
	Gateway
)

var paymentMethodNames = map[PaymentMethod]string{
	CashOnDelivery: "CASH_ON_DELIVERY",
	Gateway:        "GATEWAY",
}

func (m PaymentMethod) String() string {
	if name, ok := paymentMethodNames[m]; ok {
		return name
	}
	return "UNKNOWN"
}

func (m PaymentMethod) Validate() error {
	if _, ok := paymentMethodNames[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod", fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

func ParsePaymentMethod(name string) (PaymentMethod, error) {
	for m, n := range paymentMethodNames {
		if n == name {
			return m, nil
		}
	}
	return UnknownPaymentMethod, errs.NewValueIsInvalidErrorWithCause("paymentMethod",
		fmt.Errorf("%q is not a valid payment method", name))
}

// PaymentStatus tracks settlement. PAID is final; a FAILED gateway payment
// can still be paid by a later successful callback.
type PaymentStatus int

const (
	UnknownPaymentStatus PaymentStatus = iota
	PaymentPending
	PaymentPaid
	PaymentFailed
)

var paymentStatusNames = map[PaymentStatus]string{
	PaymentPending: "PENDING",
	PaymentPaid:    "PAID",
	PaymentFailed:  "FAILED",
}

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending: {PaymentPaid, PaymentFailed},
	PaymentFailed:  {PaymentPaid, PaymentFailed},
}

func (p PaymentStatus) String() string {
	if name, ok := paymentStatusNames[p]; ok {
		return name
	}
	return "UNKNOWN"
}

func (p PaymentStatus) Validate() error {
	if _, ok := paymentStatusNames[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus", fmt.Errorf("%d is not a valid payment status", p))
	}
	return nil
}

func (p PaymentStatus) TransitionTo(target PaymentStatus) (PaymentStatus, error) {
	for _, next := range paymentTransitions[p] {
		if next == target {
			return target, nil
		}
	}
	return p, errs.NewInvalidTransitionError("payment", p.String(), target.String())
}

func ParsePaymentStatus(name string) (PaymentStatus, error) {
	for p, n := range paymentStatusNames {
		if n == name {
			return p, nil
		}
	}
	return UnknownPaymentStatus, errs.NewValueIsInvalidErrorWithCause("paymentStatus",
		fmt.Errorf("%q is not a valid payment status", name))
}
