package voucher

import (
	"errors"
	"fmt"
)

var (
	ErrIneligible              = errors.New("voucher ineligible")
	ErrNotFound                = errors.New("voucher not found")
	ErrVoucherIsNotConstructed = errors.New("Voucher must be created via NewVoucher or RestoreVoucher")
)

// Reason is the stable code clients receive with an ineligible voucher.
type Reason string

const (
	ReasonInactive       Reason = "INACTIVE"
	ReasonNotStarted     Reason = "NOT_STARTED"
	ReasonExpired        Reason = "EXPIRED"
	ReasonUsageExhausted Reason = "USAGE_EXHAUSTED"
	ReasonNotOwner       Reason = "NOT_OWNER"
	ReasonBelowMinimum   Reason = "BELOW_MINIMUM"
)

type IneligibleError struct {
	Code   string
	Reason Reason
}

func NewIneligibleError(code string, reason Reason) *IneligibleError {
	return &IneligibleError{Code: code, Reason: reason}
}

func (e *IneligibleError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", ErrIneligible, e.Code, e.Reason)
}

func (e *IneligibleError) Unwrap() error {
	return ErrIneligible
}

type NotFoundError struct {
	Code string
}

func NewNotFoundError(code string) *NotFoundError {
	return &NotFoundError{Code: code}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrNotFound, e.Code)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
