package order

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrOrderIsNotConstructed     = errors.New("Order must be created via NewOrder or RestoreOrder")
	ErrEmptySelection            = errors.New("no selected cart lines resolved")
	ErrTrackingNumberExhausted   = errors.New("could not generate a unique tracking number")
	ErrTrackingNumberTaken       = errors.New("tracking number already taken")
	ErrPaymentVerificationFailed = errors.New("payment verification failed")
	ErrReturnNotAllowed          = errors.New("return not allowed")

	// ErrPaymentAmountMismatch and ErrPaymentDeclined refine
	// ErrPaymentVerificationFailed. A decline is recorded as FAILED before it
	// is reported.
	ErrPaymentAmountMismatch = fmt.Errorf("%w: amount mismatch", ErrPaymentVerificationFailed)
	ErrPaymentDeclined       = fmt.Errorf("%w: declined", ErrPaymentVerificationFailed)
)

// ReturnWindow is how long after completion a customer may ask for a return.
const ReturnWindow = 7 * 24 * time.Hour

type ReturnNotAllowedError struct {
	TrackingNumber string
	Reason         string
}

func NewReturnNotAllowedError(trackingNumber, reason string) *ReturnNotAllowedError {
	return &ReturnNotAllowedError{TrackingNumber: trackingNumber, Reason: reason}
}

func (e *ReturnNotAllowedError) Error() string {
	return fmt.Sprintf("%s: order %s: %s", ErrReturnNotAllowed, e.TrackingNumber, e.Reason)
}

func (e *ReturnNotAllowedError) Unwrap() error {
	return ErrReturnNotAllowed
}
