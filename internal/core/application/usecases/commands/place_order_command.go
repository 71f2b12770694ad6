package commands

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// MaxNoteLength bounds the free-text delivery note.
const MaxNoteLength = 500

// PlaceOrderCommand turns selected cart lines into an order.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(PlaceOrderInput{
//	    CustomerID:    customerID,
//	    AddressID:     addressID,
//	    CartLineIDs:   []kernel.UUID{lineID},
//	    VoucherCode:   "SPRING10",
//	    PaymentMethod: order.Gateway,
//	}, time.Now())
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
//	// result.Payment carries the redirect payload for gateway orders
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	customerID    kernel.UUID
	addressID     kernel.UUID
	cartLineIDs   []kernel.UUID
	voucherCode   string
	paymentMethod order.PaymentMethod
	note          string
	clientIP      string
	now           time.Time

	guard guard.ConstructorGuard
}

type PlaceOrderInput struct {
	CustomerID    kernel.UUID
	AddressID     kernel.UUID
	CartLineIDs   []kernel.UUID
	VoucherCode   string
	PaymentMethod order.PaymentMethod
	Note          string
	ClientIP      string
}

func NewPlaceOrderCommand(in PlaceOrderInput, now time.Time) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		voucherCode: strings.ToUpper(strings.TrimSpace(in.VoucherCode)),
		clientIP:    in.ClientIP,
		now:         now,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(in.CustomerID),
		cmd.setAddressID(in.AddressID),
		cmd.setCartLineIDs(in.CartLineIDs),
		cmd.setPaymentMethod(in.PaymentMethod),
		cmd.setNote(in.Note),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) CustomerID() kernel.UUID { return c.customerID }

func (c PlaceOrderCommand) AddressID() kernel.UUID { return c.addressID }

func (c PlaceOrderCommand) CartLineIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.cartLineIDs...)
}

// VoucherCode is empty when no voucher was applied.
func (c PlaceOrderCommand) VoucherCode() string { return c.voucherCode }

func (c PlaceOrderCommand) PaymentMethod() order.PaymentMethod { return c.paymentMethod }

func (c PlaceOrderCommand) Note() string { return c.note }

func (c PlaceOrderCommand) ClientIP() string { return c.clientIP }

func (c PlaceOrderCommand) Now() time.Time { return c.now }

func (c *PlaceOrderCommand) setCustomerID(id kernel.UUID) error {
	if err := requireID("customerID", id); err != nil {
		return err
	}
	c.customerID = id
	return nil
}

func (c *PlaceOrderCommand) setAddressID(id kernel.UUID) error {
	if err := requireID("addressID", id); err != nil {
		return err
	}
	c.addressID = id
	return nil
}

func (c *PlaceOrderCommand) setCartLineIDs(ids []kernel.UUID) error {
	seen := make(map[kernel.UUID]bool, len(ids))
	unique := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("cartLineIDs", err)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return errs.NewValueIsRequiredError("cartLineIDs")
	}
	c.cartLineIDs = unique
	return nil
}

func (c *PlaceOrderCommand) setPaymentMethod(m order.PaymentMethod) error {
	if err := m.Validate(); err != nil {
		return err
	}
	c.paymentMethod = m
	return nil
}

func (c *PlaceOrderCommand) setNote(note string) error {
	if len(note) > MaxNoteLength {
		return errs.NewValueIsOutOfRangeError("note", len(note), 0, MaxNoteLength)
	}
	c.note = note
	return nil
}
