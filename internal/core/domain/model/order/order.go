package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Draft is what checkout knows about an order before it exists.
type Draft struct {
	ID             kernel.UUID
	TrackingNumber string
	CustomerID     kernel.UUID
	AddressID      kernel.UUID
	VoucherID      *kernel.UUID
	VoucherCode    string
	ShippingFee    kernel.Money
	Discount       kernel.Money
	PaymentMethod  PaymentMethod
	Note           string
	CreatedAt      time.Time
	Lines          []*Line
}

// Snapshot is the full persisted state of an order.
type Snapshot struct {
	ID                kernel.UUID
	TrackingNumber    string
	CustomerID        kernel.UUID
	AddressID         kernel.UUID
	VoucherID         *kernel.UUID
	VoucherCode       string
	Subtotal          kernel.Money
	ShippingFee       kernel.Money
	Discount          kernel.Money
	Final             kernel.Money
	PaymentMethod     PaymentMethod
	PaymentStatus     PaymentStatus
	Status            Status
	ReturnStatus      ReturnStatus
	Note              string
	CreatedAt         time.Time
	CompletedAt       *time.Time
	PaymentRef        string
	ReturnReason      ReturnReason
	ReturnEvidence    []string
	ReturnRequestedAt *time.Time
	Lines             []*Line
}

// Order is the aggregate root of the fulfillment core. It owns its lines.
//
// Invariants: final = subtotal + shipping - discount, 0 <= discount <=
// subtotal + shipping, every line's return quantity lies in [0, quantity].
type Order struct {
	state  Snapshot
	events []Event
	guard  guard.ConstructorGuard
}

// NewOrder prices a draft. The discount is clamped so the final amount
// never drops below zero.
func NewOrder(d Draft) (*Order, error) {
	var subtotal kernel.Money
	for _, l := range d.Lines {
		if l == nil {
			return nil, errs.NewValueIsRequiredError("line")
		}
		subtotal = subtotal.Add(l.Subtotal())
	}
	discount := d.Discount
	if discount < 0 {
		discount = 0
	}
	discount = discount.Min(subtotal.Add(d.ShippingFee))

	o := &Order{guard: guard.NewConstructorGuard()}
	if err := o.setState(Snapshot{
		ID:             d.ID,
		TrackingNumber: d.TrackingNumber,
		CustomerID:     d.CustomerID,
		AddressID:      d.AddressID,
		VoucherID:      d.VoucherID,
		VoucherCode:    d.VoucherCode,
		Subtotal:       subtotal,
		ShippingFee:    d.ShippingFee,
		Discount:       discount,
		Final:          subtotal.Add(d.ShippingFee).Sub(discount),
		PaymentMethod:  d.PaymentMethod,
		PaymentStatus:  PaymentPending,
		Status:         Pending,
		ReturnStatus:   ReturnNone,
		Note:           strings.TrimSpace(d.Note),
		CreatedAt:      d.CreatedAt,
		Lines:          d.Lines,
	}); err != nil {
		return nil, err
	}
	o.raise(EventPlaced, d.CreatedAt)
	return o, nil
}

// RestoreOrder rebuilds an order from storage without raising events.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{guard: guard.NewConstructorGuard()}
	if err := o.setState(s); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// Snapshot copies the order state for persistence.
func (o *Order) Snapshot() Snapshot {
	s := o.state
	s.Lines = append([]*Line(nil), o.state.Lines...)
	s.ReturnEvidence = append([]string(nil), o.state.ReturnEvidence...)
	return s
}

func (o *Order) ID() kernel.UUID              { return o.state.ID }
func (o *Order) TrackingNumber() string       { return o.state.TrackingNumber }
func (o *Order) CustomerID() kernel.UUID      { return o.state.CustomerID }
func (o *Order) Subtotal() kernel.Money       { return o.state.Subtotal }
func (o *Order) ShippingFee() kernel.Money    { return o.state.ShippingFee }
func (o *Order) Discount() kernel.Money       { return o.state.Discount }
func (o *Order) Final() kernel.Money          { return o.state.Final }
func (o *Order) PaymentMethod() PaymentMethod { return o.state.PaymentMethod }
func (o *Order) PaymentStatus() PaymentStatus { return o.state.PaymentStatus }
func (o *Order) Status() Status               { return o.state.Status }
func (o *Order) ReturnStatus() ReturnStatus   { return o.state.ReturnStatus }
func (o *Order) CreatedAt() time.Time         { return o.state.CreatedAt }
func (o *Order) CompletedAt() *time.Time      { return o.state.CompletedAt }
func (o *Order) PaymentRef() string           { return o.state.PaymentRef }
func (o *Order) Lines() []*Line               { return append([]*Line(nil), o.state.Lines...) }

func (o *Order) IsOwnedBy(customerID kernel.UUID) bool {
	return o.state.CustomerID.IsEqual(customerID)
}

// Confirm is the admin acceptance of a pending order.
func (o *Order) Confirm(now time.Time) error {
	if err := o.transition(Confirmed); err != nil {
		return err
	}
	o.raise(EventConfirmed, now)
	return nil
}

// CancelByCustomer lets the owner withdraw an order the warehouse has not accepted yet.
func (o *Order) CancelByCustomer(customerID kernel.UUID, now time.Time) ([]Restock, error) {
	if !o.IsOwnedBy(customerID) {
		return nil, errs.NewForbiddenError("customer "+customerID.String(), "cancel order "+o.state.TrackingNumber)
	}
	if o.state.Status != Pending {
		return nil, errs.NewInvalidTransitionError("order", o.state.Status.String(), Cancelled.String())
	}
	return o.cancel(now)
}

// CancelByAdmin cancels from any non-terminal status.
func (o *Order) CancelByAdmin(now time.Time) ([]Restock, error) {
	return o.cancel(now)
}

func (o *Order) cancel(now time.Time) ([]Restock, error) {
	if err := o.transition(Cancelled); err != nil {
		return nil, err
	}
	restocks := make([]Restock, 0, len(o.state.Lines))
	for _, l := range o.state.Lines {
		restocks = append(restocks, Restock{UnitID: l.unitID, Quantity: l.quantity})
	}
	o.raise(EventCancelled, now)
	return restocks, nil
}

// StartDelivery is driven by a shipper claiming the order.
func (o *Order) StartDelivery(now time.Time) error {
	if err := o.transition(Delivering); err != nil {
		return err
	}
	o.raise(EventDelivering, now)
	return nil
}

// RecordDelivery notes that the parcel was handed over. The order stays
// DELIVERING until it is completed.
func (o *Order) RecordDelivery(now time.Time) error {
	if o.state.Status != Delivering {
		return errs.NewInvalidTransitionError("delivery", "order "+o.state.Status.String(), "DELIVERED")
	}
	o.raise(EventDelivered, now)
	return nil
}

// Complete closes a delivered order and opens the return window. Cash on
// delivery is settled in the same step.
func (o *Order) Complete(now time.Time) error {
	if err := o.transition(Completed); err != nil {
		return err
	}
	completedAt := now
	o.state.CompletedAt = &completedAt
	if o.state.PaymentMethod == CashOnDelivery {
		o.state.PaymentStatus = PaymentPaid
	}
	o.raise(EventCompleted, now)
	return nil
}

// CompleteByCustomer records the owner's confirmation of receipt.
func (o *Order) CompleteByCustomer(customerID kernel.UUID, now time.Time) error {
	if !o.IsOwnedBy(customerID) {
		return errs.NewForbiddenError("customer "+customerID.String(), "complete order "+o.state.TrackingNumber)
	}
	return o.Complete(now)
}

// MarkPaid applies a successful gateway callback. Paying a paid order is a no-op.
func (o *Order) MarkPaid(transactionRef string, now time.Time) error {
	if err := o.requireGateway(PaymentPaid); err != nil {
		return err
	}
	if o.state.PaymentStatus == PaymentPaid {
		return nil
	}
	next, err := o.state.PaymentStatus.TransitionTo(PaymentPaid)
	if err != nil {
		return err
	}
	o.state.PaymentStatus = next
	o.state.PaymentRef = transactionRef
	o.raise(EventPaymentPaid, now)
	return nil
}

// MarkPaymentFailed applies a rejected gateway callback. The order itself is
// never cancelled here.
func (o *Order) MarkPaymentFailed(transactionRef string, now time.Time) error {
	if err := o.requireGateway(PaymentFailed); err != nil {
		return err
	}
	next, err := o.state.PaymentStatus.TransitionTo(PaymentFailed)
	if err != nil {
		return err
	}
	o.state.PaymentStatus = next
	o.state.PaymentRef = transactionRef
	o.raise(EventPaymentFailed, now)
	return nil
}

func (o *Order) requireGateway(target PaymentStatus) error {
	if o.state.PaymentMethod != Gateway {
		return errs.NewInvalidTransitionError("payment",
			o.state.PaymentMethod.String()+" "+o.state.PaymentStatus.String(), target.String())
	}
	return nil
}

// RequestReturn opens a return for some of the order's units.
func (o *Order) RequestReturn(
	customerID kernel.UUID,
	items []ReturnItem,
	reason ReturnReason,
	evidence []string,
	now time.Time,
) error {
	tn := o.state.TrackingNumber
	switch {
	case !o.IsOwnedBy(customerID):
		return NewReturnNotAllowedError(tn, "order belongs to another customer")
	case o.state.Status != Completed:
		return NewReturnNotAllowedError(tn, fmt.Sprintf("order is %s", o.state.Status))
	case o.state.CompletedAt == nil || now.After(o.state.CompletedAt.Add(ReturnWindow)):
		return NewReturnNotAllowedError(tn, "return window has closed")
	case o.state.ReturnStatus != ReturnNone:
		return NewReturnNotAllowedError(tn, fmt.Sprintf("a return is already %s", o.state.ReturnStatus))
	}
	if err := reason.Validate(); err != nil {
		return err
	}
	quantities, err := o.resolveReturnItems(items)
	if err != nil {
		return err
	}
	next, err := o.state.ReturnStatus.TransitionTo(ReturnPending)
	if err != nil {
		return err
	}

	for _, l := range o.state.Lines {
		l.returnQuantity = quantities[l.id]
	}
	requestedAt := now
	o.state.ReturnStatus = next
	o.state.ReturnReason = reason
	o.state.ReturnEvidence = append([]string(nil), evidence...)
	o.state.ReturnRequestedAt = &requestedAt
	o.raise(EventReturnRequested, now)
	return nil
}

func (o *Order) resolveReturnItems(items []ReturnItem) (map[kernel.UUID]int, error) {
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("returnItems")
	}
	byID := make(map[kernel.UUID]*Line, len(o.state.Lines))
	for _, l := range o.state.Lines {
		byID[l.id] = l
	}
	quantities := make(map[kernel.UUID]int, len(items))
	for _, item := range items {
		l, ok := byID[item.LineID]
		if !ok {
			return nil, errs.NewObjectNotFoundError("orderLine", item.LineID)
		}
		if _, dup := quantities[item.LineID]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause("returnItems",
				fmt.Errorf("line %s listed twice", item.LineID))
		}
		if item.Quantity < 1 || item.Quantity > l.quantity {
			return nil, errs.NewValueIsOutOfRangeError("returnQuantity", item.Quantity, 1, l.quantity)
		}
		quantities[item.LineID] = item.Quantity
	}
	return quantities, nil
}

func (o *Order) ApproveReturn(now time.Time) error {
	return o.moveReturn(ReturnApproved, EventReturnApproved, now)
}

func (o *Order) RejectReturn(now time.Time) error {
	return o.moveReturn(ReturnRejected, EventReturnRejected, now)
}

// CompleteReturn finalises an approved return and reports exactly the
// returned quantities for restocking. Order status is left as is.
func (o *Order) CompleteReturn(now time.Time) ([]Restock, error) {
	if err := o.moveReturn(ReturnCompleted, EventReturnCompleted, now); err != nil {
		return nil, err
	}
	var restocks []Restock
	for _, l := range o.state.Lines {
		if l.returnQuantity > 0 {
			restocks = append(restocks, Restock{UnitID: l.unitID, Quantity: l.returnQuantity})
		}
	}
	return restocks, nil
}

// CancelReturn withdraws a pending return. No stock moves.
func (o *Order) CancelReturn(customerID kernel.UUID, now time.Time) error {
	if !o.IsOwnedBy(customerID) {
		return errs.NewForbiddenError("customer "+customerID.String(), "cancel return of "+o.state.TrackingNumber)
	}
	if err := o.moveReturn(ReturnNone, EventReturnCancelled, now); err != nil {
		return err
	}
	for _, l := range o.state.Lines {
		l.returnQuantity = 0
	}
	o.state.ReturnReason = ""
	o.state.ReturnEvidence = nil
	o.state.ReturnRequestedAt = nil
	return nil
}

func (o *Order) moveReturn(target ReturnStatus, event EventType, now time.Time) error {
	next, err := o.state.ReturnStatus.TransitionTo(target)
	if err != nil {
		return err
	}
	o.state.ReturnStatus = next
	o.raise(event, now)
	return nil
}

// PullEvents hands over and forgets the events raised since the last pull.
func (o *Order) PullEvents() []Event {
	events := o.events
	o.events = nil
	return events
}

func (o *Order) transition(target Status) error {
	next, err := o.state.Status.TransitionTo(target)
	if err != nil {
		return err
	}
	o.state.Status = next
	return nil
}

func (o *Order) raise(t EventType, now time.Time) {
	o.events = append(o.events, Event{
		Type:           t,
		OrderID:        o.state.ID,
		TrackingNumber: o.state.TrackingNumber,
		CustomerID:     o.state.CustomerID,
		OrderStatus:    o.state.Status,
		PaymentStatus:  o.state.PaymentStatus,
		ReturnStatus:   o.state.ReturnStatus,
		OccurredAt:     now,
	})
}

func (o *Order) setState(s Snapshot) error {
	var problems []error
	if err := s.ID.Validate(); err != nil {
		problems = append(problems, err)
	}
	if strings.TrimSpace(s.TrackingNumber) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("trackingNumber"))
	}
	if err := s.CustomerID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("customerID", err))
	}
	if err := s.AddressID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("addressID", err))
	}
	if len(s.Lines) == 0 {
		problems = append(problems, errs.NewValueIsRequiredError("lines"))
	}
	problems = append(problems,
		s.PaymentMethod.Validate(),
		s.PaymentStatus.Validate(),
		s.Status.Validate(),
		s.ReturnStatus.Validate(),
		s.ShippingFee.Validate(),
		s.Discount.Validate(),
		s.Final.Validate(),
	)
	if s.Final != s.Subtotal.Add(s.ShippingFee).Sub(s.Discount) {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("final",
			fmt.Errorf("%d != %d + %d - %d", s.Final, s.Subtotal, s.ShippingFee, s.Discount)))
	}
	if s.CreatedAt.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("createdAt"))
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}
	o.state = s
	return nil
}
