package delivery

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

type Snapshot struct {
	ID          kernel.UUID
	OrderID     kernel.UUID
	Status      Status
	ShipperID   *kernel.UUID
	AssignedAt  time.Time
	ReceivedAt  *time.Time
	DeliveredAt *time.Time
	ProofImage  string
}

// Assignment is 1:1 with a confirmed order.
type Assignment struct {
	state Snapshot
	guard guard.ConstructorGuard
}

func NewAssignment(id, orderID kernel.UUID, now time.Time) (*Assignment, error) {
	return RestoreAssignment(Snapshot{ID: id, OrderID: orderID, Status: Created, AssignedAt: now})
}

func RestoreAssignment(s Snapshot) (*Assignment, error) {
	var problems []error
	if err := s.ID.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := s.OrderID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("orderID", err))
	}
	if err := s.Status.Validate(); err != nil {
		problems = append(problems, err)
	}
	if s.AssignedAt.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("assignedAt"))
	}
	if (s.Status == Delivering || s.Status == Delivered) && s.ShipperID == nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("shipperID",
			fmt.Errorf("%s assignment has no shipper", s.Status)))
	}
	if s.Status == Delivered && s.ProofImage == "" {
		problems = append(problems, errs.NewValueIsRequiredError("proofImage"))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}
	return &Assignment{state: s, guard: guard.NewConstructorGuard()}, nil
}

func (a *Assignment) Validate() error {
	if a == nil {
		return ErrAssignmentIsNotConstructed
	}
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}

func (a *Assignment) Snapshot() Snapshot { return a.state }

func (a *Assignment) ID() kernel.UUID      { return a.state.ID }
func (a *Assignment) OrderID() kernel.UUID { return a.state.OrderID }
func (a *Assignment) Status() Status       { return a.state.Status }

func (a *Assignment) ShipperID() *kernel.UUID {
	if a.state.ShipperID == nil {
		return nil
	}
	id := *a.state.ShipperID
	return &id
}

func (a *Assignment) ProofImage() string { return a.state.ProofImage }

// Claim hands the parcel to a shipper.
func (a *Assignment) Claim(shipperID kernel.UUID, now time.Time) error {
	if err := shipperID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shipperID", err)
	}
	switch a.state.Status {
	case Delivering:
		return ErrAlreadyClaimed
	case Delivered:
		return ErrAlreadyDelivered
	}
	next, err := a.state.Status.TransitionTo(Delivering)
	if err != nil {
		return err
	}
	receivedAt := now
	a.state.Status = next
	a.state.ShipperID = &shipperID
	a.state.ReceivedAt = &receivedAt
	return nil
}

// Deliver records the stored proof reference. Only the claiming shipper may do it.
func (a *Assignment) Deliver(shipperID kernel.UUID, proofRef string, now time.Time) error {
	if a.state.Status == Delivered {
		return ErrAlreadyDelivered
	}
	if a.state.ShipperID != nil && !a.state.ShipperID.IsEqual(shipperID) {
		return errs.NewForbiddenError("shipper "+shipperID.String(), "deliver order "+a.state.OrderID.String())
	}
	if proofRef == "" {
		return ErrInvalidProofImage
	}
	next, err := a.state.Status.TransitionTo(Delivered)
	if err != nil {
		return err
	}
	deliveredAt := now
	a.state.Status = next
	a.state.ProofImage = proofRef
	a.state.DeliveredAt = &deliveredAt
	return nil
}

// Cancel closes an assignment whose order was cancelled before the parcel
// was handed over.
func (a *Assignment) Cancel() error {
	next, err := a.state.Status.TransitionTo(Cancelled)
	if err != nil {
		return err
	}
	a.state.Status = next
	return nil
}

// CanBeDeliveredBy is the pre-upload check; it avoids storing an image that
// Deliver would refuse.
func (a *Assignment) CanBeDeliveredBy(shipperID kernel.UUID) error {
	switch {
	case a.state.Status == Delivered:
		return ErrAlreadyDelivered
	case a.state.Status != Delivering:
		return errs.NewInvalidTransitionError("delivery", a.state.Status.String(), Delivered.String())
	case !a.state.ShipperID.IsEqual(shipperID):
		return errs.NewForbiddenError("shipper "+shipperID.String(), "deliver order "+a.state.OrderID.String())
	}
	return nil
}
