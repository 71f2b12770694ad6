package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the order lifecycle state.
type Status int

const (
	// Unknown catches uninitialised values.
	Unknown Status = iota
	Pending
	Confirmed
	Delivering
	Completed
	Cancelled
)

var statusNames = map[Status]string{
	Pending:    "PENDING",
	Confirmed:  "CONFIRMED",
	Delivering: "DELIVERING",
	Completed:  "COMPLETED",
	Cancelled:  "CANCELLED",
}

// statusTransitions lists every allowed edge. COMPLETED and CANCELLED are terminal.
var statusTransitions = map[Status][]Status{
	Pending:    {Confirmed, Cancelled},
	Confirmed:  {Delivering, Cancelled},
	Delivering: {Completed, Cancelled},
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range statusTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo returns target when the edge s -> target exists.
func (s Status) TransitionTo(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return s, errs.NewInvalidTransitionError("order", s.String(), target.String())
	}
	return target, nil
}

func ParseStatus(name string) (Status, error) {
	for s, n := range statusNames {
		if n == name {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", name))
}
