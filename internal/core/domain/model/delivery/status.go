package delivery

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

type Status int

const (
	Unknown Status = iota
	Created
	Delivering
	Delivered
	Cancelled
)

var statusNames = map[Status]string{
	Created:    "CREATED",
	Delivering: "DELIVERING",
	Delivered:  "DELIVERED",
	Cancelled:  "CANCELLED",
}

var statusTransitions = map[Status][]Status{
	Created:    {Delivering, Cancelled},
	Delivering: {Delivered, Cancelled},
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("deliveryStatus", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) TransitionTo(target Status) (Status, error) {
	for _, next := range statusTransitions[s] {
		if next == target {
			return target, nil
		}
	}
	return s, errs.NewInvalidTransitionError("delivery", s.String(), target.String())
}

func ParseStatus(name string) (Status, error) {
	for s, n := range statusNames {
		if n == name {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("deliveryStatus", fmt.Errorf("%q is not a valid status", name))
}
