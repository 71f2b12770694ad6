package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// ReturnStatus is the state of the return attached to an order.
// ReturnNone, the zero value, means no return was ever requested or the
// customer withdrew it.
type ReturnStatus int

const (
	ReturnNone ReturnStatus = iota
	ReturnPending
	ReturnApproved
	ReturnRejected
	ReturnCompleted
)

var returnStatusNames = map[ReturnStatus]string{
	ReturnNone:      "",
	ReturnPending:   "PENDING",
	ReturnApproved:  "APPROVED",
	ReturnRejected:  "REJECTED",
	ReturnCompleted: "COMPLETED",
}

var returnTransitions = map[ReturnStatus][]ReturnStatus{
	ReturnNone:     {ReturnPending},
	ReturnPending:  {ReturnApproved, ReturnRejected, ReturnNone},
	ReturnApproved: {ReturnCompleted},
}

func (r ReturnStatus) String() string {
	if r == ReturnNone {
		return "NONE"
	}
	if name, ok := returnStatusNames[r]; ok {
		return name
	}
	return "UNKNOWN"
}

func (r ReturnStatus) Validate() error {
	if _, ok := returnStatusNames[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("returnStatus", fmt.Errorf("%d is not a valid return status", r))
	}
	return nil
}

func (r ReturnStatus) TransitionTo(target ReturnStatus) (ReturnStatus, error) {
	for _, next := range returnTransitions[r] {
		if next == target {
			return target, nil
		}
	}
	return r, errs.NewInvalidTransitionError("return", r.String(), target.String())
}

// Persisted returns the stored form: empty for ReturnNone.
func (r ReturnStatus) Persisted() string {
	return returnStatusNames[r]
}

// ParseReturnStatus maps the stored form back; empty and NONE both mean ReturnNone.
func ParseReturnStatus(name string) (ReturnStatus, error) {
	if name == "" || name == "NONE" {
		return ReturnNone, nil
	}
	for r, n := range returnStatusNames {
		if n == name {
			return r, nil
		}
	}
	return ReturnNone, errs.NewValueIsInvalidErrorWithCause("returnStatus", fmt.Errorf("%q is not a valid return status", name))
}

type ReturnReason string

const (
	ReasonDamaged        ReturnReason = "DAMAGED"
	ReasonWrongItem      ReturnReason = "WRONG_ITEM"
	ReasonNotAsDescribed ReturnReason = "NOT_AS_DESCRIBED"
	ReasonSizeIssue      ReturnReason = "SIZE_ISSUE"
	ReasonOther          ReturnReason = "OTHER"
)

func (r ReturnReason) Validate() error {
	switch r {
	case ReasonDamaged, ReasonWrongItem, ReasonNotAsDescribed, ReasonSizeIssue, ReasonOther:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("returnReason", fmt.Errorf("%q is not a valid return reason", string(r)))
}
