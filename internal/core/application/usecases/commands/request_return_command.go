package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRequestReturnCommandIsNotConstructed = errors.New(
	"RequestReturnCommand must be created via NewRequestReturnCommand constructor",
)

// MaxReturnEvidence bounds the number of evidence images on a request.
const MaxReturnEvidence = 5

// RequestReturnCommand opens a return for part or all of a completed order.
//
// Example:
//
//	cmd, err := NewRequestReturnCommand(customerID, "ORD260301AB12CD",
//	    []order.ReturnItem{{LineID: lineID, Quantity: 1}},
//	    order.ReasonSizeIssue, []string{"returns/ORD260301AB12CD/1.jpg"}, time.Now())
type RequestReturnCommand struct { //nolint:recvcheck //using for validation
	customerID     kernel.UUID
	trackingNumber string
	items          []order.ReturnItem
	reason         order.ReturnReason
	evidence       []string
	now            time.Time

	guard guard.ConstructorGuard
}

func NewRequestReturnCommand(
	customerID kernel.UUID,
	trackingNumber string,
	items []order.ReturnItem,
	reason order.ReturnReason,
	evidence []string,
	now time.Time,
) (RequestReturnCommand, error) {
	tn, tnErr := normalizeTrackingNumber(trackingNumber)
	var itemsErr, evidenceErr error
	if len(items) == 0 {
		itemsErr = errs.NewValueIsRequiredError("items")
	}
	if len(evidence) > MaxReturnEvidence {
		evidenceErr = errs.NewValueIsOutOfRangeError("evidence", len(evidence), 0, MaxReturnEvidence)
	}
	if err := errors.Join(requireID("customerID", customerID), tnErr, itemsErr, reason.Validate(), evidenceErr); err != nil {
		return RequestReturnCommand{}, err
	}

	return RequestReturnCommand{
		customerID:     customerID,
		trackingNumber: tn,
		items:          append([]order.ReturnItem(nil), items...),
		reason:         reason,
		evidence:       append([]string(nil), evidence...),
		now:            now,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c RequestReturnCommand) Validate() error {
	return c.guard.Validate(ErrRequestReturnCommandIsNotConstructed)
}

func (c RequestReturnCommand) CustomerID() kernel.UUID { return c.customerID }

func (c RequestReturnCommand) TrackingNumber() string { return c.trackingNumber }

func (c RequestReturnCommand) Items() []order.ReturnItem {
	return append([]order.ReturnItem(nil), c.items...)
}

func (c RequestReturnCommand) Reason() order.ReturnReason { return c.reason }

func (c RequestReturnCommand) Evidence() []string { return append([]string(nil), c.evidence...) }

func (c RequestReturnCommand) Now() time.Time { return c.now }
