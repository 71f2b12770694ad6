package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrClaimDeliveryCommandIsNotConstructed = errors.New(
	"ClaimDeliveryCommand must be created via NewClaimDeliveryCommand constructor",
)

type ClaimDeliveryCommand struct { //nolint:recvcheck //using for validation
	shipperID      kernel.UUID
	trackingNumber string
	now            time.Time

	guard guard.ConstructorGuard
}

func NewClaimDeliveryCommand(shipperID kernel.UUID, trackingNumber string, now time.Time) (ClaimDeliveryCommand, error) {
	tn, tnErr := normalizeTrackingNumber(trackingNumber)
	if err := errors.Join(requireID("shipperID", shipperID), tnErr); err != nil {
		return ClaimDeliveryCommand{}, err
	}
	return ClaimDeliveryCommand{
		shipperID:      shipperID,
		trackingNumber: tn,
		now:            now,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c ClaimDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrClaimDeliveryCommandIsNotConstructed)
}

func (c ClaimDeliveryCommand) ShipperID() kernel.UUID { return c.shipperID }

func (c ClaimDeliveryCommand) TrackingNumber() string { return c.trackingNumber }

func (c ClaimDeliveryCommand) Now() time.Time { return c.now }
