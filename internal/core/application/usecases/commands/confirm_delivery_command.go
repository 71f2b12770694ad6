package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrConfirmDeliveryCommandIsNotConstructed = errors.New(
	"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor",
)

// ConfirmDeliveryCommand carries the shipper's proof-of-delivery photo. The
// constructor decodes the image, so an unreadable upload never reaches a
// transaction.
type ConfirmDeliveryCommand struct { //nolint:recvcheck //using for validation
	shipperID      kernel.UUID
	trackingNumber string
	proof          delivery.ProofImage
	now            time.Time

	guard guard.ConstructorGuard
}

func NewConfirmDeliveryCommand(
	shipperID kernel.UUID,
	trackingNumber string,
	image []byte,
	now time.Time,
) (ConfirmDeliveryCommand, error) {
	tn, tnErr := normalizeTrackingNumber(trackingNumber)
	proof, proofErr := delivery.NewProofImage(image)
	if err := errors.Join(requireID("shipperID", shipperID), tnErr, proofErr); err != nil {
		return ConfirmDeliveryCommand{}, err
	}
	return ConfirmDeliveryCommand{
		shipperID:      shipperID,
		trackingNumber: tn,
		proof:          proof,
		now:            now,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}

func (c ConfirmDeliveryCommand) ShipperID() kernel.UUID { return c.shipperID }

func (c ConfirmDeliveryCommand) TrackingNumber() string { return c.trackingNumber }

func (c ConfirmDeliveryCommand) Proof() delivery.ProofImage { return c.proof }

func (c ConfirmDeliveryCommand) Now() time.Time { return c.now }
