package delivery_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var assignedAt = time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)

func newAssignment(t *testing.T) *delivery.Assignment {
	t.Helper()
	a, err := delivery.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), assignedAt)
	require.NoError(t, err)
	return a
}

func TestAssignment_Claim(t *testing.T) {
	shipper := kernel.NewUUID()

	t.Run("should claim created assignment", func(t *testing.T) {
		a := newAssignment(t)

		require.NoError(t, a.Claim(shipper, assignedAt.Add(time.Hour)))

		assert.Equal(t, delivery.Delivering, a.Status())
		assert.True(t, a.ShipperID().IsEqual(shipper))
		require.NotNil(t, a.Snapshot().ReceivedAt)
	})

	t.Run("second claim should report already claimed", func(t *testing.T) {
		a := newAssignment(t)
		require.NoError(t, a.Claim(shipper, assignedAt))

		err := a.Claim(kernel.NewUUID(), assignedAt)

		require.ErrorIs(t, err, delivery.ErrAlreadyClaimed)
		assert.True(t, a.ShipperID().IsEqual(shipper))
	})

	t.Run("claim after delivery should report already delivered", func(t *testing.T) {
		a := newAssignment(t)
		require.NoError(t, a.Claim(shipper, assignedAt))
		require.NoError(t, a.Deliver(shipper, "proofs/x.png", assignedAt))

		require.ErrorIs(t, a.Claim(shipper, assignedAt), delivery.ErrAlreadyDelivered)
	})
}

func TestAssignment_Deliver(t *testing.T) {
	shipper := kernel.NewUUID()

	t.Run("should require the claiming shipper", func(t *testing.T) {
		a := newAssignment(t)
		require.NoError(t, a.Claim(shipper, assignedAt))

		require.ErrorIs(t, a.CanBeDeliveredBy(kernel.NewUUID()), errs.ErrForbidden)
		require.ErrorIs(t, a.Deliver(kernel.NewUUID(), "proofs/x.png", assignedAt), errs.ErrForbidden)
		assert.Equal(t, delivery.Delivering, a.Status())
	})

	t.Run("should require a proof reference", func(t *testing.T) {
		a := newAssignment(t)
		require.NoError(t, a.Claim(shipper, assignedAt))

		require.ErrorIs(t, a.Deliver(shipper, "", assignedAt), delivery.ErrInvalidProofImage)
	})

	t.Run("should not deliver unclaimed assignment", func(t *testing.T) {
		a := newAssignment(t)

		require.ErrorIs(t, a.CanBeDeliveredBy(shipper), errs.ErrInvalidTransition)
		require.ErrorIs(t, a.Deliver(shipper, "proofs/x.png", assignedAt), errs.ErrInvalidTransition)
	})

	t.Run("should record proof and time", func(t *testing.T) {
		a := newAssignment(t)
		require.NoError(t, a.Claim(shipper, assignedAt))

		require.NoError(t, a.Deliver(shipper, "proofs/x.png", assignedAt.Add(2*time.Hour)))

		assert.Equal(t, delivery.Delivered, a.Status())
		assert.Equal(t, "proofs/x.png", a.ProofImage())
		require.NotNil(t, a.Snapshot().DeliveredAt)
	})
}

func TestAssignment_Cancel(t *testing.T) {
	shipper := kernel.NewUUID()

	t.Run("should close an unclaimed assignment", func(t *testing.T) {
		a := newAssignment(t)

		require.NoError(t, a.Cancel())

		assert.Equal(t, delivery.Cancelled, a.Status())
		require.ErrorIs(t, a.Claim(shipper, assignedAt), errs.ErrInvalidTransition)
	})

	t.Run("should close a claimed assignment and refuse the proof", func(t *testing.T) {
		a := newAssignment(t)
		require.NoError(t, a.Claim(shipper, assignedAt))

		require.NoError(t, a.Cancel())

		assert.Equal(t, delivery.Cancelled, a.Status())
		require.ErrorIs(t, a.CanBeDeliveredBy(shipper), errs.ErrInvalidTransition)
		require.ErrorIs(t, a.Deliver(shipper, "proofs/x.png", assignedAt), errs.ErrInvalidTransition)
	})

	t.Run("should keep a delivered assignment", func(t *testing.T) {
		a := newAssignment(t)
		require.NoError(t, a.Claim(shipper, assignedAt))
		require.NoError(t, a.Deliver(shipper, "proofs/x.png", assignedAt))

		require.ErrorIs(t, a.Cancel(), errs.ErrInvalidTransition)
		assert.Equal(t, delivery.Delivered, a.Status())
	})

	t.Run("cancelled assignment restores without a shipper", func(t *testing.T) {
		_, err := delivery.RestoreAssignment(delivery.Snapshot{
			ID:         kernel.NewUUID(),
			OrderID:    kernel.NewUUID(),
			Status:     delivery.Cancelled,
			AssignedAt: assignedAt,
		})

		require.NoError(t, err)
	})
}

func TestRestoreAssignment(t *testing.T) {
	_, err := delivery.RestoreAssignment(delivery.Snapshot{
		ID:         kernel.NewUUID(),
		OrderID:    kernel.NewUUID(),
		Status:     delivery.Delivered,
		AssignedAt: assignedAt,
	})

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.White)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNewProofImage(t *testing.T) {
	t.Run("should accept png", func(t *testing.T) {
		p, err := delivery.NewProofImage(pngBytes(t))

		require.NoError(t, err)
		assert.Equal(t, "image/png", p.ContentType())
		assert.Equal(t, ".png", p.Extension())
	})

	t.Run("should reject text", func(t *testing.T) {
		_, err := delivery.NewProofImage([]byte("definitely not a photo"))
		require.ErrorIs(t, err, delivery.ErrInvalidProofImage)
	})

	t.Run("should reject empty upload", func(t *testing.T) {
		_, err := delivery.NewProofImage(nil)
		require.ErrorIs(t, err, delivery.ErrInvalidProofImage)
	})
}
