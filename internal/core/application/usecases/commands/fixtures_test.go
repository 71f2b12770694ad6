package commands_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 6, 15, 8, 0, 0, 0, time.UTC)

type orderFixture struct {
	order      *order.Order
	customerID kernel.UUID
	unitA      kernel.UUID
	unitB      kernel.UUID
}

// newOrderFixture places an order of 2 x 100000 (unit A) + 1 x 50000 (unit B)
// with a 30000 shipping fee.
func newOrderFixture(t *testing.T, method order.PaymentMethod) orderFixture {
	t.Helper()
	f := orderFixture{customerID: kernel.NewUUID(), unitA: kernel.NewUUID(), unitB: kernel.NewUUID()}

	a, err := order.NewLine(kernel.NewUUID(), f.unitA, 2, 100000)
	require.NoError(t, err)
	b, err := order.NewLine(kernel.NewUUID(), f.unitB, 1, 50000)
	require.NoError(t, err)

	f.order, err = order.NewOrder(order.Draft{
		ID:             kernel.NewUUID(),
		TrackingNumber: "ORD260615TEST01",
		CustomerID:     f.customerID,
		AddressID:      kernel.NewUUID(),
		ShippingFee:    30000,
		PaymentMethod:  method,
		CreatedAt:      now.Add(-time.Hour),
		Lines:          []*order.Line{a, b},
	})
	require.NoError(t, err)
	f.order.PullEvents()
	return f
}

func (f orderFixture) confirmed(t *testing.T) orderFixture {
	t.Helper()
	require.NoError(t, f.order.Confirm(now))
	return f
}

func (f orderFixture) delivering(t *testing.T) orderFixture {
	t.Helper()
	f.confirmed(t)
	require.NoError(t, f.order.StartDelivery(now))
	return f
}

func (f orderFixture) completed(t *testing.T) orderFixture {
	t.Helper()
	f.delivering(t)
	require.NoError(t, f.order.Complete(now))
	return f
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
