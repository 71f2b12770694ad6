package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedOrder(t *testing.T, f fixture, completedAt time.Time) *order.Order {
	t.Helper()
	o := mustOrder(t, f, order.CashOnDelivery)
	require.NoError(t, o.Confirm(completedAt))
	require.NoError(t, o.StartDelivery(completedAt))
	require.NoError(t, o.Complete(completedAt))
	o.PullEvents()
	return o
}

func TestOrder_RequestReturn(t *testing.T) {
	completedAt := placedAt.Add(48 * time.Hour)

	t.Run("should open a pending return", func(t *testing.T) {
		f := newFixture(t)
		o := completedOrder(t, f, completedAt)

		err := o.RequestReturn(f.customer,
			[]order.ReturnItem{{LineID: f.lineA.ID(), Quantity: 1}},
			order.ReasonDamaged, []string{"returns/a.jpg"}, completedAt.Add(24*time.Hour))

		require.NoError(t, err)
		assert.Equal(t, order.ReturnPending, o.ReturnStatus())
		assert.Equal(t, order.Completed, o.Status())
		assert.Equal(t, 1, f.lineA.ReturnQuantity())
		assert.Equal(t, 0, f.lineB.ReturnQuantity())
		s := o.Snapshot()
		assert.Equal(t, order.ReasonDamaged, s.ReturnReason)
		assert.Equal(t, []string{"returns/a.jpg"}, s.ReturnEvidence)
	})

	t.Run("should accept the last instant of the window", func(t *testing.T) {
		f := newFixture(t)
		o := completedOrder(t, f, completedAt)

		err := o.RequestReturn(f.customer,
			[]order.ReturnItem{{LineID: f.lineB.ID(), Quantity: 1}},
			order.ReasonOther, nil, completedAt.Add(order.ReturnWindow))

		require.NoError(t, err)
	})

	t.Run("should reject after the window", func(t *testing.T) {
		f := newFixture(t)
		o := completedOrder(t, f, completedAt)

		err := o.RequestReturn(f.customer,
			[]order.ReturnItem{{LineID: f.lineB.ID(), Quantity: 1}},
			order.ReasonOther, nil, completedAt.Add(order.ReturnWindow+time.Second))

		require.ErrorIs(t, err, order.ErrReturnNotAllowed)
		assert.Equal(t, order.ReturnNone, o.ReturnStatus())
	})

	t.Run("should reject orders that are not completed", func(t *testing.T) {
		f := newFixture(t)
		o := mustOrder(t, f, order.CashOnDelivery)

		err := o.RequestReturn(f.customer,
			[]order.ReturnItem{{LineID: f.lineB.ID(), Quantity: 1}},
			order.ReasonOther, nil, completedAt)

		require.ErrorIs(t, err, order.ErrReturnNotAllowed)
	})

	t.Run("should reject other customers", func(t *testing.T) {
		f := newFixture(t)
		o := completedOrder(t, f, completedAt)

		err := o.RequestReturn(kernel.NewUUID(),
			[]order.ReturnItem{{LineID: f.lineB.ID(), Quantity: 1}},
			order.ReasonOther, nil, completedAt)

		require.ErrorIs(t, err, order.ErrReturnNotAllowed)
	})

	t.Run("should reject a second request", func(t *testing.T) {
		f := newFixture(t)
		o := completedOrder(t, f, completedAt)
		items := []order.ReturnItem{{LineID: f.lineB.ID(), Quantity: 1}}
		require.NoError(t, o.RequestReturn(f.customer, items, order.ReasonOther, nil, completedAt))
		require.NoError(t, o.RejectReturn(completedAt))

		err := o.RequestReturn(f.customer, items, order.ReasonOther, nil, completedAt)

		require.ErrorIs(t, err, order.ErrReturnNotAllowed)
		assert.Equal(t, order.ReturnRejected, o.ReturnStatus())
	})

	t.Run("should validate quantities and lines", func(t *testing.T) {
		f := newFixture(t)
		o := completedOrder(t, f, completedAt)

		err := o.RequestReturn(f.customer,
			[]order.ReturnItem{{LineID: f.lineA.ID(), Quantity: 3}},
			order.ReasonOther, nil, completedAt)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		err = o.RequestReturn(f.customer,
			[]order.ReturnItem{{LineID: kernel.NewUUID(), Quantity: 1}},
			order.ReasonOther, nil, completedAt)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)

		err = o.RequestReturn(f.customer, nil, order.ReasonOther, nil, completedAt)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		err = o.RequestReturn(f.customer,
			[]order.ReturnItem{{LineID: f.lineA.ID(), Quantity: 1}},
			order.ReturnReason("CHANGED_MIND"), nil, completedAt)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		assert.Equal(t, order.ReturnNone, o.ReturnStatus())
		assert.Equal(t, 0, f.lineA.ReturnQuantity())
	})
}

func TestOrder_ReturnDecisions(t *testing.T) {
	completedAt := placedAt.Add(48 * time.Hour)

	t.Run("approve then complete restocks only returned units", func(t *testing.T) {
		f := newFixture(t)
		o := completedOrder(t, f, completedAt)
		require.NoError(t, o.RequestReturn(f.customer,
			[]order.ReturnItem{{LineID: f.lineA.ID(), Quantity: 1}},
			order.ReasonSizeIssue, nil, completedAt))

		require.NoError(t, o.ApproveReturn(completedAt))
		restocks, err := o.CompleteReturn(completedAt)

		require.NoError(t, err)
		assert.Equal(t, []order.Restock{{UnitID: f.unitA, Quantity: 1}}, restocks)
		assert.Equal(t, order.ReturnCompleted, o.ReturnStatus())
		assert.Equal(t, order.Completed, o.Status())
	})

	t.Run("cannot complete a pending return", func(t *testing.T) {
		f := newFixture(t)
		o := completedOrder(t, f, completedAt)
		require.NoError(t, o.RequestReturn(f.customer,
			[]order.ReturnItem{{LineID: f.lineA.ID(), Quantity: 1}},
			order.ReasonSizeIssue, nil, completedAt))

		_, err := o.CompleteReturn(completedAt)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.ReturnPending, o.ReturnStatus())
	})

	t.Run("cannot approve without a request", func(t *testing.T) {
		o := completedOrder(t, newFixture(t), completedAt)

		require.ErrorIs(t, o.ApproveReturn(completedAt), errs.ErrInvalidTransition)
	})

	t.Run("customer cancel clears the request", func(t *testing.T) {
		f := newFixture(t)
		o := completedOrder(t, f, completedAt)
		require.NoError(t, o.RequestReturn(f.customer,
			[]order.ReturnItem{{LineID: f.lineA.ID(), Quantity: 2}},
			order.ReasonWrongItem, []string{"e.png"}, completedAt))

		require.NoError(t, o.CancelReturn(f.customer, completedAt))

		assert.Equal(t, order.ReturnNone, o.ReturnStatus())
		assert.Equal(t, 0, f.lineA.ReturnQuantity())
		s := o.Snapshot()
		assert.Empty(t, s.ReturnEvidence)
		assert.Nil(t, s.ReturnRequestedAt)
	})

	t.Run("cannot cancel an approved return", func(t *testing.T) {
		f := newFixture(t)
		o := completedOrder(t, f, completedAt)
		require.NoError(t, o.RequestReturn(f.customer,
			[]order.ReturnItem{{LineID: f.lineA.ID(), Quantity: 2}},
			order.ReasonWrongItem, nil, completedAt))
		require.NoError(t, o.ApproveReturn(completedAt))

		require.ErrorIs(t, o.CancelReturn(f.customer, completedAt), errs.ErrInvalidTransition)
	})
}
