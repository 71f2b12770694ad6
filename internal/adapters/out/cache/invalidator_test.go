package cache_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/cache"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

func TestOrderInvalidator_DeletesEachTrackingNumberOnce(t *testing.T) {
	c := new(MockCache)
	c.On("Delete", mock.Anything, []string{"order:ORD1", "order:ORD2"}).Return(nil)

	err := cache.NewOrderInvalidator(c).Publish(context.Background(), []order.Event{
		{Type: order.EventPlaced, TrackingNumber: "ORD1"},
		{Type: order.EventConfirmed, TrackingNumber: "ORD1"},
		{Type: order.EventCancelled, TrackingNumber: "ORD2"},
	})

	require.NoError(t, err)
	c.AssertExpectations(t)
}
