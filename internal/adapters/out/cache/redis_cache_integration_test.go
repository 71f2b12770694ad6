package cache_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/cache"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type RedisCacheIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	cache     *cache.RedisCache
}

func (suite *RedisCacheIntegrationTestSuite) SetupSuite() {
	if testing.Short() {
		suite.T().Skip("skipping redis integration suite in short mode")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	endpoint, err := container.Endpoint(ctx, "")
	suite.Require().NoError(err)

	suite.cache = cache.NewRedisCache(endpoint, "", 0, "fulfillment-test")
	suite.Require().NoError(suite.cache.Ping(ctx))
}

func (suite *RedisCacheIntegrationTestSuite) TearDownSuite() {
	if suite.cache != nil {
		suite.Require().NoError(suite.cache.Close())
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *RedisCacheIntegrationTestSuite) TestSetGetDelete() {
	ctx := context.Background()
	key := ports.OrderCacheKey("ORD260615ABC123")

	_, err := suite.cache.Get(ctx, key)
	suite.ErrorIs(err, ports.ErrCacheMiss)

	suite.Require().NoError(suite.cache.Set(ctx, key, `{"tracking_number":"ORD260615ABC123"}`, time.Minute))
	value, err := suite.cache.Get(ctx, key)
	suite.Require().NoError(err)
	suite.JSONEq(`{"tracking_number":"ORD260615ABC123"}`, value)

	suite.Require().NoError(suite.cache.Delete(ctx, key, "order:unknown"))
	_, err = suite.cache.Get(ctx, key)
	suite.ErrorIs(err, ports.ErrCacheMiss)
}

func (suite *RedisCacheIntegrationTestSuite) TestEntriesExpire() {
	ctx := context.Background()
	suite.Require().NoError(suite.cache.Set(ctx, "short", "v", 200*time.Millisecond))

	suite.Eventually(func() bool {
		_, err := suite.cache.Get(ctx, "short")
		return err == ports.ErrCacheMiss
	}, 3*time.Second, 100*time.Millisecond)
}

func TestRedisCacheIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RedisCacheIntegrationTestSuite))
}
