package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodegas-api/internal/application/dto"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestRedisWarehouseCache_SetGet(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()
	ctx := context.Background()
	c := NewRedisWarehouseCache(client, time.Minute)
	client.Del(ctx, warehousesKey(990001))

	_, ok, err := c.Get(ctx, 990001)
	require.NoError(t, err)
	assert.False(t, ok)

	capacity := decimal.NewFromInt(100)
	in := []dto.WarehouseResponse{{ID: 1, Name: "Central", Capacity: &capacity}, {ID: 2, Name: "Norte"}}
	require.NoError(t, c.Set(ctx, 990001, in))

	got, ok, err := c.Get(ctx, 990001)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.True(t, got[0].Capacity.Equal(capacity))
	assert.Nil(t, got[1].Capacity)

	ttl := client.TTL(ctx, warehousesKey(990001)).Val()
	assert.Greater(t, ttl, time.Duration(0))
	client.Del(ctx, warehousesKey(990001))
}

func TestWarehousesKey(t *testing.T) {
	assert.Equal(t, "warehouses:employee:12", warehousesKey(12))
}
