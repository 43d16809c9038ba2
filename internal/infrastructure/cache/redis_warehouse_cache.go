package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/bodegas-api/internal/application/dto"
	"github.com/jhoicas/bodegas-api/internal/application/usecase"
)

var _ usecase.WarehouseCache = (*RedisWarehouseCache)(nil)

// RedisWarehouseCache guarda la lista de bodegas de cada empleado como JSON con TTL.
type RedisWarehouseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisWarehouseCache construye la caché sobre un cliente existente.
func NewRedisWarehouseCache(client *redis.Client, ttl time.Duration) *RedisWarehouseCache {
	return &RedisWarehouseCache{client: client, ttl: ttl}
}

func warehousesKey(employeeID int64) string {
	return fmt.Sprintf("warehouses:employee:%d", employeeID)
}

// Get devuelve ok=false si la clave no existe.
func (c *RedisWarehouseCache) Get(ctx context.Context, employeeID int64) ([]dto.WarehouseResponse, bool, error) {
	raw, err := c.client.Get(ctx, warehousesKey(employeeID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	var list []dto.WarehouseResponse
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, false, fmt.Errorf("decode cached warehouses: %w", err)
	}
	return list, true, nil
}

// Set guarda la lista con el TTL configurado.
func (c *RedisWarehouseCache) Set(ctx context.Context, employeeID int64, list []dto.WarehouseResponse) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode warehouses: %w", err)
	}
	if err := c.client.Set(ctx, warehousesKey(employeeID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
