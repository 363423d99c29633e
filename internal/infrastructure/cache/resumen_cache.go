package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/comercio-api/internal/application/dto"
	"github.com/jhoicas/comercio-api/internal/application/inventory"
)

var (
	_ inventory.ResumenCache = (*RedisResumenCache)(nil)
	_ inventory.ResumenCache = (*NoopResumenCache)(nil)
)

// RedisResumenCache cache Redis de corta vida para el resumen de movimientos.
// Los valores se serializan como JSON; un fallo de Redis en lectura se reporta
// como miss con error para que el caso de uso decida (y normalmente siga a BD).
type RedisResumenCache struct {
	client *redis.Client
}

// NewRedisResumenCache construye el cache y verifica conectividad.
func NewRedisResumenCache(ctx context.Context, addr, password string, db int) (*RedisResumenCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisResumenCache{client: client}, nil
}

func (c *RedisResumenCache) GetResumen(ctx context.Context, key string) ([]dto.ResumenMovimientoDTO, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	var value []dto.ResumenMovimientoDTO
	if err := json.Unmarshal(raw, &value); err != nil {
		// entrada corrupta: tratarla como miss y dejar que se reescriba
		return nil, false, nil
	}
	return value, true, nil
}

func (c *RedisResumenCache) SetResumen(ctx context.Context, key string, value []dto.ResumenMovimientoDTO, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal resumen: %w", err)
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Close libera la conexión con Redis.
func (c *RedisResumenCache) Close() error {
	return c.client.Close()
}

// NoopResumenCache implementación nula: siempre miss, nunca guarda.
// Se usa cuando Redis no está configurado.
type NoopResumenCache struct{}

func NewNoopResumenCache() *NoopResumenCache {
	return &NoopResumenCache{}
}

func (NoopResumenCache) GetResumen(context.Context, string) ([]dto.ResumenMovimientoDTO, bool, error) {
	return nil, false, nil
}

func (NoopResumenCache) SetResumen(context.Context, string, []dto.ResumenMovimientoDTO, time.Duration) error {
	return nil
}
