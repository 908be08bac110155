// Package cache adaptadores de caché para las vistas públicas de vacantes.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/jobboard-api/internal/application/joboffer"
	"github.com/redis/go-redis/v9"
)

var (
	_ joboffer.Cache = (*RedisCache)(nil)
	_ joboffer.Cache = NoopCache{}
)

// NewRedisClient crea el cliente desde una URL redis:// (o rediss://) y verifica la conexión.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opt.Addr, err)
	}
	return client, nil
}

// RedisCache implementa joboffer.Cache sobre Redis.
type RedisCache struct {
	client redis.UniversalClient
}

// NewRedisCache construye la caché con el cliente dado.
func NewRedisCache(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client}
}

// Get devuelve ok=false si la clave no existe.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, errors.New("key cannot be empty")
	}
	b, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return b, true, nil
}

// Set guarda el valor con expiración ttl (0 = sin expiración).
func (c *RedisCache) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	if err := c.client.Set(ctx, key, val, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Add guarda el valor solo si la clave no existe (SET NX). Devuelve false si ya existía.
func (c *RedisCache) Add(ctx context.Context, key string, val []byte, ttl time.Duration) (bool, error) {
	if key == "" {
		return false, errors.New("key cannot be empty")
	}
	ok, err := c.client.SetNX(ctx, key, val, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx: %w", err)
	}
	return ok, nil
}

// Health verifica la conexión (usado por /health).
func (c *RedisCache) Health(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// NoopCache caché deshabilitada: nunca encuentra nada y no guarda nada.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) ([]byte, bool, error)                { return nil, false, nil }
func (NoopCache) Add(context.Context, string, []byte, time.Duration) (bool, error) { return false, nil }
func (NoopCache) Set(context.Context, string, []byte, time.Duration) error         { return nil }
