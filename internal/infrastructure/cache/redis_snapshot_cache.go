// Package cache implementa el caché de snapshots del dashboard y del reporte sobre Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/stock-ledger/internal/application/analytics"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/pkg/config"
)

var (
	_ analytics.SnapshotCache    = (*RedisSnapshotCache)(nil)
	_ inventory.CacheInvalidator = (*RedisSnapshotCache)(nil)
)

// RedisSnapshotCache guarda snapshots bajo un contador de generación. Invalidate lo
// incrementa: las entradas viejas dejan de leerse y expiran solas por TTL.
type RedisSnapshotCache struct {
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisSnapshotCache conecta con Redis y verifica la conexión.
func NewRedisSnapshotCache(ctx context.Context, cfg config.RedisConfig, prefix string) (*RedisSnapshotCache, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisSnapshotCacheWithClient(rdb, prefix, cfg.TTL()), nil
}

// NewRedisSnapshotCacheWithClient construye el caché sobre un cliente ya creado.
func NewRedisSnapshotCacheWithClient(rdb *goredis.Client, prefix string, ttl time.Duration) *RedisSnapshotCache {
	if prefix == "" {
		prefix = "stock-ledger"
	}
	return &RedisSnapshotCache{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (c *RedisSnapshotCache) genKey() string { return c.prefix + ":snapshot:gen" }

func (c *RedisSnapshotCache) generation(ctx context.Context) (int64, error) {
	raw, err := c.rdb.Get(ctx, c.genKey()).Result()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(raw, 10, 64)
}

func (c *RedisSnapshotCache) entryKey(gen int64, key string) string {
	return fmt.Sprintf("%s:snapshot:%d:%s", c.prefix, gen, key)
}

// Get lee el snapshot de key bajo la generación actual y devuelve esa generación.
func (c *RedisSnapshotCache) Get(ctx context.Context, key string) ([]byte, int64, bool, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return nil, 0, false, fmt.Errorf("redis generation: %w", err)
	}
	raw, err := c.rdb.Get(ctx, c.entryKey(gen, key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, gen, false, nil
	}
	if err != nil {
		return nil, gen, false, fmt.Errorf("redis get: %w", err)
	}
	return raw, gen, true, nil
}

// Set guarda value bajo la generación gen con el TTL configurado. Si gen ya fue
// invalidada la entrada nunca se lee.
func (c *RedisSnapshotCache) Set(ctx context.Context, key string, gen int64, value []byte) error {
	if err := c.rdb.Set(ctx, c.entryKey(gen, key), value, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Invalidate descarta todos los snapshots.
func (c *RedisSnapshotCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Incr(ctx, c.genKey()).Err(); err != nil {
		return fmt.Errorf("redis incr: %w", err)
	}
	return nil
}

// Close cierra el cliente.
func (c *RedisSnapshotCache) Close() error {
	return c.rdb.Close()
}
