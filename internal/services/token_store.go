// internal/services/token_store.go
package services

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/heaponte4/aerea/internal/config"
	"github.com/heaponte4/aerea/internal/utils"
)

// TokenDenylist records revoked refresh tokens until they would have
// expired anyway. Revocation is permanent for the token's lifetime.
type TokenDenylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

const denylistPrefix = "denylist:refresh:"

// denylistKey hashes the JTI so raw token identifiers never land in redis.
func denylistKey(jti string) string {
	return denylistPrefix + utils.HashString(jti)
}

type RedisDenylist struct {
	client *redis.Client
}

func NewRedisDenylist(cfg config.RedisConfig) *RedisDenylist {
	return &RedisDenylist{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr(),
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

func (d *RedisDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already expired; nothing to deny.
		return nil
	}
	return d.client.Set(ctx, denylistKey(jti), "1", ttl).Err()
}

func (d *RedisDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := d.client.Exists(ctx, denylistKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MemoryDenylist backs tests and redis-less development setups.
type MemoryDenylist struct {
	mtx     sync.Mutex
	revoked map[string]time.Time
}

func NewMemoryDenylist() *MemoryDenylist {
	return &MemoryDenylist{revoked: make(map[string]time.Time)}
}

func (d *MemoryDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	d.mtx.Lock()
	defer d.mtx.Unlock()
	d.revoked[utils.HashString(jti)] = time.Now().Add(ttl)
	return nil
}

func (d *MemoryDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	key := utils.HashString(jti)
	d.mtx.Lock()
	defer d.mtx.Unlock()
	expiry, ok := d.revoked[key]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		delete(d.revoked, key)
		return false, nil
	}
	return true, nil
}
