package db

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// TokenResolver resolves an opaque token to its scheduling context.
type TokenResolver interface {
	GetToken(ctx context.Context, token string) (TokenData, error)
}

// TokenCache is a read-through Redis cache in front of a TokenResolver.
// Selection links are opened many times while a week is live, so token rows
// are hot and read-only. The cache fails open: any Redis error falls back
// to the underlying resolver.
type TokenCache struct {
	inner  TokenResolver
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewTokenCache creates a TokenCache. Entries live for ttl or until the
// token itself expires, whichever is sooner.
func NewTokenCache(inner TokenResolver, rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *TokenCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &TokenCache{inner: inner, rdb: rdb, ttl: ttl, logger: logger}
}

func (c *TokenCache) cacheKey(token string) string {
	return "shift_token:" + token
}

// GetToken implements TokenResolver. Negative results (ErrNotFound) are not
// cached: an operator re-issuing a token should not be shadowed by a stale
// miss.
func (c *TokenCache) GetToken(ctx context.Context, token string) (TokenData, error) {
	key := c.cacheKey(token)

	cached, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var data TokenData
		if unmarshalErr := json.Unmarshal(cached, &data); unmarshalErr == nil {
			return data, nil
		}
		// Corrupt cache entry; drop it and resolve fresh.
		c.rdb.Del(ctx, key)
	} else if err != redis.Nil {
		c.logger.Warn("Token cache read failed, falling through", zap.Error(err))
	}

	data, err := c.inner.GetToken(ctx, token)
	if err != nil {
		return TokenData{}, err
	}

	ttl := c.ttl
	if until := time.Until(data.ExpiresAt); until > 0 && until < ttl {
		ttl = until
	}
	if ttl > 0 {
		if payload, marshalErr := json.Marshal(data); marshalErr == nil {
			if setErr := c.rdb.Set(ctx, key, payload, ttl).Err(); setErr != nil {
				c.logger.Warn("Token cache write failed", zap.Error(setErr))
			}
		}
	}

	return data, nil
}
