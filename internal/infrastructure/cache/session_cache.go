// Package cache provides Redis-backed caches for the session profile and the
// public shop catalogue. All caches are advisory: a Redis failure is logged
// and treated as a miss so the backend remains the source of truth.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/sabaihub/booking-web/internal/api/metrics"
	"github.com/sabaihub/booking-web/internal/core/domain"
)

const defaultSessionTTL = 5 * time.Minute

// SessionCache maps bearer tokens to confirmed profiles.
// Key format: session:<sha256(token)>; the raw credential never appears in
// Redis keys.
type SessionCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

func NewSessionCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *SessionCache {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionCache{client: client, ttl: ttl, logger: logger}
}

// GetUser returns the cached profile for a token, if present.
func (c *SessionCache) GetUser(ctx context.Context, token string) (*domain.User, bool) {
	raw, err := c.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn().Err(err).Msg("session cache read failed")
		}
		metrics.SessionCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		c.logger.Warn().Err(err).Msg("session cache entry corrupt")
		metrics.SessionCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	metrics.SessionCacheTotal.WithLabelValues("hit").Inc()
	return &user, true
}

// SetUser caches a confirmed profile under its token.
func (c *SessionCache) SetUser(ctx context.Context, token string, user *domain.User) {
	raw, err := json.Marshal(user)
	if err != nil {
		c.logger.Warn().Err(err).Msg("session cache encode failed")
		return
	}
	if err := c.client.Set(ctx, sessionKey(token), raw, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("session cache write failed")
	}
}

// Delete invalidates the entry for a cleared or superseded token.
func (c *SessionCache) Delete(ctx context.Context, token string) {
	if err := c.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("session cache delete failed")
	}
}

func sessionKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "session:" + hex.EncodeToString(sum[:])
}
