package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/sabaihub/booking-web/internal/core/domain"
)

const (
	catalogKey        = "catalog:shops"
	defaultCatalogTTL = time.Minute
)

// CatalogCache holds the public shop listing between backend fetches.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

func NewCatalogCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *CatalogCache {
	if ttl <= 0 {
		ttl = defaultCatalogTTL
	}
	return &CatalogCache{client: client, ttl: ttl, logger: logger}
}

func (c *CatalogCache) GetShops(ctx context.Context) ([]domain.MassageShop, bool) {
	raw, err := c.client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn().Err(err).Msg("catalog cache read failed")
		}
		return nil, false
	}

	var shops []domain.MassageShop
	if err := json.Unmarshal(raw, &shops); err != nil {
		c.logger.Warn().Err(err).Msg("catalog cache entry corrupt")
		return nil, false
	}
	return shops, true
}

func (c *CatalogCache) SetShops(ctx context.Context, shops []domain.MassageShop) {
	raw, err := json.Marshal(shops)
	if err != nil {
		c.logger.Warn().Err(err).Msg("catalog cache encode failed")
		return
	}
	if err := c.client.Set(ctx, catalogKey, raw, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("catalog cache write failed")
	}
}

func (c *CatalogCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, catalogKey).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("catalog cache invalidate failed")
	}
}
