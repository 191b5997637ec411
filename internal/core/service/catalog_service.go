package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sabaihub/booking-web/internal/core/domain"
	"github.com/sabaihub/booking-web/internal/core/ports"
)

// CatalogService serves the public shop catalogue with a cache-aside layer in
// front of the backend listing endpoint. Admin mutations go straight through
// to the backend and invalidate the cached listing.
type CatalogService struct {
	shops  ports.ShopAPI
	cache  ports.CatalogCache
	logger zerolog.Logger
}

func NewCatalogService(shops ports.ShopAPI, cache ports.CatalogCache, logger zerolog.Logger) *CatalogService {
	return &CatalogService{shops: shops, cache: cache, logger: logger}
}

// ListShops returns the catalogue, preferring the cache. A backend failure is
// returned as-is; callers decide how to degrade.
func (s *CatalogService) ListShops(ctx context.Context) ([]domain.MassageShop, error) {
	if shops, ok := s.cache.GetShops(ctx); ok {
		return shops, nil
	}

	shops, err := s.shops.ListShops(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetShops(ctx, shops)
	return shops, nil
}

// GetShop returns a single shop. Detail pages are not cached: the listing is
// the hot path, details are fetched per booking.
func (s *CatalogService) GetShop(ctx context.Context, id string) (*domain.MassageShop, error) {
	return s.shops.GetShop(ctx, id)
}

// CreateShop creates a shop record on behalf of an admin and drops the
// cached listing.
func (s *CatalogService) CreateShop(ctx context.Context, token string, input ports.ShopInput) (*domain.MassageShop, error) {
	shop, err := s.shops.CreateShop(ctx, token, input)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	s.logger.Info().Str("shop_id", shop.ID).Str("name", shop.Name).Msg("shop created")
	return shop, nil
}

// UpdateShop updates a shop record and drops the cached listing.
func (s *CatalogService) UpdateShop(ctx context.Context, token, id string, input ports.ShopInput) (*domain.MassageShop, error) {
	shop, err := s.shops.UpdateShop(ctx, token, id, input)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	s.logger.Info().Str("shop_id", id).Msg("shop updated")
	return shop, nil
}

// DeleteShop removes a shop record and drops the cached listing.
func (s *CatalogService) DeleteShop(ctx context.Context, token, id string) error {
	if err := s.shops.DeleteShop(ctx, token, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	s.logger.Info().Str("shop_id", id).Msg("shop deleted")
	return nil
}
