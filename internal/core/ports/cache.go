package ports

import (
	"context"

	"github.com/sabaihub/booking-web/internal/core/domain"
)

// SessionCache is a server-side token → profile cache so that repeated
// navigations do not re-hit the backend's profile endpoint. Lookups are
// advisory: a cache failure is a miss, never an error surfaced to callers.
type SessionCache interface {
	GetUser(ctx context.Context, token string) (*domain.User, bool)
	SetUser(ctx context.Context, token string, user *domain.User)
	// Delete invalidates the entry for a cleared or superseded token.
	Delete(ctx context.Context, token string)
}

// CatalogCache holds the public shop listing between backend fetches.
type CatalogCache interface {
	GetShops(ctx context.Context) ([]domain.MassageShop, bool)
	SetShops(ctx context.Context, shops []domain.MassageShop)
	// Invalidate drops the cached listing after an admin mutation.
	Invalidate(ctx context.Context)
}
