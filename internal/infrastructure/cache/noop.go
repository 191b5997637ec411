package cache

import (
	"context"

	"github.com/sabaihub/booking-web/internal/core/domain"
)

// NoopSession is a SessionCache that never hits. Used when Redis is
// unavailable at startup: the service degrades to a backend fetch per
// navigation instead of refusing to run.
type NoopSession struct{}

func (NoopSession) GetUser(context.Context, string) (*domain.User, bool) { return nil, false }
func (NoopSession) SetUser(context.Context, string, *domain.User)        {}
func (NoopSession) Delete(context.Context, string)                       {}

// NoopCatalog is the catalogue counterpart of NoopSession.
type NoopCatalog struct{}

func (NoopCatalog) GetShops(context.Context) ([]domain.MassageShop, bool) { return nil, false }
func (NoopCatalog) SetShops(context.Context, []domain.MassageShop)        {}
func (NoopCatalog) Invalidate(context.Context)                            {}
