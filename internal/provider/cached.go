package provider

import (
	"context"
	"time"

	"github.com/vanlang/stock-api/internal/market"
	"github.com/vanlang/stock-api/pkg/config"
	"github.com/vanlang/stock-api/pkg/redis"
)

// Cached decorates a Provider with Redis caching. When Redis is disabled
// every call passes straight through.
type Cached struct {
	inner Provider
	cache *redis.Cache
	ttl   config.CacheConfig
}

// NewCached wraps p
func NewCached(p Provider, cache *redis.Cache, ttl config.CacheConfig) *Cached {
	return &Cached{inner: p, cache: cache, ttl: ttl}
}

// Unwrap returns the decorated provider
func (c *Cached) Unwrap() Provider { return c.inner }

func (c *Cached) Name() string               { return c.inner.Name() }
func (c *Cached) Capabilities() Capabilities { return c.inner.Capabilities() }

// Probe always reaches the vendor
func (c *Cached) Probe(ctx context.Context) (string, error) {
	if pr, ok := c.inner.(Prober); ok {
		return pr.Probe(ctx)
	}
	_, err := c.inner.PriceBoard(ctx, []string{probeSymbol})
	return "", err
}

func (c *Cached) PriceBoard(ctx context.Context, symbols []string) ([]market.Quote, error) {
	key := redis.QuoteKey(c.Name(), symbols)
	return redis.GetOrSet(ctx, c.cache, key, c.ttl.QuoteTTL, func() ([]market.Quote, error) {
		return c.inner.PriceBoard(ctx, symbols)
	})
}

func (c *Cached) History(ctx context.Context, symbol string, from, to time.Time, iv market.Interval) ([]market.Bar, error) {
	key := redis.HistoryKey(c.Name(), symbol, from.Format(market.DateLayout), to.Format(market.DateLayout), iv.String())
	return redis.GetOrSet(ctx, c.cache, key, c.ttl.HistoryTTL, func() ([]market.Bar, error) {
		return c.inner.History(ctx, symbol, from, to, iv)
	})
}

// Intraday is never cached
func (c *Cached) Intraday(ctx context.Context, symbol string, page, pageSize int) ([]market.Trade, error) {
	return c.inner.Intraday(ctx, symbol, page, pageSize)
}

func (c *Cached) Company(ctx context.Context, symbol string) (*market.Company, error) {
	return redis.GetOrSet(ctx, c.cache, redis.CompanyKey(c.Name(), symbol), c.ttl.CompanyTTL, func() (*market.Company, error) {
		return c.inner.Company(ctx, symbol)
	})
}

func (c *Cached) Listing(ctx context.Context) ([]market.Listing, error) {
	return redis.GetOrSet(ctx, c.cache, redis.ListingKey(c.Name()), c.ttl.ListingTTL, func() ([]market.Listing, error) {
		return c.inner.Listing(ctx)
	})
}
