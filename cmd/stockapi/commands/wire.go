package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vanlang/stock-api/internal/catalog"
	"github.com/vanlang/stock-api/internal/external/tcbs"
	"github.com/vanlang/stock-api/internal/external/vci"
	"github.com/vanlang/stock-api/internal/external/yahoo"
	"github.com/vanlang/stock-api/internal/listing"
	"github.com/vanlang/stock-api/internal/mockdata"
	"github.com/vanlang/stock-api/internal/provider"
	"github.com/vanlang/stock-api/internal/stock"
	"github.com/vanlang/stock-api/pkg/config"
	"github.com/vanlang/stock-api/pkg/httputil"
	"github.com/vanlang/stock-api/pkg/logger"
	"github.com/vanlang/stock-api/pkg/redis"
)

// app holds everything a command needs
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	redis    *redis.Client
	registry *provider.Registry
	catalog  *catalog.Catalog
	searcher *catalog.Searcher
	listings *listing.Store
	svc      *stock.Service
}

// loadConfig reads config and applies the --verbose flag
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// buildApp wires providers, catalog, listing and the service.
// ⭐ SSOT: 의존성 조립은 이 함수에서만
func buildApp(ctx context.Context, cfg *config.Config, log *logger.Logger, probe bool) (*app, error) {
	// 1. Redis (disabled config = no-op cache and limiter)
	rc, err := redis.New(cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, continuing without cache")
		rc = redis.Disabled()
	}

	// 2. Providers
	limiter := redis.NewRateLimiter(rc, redis.KeyPrefix)
	var providers []provider.Provider
	for _, name := range cfg.Sources.Enabled {
		p, err := newProvider(name, cfg, log, limiter)
		if err != nil {
			log.WithError(err).WithField("source", name).Warn("Skipping source")
			continue
		}
		cache := redis.NewCache(rc, redis.KeyPrefix+":"+strings.ToLower(name))
		providers = append(providers, provider.NewCached(p, cache, cfg.Cache))
	}
	registry := provider.NewRegistry(cfg.Sources.Default, log, providers...)

	if probe && registry.Len() > 0 {
		for _, res := range registry.Probe(ctx, cfg.Upstream.Timeout) {
			log.WithFields(logger.Fields{
				"source":     res.Name,
				"reachable":  res.Reachable,
				"latency_ms": res.LatencyMS,
				"layout":     res.Layout,
			}).Info("Source probed")
		}
		log.WithField("default_source", registry.Default()).Info("Default source selected")
	}

	// 3. Catalog, search index and listing snapshot
	cat, err := catalog.LoadOrBuiltin(cfg.CatalogFile)
	if err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	searcher, err := catalog.NewSearcher(cat)
	if err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("build search index: %w", err)
	}
	listings := listing.NewStore(cat, searcher, log)

	// 4. Service
	svc := stock.New(stock.Deps{
		Registry: registry,
		Mock:     mockdata.New(cfg.MockVariation),
		Catalog:  cat,
		Searcher: searcher,
		Listings: listings,
		Logger:   log,
	}, stock.OptionsFromConfig(cfg))

	return &app{
		cfg:      cfg,
		log:      log,
		redis:    rc,
		registry: registry,
		catalog:  cat,
		searcher: searcher,
		listings: listings,
		svc:      svc,
	}, nil
}

// Close releases the search index and the Redis connection
func (a *app) Close() {
	if err := a.searcher.Close(); err != nil {
		a.log.WithError(err).Warn("Failed to close search index")
	}
	if err := a.redis.Close(); err != nil {
		a.log.WithError(err).Warn("Failed to close redis")
	}
}

// newProvider builds one vendor adapter. Each vendor gets its own HTTP
// client since headers and limits are per vendor.
func newProvider(name string, cfg *config.Config, log *logger.Logger, limiter *redis.RateLimiter) (provider.Provider, error) {
	switch strings.ToUpper(name) {
	case provider.SourceVCI:
		return vci.NewClient(vendorClient(cfg, log, limiter, "vci"), cfg.VCI.BaseURL, log), nil
	case provider.SourceTCBS:
		return tcbs.NewClient(vendorClient(cfg, log, limiter, "tcbs"), cfg.TCBS.BaseURL, log), nil
	case provider.SourceYahoo:
		return yahoo.NewClient(log), nil
	case provider.SourceMock:
		return nil, fmt.Errorf("%s is the fallback tier, control it with MOCK_FALLBACK", name)
	}
	return nil, fmt.Errorf("unknown source %q", name)
}

func vendorClient(cfg *config.Config, log *logger.Logger, limiter *redis.RateLimiter, key string) *httputil.Client {
	c := httputil.New(cfg, log)
	if limiter != nil && limiter.Enabled() && cfg.Upstream.RPS > 0 {
		limit := int(cfg.Upstream.RPS)
		if limit < 1 {
			limit = 1
		}
		c = c.WithRateLimiter(limiter, redis.RateLimitConfig{
			Key:    key,
			Limit:  limit,
			Window: time.Second,
		})
	}
	return c
}
