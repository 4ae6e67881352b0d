// Package stock assembles endpoint responses from the provider tiers, the
// curated catalog and the listing snapshot. Every method returns a payload;
// failures are reported in its error field.
package stock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vanlang/stock-api/internal/catalog"
	"github.com/vanlang/stock-api/internal/listing"
	"github.com/vanlang/stock-api/internal/market"
	"github.com/vanlang/stock-api/internal/mockdata"
	"github.com/vanlang/stock-api/internal/provider"
	"github.com/vanlang/stock-api/pkg/config"
	"github.com/vanlang/stock-api/pkg/logger"
)

// Limits
const (
	DefaultBoardLimit    = 50
	MaxBoardLimit        = 500
	DefaultListingLimit  = 100
	MaxListingLimit      = 2000
	MaxRealtimeSymbols   = 100
	DefaultRealtimeCount = 20
	DefaultPageSize      = 100
	MaxPageSize          = 1000
	DefaultSearchLimit   = 20
	MaxSearchLimit       = 100

	priceWindowDays = 10
)

// Options tunes the service
type Options struct {
	MockFallback     bool
	RescaleHeuristic bool
	BatchSize        int
}

// OptionsFromConfig extracts service options
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		MockFallback:     cfg.MockFallback,
		RescaleHeuristic: cfg.PriceRescaleHeuristic,
		BatchSize:        cfg.BoardBatchSize,
	}
}

// Deps are the collaborators of a Service. Searcher may be nil.
type Deps struct {
	Registry *provider.Registry
	Mock     *mockdata.Source
	Catalog  *catalog.Catalog
	Searcher *catalog.Searcher
	Listings *listing.Store
	Logger   *logger.Logger
}

// Service implements the stock endpoints
// ⭐ SSOT: primary/fallback 선택은 이 서비스에서만
type Service struct {
	registry *provider.Registry
	mock     *mockdata.Source
	catalog  *catalog.Catalog
	searcher *catalog.Searcher
	listings *listing.Store
	opts     Options
	logger   *logger.Logger
	now      func() time.Time
}

// New creates a Service
func New(d Deps, opts Options) *Service {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 50
	}
	if d.Mock == nil {
		d.Mock = mockdata.New(0.05)
	}
	return &Service{
		registry: d.Registry,
		mock:     d.Mock,
		catalog:  d.Catalog,
		searcher: d.Searcher,
		listings: d.Listings,
		opts:     opts,
		logger:   d.Logger,
		now:      time.Now,
	}
}

// Registry exposes the provider registry for the metadata endpoint
func (s *Service) Registry() *provider.Registry {
	return s.registry
}

// MockFallback reports whether the synthetic tier is enabled
func (s *Service) MockFallback() bool {
	return s.opts.MockFallback
}

// tiers resolves the requested source. "MOCK" selects the synthetic
// provider directly; any other name goes through the registry with the
// mock tier behind it when enabled.
func (s *Service) tiers(source string) (provider.Tiered, error) {
	if strings.EqualFold(strings.TrimSpace(source), provider.SourceMock) {
		return provider.Tiered{Primary: s.mock}, nil
	}

	var t provider.Tiered
	if s.registry != nil && s.registry.Len() > 0 {
		p, err := s.registry.Get(source)
		if err != nil {
			return t, err
		}
		t.Primary = p
	} else if strings.TrimSpace(source) != "" {
		return t, market.InvalidInput("unknown source %q", source)
	}

	if s.opts.MockFallback {
		t.Fallback = s.mock
	}
	if t.Primary == nil && t.Fallback == nil {
		return t, errors.New("no data source configured")
	}
	return t, nil
}

// sourceName is the label reported when no tier answered
func sourceName(t provider.Tiered, requested string) string {
	if t.Primary != nil {
		return t.Primary.Name()
	}
	if t.Fallback != nil {
		return t.Fallback.Name()
	}
	return strings.ToUpper(requested)
}

// fallbackWarning explains why the synthetic tier answered
func fallbackWarning(t provider.Tiered, err error) string {
	if err == nil || t.Primary == nil {
		return fmt.Sprintf("data is synthetic (%s fallback)", provider.SourceMock)
	}
	return fmt.Sprintf("live source %s unavailable, data is synthetic: %v", t.Primary.Name(), err)
}

func clamp(v, def, lo, hi int) int {
	if v <= 0 {
		v = def
	}
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}

func (s *Service) log(ctx context.Context) *logger.Logger {
	return s.logger.WithContext(ctx)
}
