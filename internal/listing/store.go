// Package listing keeps the exchange listing snapshot used by the
// all-exchanges endpoint, the statistics endpoint and symbol search.
package listing

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vanlang/stock-api/internal/catalog"
	"github.com/vanlang/stock-api/internal/market"
	"github.com/vanlang/stock-api/internal/provider"
	"github.com/vanlang/stock-api/pkg/logger"
)

// Exchanges
const (
	ExchangeHOSE  = "HOSE"
	ExchangeHNX   = "HNX"
	ExchangeUPCOM = "UPCOM"
	ExchangeAll   = "ALL"
)

// ValidExchanges are the accepted exchange filters
var ValidExchanges = []string{ExchangeHOSE, ExchangeHNX, ExchangeUPCOM, ExchangeAll}

// SourceCatalog labels a snapshot built from the curated catalog
const SourceCatalog = "catalog"

// ParseExchange normalizes an exchange filter. Empty means ALL; HSX is an
// alias of HOSE.
func ParseExchange(s string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", ExchangeAll:
		return ExchangeAll, nil
	case ExchangeHOSE, "HSX":
		return ExchangeHOSE, nil
	case ExchangeHNX:
		return ExchangeHNX, nil
	case ExchangeUPCOM:
		return ExchangeUPCOM, nil
	}
	return "", market.InvalidInput("unknown exchange %q", s)
}

// Snapshot is an immutable listing taken at one point in time
type Snapshot struct {
	Listings  []market.Listing `json:"-"`
	Source    string           `json:"source"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Filter returns the listings on exchange (ALL for every row), sorted by
// symbol
func (s Snapshot) Filter(exchange string) []market.Listing {
	out := make([]market.Listing, 0, len(s.Listings))
	for _, l := range s.Listings {
		if exchange == ExchangeAll || l.Exchange == exchange {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// CountByExchange counts listings per exchange
func (s Snapshot) CountByExchange() map[string]int {
	out := map[string]int{}
	for _, l := range s.Listings {
		ex := l.Exchange
		if ex == "" {
			ex = "UNKNOWN"
		}
		out[ex]++
	}
	return out
}

// Store holds the current snapshot. Readers never block a refresh for long:
// a refresh builds the new snapshot first and swaps it under the lock.
type Store struct {
	mu   sync.RWMutex
	snap Snapshot

	catalog  *catalog.Catalog
	searcher *catalog.Searcher
	logger   *logger.Logger
	now      func() time.Time
}

// NewStore seeds the store from the curated catalog. searcher may be nil.
func NewStore(c *catalog.Catalog, searcher *catalog.Searcher, log *logger.Logger) *Store {
	s := &Store{
		catalog:  c,
		searcher: searcher,
		logger:   log,
		now:      time.Now,
	}
	s.snap = s.fromCatalog()
	return s
}

func (s *Store) fromCatalog() Snapshot {
	members := s.catalog.Members()
	listings := make([]market.Listing, 0, len(members))
	for _, m := range members {
		listings = append(listings, market.Listing{
			Symbol:   m.Symbol,
			Name:     m.Name,
			Exchange: m.Exchange,
			Type:     "STOCK",
		})
	}
	return Snapshot{Listings: listings, Source: SourceCatalog, UpdatedAt: s.now()}
}

// Current returns the active snapshot
func (s *Store) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Refresh replaces the snapshot with p's listing. On failure the previous
// snapshot stays active.
func (s *Store) Refresh(ctx context.Context, p provider.Provider) error {
	if !p.Capabilities().Has(provider.CapListing) {
		return provider.Unsupported(p.Name(), "listing")
	}

	listings, err := p.Listing(ctx)
	if err != nil {
		return fmt.Errorf("refresh listing from %s: %w", p.Name(), err)
	}
	if len(listings) == 0 {
		return provider.Empty(p.Name(), "listing")
	}

	// curated exchange codes fill gaps in the vendor rows
	for i := range listings {
		if listings[i].Exchange != "" {
			continue
		}
		if m, ok := s.catalog.Lookup(listings[i].Symbol); ok {
			listings[i].Exchange = m.Exchange
		}
	}

	next := Snapshot{Listings: listings, Source: p.Name(), UpdatedAt: s.now()}
	if s.searcher != nil {
		if err := s.searcher.IndexListings(s.catalog, listings); err != nil {
			s.logger.WithError(err).Warn("Failed to index listing for search")
		}
	}

	s.mu.Lock()
	s.snap = next
	s.mu.Unlock()

	s.logger.WithFields(logger.Fields{
		"source": p.Name(),
		"count":  len(listings),
	}).Info("Listing snapshot refreshed")
	return nil
}
