package stock

import (
	"context"
	"fmt"
	"sort"

	"github.com/vanlang/stock-api/internal/catalog"
	"github.com/vanlang/stock-api/internal/listing"
	"github.com/vanlang/stock-api/internal/market"
	"github.com/vanlang/stock-api/internal/provider"
)

// boardResult is a merged, batched price board fetch
type boardResult struct {
	quotes   map[string]market.Quote
	source   string
	fallback bool
	warning  string
	warnings []string
	err      error
}

// fetchBoard queries the board in sequential batches. A failing batch is
// recorded as a warning; err is set only when every batch failed.
func (s *Service) fetchBoard(ctx context.Context, t provider.Tiered, symbols []string) boardResult {
	out := boardResult{quotes: make(map[string]market.Quote, len(symbols))}
	if len(symbols) == 0 {
		out.err = market.InvalidInput("no symbols requested")
		return out
	}

	var lastErr error
	ok := 0
	for start := 0; start < len(symbols); start += s.opts.BatchSize {
		end := start + s.opts.BatchSize
		if end > len(symbols) {
			end = len(symbols)
		}
		batch := symbols[start:end]

		res, err := provider.Try(ctx, t, s.log(ctx), "price_board", "", func(ctx context.Context, p provider.Provider) ([]market.Quote, error) {
			return p.PriceBoard(ctx, batch)
		})
		if err != nil {
			lastErr = err
			out.warnings = append(out.warnings, fmt.Sprintf("batch %d-%d failed: %v", start+1, end, err))
			continue
		}
		ok++

		if out.source == "" {
			out.source = res.Source
		}
		if res.Fallback {
			out.fallback = true
			if out.warning == "" {
				out.warning = fallbackWarning(t, res.PrimaryErr)
			}
		}
		for _, q := range res.Value {
			if q.Symbol == "" {
				continue
			}
			if _, dup := out.quotes[q.Symbol]; !dup {
				out.quotes[q.Symbol] = q
			}
		}
	}

	if ok == 0 {
		out.err = lastErr
	}
	if out.source == "" {
		out.source = sourceName(t, "")
	}
	return out
}

// enrich overlays curated name, industry and exchange
func (s *Service) enrich(q market.Quote, m catalog.Member) market.Quote {
	q.Symbol = m.Symbol
	if m.Name != "" {
		q.Name = m.Name
	}
	q.Industry = m.IndustryLabel
	if q.Exchange == "" {
		q.Exchange = m.Exchange
	}
	return q
}

// boardFor quotes members and returns only symbols with a quote, sorted
func (s *Service) boardFor(ctx context.Context, members []catalog.Member, source string) BoardResponse {
	resp := BoardResponse{Stocks: []market.Quote{}, Timestamp: s.now()}

	t, err := s.tiers(source)
	if err != nil {
		resp.Source = source
		resp.Error = err.Error()
		return resp
	}

	symbols := make([]string, 0, len(members))
	for _, m := range members {
		symbols = append(symbols, m.Symbol)
	}
	symbols = market.Dedupe(symbols)

	br := s.fetchBoard(ctx, t, symbols)
	resp.Source = br.source
	resp.Warning = br.warning
	resp.Warnings = br.warnings
	if br.err != nil {
		resp.Error = br.err.Error()
		return resp
	}

	seen := make(map[string]struct{}, len(members))
	for _, m := range members {
		if _, dup := seen[m.Symbol]; dup {
			continue
		}
		q, ok := br.quotes[m.Symbol]
		if !ok {
			continue
		}
		seen[m.Symbol] = struct{}{}
		resp.Stocks = append(resp.Stocks, s.enrich(q, m))
	}
	sortQuotes(resp.Stocks)
	resp.Count = len(resp.Stocks)
	if resp.Count == 0 {
		resp.Error = fmt.Sprintf("no quotes returned by %s", resp.Source)
	}
	return resp
}

// Stocks serves the curated price board
func (s *Service) Stocks(ctx context.Context, limit int, source string) BoardResponse {
	limit = clamp(limit, DefaultBoardLimit, 1, MaxBoardLimit)
	members, _ := s.catalog.Select(catalog.AllIndustries, limit)
	resp := s.boardFor(ctx, members, source)
	resp.Total = s.catalog.Size()
	return resp
}

// ByIndustry serves one catalog bucket, or all of it for "all"
func (s *Service) ByIndustry(ctx context.Context, industry string, limit int, source string) BoardResponse {
	limit = clamp(limit, DefaultBoardLimit, 1, MaxBoardLimit)
	members, err := s.catalog.Select(industry, limit)
	if err != nil {
		return BoardResponse{
			Stocks:          []market.Quote{},
			Source:          source,
			Industry:        industry,
			Error:           err.Error(),
			ValidIndustries: s.catalog.Keys(),
			Timestamp:       s.now(),
		}
	}

	resp := s.boardFor(ctx, members, source)
	if ind, ok := s.catalog.Resolve(industry); ok {
		resp.Industry, resp.IndustryLabel = ind.Key, ind.Label
		resp.Total = len(ind.Symbols)
	} else {
		resp.Industry = catalog.AllIndustries
		resp.Total = s.catalog.Size()
	}
	return resp
}

// AllExchanges serves the exchange listing enriched with board prices.
// Symbols without a quote are kept with zero prices.
func (s *Service) AllExchanges(ctx context.Context, exchange string, limit int, source string) BoardResponse {
	resp := BoardResponse{Stocks: []market.Quote{}, Timestamp: s.now()}

	ex, err := listing.ParseExchange(exchange)
	if err != nil {
		resp.Source = source
		resp.Exchange = exchange
		resp.Error = err.Error()
		resp.ValidExchanges = listing.ValidExchanges
		return resp
	}
	resp.Exchange = ex

	snap := s.listings.Current()
	rows := snap.Filter(ex)
	resp.Total = len(rows)
	resp.ListingSource = snap.Source
	limit = clamp(limit, DefaultListingLimit, 1, MaxListingLimit)
	if len(rows) > limit {
		rows = rows[:limit]
	}
	if len(rows) == 0 {
		resp.Error = fmt.Sprintf("no listed symbols on %s", ex)
		return resp
	}

	t, err := s.tiers(source)
	if err != nil {
		resp.Source = source
		resp.Error = err.Error()
		return resp
	}

	symbols := make([]string, len(rows))
	for i, l := range rows {
		symbols[i] = l.Symbol
	}
	br := s.fetchBoard(ctx, t, symbols)
	resp.Source = br.source
	resp.Warning = br.warning
	resp.Warnings = br.warnings

	for _, l := range rows {
		q, ok := br.quotes[l.Symbol]
		if !ok {
			q = market.Quote{Symbol: l.Symbol, Timestamp: resp.Timestamp}
		}
		q.Symbol = l.Symbol
		if l.Name != "" {
			q.Name = l.Name
		}
		if l.Exchange != "" {
			q.Exchange = l.Exchange
		}
		if m, ok := s.catalog.Lookup(l.Symbol); ok {
			q.Industry = m.IndustryLabel
		}
		resp.Stocks = append(resp.Stocks, q)
	}
	sortQuotes(resp.Stocks)
	resp.Count = len(resp.Stocks)
	return resp
}

// Statistics summarizes the listing snapshot and the catalog
func (s *Service) Statistics() StatisticsResponse {
	snap := s.listings.Current()
	return StatisticsResponse{
		Total:            len(snap.Listings),
		ByExchange:       snap.CountByExchange(),
		ByIndustry:       s.catalog.CountByIndustry(),
		ListingSource:    snap.Source,
		ListingUpdatedAt: snap.UpdatedAt,
		CatalogSize:      s.catalog.Size(),
		Timestamp:        s.now(),
	}
}

func sortQuotes(qs []market.Quote) {
	sort.Slice(qs, func(i, j int) bool { return qs[i].Symbol < qs[j].Symbol })
}
