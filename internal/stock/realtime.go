package stock

import (
	"context"
	"fmt"
	"strings"

	"github.com/vanlang/stock-api/internal/catalog"
	"github.com/vanlang/stock-api/internal/market"
	"github.com/vanlang/stock-api/internal/mockdata"
	"github.com/vanlang/stock-api/internal/provider"
)

// Realtime quotes up to MaxRealtimeSymbols symbols in request order. An
// empty list means the first curated symbols.
func (s *Service) Realtime(ctx context.Context, symbolsCSV, source string) QuotesResponse {
	resp := QuotesResponse{Symbols: []string{}, Data: []market.Quote{}, Timestamp: s.now()}

	var symbols []string
	if strings.TrimSpace(symbolsCSV) == "" {
		symbols = s.catalog.Symbols()
		if len(symbols) > DefaultRealtimeCount {
			symbols = symbols[:DefaultRealtimeCount]
		}
	} else {
		symbols, resp.Rejected = market.ParseSymbols(symbolsCSV, MaxRealtimeSymbols)
	}
	if len(symbols) == 0 {
		resp.Source = source
		resp.Error = "no valid symbols in request"
		return resp
	}
	resp.Symbols = symbols

	t, err := s.tiers(source)
	if err != nil {
		resp.Source = source
		resp.Error = err.Error()
		return resp
	}

	br := s.fetchBoard(ctx, t, symbols)
	resp.Source = br.source
	resp.Warning = br.warning
	resp.Warnings = br.warnings
	if br.err != nil {
		resp.Error = br.err.Error()
		return resp
	}

	for _, sym := range symbols {
		q, ok := br.quotes[sym]
		if !ok {
			resp.Warnings = append(resp.Warnings, fmt.Sprintf("%s: no quote", sym))
			continue
		}
		if m, ok := s.catalog.Lookup(sym); ok {
			q = s.enrich(q, m)
		}
		if s.opts.RescaleHeuristic {
			q = rescale(q)
		}
		resp.Data = append(resp.Data, q)
	}
	resp.Count = len(resp.Data)
	if resp.Count == 0 {
		resp.Error = fmt.Sprintf("no quotes returned by %s", resp.Source)
	}
	return resp
}

// rescale applies the magnitude heuristic to every price field
func rescale(q market.Quote) market.Quote {
	price, changed := market.RescaleHeuristic(q.Price)
	if !changed {
		return q
	}
	factor := price / q.Price
	q.Price = price
	q.RefPrice = market.Round2(q.RefPrice * factor)
	q.Change = market.Round2(q.Change * factor)
	q.High = market.Round2(q.High * factor)
	q.Low = market.Round2(q.Low * factor)
	q.Rescaled = true
	return q
}

// Mock synthesizes quotes for the requested symbols, or the whole seed
// table. It fails only when every requested symbol is rejected.
func (s *Service) Mock(symbolsCSV string) QuotesResponse {
	var symbols, rejected []string
	if strings.TrimSpace(symbolsCSV) == "" {
		for _, st := range mockdata.Stocks() {
			symbols = append(symbols, st.Symbol)
		}
	} else {
		symbols, rejected = market.ParseSymbols(symbolsCSV, MaxRealtimeSymbols)
	}

	data := make([]market.Quote, 0, len(symbols))
	for _, sym := range symbols {
		data = append(data, s.mock.Quote(sym))
	}
	if symbols == nil {
		symbols = []string{}
	}
	resp := QuotesResponse{
		Symbols:   symbols,
		Data:      data,
		Count:     len(data),
		Source:    provider.SourceMock,
		Rejected:  rejected,
		Timestamp: s.now(),
	}
	if len(data) == 0 {
		resp.Error = "no valid symbols in request"
	}
	return resp
}

// Search ranks catalog and listing symbols against q
func (s *Service) Search(q string, limit int) SearchResponse {
	resp := SearchResponse{Query: q, Results: []catalog.Hit{}, Timestamp: s.now()}
	if s.searcher == nil {
		resp.Error = "search index unavailable"
		return resp
	}

	hits, err := s.searcher.Search(q, clamp(limit, DefaultSearchLimit, 1, MaxSearchLimit))
	if err != nil {
		resp.Error = err.Error()
		return resp
	}
	resp.Results = hits
	resp.Count = len(hits)
	return resp
}
