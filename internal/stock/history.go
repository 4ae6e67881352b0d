package stock

import (
	"context"
	"fmt"
	"sync"

	"github.com/vanlang/stock-api/internal/market"
	"github.com/vanlang/stock-api/internal/provider"
)

// History returns bars in ascending time order. Errors echo the requested
// range back to the caller.
func (s *Service) History(ctx context.Context, req HistoryRequest) HistoryResponse {
	resp := HistoryResponse{
		Symbol:    req.Symbol,
		Source:    req.Source,
		Interval:  req.Interval,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Data:      []market.Bar{},
		Timestamp: s.now(),
	}

	symbol, err := market.NormalizeSymbol(req.Symbol)
	if err != nil {
		resp.Error = err.Error()
		return resp
	}
	resp.Symbol = symbol

	iv, err := market.ParseInterval(req.Interval)
	if err != nil {
		resp.Error = err.Error()
		return resp
	}
	resp.Interval = iv.String()

	r, err := market.ParseDateRange(req.StartDate, req.EndDate, s.now())
	if err != nil {
		resp.Error = err.Error()
		return resp
	}
	resp.StartDate, resp.EndDate = r.StartDate(), r.EndDate()

	t, err := s.tiers(req.Source)
	if err != nil {
		resp.Error = err.Error()
		return resp
	}
	resp.Source = sourceName(t, req.Source)

	res, err := provider.Try(ctx, t, s.log(ctx), "history", symbol, func(ctx context.Context, p provider.Provider) ([]market.Bar, error) {
		bars, err := p.History(ctx, symbol, r.From, r.To, iv)
		if err != nil {
			return nil, err
		}
		bars = market.SortBars(bars)
		if len(bars) == 0 {
			return nil, provider.Empty(p.Name(), "history")
		}
		return bars, nil
	})
	if err != nil {
		resp.Error = fmt.Sprintf("no data for %s between %s and %s: %v", symbol, resp.StartDate, resp.EndDate, err)
		return resp
	}

	resp.Source = res.Source
	resp.Data = res.Value
	resp.Count = len(res.Value)
	if res.Fallback {
		resp.Warning = fallbackWarning(t, res.PrimaryErr)
	}
	return resp
}

// Intraday returns one page of matches, newest first
func (s *Service) Intraday(ctx context.Context, rawSymbol, source string, page, pageSize int) IntradayResponse {
	if page < 0 {
		page = 0
	}
	pageSize = clamp(pageSize, DefaultPageSize, 1, MaxPageSize)
	resp := IntradayResponse{
		Symbol:    rawSymbol,
		Source:    source,
		Page:      page,
		PageSize:  pageSize,
		Data:      []market.Trade{},
		Timestamp: s.now(),
	}

	symbol, err := market.NormalizeSymbol(rawSymbol)
	if err != nil {
		resp.Error = err.Error()
		return resp
	}
	resp.Symbol = symbol

	t, err := s.tiers(source)
	if err != nil {
		resp.Error = err.Error()
		return resp
	}
	resp.Source = sourceName(t, source)

	res, err := provider.Try(ctx, t, s.log(ctx), "intraday", symbol, func(ctx context.Context, p provider.Provider) ([]market.Trade, error) {
		return p.Intraday(ctx, symbol, page, pageSize)
	})
	if err != nil {
		resp.Error = err.Error()
		return resp
	}

	resp.Source = res.Source
	resp.Data = res.Value
	resp.Count = len(res.Value)
	if res.Fallback {
		resp.Warning = fallbackWarning(t, res.PrimaryErr)
	}
	return resp
}

// Company returns the live profile, else the seed-table description
func (s *Service) Company(ctx context.Context, rawSymbol, source string) CompanyResponse {
	resp := CompanyResponse{Symbol: rawSymbol, Source: source, Timestamp: s.now()}

	symbol, err := market.NormalizeSymbol(rawSymbol)
	if err != nil {
		resp.Error = err.Error()
		return resp
	}
	resp.Symbol = symbol

	t, err := s.tiers(source)
	if err != nil {
		resp.Error = err.Error()
		return resp
	}
	resp.Source = sourceName(t, source)

	res, err := provider.Try(ctx, t, s.log(ctx), "company", symbol, func(ctx context.Context, p provider.Provider) (*market.Company, error) {
		return p.Company(ctx, symbol)
	})
	if err != nil {
		resp.Error = err.Error()
		return resp
	}

	c := *res.Value
	if m, ok := s.catalog.Lookup(symbol); ok {
		if c.Name == "" {
			c.Name = m.Name
		}
		if c.Industry == "" {
			c.Industry = m.IndustryLabel
		}
		if c.Exchange == "" {
			c.Exchange = m.Exchange
		}
	}
	resp.Company = &c
	resp.Source = res.Source
	if res.Fallback {
		resp.Warning = fallbackWarning(t, res.PrimaryErr)
	}
	return resp
}

// Indices fetches the latest level of every market index concurrently
func (s *Service) Indices(ctx context.Context, source string) IndicesResponse {
	resp := IndicesResponse{Indices: []market.IndexQuote{}, Timestamp: s.now()}

	t, err := s.tiers(source)
	if err != nil {
		resp.Source = source
		resp.Error = err.Error()
		return resp
	}
	resp.Source = sourceName(t, source)

	type outcome struct {
		quote  market.IndexQuote
		source string
		err    error
	}
	results := make([]outcome, len(market.Indices))

	var wg sync.WaitGroup
	for i, symbol := range market.Indices {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			res, err := provider.Try(ctx, t, s.log(ctx), "index", symbol, func(ctx context.Context, p provider.Provider) (priced, error) {
				return s.priceFromHistory(ctx, p, symbol, s.now().In(market.Location))
			})
			if err != nil {
				results[i] = outcome{err: err}
				return
			}
			q := res.Value.quote
			results[i] = outcome{
				quote: market.IndexQuote{
					Symbol:    symbol,
					Value:     q.Price,
					Change:    q.Change,
					PctChange: q.PctChange,
					Volume:    q.Volume,
					Date:      res.Value.date,
					Source:    res.Source,
					Timestamp: q.Timestamp,
				},
				source: res.Source,
			}
		}(i, symbol)
	}
	wg.Wait()

	primaryServed := false
	for i, o := range results {
		if o.err != nil {
			resp.Warnings = append(resp.Warnings, fmt.Sprintf("%s: %v", market.Indices[i], o.err))
			continue
		}
		resp.Indices = append(resp.Indices, o.quote)
		if t.Primary != nil && o.source == t.Primary.Name() {
			primaryServed = true
		}
	}
	resp.Count = len(resp.Indices)
	if resp.Count == 0 {
		resp.Error = "no index data available"
	} else if !primaryServed {
		resp.Source = resp.Indices[0].Source
	}
	return resp
}
