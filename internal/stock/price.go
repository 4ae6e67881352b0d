package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/vanlang/stock-api/internal/market"
	"github.com/vanlang/stock-api/internal/mockdata"
	"github.com/vanlang/stock-api/internal/provider"
	"github.com/vanlang/stock-api/pkg/logger"
)

// DefaultSymbol is used when /api/price gets no symbol
const DefaultSymbol = "VNM"

// priced is a quote together with the strategy that produced it
type priced struct {
	quote    market.Quote
	strategy string
	date     string
}

// Price returns the latest price of one symbol. Strategies run in order:
// the last bar of a short daily history window, then the price board row.
func (s *Service) Price(ctx context.Context, rawSymbol, source string) PriceResponse {
	resp := PriceResponse{Timestamp: s.now()}

	if rawSymbol == "" {
		rawSymbol = DefaultSymbol
	}
	symbol, err := market.NormalizeSymbol(rawSymbol)
	if err != nil {
		resp.Symbol = rawSymbol
		resp.Source = source
		resp.Error = err.Error()
		return resp
	}
	resp.Symbol = symbol

	t, err := s.tiers(source)
	if err != nil {
		resp.Source = source
		resp.Error = err.Error()
		return resp
	}
	// synthetic prices only for symbols the seed table knows
	if t.Primary != nil && !mockdata.Known(symbol) {
		t.Fallback = nil
	}

	res, err := provider.Try(ctx, t, s.log(ctx), "price", symbol, func(ctx context.Context, p provider.Provider) (priced, error) {
		return s.priceFrom(ctx, p, symbol)
	})
	if err != nil {
		resp.Source = sourceName(t, source)
		resp.Error = err.Error()
		return resp
	}

	q := res.Value.quote
	price := q.Price
	resp.Price = &price
	resp.Change = q.Change
	resp.PctChange = q.PctChange
	resp.Volume = q.Volume
	resp.Date = res.Value.date
	resp.Strategy = res.Value.strategy
	resp.Source = res.Source
	resp.Name, resp.Industry = q.Name, q.Industry
	if m, ok := s.catalog.Lookup(symbol); ok {
		resp.Name, resp.Industry = m.Name, m.IndustryLabel
	}
	if resp.Name == symbol {
		resp.Name = ""
	}
	if res.Fallback {
		resp.Warning = fallbackWarning(t, res.PrimaryErr)
	}
	return resp
}

func (s *Service) priceFrom(ctx context.Context, p provider.Provider, symbol string) (priced, error) {
	now := s.now().In(market.Location)

	if p.Name() == provider.SourceMock && s.mock != nil {
		q := s.mock.Quote(symbol)
		return priced{quote: q, strategy: StrategyMock, date: now.Format(market.DateLayout)}, nil
	}

	log := s.log(ctx).WithFields(logger.Fields{"source": p.Name(), "symbol": symbol})

	out, histErr := s.priceFromHistory(ctx, p, symbol, now)
	if histErr == nil {
		return out, nil
	}
	if provider.IsInvalidInput(histErr) {
		return priced{}, histErr
	}
	log.WithField("strategy", StrategyHistory).WithError(histErr).Debug("Price strategy failed")

	quotes, err := p.PriceBoard(ctx, []string{symbol})
	if err == nil {
		for _, q := range quotes {
			if q.Symbol == symbol && q.Price > 0 {
				return priced{quote: q, strategy: StrategyPriceBoard, date: dateOf(q.Timestamp, now)}, nil
			}
		}
		err = provider.Empty(p.Name(), "price board row for "+symbol)
	}
	log.WithField("strategy", StrategyPriceBoard).WithError(err).Debug("Price strategy failed")

	return priced{}, fmt.Errorf("history: %w; price board: %w", histErr, err)
}

func (s *Service) priceFromHistory(ctx context.Context, p provider.Provider, symbol string, now time.Time) (priced, error) {
	from := now.AddDate(0, 0, -priceWindowDays)
	bars, err := p.History(ctx, symbol, from, now, market.Interval1D)
	if err != nil {
		return priced{}, err
	}
	bars = market.SortBars(bars)
	if len(bars) == 0 || bars[len(bars)-1].Close <= 0 {
		return priced{}, provider.Empty(p.Name(), "history for "+symbol)
	}

	last := bars[len(bars)-1]
	q := market.Quote{
		Symbol:    symbol,
		Price:     last.Close,
		Volume:    last.Volume,
		High:      last.High,
		Low:       last.Low,
		Source:    p.Name(),
		Timestamp: last.Time,
	}
	if len(bars) > 1 {
		q.ChangeFrom(bars[len(bars)-2].Close)
	}
	return priced{quote: q, strategy: StrategyHistory, date: last.Date}, nil
}

func dateOf(t, fallback time.Time) string {
	if t.IsZero() {
		return fallback.Format(market.DateLayout)
	}
	return t.In(market.Location).Format(market.DateLayout)
}
