// Package yahoo adapts Yahoo Finance through piquette/finance-go. Vietnamese
// tickers carry the ".VN" suffix there.
package yahoo

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/quote"

	"github.com/vanlang/stock-api/internal/market"
	"github.com/vanlang/stock-api/internal/provider"
	"github.com/vanlang/stock-api/pkg/logger"
)

// PriceScale converts Yahoo price units to VND. Yahoo quotes .VN in VND.
const PriceScale = 1.0

const suffix = ".VN"

// Client wraps the finance-go quote and chart APIs
// ⭐ SSOT: Yahoo 호출은 이 클라이언트에서만
type Client struct {
	logger *logger.Logger

	quotes func(tickers []string) ([]*finance.Quote, error)
	bars   func(p *chart.Params) ([]*finance.ChartBar, error)
}

// NewClient creates a Yahoo adapter
func NewClient(log *logger.Logger) *Client {
	return &Client{
		logger: log,
		quotes: listQuotes,
		bars:   chartBars,
	}
}

func listQuotes(tickers []string) ([]*finance.Quote, error) {
	iter := quote.List(tickers)
	var out []*finance.Quote
	for iter.Next() {
		out = append(out, iter.Quote())
	}
	return out, iter.Err()
}

func chartBars(p *chart.Params) ([]*finance.ChartBar, error) {
	iter := chart.Get(p)
	var out []*finance.ChartBar
	for iter.Next() {
		out = append(out, iter.Bar())
	}
	return out, iter.Err()
}

// Name returns YAHOO
func (c *Client) Name() string {
	return provider.SourceYahoo
}

// Capabilities of the Yahoo adapter
func (c *Client) Capabilities() provider.Capabilities {
	return provider.CapPriceBoard | provider.CapHistory | provider.CapCompany
}

// Probe quotes VNM
func (c *Client) Probe(ctx context.Context) (string, error) {
	if _, err := c.PriceBoard(ctx, []string{"VNM"}); err != nil {
		return "", err
	}
	return "yahoo.quote", nil
}

// Ticker maps a local symbol to its Yahoo ticker
func Ticker(symbol string) string {
	if slices.Contains(market.Indices, symbol) {
		return "^" + symbol + suffix
	}
	return symbol + suffix
}

// Symbol maps a Yahoo ticker back to the local symbol
func Symbol(ticker string) string {
	return strings.TrimPrefix(strings.TrimSuffix(ticker, suffix), "^")
}

// PriceBoard quotes symbols
func (c *Client) PriceBoard(ctx context.Context, symbols []string) ([]market.Quote, error) {
	if len(symbols) == 0 {
		return nil, provider.Empty(c.Name(), "price board")
	}
	tickers := make([]string, len(symbols))
	for i, s := range symbols {
		tickers[i] = Ticker(s)
	}

	raw, err := call(ctx, func() ([]*finance.Quote, error) { return c.quotes(tickers) })
	if err != nil {
		return nil, provider.Upstream(c.Name(), err)
	}

	quotes := make([]market.Quote, 0, len(raw))
	for _, q := range raw {
		if q == nil || q.RegularMarketPrice == 0 {
			continue
		}
		quotes = append(quotes, toQuote(q))
	}
	if len(quotes) == 0 {
		return nil, provider.Empty(c.Name(), "price board")
	}
	return quotes, nil
}

func toQuote(q *finance.Quote) market.Quote {
	out := market.Quote{
		Symbol:    Symbol(q.Symbol),
		Name:      q.ShortName,
		Exchange:  exchange(q.FullExchangeName),
		Price:     q.RegularMarketPrice * PriceScale,
		RefPrice:  q.RegularMarketPreviousClose * PriceScale,
		Change:    market.Round2(q.RegularMarketChange * PriceScale),
		PctChange: market.Round2(q.RegularMarketChangePercent),
		Volume:    int64(q.RegularMarketVolume),
		High:      q.RegularMarketDayHigh * PriceScale,
		Low:       q.RegularMarketDayLow * PriceScale,
		Source:    provider.SourceYahoo,
	}
	if q.RegularMarketTime > 0 {
		out.Timestamp = time.Unix(int64(q.RegularMarketTime), 0).In(market.Location)
	}
	return out
}

// exchange maps Yahoo's exchange names (HoChiMinh, Hanoi) to board codes
func exchange(name string) string {
	switch strings.ToLower(name) {
	case "hochiminh", "ho chi minh", "hose":
		return "HOSE"
	case "hanoi", "hnx":
		return "HNX"
	default:
		return name
	}
}

// History fetches chart bars. Yahoo has no native 1W/1M alignment with the
// exchange calendar, so those are resampled from daily bars.
func (c *Client) History(ctx context.Context, symbol string, from, to time.Time, iv market.Interval) ([]market.Bar, error) {
	if to.Before(from) {
		return nil, market.InvalidInput("start date after end date")
	}

	params := &chart.Params{
		Symbol:   Ticker(symbol),
		Start:    datetime.New(&from),
		End:      datetime.New(&to),
		Interval: chartInterval(iv),
	}
	raw, err := call(ctx, func() ([]*finance.ChartBar, error) { return c.bars(params) })
	if err != nil {
		return nil, provider.Upstream(c.Name(), err)
	}

	bars := make([]market.Bar, 0, len(raw))
	for _, b := range raw {
		if b == nil || b.Close.IsZero() {
			continue
		}
		bars = append(bars, market.NewBar(
			time.Unix(int64(b.Timestamp), 0),
			b.Open.InexactFloat64()*PriceScale,
			b.High.InexactFloat64()*PriceScale,
			b.Low.InexactFloat64()*PriceScale,
			b.Close.InexactFloat64()*PriceScale,
			int64(b.Volume),
		))
	}

	bars = market.Clip(market.SortBars(bars), from, to)
	if iv == market.Interval1W || iv == market.Interval1M {
		bars = market.Resample(bars, iv)
	}
	if len(bars) == 0 {
		return nil, provider.Empty(c.Name(), "history "+symbol)
	}
	return bars, nil
}

func chartInterval(iv market.Interval) datetime.Interval {
	switch iv {
	case market.Interval1m, market.Interval5m, market.Interval15m, market.Interval30m:
		return datetime.Interval(iv.String())
	case market.Interval1H:
		return datetime.Interval("60m")
	default:
		return datetime.Interval("1d")
	}
}

// Intraday is not offered by the Yahoo adapter
func (c *Client) Intraday(_ context.Context, _ string, _, _ int) ([]market.Trade, error) {
	return nil, provider.Unsupported(c.Name(), "intraday")
}

// Company builds a profile from the quote's naming fields. Yahoo's quote
// endpoint carries no description or industry.
func (c *Client) Company(ctx context.Context, symbol string) (*market.Company, error) {
	ticker := Ticker(symbol)
	raw, err := call(ctx, func() ([]*finance.Quote, error) { return c.quotes([]string{ticker}) })
	if err != nil {
		return nil, provider.Upstream(c.Name(), err)
	}

	for _, q := range raw {
		if q == nil || Symbol(q.Symbol) != symbol {
			continue
		}
		name := q.LongName
		if name == "" {
			name = q.ShortName
		}
		if name == "" {
			break
		}
		return &market.Company{
			Symbol:   symbol,
			Name:     name,
			Exchange: exchange(q.FullExchangeName),
		}, nil
	}
	return nil, provider.Empty(c.Name(), "company "+symbol)
}

// Listing is not offered by the Yahoo adapter
func (c *Client) Listing(_ context.Context) ([]market.Listing, error) {
	return nil, provider.Unsupported(c.Name(), "listing")
}

// call runs a blocking finance-go request so that ctx cancellation returns
// promptly. finance-go has no context support.
func call[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn()
		done <- result{v, err}
	}()

	select {
	case r := <-done:
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		return zero, fmt.Errorf("yahoo request abandoned: %w", ctx.Err())
	}
}

var (
	_ provider.Provider = (*Client)(nil)
	_ provider.Prober   = (*Client)(nil)
)
