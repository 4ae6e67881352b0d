// Package mockdata is the synthetic fallback tier: a fixed seed table of
// well-known tickers plus a Provider that jitters seed prices and invents
// bars, trades and profiles for them.
package mockdata

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"sort"
	"strconv"
	"time"

	"github.com/vanlang/stock-api/internal/market"
	"github.com/vanlang/stock-api/internal/provider"
)

const (
	// Name is the source label on synthetic data
	Name = provider.SourceMock

	maxBars     = 5000
	maxPageSize = 1000
)

var bySymbol = func() map[string]Stock {
	m := make(map[string]Stock, len(seed))
	for _, s := range seed {
		m[s.Symbol] = s
	}
	return m
}()

// Known reports whether symbol is in the seed table
func Known(symbol string) bool {
	_, ok := bySymbol[symbol]
	return ok
}

// Lookup returns the seed row for symbol
func Lookup(symbol string) (Stock, bool) {
	s, ok := bySymbol[symbol]
	return s, ok
}

// Stocks returns the seed table sorted by symbol
func Stocks() []Stock {
	out := make([]Stock, len(seed))
	copy(out, seed)
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// BasePrice is the seed price, the index level for index symbols, or a
// stable hash-derived price in [10,000, 110,000] rounded to 100 otherwise.
func BasePrice(symbol string) float64 {
	if s, ok := bySymbol[symbol]; ok {
		return s.BasePrice
	}
	if v, ok := indexBases[symbol]; ok {
		return v
	}
	return 10_000 + float64(hash(symbol)%1001)*100
}

func baseVolume(symbol string) int64 {
	return 100_000 + int64(hash(symbol)%4_900_000)
}

func hash(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}

// Source implements provider.Provider over the seed table
type Source struct {
	variation float64
	uniform   func() float64
	now       func() time.Time
}

// New creates a mock source whose prices stay within ±variation of the base
func New(variation float64) *Source {
	if variation < 0 {
		variation = 0
	}
	return &Source{
		variation: variation,
		uniform:   rand.Float64,
		now:       time.Now,
	}
}

// Name returns MOCK
func (s *Source) Name() string {
	return Name
}

// Capabilities covers every operation
func (s *Source) Capabilities() provider.Capabilities {
	return provider.CapAll
}

// Probe always succeeds
func (s *Source) Probe(_ context.Context) (string, error) {
	return "seed", nil
}

// jitter returns a factor in [1-v, 1+v]
func (s *Source) jitter() float64 {
	return 1 + (s.uniform()*2-1)*s.variation
}

// Quote synthesizes one quote. Unknown symbols get a hash-derived base.
func (s *Source) Quote(symbol string) market.Quote {
	base := BasePrice(symbol)
	price := clamp(market.Round2(base*s.jitter()), base, s.variation)

	q := market.Quote{
		Symbol:    symbol,
		Name:      symbol,
		Price:     price,
		Volume:    int64(float64(baseVolume(symbol)) * (1 + (s.uniform()*2-1)*0.2)),
		High:      math.Max(price, base),
		Low:       math.Min(price, base),
		Source:    Name,
		Timestamp: s.now(),
	}
	q.ChangeFrom(base)
	if st, ok := bySymbol[symbol]; ok {
		q.Name = st.Name
		q.Industry = st.Industry
		q.Exchange = st.Exchange
	}
	return q
}

// clamp keeps a rounded price inside the variation band
func clamp(price, base, v float64) float64 {
	lo, hi := market.Round2(base*(1-v)), market.Round2(base*(1+v))
	if price < lo {
		return lo
	}
	if price > hi {
		return hi
	}
	return price
}

// PriceBoard synthesizes a quote per requested symbol
func (s *Source) PriceBoard(_ context.Context, symbols []string) ([]market.Quote, error) {
	if len(symbols) == 0 {
		return nil, provider.Empty(Name, "price board")
	}
	out := make([]market.Quote, 0, len(symbols))
	for _, sym := range symbols {
		out = append(out, s.Quote(sym))
	}
	return out, nil
}

// History walks randomly from the base price across [from, to]. Daily and
// coarser bars skip weekends; intraday bars are confined to trading hours.
func (s *Source) History(_ context.Context, symbol string, from, to time.Time, iv market.Interval) ([]market.Bar, error) {
	if to.Before(from) {
		return nil, market.InvalidInput("start date after end date")
	}

	price := BasePrice(symbol)
	vol := baseVolume(symbol)
	step := iv.Step()
	bars := make([]market.Bar, 0, 64)

	for t := align(from, iv); !t.After(to) && len(bars) < maxBars; t = t.Add(step) {
		if !tradingTime(t, iv) {
			continue
		}
		open := price
		drift := (s.uniform()*2 - 1) * 0.02
		closePx := market.Round2(math.Max(open*(1+drift), 1))
		high := market.Round2(math.Max(open, closePx) * (1 + s.uniform()*0.01))
		low := market.Round2(math.Min(open, closePx) * (1 - s.uniform()*0.01))
		v := int64(float64(vol) * (0.5 + s.uniform()))

		bars = append(bars, market.NewBar(t, market.Round2(open), high, low, closePx, v))
		price = closePx
	}

	if len(bars) == 0 {
		return nil, provider.Empty(Name, "history "+symbol)
	}
	return bars, nil
}

func align(t time.Time, iv market.Interval) time.Time {
	t = t.In(market.Location)
	if iv.Intraday() {
		return t.Truncate(iv.Step())
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, market.Location)
}

func tradingTime(t time.Time, iv market.Interval) bool {
	wd := t.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return iv == market.Interval1W || iv == market.Interval1M
	}
	if !iv.Intraday() {
		return true
	}
	mins := t.Hour()*60 + t.Minute()
	return mins >= 9*60 && mins < 15*60
}

// Intraday synthesizes page of matches going back from now
func (s *Source) Intraday(_ context.Context, symbol string, page, pageSize int) ([]market.Trade, error) {
	if pageSize <= 0 {
		pageSize = 100
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if page < 0 {
		page = 0
	}

	base := BasePrice(symbol)
	now := s.now().In(market.Location)
	offset := page * pageSize
	trades := make([]market.Trade, 0, pageSize)
	for i := 0; i < pageSize; i++ {
		side := market.SideBuy
		if s.uniform() < 0.5 {
			side = market.SideSell
		}
		trades = append(trades, market.Trade{
			Time:   now.Add(-time.Duration(offset+i) * 3 * time.Second),
			Price:  clamp(market.Round2(base*s.jitter()), base, s.variation),
			Volume: 100 * int64(1+s.uniform()*50),
			Side:   side,
		})
	}
	return trades, nil
}

// Company builds a profile from the seed table
func (s *Source) Company(_ context.Context, symbol string) (*market.Company, error) {
	st, ok := bySymbol[symbol]
	if !ok {
		return nil, provider.Empty(Name, "company "+symbol)
	}
	c := &market.Company{
		Symbol:      st.Symbol,
		Name:        st.Name,
		Industry:    st.Industry,
		Exchange:    st.Exchange,
		Description: st.Description,
	}
	if st.Founded > 0 {
		c.Founded = strconv.Itoa(st.Founded)
	}
	return c, nil
}

// Listing returns the seed table as listings
func (s *Source) Listing(_ context.Context) ([]market.Listing, error) {
	stocks := Stocks()
	out := make([]market.Listing, 0, len(stocks))
	for _, st := range stocks {
		out = append(out, market.Listing{
			Symbol:   st.Symbol,
			Name:     st.Name,
			Exchange: st.Exchange,
			Type:     "STOCK",
		})
	}
	return out, nil
}

var _ provider.Provider = (*Source)(nil)
var _ provider.Prober = (*Source)(nil)
