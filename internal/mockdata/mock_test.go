package mockdata

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanlang/stock-api/internal/market"
	"github.com/vanlang/stock-api/internal/provider"
)

func TestSeedTable(t *testing.T) {
	stocks := Stocks()
	require.NotEmpty(t, stocks)

	seen := map[string]bool{}
	for _, s := range stocks {
		assert.False(t, seen[s.Symbol], "duplicate %s", s.Symbol)
		seen[s.Symbol] = true
		assert.Positive(t, s.BasePrice, s.Symbol)
		assert.NotEmpty(t, s.Name, s.Symbol)
		assert.NotEmpty(t, s.Industry, s.Symbol)
	}

	vcb, ok := Lookup("VCB")
	require.True(t, ok)
	assert.Equal(t, 85000.0, vcb.BasePrice)
	assert.True(t, Known("FPT"))
	assert.False(t, Known("ZZZ"))
}

func TestBasePriceUnknownSymbol(t *testing.T) {
	p := BasePrice("ZZZ")
	assert.Equal(t, p, BasePrice("ZZZ"), "hash base is stable")
	assert.GreaterOrEqual(t, p, 10_000.0)
	assert.LessOrEqual(t, p, 110_000.0)
	assert.Zero(t, int64(p)%100)

	assert.Equal(t, 1250.0, BasePrice("VNINDEX"))
}

func TestQuoteStaysWithinVariation(t *testing.T) {
	src := New(0.05)
	for _, sym := range []string{"VCB", "SAB", "ZZZ"} {
		base := BasePrice(sym)
		for i := 0; i < 500; i++ {
			q := src.Quote(sym)
			assert.GreaterOrEqual(t, q.Price, base*0.95-0.01, sym)
			assert.LessOrEqual(t, q.Price, base*1.05+0.01, sym)
			assert.Equal(t, Name, q.Source)
		}
	}
}

func TestQuoteExtremes(t *testing.T) {
	src := New(0.05)
	src.uniform = func() float64 { return 1 }
	q := src.Quote("VCB")
	assert.Equal(t, 89250.0, q.Price)
	assert.Equal(t, 4250.0, q.Change)
	assert.Equal(t, 5.0, q.PctChange)
	assert.Equal(t, "Vietcombank", q.Name)
	assert.Equal(t, "Ngân hàng", q.Industry)

	src.uniform = func() float64 { return 0 }
	q = src.Quote("VCB")
	assert.Equal(t, 80750.0, q.Price)
	assert.Equal(t, -5.0, q.PctChange)
}

func TestZeroVariationIsBase(t *testing.T) {
	q := New(0).Quote("FPT")
	assert.Equal(t, 90000.0, q.Price)
	assert.Zero(t, q.Change)
}

func TestHistory(t *testing.T) {
	src := New(0.05)
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, market.Location) // Monday
	to := time.Date(2024, 1, 14, 23, 59, 0, 0, market.Location)

	bars, err := src.History(context.Background(), "VNM", from, to, market.Interval1D)
	require.NoError(t, err)
	assert.Len(t, bars, 10, "weekends skipped")
	assert.Equal(t, "2024-01-01", bars[0].Date)
	for i, b := range bars {
		assert.LessOrEqual(t, b.Low, b.Open)
		assert.LessOrEqual(t, b.Low, b.Close)
		assert.GreaterOrEqual(t, b.High, b.Open)
		assert.GreaterOrEqual(t, b.High, b.Close)
		if i > 0 {
			assert.True(t, b.Time.After(bars[i-1].Time))
			assert.Equal(t, bars[i-1].Close, b.Open)
		}
	}

	_, err = src.History(context.Background(), "VNM", to, from, market.Interval1D)
	assert.ErrorIs(t, err, market.ErrInvalidInput)

	sat := time.Date(2024, 1, 6, 0, 0, 0, 0, market.Location)
	_, err = src.History(context.Background(), "VNM", sat, sat.Add(12*time.Hour), market.Interval1D)
	assert.ErrorIs(t, err, provider.ErrEmpty)
}

func TestIntradayHistoryHours(t *testing.T) {
	src := New(0.05)
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, market.Location)
	bars, err := src.History(context.Background(), "HPG", day, day.Add(24*time.Hour-time.Second), market.Interval1H)
	require.NoError(t, err)
	assert.Len(t, bars, 6)
	assert.Equal(t, 9, bars[0].Time.Hour())
}

func TestIntraday(t *testing.T) {
	src := New(0.05)
	now := time.Date(2024, 1, 2, 14, 0, 0, 0, market.Location)
	src.now = func() time.Time { return now }

	trades, err := src.Intraday(context.Background(), "FPT", 1, 10)
	require.NoError(t, err)
	require.Len(t, trades, 10)
	assert.Equal(t, now.Add(-30*time.Second), trades[0].Time)
	for _, tr := range trades {
		assert.Contains(t, []market.Side{market.SideBuy, market.SideSell}, tr.Side)
		assert.Positive(t, tr.Volume)
	}
}

func TestCompanyAndListing(t *testing.T) {
	src := New(0.05)
	c, err := src.Company(context.Background(), "VNG")
	require.NoError(t, err)
	assert.Equal(t, "UPCOM", c.Exchange)
	assert.Equal(t, "2004", c.Founded)

	_, err = src.Company(context.Background(), "ZZZ")
	assert.ErrorIs(t, err, provider.ErrEmpty)

	listings, err := src.Listing(context.Background())
	require.NoError(t, err)
	assert.Len(t, listings, len(seed))
	assert.Equal(t, "BID", listings[0].Symbol)
}
