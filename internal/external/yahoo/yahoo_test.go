package yahoo

import (
	"context"
	"errors"
	"testing"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanlang/stock-api/internal/market"
	"github.com/vanlang/stock-api/internal/provider"
	"github.com/vanlang/stock-api/pkg/logger"
)

func TestTickerMapping(t *testing.T) {
	assert.Equal(t, "VNM.VN", Ticker("VNM"))
	assert.Equal(t, "^VNINDEX.VN", Ticker("VNINDEX"))
	assert.Equal(t, "VNM", Symbol("VNM.VN"))
	assert.Equal(t, "VNINDEX", Symbol("^VNINDEX.VN"))
}

func TestPriceBoard(t *testing.T) {
	c := NewClient(logger.Nop())
	c.quotes = func(tickers []string) ([]*finance.Quote, error) {
		assert.Equal(t, []string{"VNM.VN", "FPT.VN"}, tickers)
		return []*finance.Quote{
			{
				Symbol:                     "VNM.VN",
				ShortName:                  "VINAMILK",
				FullExchangeName:           "HoChiMinh",
				RegularMarketPrice:         71000,
				RegularMarketPreviousClose: 70000,
				RegularMarketChange:        1000,
				RegularMarketChangePercent: 1.428571,
				RegularMarketVolume:        1200000,
				RegularMarketTime:          1704178800,
			},
			{Symbol: "FPT.VN"},
		}, nil
	}

	quotes, err := c.PriceBoard(context.Background(), []string{"VNM", "FPT"})
	require.NoError(t, err)
	require.Len(t, quotes, 1, "zero-price quotes are dropped")
	assert.Equal(t, "VNM", quotes[0].Symbol)
	assert.Equal(t, "HOSE", quotes[0].Exchange)
	assert.Equal(t, 1.43, quotes[0].PctChange)
	assert.Equal(t, int64(1200000), quotes[0].Volume)
	assert.Equal(t, provider.SourceYahoo, quotes[0].Source)
	assert.False(t, quotes[0].Timestamp.IsZero())
}

func TestPriceBoardErrors(t *testing.T) {
	c := NewClient(logger.Nop())
	c.quotes = func([]string) ([]*finance.Quote, error) { return nil, errors.New("remote error") }
	_, err := c.PriceBoard(context.Background(), []string{"VNM"})
	assert.ErrorIs(t, err, provider.ErrUpstream)

	c.quotes = func([]string) ([]*finance.Quote, error) { return nil, nil }
	_, err = c.PriceBoard(context.Background(), []string{"VNM"})
	assert.ErrorIs(t, err, provider.ErrEmpty)
}

func TestCallHonorsContext(t *testing.T) {
	c := NewClient(logger.Nop())
	block := make(chan struct{})
	defer close(block)
	c.quotes = func([]string) ([]*finance.Quote, error) {
		<-block
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := c.PriceBoard(ctx, []string{"VNM"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHistory(t *testing.T) {
	c := NewClient(logger.Nop())
	c.bars = func(p *chart.Params) ([]*finance.ChartBar, error) {
		assert.Equal(t, "VNM.VN", p.Symbol)
		assert.Equal(t, "1d", string(p.Interval))
		return []*finance.ChartBar{
			{Open: decimal.NewFromInt(70000), High: decimal.NewFromInt(71000), Low: decimal.NewFromInt(69000), Close: decimal.NewFromInt(70500), Volume: 100, Timestamp: 1704160800},
			{Open: decimal.NewFromInt(70500), High: decimal.NewFromInt(72000), Low: decimal.NewFromInt(70000), Close: decimal.Zero, Volume: 0, Timestamp: 1704247200},
		}, nil
	}

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, market.Location)
	to := time.Date(2024, 1, 5, 0, 0, 0, 0, market.Location)
	bars, err := c.History(context.Background(), "VNM", from, to, market.Interval1D)
	require.NoError(t, err)
	require.Len(t, bars, 1, "bars without a close are skipped")
	assert.Equal(t, "2024-01-02", bars[0].Date)
	assert.Equal(t, 70500.0, bars[0].Close)
}

func TestCompany(t *testing.T) {
	c := NewClient(logger.Nop())
	assert.True(t, c.Capabilities().Has(provider.CapCompany))

	c.quotes = func(tickers []string) ([]*finance.Quote, error) {
		assert.Equal(t, []string{"FPT.VN"}, tickers)
		return []*finance.Quote{{
			Symbol:           "FPT.VN",
			ShortName:        "FPT CORP",
			LongName:         "FPT Corporation",
			FullExchangeName: "HoChiMinh",
		}}, nil
	}
	company, err := c.Company(context.Background(), "FPT")
	require.NoError(t, err)
	assert.Equal(t, "FPT", company.Symbol)
	assert.Equal(t, "FPT Corporation", company.Name)
	assert.Equal(t, "HOSE", company.Exchange)

	c.quotes = func([]string) ([]*finance.Quote, error) {
		return []*finance.Quote{{Symbol: "FPT.VN"}}, nil
	}
	_, err = c.Company(context.Background(), "FPT")
	assert.ErrorIs(t, err, provider.ErrEmpty)

	c.quotes = func([]string) ([]*finance.Quote, error) { return nil, errors.New("remote error") }
	_, err = c.Company(context.Background(), "FPT")
	assert.ErrorIs(t, err, provider.ErrUpstream)
}

func TestUnsupported(t *testing.T) {
	c := NewClient(logger.Nop())
	_, err := c.Intraday(context.Background(), "VNM", 0, 10)
	assert.ErrorIs(t, err, provider.ErrUnsupported)
	_, err = c.Listing(context.Background())
	assert.ErrorIs(t, err, provider.ErrUnsupported)
}
