package vci

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vanlang/stock-api/internal/market"
	"github.com/vanlang/stock-api/internal/provider"
)

const maxCountBack = 10000

type chartRequest struct {
	TimeFrame string   `json:"timeFrame"`
	Symbols   []string `json:"symbols"`
	To        int64    `json:"to"`
	CountBack int      `json:"countBack"`
}

// chartSeries is one symbol's columnar OHLCV response
type chartSeries struct {
	Symbol string        `json:"symbol"`
	O      []json.Number `json:"o"`
	H      []json.Number `json:"h"`
	L      []json.Number `json:"l"`
	C      []json.Number `json:"c"`
	V      []json.Number `json:"v"`
	T      []json.Number `json:"t"`
}

// History fetches OHLCV bars for symbol in [from, to]
// POST /api/chart/OHLCChart/gap-chart
func (c *Client) History(ctx context.Context, symbol string, from, to time.Time, iv market.Interval) ([]market.Bar, error) {
	if to.Before(from) {
		return nil, market.InvalidInput("start date after end date")
	}

	tf := timeFrame(iv)
	req := chartRequest{
		TimeFrame: tf,
		Symbols:   []string{symbol},
		To:        to.Unix(),
		CountBack: countBack(from, to, tf),
	}

	var series []chartSeries
	if err := c.httpClient.PostJSONInto(ctx, c.url("/api/chart/OHLCChart/gap-chart"), req, &series); err != nil {
		return nil, provider.Upstream(c.Name(), err)
	}
	if len(series) == 0 {
		return nil, provider.Empty(c.Name(), "history "+symbol)
	}

	bars, err := series[0].bars()
	if err != nil {
		return nil, provider.Schema(c.Name(), err)
	}
	bars = market.Clip(market.SortBars(bars), from, to)
	if (tf == "ONE_MINUTE" && iv != market.Interval1m) || (tf == "ONE_DAY" && iv != market.Interval1D) {
		bars = market.Resample(bars, iv)
	}
	if len(bars) == 0 {
		return nil, provider.Empty(c.Name(), "history "+symbol)
	}
	return bars, nil
}

func (s chartSeries) bars() ([]market.Bar, error) {
	n := len(s.T)
	if len(s.O) != n || len(s.H) != n || len(s.L) != n || len(s.C) != n {
		return nil, fmt.Errorf("ragged chart columns: t=%d o=%d h=%d l=%d c=%d", n, len(s.O), len(s.H), len(s.L), len(s.C))
	}

	bars := make([]market.Bar, 0, n)
	for i := 0; i < n; i++ {
		ts, err := s.T[i].Int64()
		if err != nil {
			return nil, fmt.Errorf("bad timestamp %q: %w", s.T[i], err)
		}
		var vol int64
		if i < len(s.V) {
			vol = int64(num(s.V[i]))
		}
		bars = append(bars, market.NewBar(
			time.Unix(ts, 0),
			num(s.O[i])*PriceScale,
			num(s.H[i])*PriceScale,
			num(s.L[i])*PriceScale,
			num(s.C[i])*PriceScale,
			vol,
		))
	}
	return bars, nil
}

func num(n json.Number) float64 {
	f, err := n.Float64()
	if err != nil {
		return 0
	}
	return f
}

// countBack estimates how many base bars cover [from, to]
func countBack(from, to time.Time, tf string) int {
	step := 24 * time.Hour
	switch tf {
	case "ONE_MINUTE":
		step = time.Minute
	case "ONE_HOUR":
		step = time.Hour
	}
	n := int(to.Sub(from)/step) + 1
	if n > maxCountBack {
		n = maxCountBack
	}
	return n
}
