package tcbs

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/vanlang/stock-api/internal/market"
	"github.com/vanlang/stock-api/internal/provider"
)

type barsResponse struct {
	Ticker string `json:"ticker"`
	Data   []struct {
		Open        float64 `json:"open"`
		High        float64 `json:"high"`
		Low         float64 `json:"low"`
		Close       float64 `json:"close"`
		Volume      float64 `json:"volume"`
		TradingDate string  `json:"tradingDate"`
	} `json:"data"`
}

// History fetches OHLCV bars for symbol in [from, to]
// GET /stock-insight/v2/stock/bars-long-term (daily) or /bars (intraday)
func (c *Client) History(ctx context.Context, symbol string, from, to time.Time, iv market.Interval) ([]market.Bar, error) {
	if to.Before(from) {
		return nil, market.InvalidInput("start date after end date")
	}

	path := "/stock-insight/v2/stock/bars-long-term"
	if iv.Intraday() {
		path = "/stock-insight/v2/stock/bars"
	}

	params := url.Values{}
	params.Set("ticker", symbol)
	params.Set("type", assetType(symbol))
	params.Set("resolution", resolution(iv))
	params.Set("from", strconv.FormatInt(from.Unix(), 10))
	params.Set("to", strconv.FormatInt(to.Unix(), 10))

	var resp barsResponse
	if err := c.httpClient.GetJSON(ctx, c.url(path, params), &resp); err != nil {
		return nil, provider.Upstream(c.Name(), err)
	}

	bars := make([]market.Bar, 0, len(resp.Data))
	for _, d := range resp.Data {
		t, err := parseTradingDate(d.TradingDate)
		if err != nil {
			return nil, provider.Schema(c.Name(), err)
		}
		bars = append(bars, market.NewBar(t,
			d.Open*PriceScale, d.High*PriceScale, d.Low*PriceScale, d.Close*PriceScale,
			int64(d.Volume)))
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

// resolution maps an interval to the TCBS bar resolution. Weekly and
// monthly bars are resampled from daily ones.
func resolution(iv market.Interval) string {
	switch iv {
	case market.Interval1m:
		return "1"
	case market.Interval5m:
		return "5"
	case market.Interval15m:
		return "15"
	case market.Interval30m:
		return "30"
	case market.Interval1H:
		return "60"
	default:
		return "D"
	}
}

func parseTradingDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", market.DateLayout} {
		if t, err := time.ParseInLocation(layout, s, market.Location); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("bad tradingDate %q", s)
}
