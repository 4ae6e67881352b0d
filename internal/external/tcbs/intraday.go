package tcbs

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/vanlang/stock-api/internal/market"
	"github.com/vanlang/stock-api/internal/provider"
)

type intradayResponse struct {
	Ticker string `json:"ticker"`
	Total  int    `json:"total"`
	Data   []struct {
		Price  float64 `json:"p"`
		Volume float64 `json:"v"`
		Side   string  `json:"a"`
		Time   string  `json:"t"`
	} `json:"data"`
}

// Intraday fetches one page of today's matches, newest first
// GET /stock-insight/v1/intraday/{symbol}/his/paging
func (c *Client) Intraday(ctx context.Context, symbol string, page, pageSize int) ([]market.Trade, error) {
	if pageSize <= 0 {
		pageSize = 100
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("size", strconv.Itoa(pageSize))
	params.Set("headIndex", "-1")

	var resp intradayResponse
	if err := c.httpClient.GetJSON(ctx, c.url("/stock-insight/v1/intraday/"+url.PathEscape(symbol)+"/his/paging", params), &resp); err != nil {
		return nil, provider.Upstream(c.Name(), err)
	}
	if len(resp.Data) == 0 {
		return nil, provider.Empty(c.Name(), "intraday "+symbol)
	}

	today := c.now().In(market.Location)
	trades := make([]market.Trade, 0, len(resp.Data))
	for _, d := range resp.Data {
		trades = append(trades, market.Trade{
			Time:   clockOn(today, d.Time),
			Price:  d.Price * PriceScale,
			Volume: int64(d.Volume),
			Side:   market.ParseSide(d.Side),
		})
	}
	return trades, nil
}

// clockOn combines an "HH:MM:SS" match time with the trading day
func clockOn(day time.Time, clock string) time.Time {
	t, err := time.Parse("15:04:05", clock)
	if err != nil {
		return day
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), t.Second(), 0, market.Location)
}
