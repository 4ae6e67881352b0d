package vci

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/vanlang/stock-api/internal/market"
	"github.com/vanlang/stock-api/internal/provider"
)

type intradayRequest struct {
	Symbol    string  `json:"symbol"`
	Limit     int     `json:"limit"`
	TruncTime *string `json:"truncTime"`
}

type match struct {
	TruncTime  json.Number `json:"truncTime"`
	MatchPrice json.Number `json:"matchPrice"`
	MatchVol   json.Number `json:"matchVol"`
	MatchType  string      `json:"matchType"`
}

// Intraday fetches one page of matches, newest first
// POST /api/market-watch/LEData/getAll
func (c *Client) Intraday(ctx context.Context, symbol string, page, pageSize int) ([]market.Trade, error) {
	if pageSize <= 0 {
		pageSize = 100
	}
	// the endpoint only pages by cursor; fetch through the requested page and slice
	req := intradayRequest{Symbol: symbol, Limit: (page + 1) * pageSize}

	var matches []match
	if err := c.httpClient.PostJSONInto(ctx, c.url("/api/market-watch/LEData/getAll"), req, &matches); err != nil {
		return nil, provider.Upstream(c.Name(), err)
	}

	start := page * pageSize
	if start >= len(matches) {
		return nil, provider.Empty(c.Name(), "intraday "+symbol)
	}
	end := min(start+pageSize, len(matches))

	trades := make([]market.Trade, 0, end-start)
	for _, m := range matches[start:end] {
		ts, _ := m.TruncTime.Int64()
		trades = append(trades, market.Trade{
			Time:   time.Unix(ts, 0).In(market.Location),
			Price:  num(m.MatchPrice) * PriceScale,
			Volume: int64(num(m.MatchVol)),
			Side:   market.ParseSide(strings.ToUpper(m.MatchType)),
		})
	}
	return trades, nil
}
