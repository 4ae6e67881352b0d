package vci

import (
	"context"
	"encoding/json"

	"github.com/vanlang/stock-api/internal/market"
	"github.com/vanlang/stock-api/internal/provider"
	"github.com/vanlang/stock-api/internal/tabular"
)

// boardLayouts are the known getList response shapes, newest first
var boardLayouts = []*tabular.Layout{
	{
		Name: "vci.nested",
		Columns: map[tabular.Field][]string{
			tabular.Symbol:    {"listingInfo.symbol"},
			tabular.Name:      {"listingInfo.organName", "listingInfo.organShortName"},
			tabular.Exchange:  {"listingInfo.board"},
			tabular.Price:     {"matchPrice.matchPrice", "matchPrice.closePrice"},
			tabular.RefPrice:  {"listingInfo.refPrice", "matchPrice.referencePrice"},
			tabular.Volume:    {"matchPrice.accumulatedVolume", "matchPrice.matchVol"},
			tabular.High:      {"matchPrice.highest"},
			tabular.Low:       {"matchPrice.lowest"},
			tabular.Open:      {"matchPrice.openPrice"},
			tabular.PctChange: {"matchPrice.priceChangePercent"},
		},
		Required: []tabular.Field{tabular.Symbol, tabular.Price},
	},
	{
		Name: "vci.flat",
		Columns: map[tabular.Field][]string{
			tabular.Symbol:    {"symbol", "ticker"},
			tabular.Name:      {"organName", "companyName"},
			tabular.Exchange:  {"board", "exchange"},
			tabular.Price:     {"matchPrice", "closePrice", "lastPrice"},
			tabular.RefPrice:  {"refPrice", "referencePrice"},
			tabular.Change:    {"priceChange"},
			tabular.PctChange: {"priceChangePercent", "percentChange"},
			tabular.Volume:    {"accumulatedVolume", "totalVolume", "matchVol"},
			tabular.High:      {"highest", "highPrice"},
			tabular.Low:       {"lowest", "lowPrice"},
		},
		Required: []tabular.Field{tabular.Symbol, tabular.Price},
	},
}

type boardRequest struct {
	Symbols []string `json:"symbols"`
}

// PriceBoard fetches current quotes for symbols
// POST /api/price/symbols/getList
func (c *Client) PriceBoard(ctx context.Context, symbols []string) ([]market.Quote, error) {
	if len(symbols) == 0 {
		return nil, provider.Empty(c.Name(), "price board")
	}

	rows, err := c.boardRows(ctx, symbols)
	if err != nil {
		return nil, err
	}
	l, err := c.detect(rows)
	if err != nil {
		return nil, err
	}

	quotes := tabular.Quotes(l, rows, symbols, PriceScale)
	if len(quotes) == 0 {
		return nil, provider.Empty(c.Name(), "price board")
	}
	for i := range quotes {
		quotes[i].Source = c.Name()
	}
	return quotes, nil
}

func (c *Client) boardRows(ctx context.Context, symbols []string) ([]tabular.Row, error) {
	var raw json.RawMessage
	if err := c.httpClient.PostJSONInto(ctx, c.url("/api/price/symbols/getList"), boardRequest{Symbols: symbols}, &raw); err != nil {
		return nil, provider.Upstream(c.Name(), err)
	}

	rows, err := tabular.DecodeRows(raw)
	if err != nil {
		return nil, provider.Schema(c.Name(), err)
	}
	if len(rows) == 0 {
		return nil, provider.Empty(c.Name(), "price board")
	}
	return rows, nil
}
