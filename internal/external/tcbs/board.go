package tcbs

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/vanlang/stock-api/internal/market"
	"github.com/vanlang/stock-api/internal/provider"
	"github.com/vanlang/stock-api/internal/tabular"
)

// boardLayouts are the known second-tc-price row shapes
var boardLayouts = []*tabular.Layout{
	{
		Name: "tcbs.short",
		Columns: map[tabular.Field][]string{
			tabular.Symbol:    {"t"},
			tabular.Price:     {"cp"},
			tabular.RefPrice:  {"rp", "bp"},
			tabular.Change:    {"ch"},
			tabular.PctChange: {"chp"},
			tabular.Volume:    {"tv", "av"},
			tabular.High:      {"h"},
			tabular.Low:       {"l"},
		},
		Required: []tabular.Field{tabular.Symbol, tabular.Price},
	},
	{
		Name: "tcbs.long",
		Columns: map[tabular.Field][]string{
			tabular.Symbol:    {"ticker"},
			tabular.Name:      {"shortName", "companyName"},
			tabular.Exchange:  {"exchange"},
			tabular.Price:     {"closePrice", "price", "matchPrice"},
			tabular.RefPrice:  {"refPrice", "basicPrice"},
			tabular.Change:    {"priceChange"},
			tabular.PctChange: {"percentPriceChange", "pctChange"},
			tabular.Volume:    {"totalVolume", "volume"},
			tabular.High:      {"highPrice", "high"},
			tabular.Low:       {"lowPrice", "low"},
		},
		Required: []tabular.Field{tabular.Symbol, tabular.Price},
	},
}

type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// PriceBoard fetches current quotes for symbols
// GET /stock-insight/v1/stock/second-tc-price?tickers=
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
	params := url.Values{}
	params.Set("tickers", strings.Join(symbols, ","))

	var env dataEnvelope
	if err := c.httpClient.GetJSON(ctx, c.url("/stock-insight/v1/stock/second-tc-price", params), &env); err != nil {
		return nil, provider.Upstream(c.Name(), err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, provider.Empty(c.Name(), "price board")
	}

	rows, err := tabular.DecodeRows(env.Data)
	if err != nil {
		return nil, provider.Schema(c.Name(), err)
	}
	if len(rows) == 0 {
		return nil, provider.Empty(c.Name(), "price board")
	}
	return rows, nil
}
