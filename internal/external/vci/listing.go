package vci

import (
	"context"

	"github.com/vanlang/stock-api/internal/market"
	"github.com/vanlang/stock-api/internal/provider"
	"github.com/vanlang/stock-api/internal/tabular"
)

type symbolInfo struct {
	Symbol    string `json:"symbol"`
	Board     string `json:"board"`
	Type      string `json:"type"`
	OrganName string `json:"organName"`
}

// Listing fetches every listed symbol
// GET /api/price/symbols/getAll
func (c *Client) Listing(ctx context.Context) ([]market.Listing, error) {
	var infos []symbolInfo
	if err := c.httpClient.GetJSON(ctx, c.url("/api/price/symbols/getAll"), &infos); err != nil {
		return nil, provider.Upstream(c.Name(), err)
	}

	listings := make([]market.Listing, 0, len(infos))
	for _, info := range infos {
		symbol := market.CleanSymbol(info.Symbol)
		if !market.ValidSymbol(symbol) {
			continue
		}
		listings = append(listings, market.Listing{
			Symbol:   symbol,
			Name:     info.OrganName,
			Exchange: tabular.NormalizeExchange(info.Board),
			Type:     info.Type,
		})
	}
	if len(listings) == 0 {
		return nil, provider.Empty(c.Name(), "listing")
	}
	return listings, nil
}
