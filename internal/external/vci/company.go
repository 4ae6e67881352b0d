package vci

import (
	"context"
	"fmt"
	"strings"

	"github.com/vanlang/stock-api/internal/external"
	"github.com/vanlang/stock-api/internal/market"
	"github.com/vanlang/stock-api/internal/provider"
)

const companyQuery = `query Query($ticker: String!, $lang: String!) {
  CompanyListingInfo(ticker: $ticker) {
    organName
    shortName
    icbName3
    companyProfile
    website
    foundingDate
    numberOfEmployees
  }
  TickerPriceInfo(ticker: $ticker) {
    exchange
  }
}`

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type companyResponse struct {
	Data struct {
		CompanyListingInfo *struct {
			OrganName         string  `json:"organName"`
			ShortName         string  `json:"shortName"`
			IcbName3          string  `json:"icbName3"`
			CompanyProfile    string  `json:"companyProfile"`
			Website           string  `json:"website"`
			FoundingDate      string  `json:"foundingDate"`
			NumberOfEmployees float64 `json:"numberOfEmployees"`
		} `json:"CompanyListingInfo"`
		TickerPriceInfo *struct {
			Exchange string `json:"exchange"`
		} `json:"TickerPriceInfo"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Company fetches the company profile
// POST /data-mt/graphql
func (c *Client) Company(ctx context.Context, symbol string) (*market.Company, error) {
	req := graphQLRequest{
		Query:     companyQuery,
		Variables: map[string]any{"ticker": symbol, "lang": "vi"},
	}

	var resp companyResponse
	if err := c.httpClient.PostJSONInto(ctx, c.url("/data-mt/graphql"), req, &resp); err != nil {
		return nil, provider.Upstream(c.Name(), err)
	}
	if len(resp.Errors) > 0 {
		return nil, provider.Upstream(c.Name(), fmt.Errorf("graphql: %s", resp.Errors[0].Message))
	}

	info := resp.Data.CompanyListingInfo
	if info == nil || info.OrganName == "" {
		return nil, provider.Empty(c.Name(), "company "+symbol)
	}

	company := &market.Company{
		Symbol:      symbol,
		Name:        info.OrganName,
		Industry:    info.IcbName3,
		Description: external.StripHTML(info.CompanyProfile),
		Website:     info.Website,
		Founded:     founded(info.FoundingDate),
		Employees:   int64(info.NumberOfEmployees),
	}
	if resp.Data.TickerPriceInfo != nil {
		company.Exchange = resp.Data.TickerPriceInfo.Exchange
	}
	return company, nil
}

// founded keeps the year of a founding date like "1976-08-20" or "20/08/1976"
func founded(date string) string {
	date = strings.TrimSpace(date)
	if len(date) >= 4 && isDigits(date[:4]) {
		return date[:4]
	}
	if n := len(date); n >= 4 && isDigits(date[n-4:]) {
		return date[n-4:]
	}
	return date
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
