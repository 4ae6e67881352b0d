package tcbs

import (
	"context"
	"errors"
	"net/url"

	"github.com/vanlang/stock-api/internal/external"
	"github.com/vanlang/stock-api/internal/market"
	"github.com/vanlang/stock-api/internal/provider"
)

type overviewResponse struct {
	Ticker          string  `json:"ticker"`
	Exchange        string  `json:"exchange"`
	ShortName       string  `json:"shortName"`
	Industry        string  `json:"industry"`
	EstablishedYear string  `json:"establishedYear"`
	NoEmployees     float64 `json:"noEmployees"`
	Website         string  `json:"website"`
}

type profileResponse struct {
	CompanyProfile string `json:"companyProfile"`
	CompanyName    string `json:"companyName"`
}

// Company fetches the ticker overview and, best effort, the profile text
// GET /tcanalysis/v1/ticker/{symbol}/overview
func (c *Client) Company(ctx context.Context, symbol string) (*market.Company, error) {
	var ov overviewResponse
	if err := c.httpClient.GetJSON(ctx, c.url("/tcanalysis/v1/ticker/"+url.PathEscape(symbol)+"/overview", nil), &ov); err != nil {
		return nil, provider.Upstream(c.Name(), err)
	}
	if ov.ShortName == "" && ov.Ticker == "" {
		return nil, provider.Empty(c.Name(), "company "+symbol)
	}

	company := &market.Company{
		Symbol:    symbol,
		Name:      ov.ShortName,
		Industry:  ov.Industry,
		Exchange:  ov.Exchange,
		Website:   ov.Website,
		Founded:   ov.EstablishedYear,
		Employees: int64(ov.NoEmployees),
	}

	profile, err := c.profile(ctx, symbol)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			c.logger.WithError(err).WithField("symbol", symbol).Debug("TCBS profile unavailable")
		}
		return company, nil
	}
	if profile.CompanyName != "" {
		company.Name = profile.CompanyName
	}
	company.Description = external.StripHTML(profile.CompanyProfile)
	return company, nil
}

// GET /tcanalysis/v1/company/{symbol}/overview
func (c *Client) profile(ctx context.Context, symbol string) (*profileResponse, error) {
	var p profileResponse
	if err := c.httpClient.GetJSON(ctx, c.url("/tcanalysis/v1/company/"+url.PathEscape(symbol)+"/overview", nil), &p); err != nil {
		return nil, err
	}
	return &p, nil
}
