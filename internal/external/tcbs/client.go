// Package tcbs adapts the TCBS public stock-insight and analysis APIs.
package tcbs

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/vanlang/stock-api/internal/market"
	"github.com/vanlang/stock-api/internal/provider"
	"github.com/vanlang/stock-api/internal/tabular"
	"github.com/vanlang/stock-api/pkg/httputil"
	"github.com/vanlang/stock-api/pkg/logger"
)

// DefaultBaseURL is the public TCBS API host
const DefaultBaseURL = "https://apipubaws.tcbs.com.vn"

// PriceScale converts TCBS price units to VND. TCBS quotes VND.
const PriceScale = 1.0

// Client handles communication with the TCBS API
// ⭐ SSOT: TCBS 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	now        func() time.Time

	layout atomic.Pointer[tabular.Layout]
}

// NewClient creates a TCBS adapter
func NewClient(httpClient *httputil.Client, baseURL string, log *logger.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    strings.TrimRight(baseURL, "/"),
		now:        time.Now,
	}
}

// Name returns TCBS
func (c *Client) Name() string {
	return provider.SourceTCBS
}

// Capabilities of the TCBS API. There is no public listing endpoint.
func (c *Client) Capabilities() provider.Capabilities {
	return provider.CapPriceBoard | provider.CapHistory | provider.CapIntraday | provider.CapCompany
}

// Probe fetches the price board for VNM and remembers the detected layout
func (c *Client) Probe(ctx context.Context) (string, error) {
	rows, err := c.boardRows(ctx, []string{"VNM"})
	if err != nil {
		return "", err
	}
	l, err := c.detect(rows)
	if err != nil {
		return "", err
	}
	return l.Name, nil
}

func (c *Client) detect(rows []tabular.Row) (*tabular.Layout, error) {
	if l := c.layout.Load(); l != nil && len(rows) > 0 && l.Matches(rows[0]) {
		return l, nil
	}
	l, err := tabular.Detect(rows, boardLayouts...)
	if err != nil {
		return nil, provider.Schema(c.Name(), err)
	}
	if prev := c.layout.Swap(l); prev != l {
		c.logger.WithFields(logger.Fields{
			"source": c.Name(),
			"layout": l.Name,
		}).Info("Detected price board layout")
	}
	return l, nil
}

// Listing is not offered by TCBS
func (c *Client) Listing(_ context.Context) ([]market.Listing, error) {
	return nil, provider.Unsupported(c.Name(), "listing")
}

func (c *Client) url(path string, params url.Values) string {
	u := fmt.Sprintf("%s%s", c.baseURL, path)
	if len(params) > 0 {
		u = fmt.Sprintf("%s?%s", u, params.Encode())
	}
	return u
}

// assetType distinguishes index tickers from stocks on the bars endpoints
func assetType(symbol string) string {
	if slices.Contains(market.Indices, symbol) {
		return "index"
	}
	return "stock"
}

var (
	_ provider.Provider = (*Client)(nil)
	_ provider.Prober   = (*Client)(nil)
)
