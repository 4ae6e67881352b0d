// Package vci adapts the Vietcap (VCI) trading API.
package vci

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/vanlang/stock-api/internal/market"
	"github.com/vanlang/stock-api/internal/provider"
	"github.com/vanlang/stock-api/internal/tabular"
	"github.com/vanlang/stock-api/pkg/httputil"
	"github.com/vanlang/stock-api/pkg/logger"
)

// DefaultBaseURL is the public Vietcap trading host
const DefaultBaseURL = "https://trading.vietcap.com.vn"

// PriceScale converts VCI price units to VND. VCI quotes VND.
const PriceScale = 1.0

// Client handles communication with the VCI API
// ⭐ SSOT: VCI 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string

	layout atomic.Pointer[tabular.Layout]
}

// NewClient creates a VCI adapter. httpClient should be dedicated to VCI
// since vendor headers are set on it.
func NewClient(httpClient *httputil.Client, baseURL string, log *logger.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	httpClient.
		WithHeader("Referer", DefaultBaseURL+"/").
		WithHeader("Origin", DefaultBaseURL)

	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
	}
}

// Name returns VCI
func (c *Client) Name() string {
	return provider.SourceVCI
}

// Capabilities of the VCI API
func (c *Client) Capabilities() provider.Capabilities {
	return provider.CapAll
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

// detect returns the remembered layout, detecting it from rows on first use
func (c *Client) detect(rows []tabular.Row) (*tabular.Layout, error) {
	if l := c.layout.Load(); l != nil && firstMatches(l, rows) {
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

func firstMatches(l *tabular.Layout, rows []tabular.Row) bool {
	for _, row := range rows {
		if len(row) > 0 {
			return l.Matches(row)
		}
	}
	return false
}

func (c *Client) url(path string) string {
	return fmt.Sprintf("%s%s", c.baseURL, path)
}

// timeFrame maps an interval to the VCI chart resolution it is built from
func timeFrame(iv market.Interval) string {
	switch iv {
	case market.Interval1m, market.Interval5m, market.Interval15m, market.Interval30m:
		return "ONE_MINUTE"
	case market.Interval1H:
		return "ONE_HOUR"
	default:
		return "ONE_DAY"
	}
}

var (
	_ provider.Provider = (*Client)(nil)
	_ provider.Prober   = (*Client)(nil)
)
