package stock

import (
	"time"

	"github.com/vanlang/stock-api/internal/catalog"
	"github.com/vanlang/stock-api/internal/market"
)

// Strategy names reported by the quote endpoint
const (
	StrategyHistory    = "history"
	StrategyPriceBoard = "price_board"
	StrategyMock       = "mock"
)

// PriceResponse is the single-symbol quote. Price is null on failure.
type PriceResponse struct {
	Symbol    string    `json:"symbol"`
	Price     *float64  `json:"price"`
	Change    float64   `json:"change"`
	PctChange float64   `json:"pct_change"`
	Volume    int64     `json:"volume"`
	Name      string    `json:"name,omitempty"`
	Industry  string    `json:"industry,omitempty"`
	Date      string    `json:"date,omitempty"`
	Source    string    `json:"source"`
	Strategy  string    `json:"strategy,omitempty"`
	Warning   string    `json:"warning,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// BoardResponse serves /api/stocks, by-industry and all-exchanges
type BoardResponse struct {
	Stocks          []market.Quote `json:"stocks"`
	Count           int            `json:"count"`
	Total           int            `json:"total,omitempty"`
	Source          string         `json:"source"`
	Industry        string         `json:"industry,omitempty"`
	IndustryLabel   string         `json:"industry_label,omitempty"`
	Exchange        string         `json:"exchange,omitempty"`
	ListingSource   string         `json:"listing_source,omitempty"`
	Warning         string         `json:"warning,omitempty"`
	Warnings        []string       `json:"warnings,omitempty"`
	Error           string         `json:"error,omitempty"`
	ValidIndustries []string       `json:"valid_industries,omitempty"`
	ValidExchanges  []string       `json:"valid_exchanges,omitempty"`
	Timestamp       time.Time      `json:"timestamp"`
}

// QuotesResponse serves /api/stock/realtime and /api/stock/mock
type QuotesResponse struct {
	Symbols   []string       `json:"symbols"`
	Data      []market.Quote `json:"data"`
	Count     int            `json:"count"`
	Source    string         `json:"source"`
	Rejected  []string       `json:"rejected,omitempty"`
	Warning   string         `json:"warning,omitempty"`
	Warnings  []string       `json:"warnings,omitempty"`
	Error     string         `json:"error,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// HistoryRequest carries the raw query parameters of /api/stock/history
type HistoryRequest struct {
	Symbol    string
	Source    string
	StartDate string
	EndDate   string
	Interval  string
}

// HistoryResponse echoes the requested range alongside the bars
type HistoryResponse struct {
	Symbol    string       `json:"symbol"`
	Source    string       `json:"source"`
	Interval  string       `json:"interval"`
	StartDate string       `json:"start_date"`
	EndDate   string       `json:"end_date"`
	Data      []market.Bar `json:"data"`
	Count     int          `json:"count"`
	Warning   string       `json:"warning,omitempty"`
	Error     string       `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// IntradayResponse is one page of matches
type IntradayResponse struct {
	Symbol    string         `json:"symbol"`
	Source    string         `json:"source"`
	Page      int            `json:"page"`
	PageSize  int            `json:"page_size"`
	Data      []market.Trade `json:"data"`
	Count     int            `json:"count"`
	Warning   string         `json:"warning,omitempty"`
	Error     string         `json:"error,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// CompanyResponse wraps a company profile
type CompanyResponse struct {
	Symbol    string          `json:"symbol"`
	Source    string          `json:"source"`
	Company   *market.Company `json:"company"`
	Warning   string          `json:"warning,omitempty"`
	Error     string          `json:"error,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// IndicesResponse lists the latest index levels
type IndicesResponse struct {
	Indices   []market.IndexQuote `json:"indices"`
	Count     int                 `json:"count"`
	Source    string              `json:"source"`
	Warnings  []string            `json:"warnings,omitempty"`
	Error     string              `json:"error,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
}

// StatisticsResponse aggregates the listing and the catalog
type StatisticsResponse struct {
	Total            int            `json:"total"`
	ByExchange       map[string]int `json:"by_exchange"`
	ByIndustry       map[string]int `json:"by_industry"`
	ListingSource    string         `json:"listing_source"`
	ListingUpdatedAt time.Time      `json:"listing_updated_at"`
	CatalogSize      int            `json:"catalog_size"`
	Timestamp        time.Time      `json:"timestamp"`
}

// SearchResponse lists ranked symbol matches
type SearchResponse struct {
	Query     string        `json:"query"`
	Results   []catalog.Hit `json:"results"`
	Count     int           `json:"count"`
	Error     string        `json:"error,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}
