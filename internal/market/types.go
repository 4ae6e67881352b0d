// Package market holds the domain types shared by every data source and
// the HTTP layer.
package market

import "time"

// DateLayout is the calendar date format used in queries and responses
const DateLayout = "2006-01-02"

// Location is the exchange time zone (Asia/Ho_Chi_Minh, no DST)
var Location = time.FixedZone("ICT", 7*60*60)

// Quote is a current price snapshot for one symbol
type Quote struct {
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name,omitempty"`
	Industry  string    `json:"industry,omitempty"`
	Exchange  string    `json:"exchange,omitempty"`
	Price     float64   `json:"price"`
	RefPrice  float64   `json:"ref_price,omitempty"`
	Change    float64   `json:"change"`
	PctChange float64   `json:"pct_change"`
	Volume    int64     `json:"volume"`
	High      float64   `json:"high,omitempty"`
	Low       float64   `json:"low,omitempty"`
	Source    string    `json:"source,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Rescaled  bool      `json:"rescaled,omitempty"`
}

// Bar is one OHLCV candle
type Bar struct {
	Date   string    `json:"date"`
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// NewBar builds a bar and derives its calendar date in exchange time
func NewBar(t time.Time, open, high, low, close float64, volume int64) Bar {
	t = t.In(Location)
	return Bar{
		Date:   t.Format(DateLayout),
		Time:   t,
		Open:   open,
		High:   high,
		Low:    low,
		Close:  close,
		Volume: volume,
	}
}

// Company is a company profile
type Company struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Industry    string `json:"industry"`
	Exchange    string `json:"exchange,omitempty"`
	Description string `json:"description"`
	Website     string `json:"website,omitempty"`
	Founded     string `json:"founded,omitempty"`
	Employees   int64  `json:"employees,omitempty"`
}

// Side of an intraday match
type Side string

const (
	SideBuy     Side = "buy"
	SideSell    Side = "sell"
	SideUnknown Side = "unknown"
)

// ParseSide maps vendor side codes (BU/SD/B/S) to a Side
func ParseSide(s string) Side {
	switch s {
	case "BU", "B", "buy", "BUY":
		return SideBuy
	case "SD", "S", "sell", "SELL":
		return SideSell
	default:
		return SideUnknown
	}
}

// Trade is a single intraday match
type Trade struct {
	Time   time.Time `json:"time"`
	Price  float64   `json:"price"`
	Volume int64     `json:"volume"`
	Side   Side      `json:"side"`
}

// IndexQuote is the latest level of a market index
type IndexQuote struct {
	Symbol    string    `json:"symbol"`
	Value     float64   `json:"value"`
	Change    float64   `json:"change"`
	PctChange float64   `json:"pct_change"`
	Volume    int64     `json:"volume"`
	Date      string    `json:"date,omitempty"`
	Source    string    `json:"source,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Indices are the market indices served by /api/market/indices
var Indices = []string{"VNINDEX", "VN30", "HNXINDEX", "HNX30", "UPCOMINDEX"}

// Listing is one row of an exchange listing
type Listing struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Type     string `json:"type,omitempty"`
}
