package vci

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanlang/stock-api/internal/market"
	"github.com/vanlang/stock-api/internal/provider"
	"github.com/vanlang/stock-api/pkg/config"
	"github.com/vanlang/stock-api/pkg/httputil"
	"github.com/vanlang/stock-api/pkg/logger"
)

const boardFixture = `[
  {"listingInfo":{"symbol":"VNM","organName":"Vinamilk","board":"HSX","refPrice":70000},
   "matchPrice":{"matchPrice":71000,"accumulatedVolume":1200300,"highest":71500,"lowest":69800}},
  {"listingInfo":{"symbol":"['FPT']","board":"HSX","refPrice":100000},
   "matchPrice":{"matchPrice":99000,"accumulatedVolume":500}}
]`

const chartFixture = `[{"symbol":"VNM",
  "o":[70000,71000,72000],"h":[71000,72500,72000],"l":[69500,70500,71000],
  "c":[71000,72000,71500],"v":[1000,2000,3000],
  "t":["1704160800","1704247200","1704333600"]}]`

func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := &config.Config{Upstream: config.UpstreamConfig{Timeout: 2 * time.Second}}
	return NewClient(httputil.New(cfg, logger.Nop()), srv.URL, logger.Nop())
}

func TestPriceBoard(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/price/symbols/getList", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, DefaultBaseURL, r.Header.Get("Origin"))

		var req boardRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"VNM", "FPT"}, req.Symbols)
		_, _ = w.Write([]byte(boardFixture))
	})
	c := newTestClient(t, mux)

	quotes, err := c.PriceBoard(context.Background(), []string{"VNM", "FPT"})
	require.NoError(t, err)
	require.Len(t, quotes, 2)

	vnm := quotes[0]
	assert.Equal(t, "VNM", vnm.Symbol)
	assert.Equal(t, "Vinamilk", vnm.Name)
	assert.Equal(t, "HOSE", vnm.Exchange)
	assert.Equal(t, 71000.0, vnm.Price)
	assert.Equal(t, 1000.0, vnm.Change)
	assert.Equal(t, 1.43, vnm.PctChange)
	assert.Equal(t, int64(1200300), vnm.Volume)
	assert.Equal(t, provider.SourceVCI, vnm.Source)

	fpt := quotes[1]
	assert.Equal(t, "FPT", fpt.Symbol, "list-like symbol noise is cleaned")
	assert.Equal(t, -1000.0, fpt.Change)
	assert.Equal(t, "vci.nested", c.layout.Load().Name)
}

func TestPriceBoardPercentOnlyRow(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/price/symbols/getList", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"listingInfo":{"symbol":"HPG","board":"HSX"},
		  "matchPrice":{"matchPrice":26250,"priceChangePercent":5}}]`))
	})
	c := newTestClient(t, mux)

	quotes, err := c.PriceBoard(context.Background(), []string{"HPG"})
	require.NoError(t, err)
	require.Len(t, quotes, 1)

	hpg := quotes[0]
	assert.Equal(t, 5.0, hpg.PctChange)
	assert.Equal(t, 25000.0, hpg.RefPrice)
	assert.Equal(t, 1250.0, hpg.Change, "change agrees with the percentage")
}

func TestProbeDetectsFlatLayout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/price/symbols/getList", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"symbol":"VNM","closePrice":"71,000","refPrice":70000}]`))
	})
	c := newTestClient(t, mux)

	layout, err := c.Probe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "vci.flat", layout)

	quotes, err := c.PriceBoard(context.Background(), []string{"VNM"})
	require.NoError(t, err)
	assert.Equal(t, 71000.0, quotes[0].Price)
}

func TestPriceBoardErrors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/price/symbols/getList", func(w http.ResponseWriter, r *http.Request) {
		var req boardRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		switch req.Symbols[0] {
		case "EMPTY":
			_, _ = w.Write([]byte(`[]`))
		case "ODD":
			_, _ = w.Write([]byte(`[{"foo":1}]`))
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	})
	c := newTestClient(t, mux)

	_, err := c.PriceBoard(context.Background(), []string{"EMPTY"})
	assert.ErrorIs(t, err, provider.ErrEmpty)

	_, err = c.PriceBoard(context.Background(), []string{"ODD"})
	assert.ErrorIs(t, err, provider.ErrSchema)

	_, err = c.PriceBoard(context.Background(), []string{"DOWN"})
	assert.ErrorIs(t, err, provider.ErrUpstream)
	var se *httputil.StatusError
	assert.ErrorAs(t, err, &se)
}

func TestHistory(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/chart/OHLCChart/gap-chart", func(w http.ResponseWriter, r *http.Request) {
		var req chartRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ONE_DAY", req.TimeFrame)
		assert.Equal(t, []string{"VNM"}, req.Symbols)
		assert.Positive(t, req.CountBack)
		_, _ = w.Write([]byte(chartFixture))
	})
	c := newTestClient(t, mux)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, market.Location)
	to := time.Date(2024, 1, 31, 23, 59, 59, 0, market.Location)
	bars, err := c.History(context.Background(), "VNM", from, to, market.Interval1D)
	require.NoError(t, err)
	require.Len(t, bars, 3)
	assert.Equal(t, "2024-01-02", bars[0].Date)
	assert.Equal(t, 71500.0, bars[2].Close)
	assert.Equal(t, int64(3000), bars[2].Volume)

	weekly, err := c.History(context.Background(), "VNM", from, to, market.Interval1W)
	require.NoError(t, err)
	require.Len(t, weekly, 1)
	assert.Equal(t, int64(6000), weekly[0].Volume)

	_, err = c.History(context.Background(), "VNM", to, from, market.Interval1D)
	assert.ErrorIs(t, err, market.ErrInvalidInput)
}

func TestHistoryRaggedColumns(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/chart/OHLCChart/gap-chart", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"o":[1],"h":[1],"l":[1],"c":[],"t":["1704160800"]}]`))
	})
	c := newTestClient(t, mux)

	_, err := c.History(context.Background(), "VNM", time.Unix(0, 0), time.Now(), market.Interval1D)
	assert.ErrorIs(t, err, provider.ErrSchema)
}

func TestIntraday(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/market-watch/LEData/getAll", func(w http.ResponseWriter, r *http.Request) {
		var req intradayRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 4, req.Limit)
		_, _ = w.Write([]byte(`[
		  {"truncTime":"1704169800","matchPrice":71000,"matchVol":100,"matchType":"b"},
		  {"truncTime":"1704169790","matchPrice":70900,"matchVol":200,"matchType":"s"},
		  {"truncTime":"1704169780","matchPrice":70800,"matchVol":300,"matchType":"unknown"}
		]`))
	})
	c := newTestClient(t, mux)

	trades, err := c.Intraday(context.Background(), "VNM", 1, 2)
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, 70800.0, trades[0].Price)
	assert.Equal(t, market.SideUnknown, trades[0].Side)

	first, err := c.Intraday(context.Background(), "VNM", 0, 4)
	require.NoError(t, err)
	assert.Equal(t, market.SideBuy, first[0].Side)
	assert.Equal(t, market.SideSell, first[1].Side)
}

func TestCompany(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/data-mt/graphql", func(w http.ResponseWriter, r *http.Request) {
		var req graphQLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Variables["ticker"] == "NONE" {
			_, _ = w.Write([]byte(`{"data":{"CompanyListingInfo":null}}`))
			return
		}
		_, _ = w.Write([]byte(`{"data":{
		  "CompanyListingInfo":{"organName":"Công ty Cổ phần Sữa Việt Nam","icbName3":"Thực phẩm",
		    "companyProfile":"<p>Vinamilk là <b>doanh nghiệp</b></p><p>hàng đầu</p>",
		    "foundingDate":"1976-08-20","numberOfEmployees":10000},
		  "TickerPriceInfo":{"exchange":"HOSE"}}}`))
	})
	c := newTestClient(t, mux)

	company, err := c.Company(context.Background(), "VNM")
	require.NoError(t, err)
	assert.Equal(t, "Công ty Cổ phần Sữa Việt Nam", company.Name)
	assert.Equal(t, "Vinamilk là doanh nghiệp hàng đầu", company.Description)
	assert.Equal(t, "1976", company.Founded)
	assert.Equal(t, int64(10000), company.Employees)
	assert.Equal(t, "HOSE", company.Exchange)

	_, err = c.Company(context.Background(), "NONE")
	assert.ErrorIs(t, err, provider.ErrEmpty)
}

func TestListing(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/price/symbols/getAll", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`[
		  {"symbol":"VNM","board":"HSX","type":"STOCK","organName":"Vinamilk"},
		  {"symbol":"ACB","board":"HNX","type":"STOCK"},
		  {"symbol":"bad symbol!","board":"UPCOM"}
		]`))
	})
	c := newTestClient(t, mux)

	listings, err := c.Listing(context.Background())
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, "HOSE", listings[0].Exchange)
	assert.Equal(t, "HNX", listings[1].Exchange)
}
