package tcbs

import (
	"context"
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

func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := &config.Config{Upstream: config.UpstreamConfig{Timeout: 2 * time.Second}}
	return NewClient(httputil.New(cfg, logger.Nop()), srv.URL, logger.Nop())
}

func TestPriceBoard(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/stock-insight/v1/stock/second-tc-price", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "VNM,HPG", r.URL.Query().Get("tickers"))
		_, _ = w.Write([]byte(`{"data":[
		  {"t":"VNM","cp":71000,"rp":70000,"tv":1500000,"h":71200,"l":69900},
		  {"t":null,"cp":"25,500","ch":-500,"chp":-1.92}
		]}`))
	})
	c := newTestClient(t, mux)

	quotes, err := c.PriceBoard(context.Background(), []string{"VNM", "HPG"})
	require.NoError(t, err)
	require.Len(t, quotes, 2)

	assert.Equal(t, "VNM", quotes[0].Symbol)
	assert.Equal(t, 1000.0, quotes[0].Change)
	assert.Equal(t, int64(1500000), quotes[0].Volume)

	assert.Equal(t, "HPG", quotes[1].Symbol, "unresolved symbol falls back to the requested position")
	assert.Equal(t, 25500.0, quotes[1].Price)
	assert.Equal(t, -500.0, quotes[1].Change)
	assert.Equal(t, -1.92, quotes[1].PctChange)
	assert.Equal(t, provider.SourceTCBS, quotes[1].Source)
}

func TestProbe(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/stock-insight/v1/stock/second-tc-price", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"ticker":"VNM","closePrice":71000,"refPrice":70000}]}`))
	})
	c := newTestClient(t, mux)

	layout, err := c.Probe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tcbs.long", layout)
}

func TestPriceBoardEmptyEnvelope(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/stock-insight/v1/stock/second-tc-price", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":null}`))
	})
	c := newTestClient(t, mux)

	_, err := c.PriceBoard(context.Background(), []string{"VNM"})
	assert.ErrorIs(t, err, provider.ErrEmpty)
}

func TestHistory(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/stock-insight/v2/stock/bars-long-term", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "D", q.Get("resolution"))
		if q.Get("ticker") == "VNINDEX" {
			assert.Equal(t, "index", q.Get("type"))
		} else {
			assert.Equal(t, "stock", q.Get("type"))
		}
		_, _ = w.Write([]byte(`{"ticker":"VNM","data":[
		  {"open":70000,"high":71000,"low":69000,"close":70500,"volume":1000,"tradingDate":"2024-01-03T00:00:00.000Z"},
		  {"open":69000,"high":70000,"low":68000,"close":69500,"volume":900,"tradingDate":"2024-01-02T00:00:00.000Z"}
		]}`))
	})
	c := newTestClient(t, mux)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, market.Location)
	to := time.Date(2024, 1, 5, 23, 59, 59, 0, market.Location)

	bars, err := c.History(context.Background(), "VNM", from, to, market.Interval1D)
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, "2024-01-02", bars[0].Date, "bars are sorted ascending")
	assert.Equal(t, "2024-01-03", bars[1].Date)

	_, err = c.History(context.Background(), "VNINDEX", from, to, market.Interval1D)
	require.NoError(t, err)

	monthly, err := c.History(context.Background(), "VNM", from, to, market.Interval1M)
	require.NoError(t, err)
	require.Len(t, monthly, 1)
	assert.Equal(t, 69000.0, monthly[0].Open)
	assert.Equal(t, 70500.0, monthly[0].Close)
}

func TestHistoryIntradayPath(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/stock-insight/v2/stock/bars", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "60", r.URL.Query().Get("resolution"))
		_, _ = w.Write([]byte(`{"data":[]}`))
	})
	c := newTestClient(t, mux)

	_, err := c.History(context.Background(), "VNM", time.Now().Add(-time.Hour), time.Now(), market.Interval1H)
	assert.ErrorIs(t, err, provider.ErrEmpty)
}

func TestIntraday(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/stock-insight/v1/intraday/VNM/his/paging", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "50", r.URL.Query().Get("size"))
		_, _ = w.Write([]byte(`{"ticker":"VNM","data":[
		  {"p":71000,"v":200,"a":"BU","t":"14:29:55"},
		  {"p":70900,"v":100,"a":"SD","t":"14:29:50"},
		  {"p":70900,"v":100,"a":"","t":"bad"}
		]}`))
	})
	c := newTestClient(t, mux)
	day := time.Date(2024, 1, 2, 15, 0, 0, 0, market.Location)
	c.now = func() time.Time { return day }

	trades, err := c.Intraday(context.Background(), "VNM", 2, 50)
	require.NoError(t, err)
	require.Len(t, trades, 3)
	assert.Equal(t, time.Date(2024, 1, 2, 14, 29, 55, 0, market.Location), trades[0].Time)
	assert.Equal(t, market.SideBuy, trades[0].Side)
	assert.Equal(t, market.SideSell, trades[1].Side)
	assert.Equal(t, market.SideUnknown, trades[2].Side)
	assert.Equal(t, day, trades[2].Time)
}

func TestCompany(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/tcanalysis/v1/ticker/VNM/overview", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ticker":"VNM","exchange":"HOSE","shortName":"Vinamilk","industry":"Thực phẩm và đồ uống","establishedYear":"1976","noEmployees":10000}`))
	})
	mux.HandleFunc("/tcanalysis/v1/company/VNM/overview", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"companyName":"Công ty Cổ phần Sữa Việt Nam","companyProfile":"<p>Sản xuất sữa</p>"}`))
	})
	mux.HandleFunc("/tcanalysis/v1/ticker/FPT/overview", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ticker":"FPT","shortName":"FPT Corp"}`))
	})
	c := newTestClient(t, mux)

	company, err := c.Company(context.Background(), "VNM")
	require.NoError(t, err)
	assert.Equal(t, "Công ty Cổ phần Sữa Việt Nam", company.Name)
	assert.Equal(t, "Sản xuất sữa", company.Description)
	assert.Equal(t, "1976", company.Founded)
	assert.Equal(t, int64(10000), company.Employees)

	fpt, err := c.Company(context.Background(), "FPT")
	require.NoError(t, err, "missing profile is not fatal")
	assert.Equal(t, "FPT Corp", fpt.Name)
	assert.Empty(t, fpt.Description)
}

func TestListingUnsupported(t *testing.T) {
	c := newTestClient(t, http.NewServeMux())
	_, err := c.Listing(context.Background())
	assert.ErrorIs(t, err, provider.ErrUnsupported)
	assert.False(t, c.Capabilities().Has(provider.CapListing))
}
