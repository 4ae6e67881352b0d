package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vanlang/stock-api/internal/api/handlers"
	"github.com/vanlang/stock-api/internal/catalog"
	"github.com/vanlang/stock-api/internal/listing"
	"github.com/vanlang/stock-api/internal/market"
	"github.com/vanlang/stock-api/internal/mockdata"
	"github.com/vanlang/stock-api/internal/provider"
	"github.com/vanlang/stock-api/internal/provider/providertest"
	"github.com/vanlang/stock-api/internal/scheduler"
	"github.com/vanlang/stock-api/internal/stock"
	"github.com/vanlang/stock-api/pkg/config"
	"github.com/vanlang/stock-api/pkg/logger"
)

const variation = 0.05

// downProvider fails every call with an upstream error
func downProvider(ctrl *gomock.Controller) *providertest.MockProvider {
	down := provider.Upstream("VCI", errors.New("connection refused"))
	m := providertest.NewMockProvider(ctrl)
	m.EXPECT().Name().Return("VCI").AnyTimes()
	m.EXPECT().Capabilities().Return(provider.CapAll).AnyTimes()
	m.EXPECT().PriceBoard(gomock.Any(), gomock.Any()).Return(nil, down).AnyTimes()
	m.EXPECT().History(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, down).AnyTimes()
	m.EXPECT().Intraday(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, down).AnyTimes()
	m.EXPECT().Company(gomock.Any(), gomock.Any()).Return(nil, down).AnyTimes()
	m.EXPECT().Listing(gomock.Any()).Return(nil, down).AnyTimes()
	return m
}

// liveProvider answers the board with a fixed price for every symbol
func liveProvider(ctrl *gomock.Controller) *providertest.MockProvider {
	m := providertest.NewMockProvider(ctrl)
	m.EXPECT().Name().Return("VCI").AnyTimes()
	m.EXPECT().Capabilities().Return(provider.CapAll).AnyTimes()
	m.EXPECT().PriceBoard(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, symbols []string) ([]market.Quote, error) {
			out := make([]market.Quote, 0, len(symbols))
			for _, s := range symbols {
				out = append(out, market.Quote{Symbol: s, Price: 12345, Volume: 10})
			}
			return out, nil
		}).AnyTimes()
	return m
}

func newRouter(t *testing.T, p provider.Provider, mockFallback bool) http.Handler {
	t.Helper()
	log := logger.Nop()
	cat := catalog.Builtin()
	searcher, err := catalog.NewSearcher(cat)
	require.NoError(t, err)
	t.Cleanup(func() { searcher.Close() })

	svc := stock.New(stock.Deps{
		Registry: provider.NewRegistry("VCI", log, p),
		Mock:     mockdata.New(variation),
		Catalog:  cat,
		Searcher: searcher,
		Listings: listing.NewStore(cat, searcher, log),
		Logger:   log,
	}, stock.Options{MockFallback: mockFallback, BatchSize: 50})

	cfg := &config.Config{AllowedOrigins: config.DefaultOrigins}
	h := handlers.NewStockHandler(svc, cfg, log)

	r := mux.NewRouter()
	r.HandleFunc("/", h.Root)
	r.HandleFunc("/health", h.Health)
	r.HandleFunc("/api/price", h.GetPrice)
	r.HandleFunc("/api/stocks", h.GetStocks)
	r.HandleFunc("/api/stocks/by-industry", h.GetByIndustry)
	r.HandleFunc("/api/stocks/all-exchanges", h.GetAllExchanges)
	r.HandleFunc("/api/stocks/statistics", h.GetStatistics)
	r.HandleFunc("/api/stocks/search", h.Search)
	r.HandleFunc("/api/stock/history", h.GetHistory)
	r.HandleFunc("/api/stock/realtime", h.GetRealtime)
	r.HandleFunc("/api/stock/mock", h.GetMock)
	r.HandleFunc("/api/stock/intraday", h.GetIntraday)
	r.HandleFunc("/api/stock/company", h.GetCompany)
	r.HandleFunc("/api/market/indices", h.GetIndices)
	return r
}

func get(t *testing.T, h http.Handler, url string) (int, map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return rec.Code, body
}

func nonEmpty(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return false
	case []interface{}:
		return len(x) > 0
	case map[string]interface{}:
		return len(x) > 0
	case string:
		return x != ""
	}
	return true
}

func TestEndpointsNeverFailWithServerError(t *testing.T) {
	ctrl := gomock.NewController(t)

	urls := map[string]string{
		"/api/price?symbol=VNM":                    "price",
		"/api/stocks?limit=5":                      "stocks",
		"/api/stocks/by-industry?industry=banking": "stocks",
		"/api/stocks/all-exchanges?exchange=HOSE":  "stocks",
		"/api/stock/history?symbol=VNM":            "data",
		"/api/stock/realtime?symbols=VNM,FPT":      "data",
		"/api/stock/mock?symbols=VNM":              "data",
		"/api/stock/intraday?symbol=VNM":           "data",
		"/api/stock/company?symbol=VNM":            "company",
		"/api/market/indices":                      "indices",
	}

	for _, fallback := range []bool{false, true} {
		h := newRouter(t, downProvider(ctrl), fallback)
		for url, field := range urls {
			code, body := get(t, h, url)
			assert.Equal(t, http.StatusOK, code, url)
			assert.True(t, nonEmpty(body[field]) || nonEmpty(body["error"]),
				"%s (fallback=%v) has neither %s nor error: %v", url, fallback, field, body)
		}
	}
}

func TestPriceFailurePayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := newRouter(t, downProvider(ctrl), false)

	code, body := get(t, h, "/api/price?symbol=VNM")
	assert.Equal(t, http.StatusOK, code)
	assert.Nil(t, body["price"])
	assert.Contains(t, body, "price")
	assert.NotEmpty(t, body["error"])
	assert.Equal(t, "VNM", body["symbol"])
}

func TestStocksLimitSortedUnique(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := newRouter(t, liveProvider(ctrl), false)

	for _, n := range []int{1, 7, 30} {
		var resp stock.BoardResponse
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stocks?limit="+strconv.Itoa(n), nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

		assert.LessOrEqual(t, len(resp.Stocks), n)
		symbols := make([]string, len(resp.Stocks))
		seen := map[string]bool{}
		for i, q := range resp.Stocks {
			symbols[i] = q.Symbol
			assert.False(t, seen[q.Symbol])
			seen[q.Symbol] = true
		}
		assert.True(t, sort.StringsAreSorted(symbols))
	}
}

func TestHistoryBadRangeEchoes(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := newRouter(t, downProvider(ctrl), true)

	tests := []struct {
		name, start, end string
	}{
		{"start after end", "2024-05-01", "2024-01-01"},
		{"unparseable start", "01/02/2024", "2024-03-01"},
		{"unparseable end", "2024-01-01", "tomorrow"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := get(t, h, "/api/stock/history?symbol=VNM&start_date="+tt.start+"&end_date="+tt.end)
			assert.Equal(t, http.StatusOK, code)
			assert.NotEmpty(t, body["error"])
			assert.Equal(t, tt.start, body["start_date"])
			assert.Equal(t, tt.end, body["end_date"])
		})
	}
}

func TestMockAlwaysTwoEntries(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := newRouter(t, downProvider(ctrl), false)

	code, body := get(t, h, "/api/stock/mock?symbols=VNM,VCB")
	assert.Equal(t, http.StatusOK, code)
	data, ok := body["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, data, 2)
	for _, row := range data {
		q := row.(map[string]interface{})
		for _, f := range []string{"price", "change", "volume"} {
			_, isNum := q[f].(float64)
			assert.True(t, isNum, "%s should be numeric: %v", f, q[f])
		}
	}
}

func TestMockAllSymbolsRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := newRouter(t, downProvider(ctrl), true)

	code, body := get(t, h, "/api/stock/mock?symbols=!!!,@@")
	assert.Equal(t, http.StatusOK, code)
	assert.Empty(t, body["data"])
	assert.Equal(t, float64(0), body["count"])
	assert.Equal(t, "no valid symbols in request", body["error"])
	assert.ElementsMatch(t, []interface{}{"!!!", "@@"}, body["rejected"])
}

func TestByIndustryUnknown(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := newRouter(t, liveProvider(ctrl), false)

	code, body := get(t, h, "/api/stocks/by-industry?industry=unknown_value")
	assert.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, body["error"])
	assert.Equal(t, float64(0), body["count"])

	valid, ok := body["valid_industries"].([]interface{})
	require.True(t, ok)
	assert.Len(t, valid, len(catalog.Builtin().Keys()))
	assert.Contains(t, valid, "banking")
}

func TestMockJitterWithinBound(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := newRouter(t, downProvider(ctrl), false)

	base := mockdata.BasePrice("VNM")
	for i := 0; i < 20; i++ {
		var resp stock.QuotesResponse
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stock/mock?symbols=VNM", nil))
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 1)
		assert.InDelta(t, base, resp.Data[0].Price, base*variation+0.01)
	}
}

func TestRootAndHealth(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := newRouter(t, liveProvider(ctrl), true)

	code, body := get(t, h, "/")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "VCI", body["default_source"])
	assert.Equal(t, true, body["mock_fallback"])
	assert.Contains(t, body["sources"], "VCI")
	assert.NotContains(t, body, "jobs")

	code, body = get(t, h, "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}

type fixedJobs map[string]scheduler.JobStats

func (f fixedJobs) GetJobStats() map[string]scheduler.JobStats { return f }

func TestRootReportsJobs(t *testing.T) {
	log := logger.Nop()
	svc := stock.New(stock.Deps{Logger: log}, stock.Options{MockFallback: true})
	cfg := &config.Config{AllowedOrigins: config.DefaultOrigins}
	h := handlers.NewStockHandler(svc, cfg, log).WithJobs(fixedJobs{
		"listing_refresh": {JobName: "listing_refresh", Schedule: "0 0 */6 * * *", TotalRuns: 2, SuccessCount: 1, FailureCount: 1, SuccessRate: 0.5},
	})

	_, body := get(t, http.HandlerFunc(h.Root), "/")
	assert.Equal(t, provider.SourceMock, body["default_source"])
	jobs, ok := body["jobs"].(map[string]interface{})
	require.True(t, ok)
	refresh := jobs["listing_refresh"].(map[string]interface{})
	assert.Equal(t, 0.5, refresh["success_rate"])
	assert.Equal(t, float64(2), refresh["total_runs"])
}

func TestSearchEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := newRouter(t, liveProvider(ctrl), false)

	_, body := get(t, h, "/api/stocks/search?q=FPT")
	results, ok := body["results"].([]interface{})
	require.True(t, ok)
	require.NotEmpty(t, results)
	assert.Equal(t, "FPT", results[0].(map[string]interface{})["symbol"])

	_, body = get(t, h, "/api/stocks/search")
	assert.NotEmpty(t, body["error"])
}

