package handlers

import (
	"net/http"

	"github.com/vanlang/stock-api/internal/stock"
	"github.com/vanlang/stock-api/pkg/logger"
)

// GetPrice returns the latest price of one symbol
// GET /api/price?symbol=VNM&source=VCI
func (h *StockHandler) GetPrice(w http.ResponseWriter, r *http.Request) {
	resp := h.svc.Price(r.Context(), query(r, "symbol"), query(r, "source"))
	h.logFailure(r, resp.Error, resp.Symbol, resp.Source)
	respondJSON(w, http.StatusOK, resp)
}

// GetStocks returns the curated price board
// GET /api/stocks?limit=50&source=VCI
func (h *StockHandler) GetStocks(w http.ResponseWriter, r *http.Request) {
	resp := h.svc.Stocks(r.Context(), queryInt(r, "limit"), query(r, "source"))
	h.logFailure(r, resp.Error, "", resp.Source)
	respondJSON(w, http.StatusOK, resp)
}

// GetByIndustry returns the board of one industry
// GET /api/stocks/by-industry?industry=banking&limit=50
func (h *StockHandler) GetByIndustry(w http.ResponseWriter, r *http.Request) {
	industry := query(r, "industry")
	if industry == "" {
		industry = "all"
	}
	resp := h.svc.ByIndustry(r.Context(), industry, queryInt(r, "limit"), query(r, "source"))
	h.logFailure(r, resp.Error, "", resp.Source)
	respondJSON(w, http.StatusOK, resp)
}

// GetAllExchanges returns the listing of one exchange with prices
// GET /api/stocks/all-exchanges?exchange=HOSE&limit=100
func (h *StockHandler) GetAllExchanges(w http.ResponseWriter, r *http.Request) {
	resp := h.svc.AllExchanges(r.Context(), query(r, "exchange"), queryInt(r, "limit"), query(r, "source"))
	h.logFailure(r, resp.Error, "", resp.Source)
	respondJSON(w, http.StatusOK, resp)
}

// GetStatistics returns listing counts
// GET /api/stocks/statistics
func (h *StockHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.Statistics())
}

// Search ranks symbols by code and name
// GET /api/stocks/search?q=vin&limit=20
func (h *StockHandler) Search(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.Search(query(r, "q"), queryInt(r, "limit")))
}

// GetHistory returns OHLCV bars
// GET /api/stock/history?symbol=VNM&start_date=2024-01-01&end_date=2024-03-01&interval=1D
func (h *StockHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	symbol := query(r, "symbol")
	if symbol == "" {
		symbol = stock.DefaultSymbol
	}
	resp := h.svc.History(r.Context(), stock.HistoryRequest{
		Symbol:    symbol,
		Source:    query(r, "source"),
		StartDate: query(r, "start_date"),
		EndDate:   query(r, "end_date"),
		Interval:  query(r, "interval"),
	})
	h.logFailure(r, resp.Error, resp.Symbol, resp.Source)
	respondJSON(w, http.StatusOK, resp)
}

// GetRealtime returns quotes for several symbols
// GET /api/stock/realtime?symbols=VNM,FPT&source=VCI
func (h *StockHandler) GetRealtime(w http.ResponseWriter, r *http.Request) {
	resp := h.svc.Realtime(r.Context(), query(r, "symbols"), query(r, "source"))
	h.logFailure(r, resp.Error, "", resp.Source)
	respondJSON(w, http.StatusOK, resp)
}

// GetMock returns synthetic quotes
// GET /api/stock/mock?symbols=VNM,VCB
func (h *StockHandler) GetMock(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.Mock(query(r, "symbols")))
}

// GetIntraday returns one page of intraday matches
// GET /api/stock/intraday?symbol=VNM&page=0&page_size=100
func (h *StockHandler) GetIntraday(w http.ResponseWriter, r *http.Request) {
	symbol := query(r, "symbol")
	if symbol == "" {
		symbol = stock.DefaultSymbol
	}
	resp := h.svc.Intraday(r.Context(), symbol, query(r, "source"), queryInt(r, "page"), queryInt(r, "page_size"))
	h.logFailure(r, resp.Error, resp.Symbol, resp.Source)
	respondJSON(w, http.StatusOK, resp)
}

// GetCompany returns a company profile
// GET /api/stock/company?symbol=VNM
func (h *StockHandler) GetCompany(w http.ResponseWriter, r *http.Request) {
	symbol := query(r, "symbol")
	if symbol == "" {
		symbol = stock.DefaultSymbol
	}
	resp := h.svc.Company(r.Context(), symbol, query(r, "source"))
	h.logFailure(r, resp.Error, resp.Symbol, resp.Source)
	respondJSON(w, http.StatusOK, resp)
}

// GetIndices returns the latest market index levels
// GET /api/market/indices?source=VCI
func (h *StockHandler) GetIndices(w http.ResponseWriter, r *http.Request) {
	resp := h.svc.Indices(r.Context(), query(r, "source"))
	h.logFailure(r, resp.Error, "", resp.Source)
	respondJSON(w, http.StatusOK, resp)
}

func (h *StockHandler) logFailure(r *http.Request, errMsg, symbol, source string) {
	if errMsg == "" {
		return
	}
	h.logger.WithFields(logger.Fields{
		"path":   r.URL.Path,
		"symbol": symbol,
		"source": source,
		"error":  errMsg,
	}).Warn("Request served with error payload")
}
