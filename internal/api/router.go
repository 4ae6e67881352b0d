package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vanlang/stock-api/internal/api/handlers"
	"github.com/vanlang/stock-api/pkg/config"
	"github.com/vanlang/stock-api/pkg/logger"
)

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(h *handlers.StockHandler, cfg *config.Config, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Metadata
	r.HandleFunc("/", h.Root).Methods("GET")
	r.HandleFunc("/health", h.Health).Methods("GET")

	// Quotes
	r.HandleFunc("/api/price", h.GetPrice).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Price board
	api.HandleFunc("/stocks", h.GetStocks).Methods("GET")
	api.HandleFunc("/stocks/by-industry", h.GetByIndustry).Methods("GET")
	api.HandleFunc("/stocks/all-exchanges", h.GetAllExchanges).Methods("GET")
	api.HandleFunc("/stocks/statistics", h.GetStatistics).Methods("GET")
	api.HandleFunc("/stocks/search", h.Search).Methods("GET")

	// Per-symbol data
	api.HandleFunc("/stock/history", h.GetHistory).Methods("GET")
	api.HandleFunc("/stock/realtime", h.GetRealtime).Methods("GET")
	api.HandleFunc("/stock/mock", h.GetMock).Methods("GET")
	api.HandleFunc("/stock/intraday", h.GetIntraday).Methods("GET")
	api.HandleFunc("/stock/company", h.GetCompany).Methods("GET")
	api.HandleFunc("/stock/stream", h.Stream).Methods("GET")

	// Market
	api.HandleFunc("/market/indices", h.GetIndices).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(handlers.NotFound)

	// Apply middleware
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return corsMiddleware(cfg)(r)
}
