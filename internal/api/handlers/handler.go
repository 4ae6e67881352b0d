package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vanlang/stock-api/internal/provider"
	"github.com/vanlang/stock-api/internal/scheduler"
	"github.com/vanlang/stock-api/internal/stock"
	"github.com/vanlang/stock-api/pkg/config"
	"github.com/vanlang/stock-api/pkg/logger"
)

// Version is reported by the root endpoint
const Version = "2.0.0"

// ServiceName is reported by the health endpoint
const ServiceName = "vietnam-stock-api"

// Endpoints lists the public routes
var Endpoints = []string{
	"/api/price",
	"/api/stocks",
	"/api/stocks/by-industry",
	"/api/stocks/all-exchanges",
	"/api/stocks/statistics",
	"/api/stocks/search",
	"/api/stock/history",
	"/api/stock/realtime",
	"/api/stock/mock",
	"/api/stock/intraday",
	"/api/stock/company",
	"/api/stock/stream",
	"/api/market/indices",
}

// StockHandler handles the market data API endpoints. Data-layer failures
// are reported as 200 with an error field.
// ⭐ SSOT: 종목 데이터 API 핸들러는 이 구조체에서만
type StockHandler struct {
	svc    *stock.Service
	jobs   JobStatser
	config *config.Config
	logger *logger.Logger
}

// JobStatser exposes background job statistics on the root endpoint
type JobStatser interface {
	GetJobStats() map[string]scheduler.JobStats
}

// NewStockHandler creates a new stock handler
func NewStockHandler(svc *stock.Service, cfg *config.Config, log *logger.Logger) *StockHandler {
	return &StockHandler{
		svc:    svc,
		config: cfg,
		logger: log,
	}
}

// WithJobs attaches the scheduler whose job stats the root endpoint reports
func (h *StockHandler) WithJobs(j JobStatser) *StockHandler {
	h.jobs = j
	return h
}

// RootResponse describes the service and its sources
type RootResponse struct {
	Message        string                          `json:"message"`
	Version        string                          `json:"version"`
	Endpoints      []string                        `json:"endpoints"`
	AllowedOrigins []string                        `json:"allowed_origins"`
	DefaultSource  string                          `json:"default_source"`
	Sources        map[string]provider.ProbeResult `json:"sources"`
	MockFallback   bool                            `json:"mock_fallback"`
	Jobs           map[string]scheduler.JobStats   `json:"jobs,omitempty"`
	Timestamp      time.Time                       `json:"timestamp"`
}

// Root returns service metadata
// GET /
func (h *StockHandler) Root(w http.ResponseWriter, r *http.Request) {
	resp := RootResponse{
		Message:        "Vietnam Stock Market API",
		Version:        Version,
		Endpoints:      Endpoints,
		AllowedOrigins: h.config.AllowedOrigins,
		Sources:        map[string]provider.ProbeResult{},
		MockFallback:   h.svc.MockFallback(),
		Timestamp:      time.Now(),
	}
	if reg := h.svc.Registry(); reg != nil && reg.Len() > 0 {
		resp.DefaultSource = reg.Default()
		resp.Sources = reg.Results()
	} else {
		resp.DefaultSource = provider.SourceMock
	}
	if h.jobs != nil {
		resp.Jobs = h.jobs.GetJobStats()
	}
	respondJSON(w, http.StatusOK, resp)
}

// Health reports liveness
// GET /health
func (h *StockHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"service": ServiceName,
	})
}

// NotFound answers unknown routes
func NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusNotFound, "not found: "+r.URL.Path)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// queryInt returns 0 for a missing or malformed value so the service
// default applies
func queryInt(r *http.Request, key string) int {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func query(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}
