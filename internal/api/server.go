package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/vanlang/stock-api/pkg/config"
	"github.com/vanlang/stock-api/pkg/logger"
)

// Server represents the HTTP API server
// ⭐ SSOT: API 서버 설정은 이 파일에서만
type Server struct {
	httpServer *http.Server
	logger     *logger.Logger
	config     *config.Config
	cancel     context.CancelFunc
}

// New creates a new API server. Request contexts are cancelled on
// Shutdown so long-lived streams end with the server.
func New(cfg *config.Config, log *logger.Logger, router http.Handler) *Server {
	base, cancel := context.WithCancel(context.Background())
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2*cfg.Upstream.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return base },
	}
	srv.RegisterOnShutdown(cancel)

	return &Server{
		httpServer: srv,
		logger:     log,
		config:     cfg,
		cancel:     cancel,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.WithFields(logger.Fields{
		"port": s.config.Port,
		"env":  s.config.Env,
	}).Info("Starting API server")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server")
	defer s.cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
