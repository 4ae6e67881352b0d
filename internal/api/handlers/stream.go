package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vanlang/stock-api/pkg/logger"
)

// Stream settings
const (
	DefaultStreamInterval = 5 * time.Second
	MinStreamInterval     = 2 * time.Second

	writeWait = 10 * time.Second
	pongWait  = 60 * time.Second
)

// parseStreamInterval accepts a Go duration ("5s") or whole seconds ("5")
func parseStreamInterval(s string) time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultStreamInterval
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		n, convErr := strconv.Atoi(s)
		if convErr != nil {
			return DefaultStreamInterval
		}
		d = time.Duration(n) * time.Second
	}
	if d < MinStreamInterval {
		return MinStreamInterval
	}
	return d
}

func (h *StockHandler) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || h.config.OriginAllowed(origin)
		},
	}
}

// Stream pushes realtime snapshots over a websocket until the client
// disconnects or the server shuts down
// GET /api/stock/stream?symbols=VNM,FPT&source=VCI&interval=5s
func (h *StockHandler) Stream(w http.ResponseWriter, r *http.Request) {
	symbols := query(r, "symbols")
	source := query(r, "source")
	interval := parseStreamInterval(query(r, "interval"))

	up := h.upgrader()
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		h.logger.WithError(err).Warn("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	log := h.logger.WithFields(logger.Fields{
		"symbols":  symbols,
		"source":   source,
		"interval": interval,
	})
	log.Info("Stream opened")

	// reader: handles pongs and detects client disconnect
	go func() {
		defer cancel()
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.WithError(err).Debug("Stream read failed")
				}
				return
			}
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	pings := time.NewTicker(pongWait / 2)
	defer pings.Stop()

	push := func() bool {
		snap := h.svc.Realtime(ctx, symbols, source)
		if ctx.Err() != nil {
			return false
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(snap); err != nil {
			log.WithError(err).Debug("Stream write failed")
			return false
		}
		return true
	}

	if !push() {
		return
	}
	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			log.Info("Stream closed")
			return
		case <-pings.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				log.WithError(err).Debug("Failed to send ping")
				return
			}
		case <-ticker.C:
			if !push() {
				log.Info("Stream closed")
				return
			}
		}
	}
}
