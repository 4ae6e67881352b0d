package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vanlang/stock-api/internal/api"
	"github.com/vanlang/stock-api/internal/api/handlers"
	"github.com/vanlang/stock-api/internal/scheduler"
	"github.com/vanlang/stock-api/internal/scheduler/jobs"
	"github.com/vanlang/stock-api/pkg/logger"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API server.

This command:
- probes every enabled source and picks the default
- builds the catalog search index
- schedules the listing refresh (and optional source re-probe)
- serves the REST and websocket endpoints

Example:
  go run ./cmd/stockapi serve
  go run ./cmd/stockapi serve --port 8080`,
	RunE: runServe,
}

var (
	servePort string
)

func init() {
	rootCmd.AddCommand(serveCmd)

	// Flags
	serveCmd.Flags().StringVar(&servePort, "port", "", "API server port (default: PORT env or 8000)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// 1. Load config
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Override port if flag is set
	if servePort != "" {
		cfg.Port = servePort
	}

	// 2. Initialize logger
	log := logger.New(cfg)
	log.WithFields(logger.Fields{
		"port":    cfg.Port,
		"env":     cfg.Env,
		"sources": cfg.Sources.Enabled,
	}).Info("Initializing API server")

	// 3. Wire dependencies
	a, err := buildApp(cmd.Context(), cfg, log, cfg.Sources.ProbeOnStart)
	if err != nil {
		return err
	}
	defer a.Close()

	// 4. Scheduler
	sched := scheduler.New(log)
	if cfg.ListingRefreshCron != "" {
		if err := sched.AddJob(jobs.NewListingRefreshJob(a.listings, a.registry, cfg.ListingRefreshCron, log)); err != nil {
			return fmt.Errorf("schedule listing refresh: %w", err)
		}
	}
	if cfg.SourceProbeCron != "" {
		if err := sched.AddJob(jobs.NewSourceProbeJob(a.registry, cfg.SourceProbeCron, cfg.Upstream.Timeout, log)); err != nil {
			return fmt.Errorf("schedule source probe: %w", err)
		}
	}
	sched.Start()
	defer sched.Stop()

	// first listing load runs now instead of waiting for the schedule
	if cfg.ListingRefreshCron != "" {
		_ = sched.RunJob("listing_refresh")
	}

	// 5. HTTP server
	h := handlers.NewStockHandler(a.svc, cfg, log).WithJobs(sched)
	router := api.NewRouter(h, cfg, log)
	server := api.New(cfg, log, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Printf("   Default source : %s\n", a.registry.Default())
	fmt.Printf("   Mock fallback  : %v\n", cfg.MockFallback)
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal or a failed start
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
