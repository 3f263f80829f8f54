// Command api is the Gamefeed API server.
//
// Usage:
//
//	gamefeed-api
//	API_PORT=8080 gamefeed-api
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/scorewire/gamefeed/internal/api"
	"github.com/scorewire/gamefeed/internal/archive"
	"github.com/scorewire/gamefeed/internal/config"
	"github.com/scorewire/gamefeed/internal/feed"
	"github.com/scorewire/gamefeed/internal/provider/espn"
	"github.com/scorewire/gamefeed/internal/provider/nhl"
	"github.com/scorewire/gamefeed/internal/publish"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	espnClient := espn.NewClient(cfg.ESPNBaseURL, cfg.FeedRequestsPerMin, logger)
	nhlClient := nhl.NewClient(cfg.NHLBaseURL, logger)
	svc := feed.New(espnClient, nhlClient, cfg.CacheTTL, logger)

	// Optional snapshot fan-out
	if cfg.RedisURL != "" {
		pub, err := publish.New(ctx, cfg.RedisURL, logger)
		if err != nil {
			logger.Error("Failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		defer pub.Close()
		svc.AddSink(pub)
		logger.Info("Redis publisher enabled")
	}
	if cfg.DatabaseURL != "" {
		arc, err := archive.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer arc.Close()
		svc.AddSink(arc)
		logger.Info("Snapshot archive enabled")
	}

	router := api.NewRouter(svc, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Gamefeed API",
			"addr", addr,
			"environment", cfg.Environment,
			"cache_ttl", cfg.CacheTTL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
