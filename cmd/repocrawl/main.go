// Package main is the entry point for the repocrawl web service.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/samdwyer/repocrawl/internal/config"
	"github.com/samdwyer/repocrawl/internal/github"
	"github.com/samdwyer/repocrawl/internal/telemetry"
	"github.com/samdwyer/repocrawl/internal/web"
)

func main() {
	// Load .env for local development. Not fatal - env vars might be
	// set directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Service will run without observability")
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	opts := []github.Option{
		github.WithBaseURL(cfg.GitHubBaseURL),
		github.WithReadmeWorkers(cfg.ReadmeWorkers),
	}
	if cfg.GitHubToken != "" {
		opts = append(opts, github.WithToken(cfg.GitHubToken))
	}
	if cache, err := github.OpenCache(cfg.CachePath, cfg.CacheTTL); err != nil {
		log.Printf("Warning: repo cache unavailable: %v", err)
	} else {
		defer cache.Close()
		opts = append(opts, github.WithCache(cache))
	}

	srv := web.New(cfg, github.NewClient(opts...))
	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP shutdown: %v", err)
		}
	}()

	log.Printf("listening on %s", cfg.ListenAddr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("HTTP server error: %v", err)
	}
}
