package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/formgest/internal/api"
	"github.com/dgallion1/formgest/internal/config"
	"github.com/dgallion1/formgest/internal/formsapi"
	"github.com/dgallion1/formgest/internal/pipeline"
	"golang.org/x/oauth2"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the form service client.
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.FormsAccessToken})
	client := formsapi.NewClient(ts,
		formsapi.WithBaseURL(cfg.FormsBaseURL),
		formsapi.WithWriteLimit(cfg.WriteRatePerSecond, cfg.WriteBurst),
	)

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, client, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		// Drain the HTTP server first so no handler can submit to a
		// stopped pipeline.
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		orch.Stop()
		client.Close()
	}()

	log.Info("starting formgest", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
