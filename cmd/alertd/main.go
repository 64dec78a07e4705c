package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	"github.com/golgrax/bayanihan-alerts/internal/adapter/httpapi"
	kafkaadapter "github.com/golgrax/bayanihan-alerts/internal/adapter/kafka"
	"github.com/golgrax/bayanihan-alerts/internal/adapter/ws"
	"github.com/golgrax/bayanihan-alerts/internal/config"
	"github.com/golgrax/bayanihan-alerts/internal/feed"
	"github.com/golgrax/bayanihan-alerts/internal/observability"
	"github.com/golgrax/bayanihan-alerts/internal/poller"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	client := feed.NewClient(cfg.FeedURL, feed.Options{
		HTTPClient:  &http.Client{Timeout: cfg.FetchTimeout},
		Clock:       clockwork.NewRealClock(),
		Logger:      logger,
		Metrics:     metrics,
		MaxAttempts: cfg.FetchMaxAttempts,
		BaseDelay:   cfg.FetchBaseDelay,
	})

	hub := ws.NewHub(logger, metrics)

	// Kafka publishing is feature-flagged via KAFKA_BROKERS / PUBLISH_ENABLED.
	var publisher poller.Publisher
	var writer *kafkaadapter.Writer
	if cfg.PublishEnabled {
		writer = kafkaadapter.NewWriter(cfg.KafkaBrokers, cfg.KafkaTopic, logger, metrics)
		publisher = writer
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		logger.Info("kafka publishing disabled")
	}

	p := poller.New(client, publisher, hub, clockwork.NewRealClock(), cfg.PollInterval, logger, metrics)

	srv := httpapi.NewServer(cfg.HTTPAddr, client, p, hub, cfg.AllowedDetailHosts, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("poller error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	hub.Close()
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
