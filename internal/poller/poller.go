// Package poller drives the periodic feed refresh and fans results out to
// the stream hub and the Kafka topic.
package poller

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/golgrax/bayanihan-alerts/internal/domain"
	"github.com/golgrax/bayanihan-alerts/internal/observability"
)

// AlertFetcher refreshes the alert feed.
type AlertFetcher interface {
	FetchAlerts(ctx context.Context, useCache bool) (domain.FeedResult, error)
}

// Publisher sends refreshed alerts downstream.
type Publisher interface {
	PublishAlerts(ctx context.Context, alerts []domain.AlertSummary) error
}

// Broadcaster pushes a refresh result to connected stream clients.
type Broadcaster interface {
	Broadcast(v any)
}

// Poller refreshes the feed on a fixed interval. Publisher and Broadcaster
// are optional; a nil value disables that fan-out.
type Poller struct {
	fetcher     AlertFetcher
	publisher   Publisher
	broadcaster Broadcaster
	clock       clockwork.Clock
	interval    time.Duration
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
}

// New creates a Poller with the given refresh interval.
func New(fetcher AlertFetcher, publisher Publisher, broadcaster Broadcaster, clock clockwork.Clock, interval time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Poller {
	return &Poller{
		fetcher:     fetcher,
		publisher:   publisher,
		broadcaster: broadcaster,
		clock:       clock,
		interval:    interval,
		logger:      logger,
		metrics:     metrics,
	}
}

// CheckReadiness returns nil once at least one refresh has produced data,
// or an error describing why the service is not yet ready.
func (p *Poller) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no successful feed refresh yet")
	}
	return nil
}

// Run refreshes immediately, then on every interval tick until the context
// is cancelled. A failed refresh never stops the loop; the next tick tries
// again.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("poller started", "interval", p.interval)
	p.metrics.PollerRunning.Set(1)
	defer p.metrics.PollerRunning.Set(0)

	p.refresh(ctx)

	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("poller stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			p.refresh(ctx)
		}
	}
}

func (p *Poller) refresh(ctx context.Context) {
	result, err := p.fetcher.FetchAlerts(ctx, false)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.metrics.RefreshRuns.WithLabelValues("error").Inc()
		p.logger.Error("feed refresh failed", "error", err)
		return
	}

	p.metrics.RefreshRuns.WithLabelValues("success").Inc()
	p.metrics.ActiveAlerts.Set(float64(len(result.Entries)))
	p.ready.Store(true)

	if result.Stale {
		p.logger.Warn("refresh served stale data", "entries", len(result.Entries))
	} else {
		p.logger.Info("feed refreshed", "entries", len(result.Entries))
	}

	if p.broadcaster != nil {
		p.broadcaster.Broadcast(result)
	}
	if p.publisher != nil && !result.Stale {
		if err := p.publisher.PublishAlerts(ctx, result.Entries); err != nil {
			p.logger.Error("alert publish failed", "error", err)
		}
	}
}
