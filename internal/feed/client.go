package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/golgrax/bayanihan-alerts/internal/domain"
	"github.com/golgrax/bayanihan-alerts/internal/observability"
)

const (
	feedCacheKey      = "weather-alerts"
	detailCachePrefix = "alert-details-"

	// cacheTTL is the freshness window: an entry written at t0 is fresh
	// strictly before t0+cacheTTL and stale from t0+cacheTTL on.
	cacheTTL = 5 * time.Minute

	defaultMaxAttempts = 3
	defaultBaseDelay   = time.Second
	defaultHTTPTimeout = 30 * time.Second
)

// Client fetches, parses, and caches PAGASA alerts. Each Client owns its
// cache and configuration; construct one per feed. The cache is written
// only by the Client, so the entry mutex is the only locking needed.
type Client struct {
	feedURL     string
	httpClient  *http.Client
	cache       *memoryCache
	clock       clockwork.Clock
	logger      *slog.Logger
	metrics     *observability.Metrics
	maxAttempts int
	baseDelay   time.Duration
}

// Options tunes a Client. Zero values select production defaults.
type Options struct {
	HTTPClient  *http.Client
	Clock       clockwork.Clock
	Logger      *slog.Logger
	Metrics     *observability.Metrics
	MaxAttempts int
	BaseDelay   time.Duration
}

// NewClient creates a feed client for one upstream ATOM endpoint.
func NewClient(feedURL string, opts Options) *Client {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = observability.NewMetricsForTesting()
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultMaxAttempts
	}
	if opts.BaseDelay == 0 {
		opts.BaseDelay = defaultBaseDelay
	}

	return &Client{
		feedURL:     feedURL,
		httpClient:  opts.HTTPClient,
		cache:       newMemoryCache(),
		clock:       opts.Clock,
		logger:      opts.Logger,
		metrics:     opts.Metrics,
		maxAttempts: opts.MaxAttempts,
		baseDelay:   opts.BaseDelay,
	}
}

// FetchAlerts returns the normalized alert list. With useCache, a fresh
// cache entry is returned without any network call. Otherwise the feed is
// fetched with retries; on total failure any cached entry, even a stale
// one, is returned with Stale set, and only an empty cache escalates to
// domain.ErrFeedUnavailable.
func (c *Client) FetchAlerts(ctx context.Context, useCache bool) (domain.FeedResult, error) {
	if useCache {
		if cached, ok := c.freshResult(feedCacheKey); ok {
			return cached, nil
		}
	}

	body, err := c.fetchWithRetry(ctx, c.feedURL, "feed")
	if err != nil {
		if entry, ok := c.cache.get(feedCacheKey); ok {
			if result, ok := entry.data.(domain.FeedResult); ok {
				c.serveStale(feedCacheKey, entry.timestamp, err)
				result.Stale = true
				return result, nil
			}
		}
		return domain.FeedResult{}, fmt.Errorf("%w: %w", domain.ErrFeedUnavailable, err)
	}

	result, err := ParseFeed(body)
	if err != nil {
		// A bad payload is never cached and never retried.
		c.metrics.ParseErrors.WithLabelValues("feed").Inc()
		return domain.FeedResult{}, err
	}

	c.cache.put(feedCacheKey, result, c.clock.Now())
	return result, nil
}

// FetchAlertDetails returns the parsed CAP record behind one alert link,
// cached per URL with the same freshness and fallback policy as the list.
func (c *Client) FetchAlertDetails(ctx context.Context, url string) (domain.AlertDetail, error) {
	key := detailCachePrefix + url

	if cached, ok := c.freshDetail(key); ok {
		return cached, nil
	}

	body, err := c.fetchWithRetry(ctx, url, "detail")
	if err != nil {
		if entry, ok := c.cache.get(key); ok {
			if detail, ok := entry.data.(domain.AlertDetail); ok {
				c.serveStale(key, entry.timestamp, err)
				detail.Stale = true
				return detail, nil
			}
		}
		return domain.AlertDetail{}, fmt.Errorf("%w: %w", domain.ErrFeedUnavailable, err)
	}

	detail, err := ParseDetail(body)
	if err != nil {
		c.metrics.ParseErrors.WithLabelValues("detail").Inc()
		return domain.AlertDetail{}, err
	}

	c.cache.put(key, detail, c.clock.Now())
	return detail, nil
}

// ClearCache drops every cached entry, fresh and stale alike.
func (c *Client) ClearCache() {
	c.cache.clear()
}

// CacheStats reports the current cache keys and the freshness window.
func (c *Client) CacheStats() domain.CacheStats {
	return c.cache.stats(cacheTTL)
}

func (c *Client) freshResult(key string) (domain.FeedResult, bool) {
	entry, ok := c.cache.get(key)
	if !ok {
		c.metrics.CacheLookups.WithLabelValues("feed", "miss").Inc()
		return domain.FeedResult{}, false
	}
	if !c.fresh(entry) {
		c.metrics.CacheLookups.WithLabelValues("feed", "stale").Inc()
		return domain.FeedResult{}, false
	}
	result, ok := entry.data.(domain.FeedResult)
	if !ok {
		return domain.FeedResult{}, false
	}
	c.metrics.CacheLookups.WithLabelValues("feed", "fresh").Inc()
	return result, true
}

func (c *Client) freshDetail(key string) (domain.AlertDetail, bool) {
	entry, ok := c.cache.get(key)
	if !ok {
		c.metrics.CacheLookups.WithLabelValues("detail", "miss").Inc()
		return domain.AlertDetail{}, false
	}
	if !c.fresh(entry) {
		c.metrics.CacheLookups.WithLabelValues("detail", "stale").Inc()
		return domain.AlertDetail{}, false
	}
	detail, ok := entry.data.(domain.AlertDetail)
	if !ok {
		return domain.AlertDetail{}, false
	}
	c.metrics.CacheLookups.WithLabelValues("detail", "fresh").Inc()
	return detail, true
}

func (c *Client) fresh(entry cacheEntry) bool {
	return c.clock.Now().Sub(entry.timestamp) < cacheTTL
}

func (c *Client) serveStale(key string, cachedAt time.Time, cause error) {
	c.metrics.StaleServed.Inc()
	c.logger.Warn("serving stale cache entry after failed refresh",
		"key", key,
		"age", c.clock.Now().Sub(cachedAt),
		"error", cause,
	)
}

// fetchWithRetry GETs the URL with up to maxAttempts tries. The delay
// between attempt k and k+1 is baseDelay*k (linear backoff). Non-2xx
// responses and transport errors raise the same FetchError.
func (c *Client) fetchWithRetry(ctx context.Context, url, resource string) ([]byte, error) {
	start := c.clock.Now()

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		body, err := c.fetchOnce(ctx, url)
		if err == nil {
			c.metrics.FetchAttempts.WithLabelValues(resource, "success").Inc()
			c.metrics.FetchDuration.WithLabelValues(resource).Observe(c.clock.Now().Sub(start).Seconds())
			return body, nil
		}

		lastErr = &domain.FetchError{Attempt: attempt, Err: err}
		c.metrics.FetchAttempts.WithLabelValues(resource, "error").Inc()
		c.logger.Warn("fetch failed",
			"resource", resource,
			"url", url,
			"attempt", attempt,
			"max_attempts", c.maxAttempts,
			"error", err,
		)

		if attempt < c.maxAttempts {
			if !sleepWithContext(ctx, time.Duration(attempt)*c.baseDelay) {
				break
			}
		}
	}
	return nil, lastErr
}

func (c *Client) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/xml, text/xml, */*")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck // drain for connection reuse
		return nil, fmt.Errorf("http status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
