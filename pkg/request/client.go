// Package request provides a queued, cached HTTP client for the external
// data providers (reverse geocoder, region catalog, shelter datasets).
package request

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"shelternav/pkg/cache"
	"shelternav/pkg/config"
	"shelternav/pkg/logging"
	"shelternav/pkg/tracker"
	"shelternav/pkg/version"
)

// Client handles HTTP requests with per-provider queuing, caching, and tracking.
type Client struct {
	httpClient *http.Client
	cache      cache.Cacher
	tracker    *tracker.Tracker
	backoff    *ProviderBackoff
	retries    int
	userAgent  string

	// Queues per provider (domain)
	queues map[string]chan job
	mu     sync.Mutex // Protects queues map
}

// job represents a queued request.
type job struct {
	req      *http.Request
	headers  map[string]string
	cacheKey string
	respChan chan jobResult
}

type jobResult struct {
	body []byte
	err  error
}

// New creates a new Client. The contact string, if non-empty, is appended to
// the User-Agent as the geocoder's usage policy requests.
func New(cfg *config.RequestConfig, contact string, c cache.Cacher, t *tracker.Tracker) *Client {
	ua := fmt.Sprintf("ShelterNav/%s", version.Version)
	if contact != "" {
		ua = fmt.Sprintf("%s (%s)", ua, contact)
	}

	retries := cfg.Retries
	if retries <= 0 {
		retries = 3
	}

	return &Client{
		httpClient: &http.Client{Timeout: time.Duration(cfg.Timeout)},
		cache:      c,
		tracker:    t,
		backoff:    NewProviderBackoff(time.Duration(cfg.Backoff.BaseDelay), time.Duration(cfg.Backoff.MaxDelay)),
		retries:    retries,
		userAgent:  ua,
		queues:     make(map[string]chan job),
	}
}

// Get performs a GET request with queuing, and caching if cacheKey is non-empty.
func (c *Client) Get(ctx context.Context, u, cacheKey string) ([]byte, error) {
	return c.GetWithHeaders(ctx, u, nil, cacheKey)
}

// GetWithHeaders performs a GET request with custom headers and optional caching.
func (c *Client) GetWithHeaders(ctx context.Context, u string, headers map[string]string, cacheKey string) ([]byte, error) {
	parsedURL, err := url.Parse(u)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	provider := normalizeProvider(parsedURL.Host)

	// 1. Check Cache (Only if key is provided)
	if cacheKey != "" {
		if val, hit := c.cache.GetCache(ctx, cacheKey); hit {
			c.tracker.TrackCacheHit(provider)
			metricCacheHits.WithLabelValues(provider).Inc()
			slog.Debug("Cache Hit", "provider", provider, "key", cacheKey)
			return val, nil
		}
		c.tracker.TrackCacheMiss(provider)
		metricCacheMisses.WithLabelValues(provider).Inc()
		slog.Debug("Cache Miss", "provider", provider, "key", cacheKey)
	}

	// 2. Enqueue Request
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	respChan := make(chan jobResult, 1)
	j := job{req: req, headers: headers, cacheKey: cacheKey, respChan: respChan}

	c.dispatch(provider, j)

	// 3. Wait for Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-respChan:
		return res.body, res.err
	}
}

// normalizeProvider groups hosts into provider names for queuing and stats.
func normalizeProvider(host string) string {
	if strings.HasSuffix(host, ".openstreetmap.org") || host == "openstreetmap.org" {
		return "nominatim"
	}
	if strings.HasSuffix(host, ".github.io") {
		return "shelter-api"
	}
	return host
}

// dispatch sends the job to the provider's queue, creating the queue/worker if needed.
func (c *Client) dispatch(provider string, j job) {
	c.mu.Lock()
	defer c.mu.Unlock()

	q, ok := c.queues[provider]
	if !ok {
		// Create new queue and start worker
		q = make(chan job, 100)
		c.queues[provider] = q
		go c.worker(provider, q)
	}

	// We block here if the queue is full, effectively throttling the caller
	select {
	case q <- j:
	case <-j.req.Context().Done():
		// Caller gave up before we could even enqueue
		j.respChan <- jobResult{err: j.req.Context().Err()}
	}
}

// worker processes requests for a specific provider sequentially.
func (c *Client) worker(provider string, q <-chan job) {
	for j := range q {
		// Check context before processing
		if j.req.Context().Err() != nil {
			slog.Warn("Job dropped from queue (context expired)", "provider", provider, "error", j.req.Context().Err())
			j.respChan <- jobResult{err: j.req.Context().Err()}
			continue
		}

		// Apply User-Agent (default if not provided)
		uaMatch := false
		for k, v := range j.headers {
			j.req.Header.Set(k, v)
			if http.CanonicalHeaderKey(k) == "User-Agent" {
				uaMatch = true
			}
		}
		if !uaMatch {
			j.req.Header.Set("User-Agent", c.userAgent)
		}

		body, err := c.execute(provider, j.req)

		if err == nil {
			c.tracker.TrackAPISuccess(provider)
			metricRequests.WithLabelValues(provider, "success").Inc()
			// Cache result (Only if key is provided)
			if j.cacheKey != "" {
				if err := c.cache.SetCache(context.Background(), j.cacheKey, body); err != nil {
					slog.Error("Failed to cache response", "url", j.req.URL, "error", err)
				}
			}
		} else {
			c.tracker.TrackAPIFailure(provider)
			metricRequests.WithLabelValues(provider, "failure").Inc()
		}

		j.respChan <- jobResult{body: body, err: err}

		// Hardcoded safety gap to prevent hitting rate limits
		time.Sleep(100 * time.Millisecond)
	}
}

// execute attempts the request, honoring the provider backoff window and
// retrying on retryable failures.
func (c *Client) execute(provider string, req *http.Request) ([]byte, error) {
	for attempt := 0; attempt < c.retries; attempt++ {
		if err := c.backoff.Wait(req.Context(), provider); err != nil {
			return nil, err
		}

		if logging.RequestLogger != nil {
			logging.RequestLogger.Info("request", "provider", provider, "host", req.URL.Host, "path", req.URL.Path, "attempt", attempt+1)
		}
		resp, err := c.httpClient.Do(req)

		if err != nil {
			// Check if the error is a context cancellation from OUR side
			if req.Context().Err() != nil {
				return nil, req.Context().Err()
			}

			slog.Warn("Request failed, retrying", "url", req.URL, "attempt", attempt+1, "error", err)
			c.backoff.RecordFailure(provider)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || (resp.StatusCode >= 500 && resp.StatusCode < 600) {
			resp.Body.Close()
			slog.Warn("API Backoff", "status", resp.StatusCode, "url", req.URL, "attempt", attempt+1)
			c.backoff.RecordFailure(provider)
			continue
		}

		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return nil, fmt.Errorf("api error: status %d", resp.StatusCode)
		}

		// Success
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("read error: %w", err)
		}
		c.backoff.RecordSuccess(provider)
		return body, nil
	}

	return nil, fmt.Errorf("max retries exceeded")
}
