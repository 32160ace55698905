package scrape

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ndrozd/exordium/internal/cache"
	"github.com/ndrozd/exordium/internal/model"
	"github.com/ndrozd/exordium/internal/util"
	"github.com/ndrozd/exordium/internal/worker"
)

// fetchSleepFunc is replaceable in tests.
var fetchSleepFunc = time.Sleep

const maxFetchAttempts = 3

// Fetcher fetches HTML pages politely: per-domain rate limiting, robots.txt
// compliance, and a layered page cache sit in front of the HTTP client.
// Cached pages are served without touching the limiter.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	limiter    *worker.Limiter
	robots     *util.RobotsChecker
	pages      cache.Cache
}

// NewFetcher creates a Fetcher from the runtime configuration. pages may be
// nil to disable caching.
func NewFetcher(cfg *model.Config, pages cache.Cache) *Fetcher {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}

	transport := &http.Transport{
		Proxy: util.NewProxyFunc(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy),
	}
	if cfg.HTTP.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	var robots *util.RobotsChecker
	if cfg.Scrape.RespectRobots {
		robots = util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout:   cfg.HTTP.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.HTTP.UserAgent,
		maxBytes:  cfg.HTTP.MaxBodyBytes,
		limiter:   worker.NewLimiter(cfg.Scrape.RequestsPerSec, cfg.Scrape.Burst),
		robots:    robots,
		pages:     pages,
	}
}

// Fetch retrieves an HTML page. A cache hit returns immediately; otherwise
// the call blocks on the domain rate limiter (plus any robots.txt crawl
// delay) before going to the network.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	key := cache.CacheKey(rawURL)
	if f.pages != nil {
		if body, found := f.pages.Get(key); found {
			return string(body), nil
		}
	}

	if f.robots != nil {
		allowed, crawlDelay, err := f.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return "", fmt.Errorf("robots check: %w", err)
		}
		if !allowed {
			return "", fmt.Errorf("robots.txt disallows %s", rawURL)
		}
		if err := f.limiter.WaitWithDelay(ctx, rawURL, crawlDelay); err != nil {
			return "", err
		}
	} else if err := f.limiter.Wait(ctx, rawURL); err != nil {
		return "", err
	}

	body, err := f.fetchOnce(ctx, rawURL)
	if err != nil {
		return "", err
	}

	if f.pages != nil {
		_ = f.pages.Set(key, []byte(body), 0)
	}
	return body, nil
}

// FetchWithRetry retries transient failures (5xx, 429, connection errors)
// with linear backoff. Client-side errors fail immediately.
func (f *Fetcher) FetchWithRetry(ctx context.Context, rawURL string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= maxFetchAttempts; attempt++ {
		body, err := f.Fetch(ctx, rawURL)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !isRetryableFetchError(err) || attempt == maxFetchAttempts {
			break
		}
		fetchSleepFunc(time.Duration(attempt) * 2 * time.Second)
	}
	return "", lastErr
}

func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	return string(body), nil
}

// isRetryableFetchError reports whether a fetch error is worth retrying.
// Server-side status codes and connection-level failures are transient;
// request construction, body reads, and other 4xx statuses are not.
func isRetryableFetchError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if strings.HasPrefix(msg, "unexpected status: ") {
		rest := strings.TrimPrefix(msg, "unexpected status: ")
		return strings.HasPrefix(rest, "5") || strings.HasPrefix(rest, "429")
	}
	return strings.HasPrefix(msg, "fetch: ")
}
