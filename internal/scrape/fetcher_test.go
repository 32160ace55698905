package scrape

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ndrozd/exordium/internal/cache"
	"github.com/ndrozd/exordium/internal/model"
)

// testFetcherConfig returns a config tuned for local test servers: no robots
// checks and a rate limit that never blocks.
func testFetcherConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = 5 * time.Second
	cfg.HTTP.UserAgent = "test-agent"
	cfg.Scrape.RequestsPerSec = 1000
	cfg.Scrape.Burst = 100
	cfg.Scrape.RespectRobots = false
	return cfg
}

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "test-agent" {
			t.Errorf("Unexpected User-Agent: %s", ua)
		}
		fmt.Fprint(w, "<html><body>OK</body></html>")
	}))
	defer server.Close()

	fetcher := NewFetcher(testFetcherConfig(), nil)
	body, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if body != "<html><body>OK</body></html>" {
		t.Errorf("Unexpected body: %s", body)
	}
}

func TestFetch_UsesCache(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, "<html>fresh</html>")
	}))
	defer server.Close()

	pages := cache.NewMemoryCache(time.Hour, time.Hour)
	fetcher := NewFetcher(testFetcherConfig(), pages)

	for i := 0; i < 3; i++ {
		body, err := fetcher.Fetch(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("Fetch %d: %v", i, err)
		}
		if body != "<html>fresh</html>" {
			t.Errorf("Fetch %d: unexpected body %q", i, body)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("Expected 1 network hit, got %d", got)
	}
}

func TestFetchWithRetry_TransientThenSuccess(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, "<html>OK</html>")
	}))
	defer server.Close()

	origSleep := fetchSleepFunc
	fetchSleepFunc = func(d time.Duration) {}
	defer func() { fetchSleepFunc = origSleep }()

	fetcher := NewFetcher(testFetcherConfig(), nil)
	body, err := fetcher.FetchWithRetry(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if body != "<html>OK</html>" {
		t.Errorf("Unexpected body: %s", body)
	}
	if got := attempts.Load(); got != 3 {
		t.Errorf("Expected 3 attempts, got %d", got)
	}
}

func TestFetchWithRetry_ClientErrorFailsFast(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	origSleep := fetchSleepFunc
	fetchSleepFunc = func(d time.Duration) {}
	defer func() { fetchSleepFunc = origSleep }()

	fetcher := NewFetcher(testFetcherConfig(), nil)
	if _, err := fetcher.FetchWithRetry(context.Background(), server.URL); err == nil {
		t.Fatal("Expected error for 404")
	}
	if got := attempts.Load(); got != 1 {
		t.Errorf("404 should not be retried, got %d attempts", got)
	}
}

func TestFetch_RespectsRobots(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "User-agent: *\nDisallow: /private\n")
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>public</html>")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	cfg := testFetcherConfig()
	cfg.Scrape.RespectRobots = true
	fetcher := NewFetcher(cfg, nil)

	if _, err := fetcher.Fetch(context.Background(), server.URL+"/private/report"); err == nil {
		t.Error("Expected robots.txt to block the fetch")
	} else if !strings.Contains(err.Error(), "robots.txt disallows") {
		t.Errorf("Unexpected error: %v", err)
	}

	body, err := fetcher.Fetch(context.Background(), server.URL+"/public/page")
	if err != nil {
		t.Fatalf("Allowed path should fetch, got %v", err)
	}
	if body != "<html>public</html>" {
		t.Errorf("Unexpected body: %s", body)
	}
}

func TestFetch_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>slow</html>")
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := NewFetcher(testFetcherConfig(), nil)
	if _, err := fetcher.Fetch(ctx, server.URL); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestIsRetryableFetchError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"server error", fmt.Errorf("unexpected status: 503 Service Unavailable"), true},
		{"rate limited", fmt.Errorf("unexpected status: 429 Too Many Requests"), true},
		{"not found", fmt.Errorf("unexpected status: 404 Not Found"), false},
		{"connection failure", fmt.Errorf("fetch: %w", errors.New("connection refused")), true},
		{"body read", fmt.Errorf("read body: %w", errors.New("unexpected EOF")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableFetchError(tt.err); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}
