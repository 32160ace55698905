package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// PageFetcher retrieves one page body. Implementations are expected to
// handle rate limiting internally, so the pool may fan out freely.
type PageFetcher interface {
	FetchWithRetry(ctx context.Context, url string) (string, error)
}

// FetchJob fetches a single URL and remembers its position in the batch.
type FetchJob struct {
	Index   int
	URL     string
	Fetcher PageFetcher
}

// Execute runs the fetch.
func (j *FetchJob) Execute(ctx context.Context) Result {
	body, err := j.Fetcher.FetchWithRetry(ctx, j.URL)
	return &FetchResult{Index: j.Index, URL: j.URL, Body: body, Error: err}
}

// FetchResult is the outcome of one FetchJob.
type FetchResult struct {
	Index int
	URL   string
	Body  string
	Error error
}

// GetError returns the fetch error, if any.
func (r *FetchResult) GetError() error {
	return r.Error
}

// BatchFetcher fetches many pages concurrently over the pool. The fetcher's
// per-host limiter keeps the fan-out polite.
type BatchFetcher struct {
	fetcher     PageFetcher
	concurrency int
}

// NewBatchFetcher creates a batch fetcher with the given concurrency.
func NewBatchFetcher(fetcher PageFetcher, concurrency int) *BatchFetcher {
	return &BatchFetcher{fetcher: fetcher, concurrency: concurrency}
}

// FetchAll fetches every URL and returns results in input order; slot i
// always holds the outcome for urls[i].
func (b *BatchFetcher) FetchAll(ctx context.Context, urls []string) []*FetchResult {
	if len(urls) == 0 {
		return []*FetchResult{}
	}

	pool := NewPool(b.concurrency, len(urls))
	pool.Start()

	for i, url := range urls {
		pool.Submit(&FetchJob{Index: i, URL: url, Fetcher: b.fetcher})
	}
	results := pool.Wait()

	ordered := make([]*FetchResult, len(urls))
	for _, result := range results {
		if fr, ok := result.(*FetchResult); ok && fr.Index >= 0 && fr.Index < len(ordered) {
			ordered[fr.Index] = fr
		}
	}
	// A cancelled pool abandons jobs; fill the holes so callers can range
	// without nil checks.
	for i, fr := range ordered {
		if fr == nil {
			ordered[i] = &FetchResult{Index: i, URL: urls[i], Error: ctx.Err()}
		}
	}
	return ordered
}

// ReadListFile reads one entry per line, skipping blanks and # comments and
// dropping duplicates. Seed DOI lists and URL lists come in this form.
func ReadListFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var entries []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			entries = append(entries, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return entries, nil
}
