package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"
)

// stubFetcher implements PageFetcher
type stubFetcher struct {
	failFor string
}

func (s *stubFetcher) FetchWithRetry(ctx context.Context, url string) (string, error) {
	time.Sleep(5 * time.Millisecond) // simulate network
	if s.failFor != "" && strings.Contains(url, s.failFor) {
		return "", errors.New("fetch error")
	}
	return "<html>" + url + "</html>", nil
}

func TestBatchFetcher_FetchAll(t *testing.T) {
	batch := NewBatchFetcher(&stubFetcher{}, 3)

	urls := []string{
		"http://example.com/a",
		"http://example.com/b",
		"http://example.com/c",
		"http://example.com/d",
	}
	results := batch.FetchAll(context.Background(), urls)

	if len(results) != len(urls) {
		t.Fatalf("expected %d results, got %d", len(urls), len(results))
	}
	for i, res := range results {
		if res.URL != urls[i] {
			t.Errorf("result %d out of order: expected %s, got %s", i, urls[i], res.URL)
		}
		if res.Index != i {
			t.Errorf("result %d carries index %d", i, res.Index)
		}
		if res.Error != nil {
			t.Errorf("unexpected error for %s: %v", res.URL, res.Error)
		}
		if !strings.Contains(res.Body, urls[i]) {
			t.Errorf("body for %s does not echo the URL", urls[i])
		}
	}
}

func TestBatchFetcher_FetchAll_PartialFailure(t *testing.T) {
	batch := NewBatchFetcher(&stubFetcher{failFor: "/b"}, 2)

	urls := []string{"http://example.com/a", "http://example.com/b", "http://example.com/c"}
	results := batch.FetchAll(context.Background(), urls)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].GetError() != nil || results[2].GetError() != nil {
		t.Errorf("unexpected errors: %v, %v", results[0].GetError(), results[2].GetError())
	}
	if results[1].GetError() == nil {
		t.Error("expected error for /b, got nil")
	}
	if results[1].Body != "" {
		t.Errorf("expected empty body on error, got %q", results[1].Body)
	}
}

func TestBatchFetcher_FetchAll_Empty(t *testing.T) {
	batch := NewBatchFetcher(&stubFetcher{}, 2)

	results := batch.FetchAll(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestBatchFetcher_FetchAll_LargeBatch(t *testing.T) {
	batch := NewBatchFetcher(&stubFetcher{}, 4)

	urls := make([]string, 40)
	for i := range urls {
		urls[i] = fmt.Sprintf("http://example.com/p%02d", i)
	}
	results := batch.FetchAll(context.Background(), urls)

	if len(results) != len(urls) {
		t.Fatalf("expected %d results, got %d", len(urls), len(results))
	}
	for i, res := range results {
		if res.URL != urls[i] {
			t.Fatalf("result %d out of order: expected %s, got %s", i, urls[i], res.URL)
		}
	}
}

func TestReadListFile(t *testing.T) {
	content := `10.1038/s41566-024-01001-2
# comment
10.1038/s41566-024-01002-9

10.1038/s41566-024-01003-6   `

	tmpfile, err := os.CreateTemp("", "dois")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Remove(tmpfile.Name()) }()

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	entries, err := ReadListFile(tmpfile.Name())
	if err != nil {
		t.Fatalf("ReadListFile failed: %v", err)
	}

	expected := []string{
		"10.1038/s41566-024-01001-2",
		"10.1038/s41566-024-01002-9",
		"10.1038/s41566-024-01003-6",
	}
	if len(entries) != len(expected) {
		t.Fatalf("expected %d entries, got %d", len(expected), len(entries))
	}
	for i, entry := range entries {
		if entry != expected[i] {
			t.Errorf("expected %s at index %d, got %s", expected[i], i, entry)
		}
	}
}

func TestReadListFile_Deduplication(t *testing.T) {
	content := "10.1038/s41566-024-01001-2\n10.1038/s41566-024-01001-2\n"

	tmpfile, err := os.CreateTemp("", "dois_dedup")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Remove(tmpfile.Name()) }()

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	entries, err := ReadListFile(tmpfile.Name())
	if err != nil {
		t.Fatalf("ReadListFile failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 entry after deduplication, got %d", len(entries))
	}
}

func TestReadListFile_NonExistent(t *testing.T) {
	_, err := ReadListFile("no_such_file.txt")
	if err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}
