package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/ndrozd/exordium/internal/corpus"
	"github.com/ndrozd/exordium/internal/model"
)

// stubPageFetcher serves canned pages and records which URLs were requested.
type stubPageFetcher struct {
	pages map[string]string
	fail  map[string]bool

	mu    sync.Mutex
	calls []string
}

func (s *stubPageFetcher) FetchWithRetry(ctx context.Context, url string) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, url)
	s.mu.Unlock()
	if s.fail[url] {
		return "", errors.New("connection refused")
	}
	return s.pages[url], nil
}

func (s *stubPageFetcher) called(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.calls {
		if c == url {
			return true
		}
	}
	return false
}

func abstractPage(text string) string {
	return `<html><body><div id="Abs1-content"><p>` + text + `</p></div></body></html>`
}

func TestFetchAbstracts(t *testing.T) {
	dir := t.TempDir()
	opts := FetchOptions{
		ArticlesPath:  filepath.Join(dir, "articles_raw.yaml"),
		SelectionPath: filepath.Join(dir, "selected.yaml"),
		OutputPath:    filepath.Join(dir, "abstracts.yaml"),
	}

	articles := []model.Article{
		{
			DOI: "10.1038/a", Title: "Fetched article", ArticleType: "Article",
			URL: "https://example.org/a", Date: "2026-02-01",
		},
		{
			DOI: "10.1038/b", Title: "Cached article", ArticleType: "Review",
			URL: "https://example.org/b", Date: "2026-02-02",
			FullAbstract: "Cached abstract text. Two sentences here.",
		},
		{
			DOI: "10.1038/c", Title: "Unreachable article", ArticleType: "Letter",
			URL: "https://example.org/c", Date: "2026-02-03",
			AbstractSnippet: "Snippet only.",
		},
		{
			DOI: "10.1038/d", Title: "Not selected", ArticleType: "Article",
			URL: "https://example.org/d", Date: "2026-02-04",
		},
	}
	if err := corpus.SaveArticles(opts.ArticlesPath, articles); err != nil {
		t.Fatal(err)
	}

	sel := model.Selection{
		TopicRelevant: []model.SelectionEntry{
			{DOI: "10.1038/a", Why: "topic pick"},
		},
		ArchetypeRelevant: []model.SelectionEntry{
			{DOI: "10.1038/b", Why: "style pick"},
			{DOI: "10.1038/c", Why: "style pick"},
		},
	}
	if err := corpus.SaveSelection(opts.SelectionPath, sel); err != nil {
		t.Fatal(err)
	}

	stub := &stubPageFetcher{
		pages: map[string]string{
			"https://example.org/a": abstractPage("We built a laser. It works well. Power is high."),
		},
		fail: map[string]bool{"https://example.org/c": true},
	}
	p := NewPipeline(model.DefaultConfig())
	p.fetcher = stub

	stats, err := p.FetchAbstracts(context.Background(), opts)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if stats.Targets != 3 {
		t.Errorf("Expected 3 targets, got %d", stats.Targets)
	}
	if stats.WithText != 3 || stats.Failed != 0 {
		t.Errorf("Snippet fallback should still count as text: %+v", stats)
	}
	if stats.AutoSelected {
		t.Error("Existing selection should not trigger auto-select")
	}
	// (3 + 2 + 1) sentences over 3 targets.
	if stats.AvgSentences != 2.0 {
		t.Errorf("Expected 2.0 avg sentences, got %v", stats.AvgSentences)
	}

	if stub.called("https://example.org/b") {
		t.Error("Cached abstract should not be fetched")
	}
	if stub.called("https://example.org/d") {
		t.Error("Unselected article should not be fetched")
	}

	records, err := corpus.LoadAbstracts(opts.OutputPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}

	// Records keep scrape order, not selection order.
	a, b, c := records[0], records[1], records[2]
	if a.DOI != "10.1038/a" || b.DOI != "10.1038/b" || c.DOI != "10.1038/c" {
		t.Errorf("Unexpected record order: %s, %s, %s", a.DOI, b.DOI, c.DOI)
	}

	if a.Group != model.GroupTopicRelevant || a.SelectionReason != "topic pick" {
		t.Errorf("Unexpected selection metadata: %s %q", a.Group, a.SelectionReason)
	}
	if !strings.HasPrefix(a.FullText, "We built a laser.") {
		t.Errorf("Unexpected fetched text: %q", a.FullText)
	}
	if a.SentenceCount != 3 || len(a.Sentences) != 3 {
		t.Errorf("Expected 3 sentences, got %d", a.SentenceCount)
	}
	if a.Sentences[0].Position != "S1" || a.Sentences[2].Position != "S3" {
		t.Errorf("Unexpected position labels: %+v", a.Sentences)
	}

	if b.Group != model.GroupArchetypeRelevant || b.SentenceCount != 2 {
		t.Errorf("Unexpected cached record: %+v", b)
	}

	if c.FullText != "Snippet only." || c.SentenceCount != 1 {
		t.Errorf("Expected snippet fallback, got %+v", c)
	}

	// Fetched abstracts are written back; snippet fallbacks are not.
	saved, err := corpus.LoadArticles(opts.ArticlesPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(saved[0].FullAbstract, "We built a laser.") {
		t.Errorf("Fetched abstract not written back: %q", saved[0].FullAbstract)
	}
	if saved[2].FullAbstract != "" {
		t.Errorf("Snippet fallback must not be persisted as an abstract: %q", saved[2].FullAbstract)
	}
}

func TestFetchAbstracts_AutoSelect(t *testing.T) {
	dir := t.TempDir()
	opts := FetchOptions{
		ArticlesPath:  filepath.Join(dir, "articles_raw.yaml"),
		SelectionPath: filepath.Join(dir, "selected.yaml"),
		OutputPath:    filepath.Join(dir, "abstracts.yaml"),
	}

	articles := []model.Article{
		{DOI: "10.1038/r1", Title: "Research one", ArticleType: "Article", Date: "2026-03-01", FullAbstract: "Done already."},
		{DOI: "10.1038/v1", Title: "Review one", ArticleType: "Review", Date: "2026-03-02", FullAbstract: "Also done."},
		{DOI: "10.1038/r2", Title: "Research two", ArticleType: "Letter", Date: "2026-03-03", FullAbstract: "Cached too."},
		{DOI: "10.1038/v2", Title: "Review two", ArticleType: "Perspective", Date: "2026-03-04", FullAbstract: "And this."},
	}
	if err := corpus.SaveArticles(opts.ArticlesPath, articles); err != nil {
		t.Fatal(err)
	}

	stub := &stubPageFetcher{}
	p := NewPipeline(model.DefaultConfig())
	p.fetcher = stub

	stats, err := p.FetchAbstracts(context.Background(), opts)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !stats.AutoSelected {
		t.Error("Missing selection file should trigger auto-select")
	}
	if stats.Targets != 4 {
		t.Errorf("Expected all 4 articles selected, got %d", stats.Targets)
	}
	if len(stub.calls) != 0 {
		t.Errorf("All abstracts cached, expected no fetches, got %v", stub.calls)
	}

	sel, err := corpus.LoadSelection(opts.SelectionPath)
	if err != nil {
		t.Fatalf("Auto-selection not saved: %v", err)
	}
	if sel.Count() != 4 {
		t.Errorf("Expected 4 selected entries, got %d", sel.Count())
	}
	if len(sel.TopicRelevant) != 2 || len(sel.ArchetypeRelevant) != 2 {
		t.Errorf("Unexpected group split: %d/%d", len(sel.TopicRelevant), len(sel.ArchetypeRelevant))
	}
}

func TestFetchAbstracts_EmptyArticles(t *testing.T) {
	dir := t.TempDir()
	articlesPath := filepath.Join(dir, "articles_raw.yaml")
	if err := corpus.SaveArticles(articlesPath, nil); err != nil {
		t.Fatal(err)
	}

	p := NewPipeline(model.DefaultConfig())
	_, err := p.FetchAbstracts(context.Background(), FetchOptions{
		ArticlesPath:  articlesPath,
		SelectionPath: filepath.Join(dir, "selected.yaml"),
		OutputPath:    filepath.Join(dir, "abstracts.yaml"),
	})
	if err == nil || !strings.Contains(err.Error(), "empty") {
		t.Errorf("Expected empty-articles error, got %v", err)
	}
}

func TestFetchAbstracts_NoMatchingDOIs(t *testing.T) {
	dir := t.TempDir()
	opts := FetchOptions{
		ArticlesPath:  filepath.Join(dir, "articles_raw.yaml"),
		SelectionPath: filepath.Join(dir, "selected.yaml"),
		OutputPath:    filepath.Join(dir, "abstracts.yaml"),
	}

	if err := corpus.SaveArticles(opts.ArticlesPath, []model.Article{
		{DOI: "10.1038/present", Title: "Here", ArticleType: "Article"},
	}); err != nil {
		t.Fatal(err)
	}
	if err := corpus.SaveSelection(opts.SelectionPath, model.Selection{
		TopicRelevant: []model.SelectionEntry{{DOI: "10.1038/stale", Why: "old run"}},
	}); err != nil {
		t.Fatal(err)
	}

	p := NewPipeline(model.DefaultConfig())
	_, err := p.FetchAbstracts(context.Background(), opts)
	if err == nil || !strings.Contains(err.Error(), "no selected DOI matches") {
		t.Errorf("Expected stale-selection error, got %v", err)
	}
}
