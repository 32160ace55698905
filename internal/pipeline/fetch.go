package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"unicode/utf8"

	"github.com/ndrozd/exordium/internal/analyze"
	"github.com/ndrozd/exordium/internal/cache"
	"github.com/ndrozd/exordium/internal/corpus"
	"github.com/ndrozd/exordium/internal/model"
	"github.com/ndrozd/exordium/internal/scrape"
	"github.com/ndrozd/exordium/internal/util"
	"github.com/ndrozd/exordium/internal/worker"
)

// fetchConcurrency is the pool size for abstract fetching. The fetcher's
// per-host limiter still paces the actual requests, so this only controls
// how many fetches overlap their waiting.
const fetchConcurrency = 3

// selectionSize is how many learning articles the auto-selection picks.
const selectionSize = 20

// FetchOptions locates the files of a fetch run.
type FetchOptions struct {
	ArticlesPath  string // scraped article metadata, updated in place
	SelectionPath string // curated selection; auto-generated when missing
	OutputPath    string // structured abstracts for analysis
}

// FetchStats summarizes a fetch run.
type FetchStats struct {
	Targets      int
	WithText     int
	Failed       int
	AvgSentences float64
	AutoSelected bool
}

// FetchAbstracts builds the learning corpus: it matches the selected DOIs
// against the scraped articles, pulls full abstracts for targets that have
// none cached, splits them into position-labelled sentences, and writes the
// structured corpus. Fetched abstracts are also written back into the
// articles file so later runs skip the network.
func (p *Pipeline) FetchAbstracts(ctx context.Context, opts FetchOptions) (*FetchStats, error) {
	articles, err := corpus.LoadArticles(opts.ArticlesPath)
	if err != nil {
		return nil, fmt.Errorf("load articles: %w", err)
	}
	if len(articles) == 0 {
		return nil, fmt.Errorf("%s is empty, scrape a journal first", filepath.Base(opts.ArticlesPath))
	}
	fmt.Printf("📄 Loaded %d articles from %s\n", len(articles), filepath.Base(opts.ArticlesPath))

	stats := &FetchStats{}

	sel, err := corpus.LoadSelection(opts.SelectionPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		fmt.Printf("⚠  %s not found, falling back to mechanical selection\n", filepath.Base(opts.SelectionPath))
		sel = corpus.AutoSelect(articles, selectionSize)
		if err := corpus.SaveSelection(opts.SelectionPath, sel); err != nil {
			return nil, fmt.Errorf("save selection: %w", err)
		}
		stats.AutoSelected = true
		fmt.Printf("✅ Auto-generated %s: %d articles selected\n",
			filepath.Base(opts.SelectionPath), len(sel.TopicRelevant)+len(sel.ArchetypeRelevant))
		fmt.Printf("   → %d topic-relevant (research articles)\n", len(sel.TopicRelevant))
		fmt.Printf("   → %d archetype-relevant (reviews/perspectives)\n", len(sel.ArchetypeRelevant))
	case err != nil:
		return nil, fmt.Errorf("load selection: %w", err)
	default:
		fmt.Printf("✓ Loaded existing %s\n", filepath.Base(opts.SelectionPath))
	}

	targetDOIs := make(map[string]bool)
	for _, doi := range sel.DOIs() {
		targetDOIs[doi] = true
	}
	if len(targetDOIs) == 0 {
		return nil, fmt.Errorf("no DOIs in %s", filepath.Base(opts.SelectionPath))
	}
	fmt.Printf("🎯 %d target DOIs loaded\n", len(targetDOIs))

	// Match against the scraped metadata, keeping scrape order.
	var targets []int
	for i := range articles {
		if targetDOIs[articles[i].DOI] {
			targets = append(targets, i)
		}
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("no selected DOI matches %s; delete %s to re-select",
			filepath.Base(opts.ArticlesPath), filepath.Base(opts.SelectionPath))
	}
	fmt.Printf("📋 %d articles matched in %s\n", len(targets), filepath.Base(opts.ArticlesPath))

	// Fan out page fetches for targets without a cached abstract.
	var fetchIdx []int
	var fetchURLs []string
	for _, i := range targets {
		if articles[i].FullAbstract == "" && articles[i].URL != "" {
			fetchIdx = append(fetchIdx, i)
			fetchURLs = append(fetchURLs, articles[i].URL)
		}
	}

	pages := make(map[int]*worker.FetchResult, len(fetchIdx))
	if len(fetchURLs) > 0 {
		batch := worker.NewBatchFetcher(p.fetchClient(), fetchConcurrency)
		for k, result := range batch.FetchAll(ctx, fetchURLs) {
			pages[fetchIdx[k]] = result
		}
	}

	records := make([]model.AbstractRecord, 0, len(targets))
	for n, i := range targets {
		a := &articles[i]
		fmt.Printf("\n[%d/%d] %s...\n", n+1, len(targets), util.TruncateRunes(a.Title, 60))

		text := a.FullAbstract
		switch {
		case text != "":
			fmt.Printf("  ✓ Already cached (%d chars)\n", utf8.RuneCountInString(text))
		case pages[i] != nil && pages[i].Error == nil:
			if extracted, ok := scrape.ExtractAbstract(pages[i].Body); ok {
				text = extracted
				a.FullAbstract = extracted
				fmt.Printf("  ✓ Fetched (%d chars)\n", utf8.RuneCountInString(text))
			} else {
				fmt.Printf("  ✗ No abstract on page, using snippet\n")
				text = a.AbstractSnippet
			}
		default:
			fmt.Printf("  ✗ Could not fetch, using snippet\n")
			text = a.AbstractSnippet
		}

		var sentences []model.Sentence
		if text != "" {
			for j, s := range analyze.SplitSentences(text) {
				sentences = append(sentences, model.Sentence{
					Position: fmt.Sprintf("S%d", j+1),
					Text:     s,
				})
			}
		}

		group, why := sel.Lookup(a.DOI)
		records = append(records, model.AbstractRecord{
			DOI:             a.DOI,
			Title:           a.Title,
			URL:             a.URL,
			ArticleType:     a.ArticleType,
			Date:            a.Date,
			Group:           group,
			SelectionReason: why,
			FullText:        text,
			Sentences:       sentences,
			SentenceCount:   len(sentences),
		})
	}

	if err := corpus.SaveAbstracts(opts.OutputPath, records); err != nil {
		return nil, fmt.Errorf("save abstracts: %w", err)
	}
	fmt.Printf("\n✓ Saved %d structured abstracts to %s\n", len(records), opts.OutputPath)

	if err := corpus.SaveArticles(opts.ArticlesPath, articles); err != nil {
		return nil, fmt.Errorf("update articles: %w", err)
	}
	fmt.Printf("✓ Updated %s with fetched abstracts\n", filepath.Base(opts.ArticlesPath))

	stats.Targets = len(records)
	totalSentences := 0
	for _, r := range records {
		if r.FullText != "" {
			stats.WithText++
		}
		totalSentences += r.SentenceCount
	}
	stats.Failed = stats.Targets - stats.WithText
	if stats.Targets > 0 {
		stats.AvgSentences = float64(totalSentences) / float64(stats.Targets)
	}
	return stats, nil
}

// fetchClient returns the page fetcher, building the default one on first
// use. Tests inject a stub instead.
func (p *Pipeline) fetchClient() worker.PageFetcher {
	if p.fetcher == nil {
		p.fetcher = scrape.NewFetcher(p.config, cache.ForConfig(p.config.Cache))
	}
	return p.fetcher
}
