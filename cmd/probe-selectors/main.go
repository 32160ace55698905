// Probe program to check nature.com markup against our selectors.
// Run it when TOC or abstract extraction starts coming back empty:
// it fetches one live issue and one article page and dumps what parsed.
package main

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ndrozd/exordium/internal/model"
	"github.com/ndrozd/exordium/internal/scrape"
	"github.com/ndrozd/exordium/internal/util"
)

func main() {
	fmt.Println("=== nature.com Selector Probe ===")
	fmt.Println()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false // always hit the live site
	fetcher := scrape.NewFetcher(cfg, nil)

	// Last month's issue is always published by now.
	issues := scrape.IssueURLs("nphoton", 2, time.Now())
	issue := issues[1]

	fmt.Printf("Issue: Vol %d Issue %d\n", issue.Volume, issue.Issue)
	fmt.Printf("URL:   %s\n", issue.URL)
	fmt.Println(strings.Repeat("-", 60))

	page, err := fetcher.FetchWithRetry(ctx, issue.URL)
	if err != nil {
		fmt.Printf("  ✗ TOC fetch failed: %v\n", err)
		return
	}

	articles, err := scrape.ParseTOC(page, issue)
	if err != nil {
		fmt.Printf("  ✗ TOC parse failed: %v\n", err)
		return
	}
	if len(articles) == 0 {
		fmt.Println("  ⚠️  NO ARTICLES PARSED — issue-page markup has likely changed")
		return
	}

	fmt.Printf("  ✓ Parsed %d articles\n", len(articles))
	for i, a := range articles {
		if i >= 5 {
			fmt.Printf("    ... and %d more\n", len(articles)-5)
			break
		}
		fmt.Printf("    [%s] %s\n", a.ArticleType, a.Title)
		fmt.Printf("      doi=%s date=%s authors=%d snippet=%dch\n",
			a.DOI, a.Date, len(a.Authors), len(a.AbstractSnippet))
	}

	// Probe one article page for the abstract selectors. Editorial content
	// has no abstract section, so prefer a research-style entry.
	target := articles[0]
	for _, a := range articles {
		if !scrape.IsEditorialType(a.ArticleType) {
			target = a
			break
		}
	}

	fmt.Println()
	fmt.Printf("Article: %s\n", target.Title)
	fmt.Printf("URL:     %s\n", target.URL)
	fmt.Println(strings.Repeat("-", 60))

	page, err = fetcher.FetchWithRetry(ctx, target.URL)
	if err != nil {
		fmt.Printf("  ✗ Article fetch failed: %v\n", err)
		return
	}

	if abstract, ok := scrape.ExtractAbstract(page); ok {
		preview := util.TruncateRunes(abstract, 200)
		if preview != abstract {
			preview += "..."
		}
		fmt.Printf("  ✓ Abstract extracted (%d chars)\n", utf8.RuneCountInString(abstract))
		fmt.Printf("    %s\n", preview)
	} else {
		fmt.Println("  ⚠️  NO ABSTRACT FOUND — article-page markup has likely changed")
	}

	fmt.Println()
	fmt.Println("=== Probe Complete ===")
	fmt.Println()
	fmt.Println("Note: this probe hits the live site and respects robots.txt.")
	fmt.Println("Selectors live in internal/scrape/toc.go and abstract.go.")
}
