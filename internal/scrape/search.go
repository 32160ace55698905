package scrape

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// SearchHit is one result card from the nature.com search page.
type SearchHit struct {
	Title   string
	URL     string
	Date    string
	Journal string
}

// SearchKeywords searches nature.com across journals for articles matching
// the given keywords within the last year. The query quotes the first five
// keywords and joins them with OR; each journal code is searched separately
// and failures skip to the next journal. Results keep journal order, at most
// maxResults per journal.
func SearchKeywords(ctx context.Context, fetcher *Fetcher, keywords, journals []string, maxResults int) ([]SearchHit, error) {
	if len(keywords) == 0 || len(journals) == 0 {
		return nil, nil
	}
	if maxResults <= 0 {
		maxResults = 20
	}

	quoted := make([]string, 0, 5)
	for _, kw := range keywords {
		if len(quoted) == 5 {
			break
		}
		quoted = append(quoted, `"`+kw+`"`)
	}
	query := strings.Join(quoted, " OR ")

	var hits []SearchHit
	var lastErr error
	for _, journal := range journals {
		params := url.Values{}
		params.Set("q", query)
		params.Set("journal", journal)
		params.Set("order", "relevance")
		params.Set("date_range", "last_1_year")

		page, err := fetcher.Fetch(ctx, baseURL+"/search?"+params.Encode())
		if err != nil {
			lastErr = fmt.Errorf("search %s: %w", journal, err)
			continue
		}

		found, err := parseSearchResults(page, journal, maxResults)
		if err != nil {
			lastErr = fmt.Errorf("search %s: %w", journal, err)
			continue
		}
		hits = append(hits, found...)
	}

	if len(hits) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return hits, nil
}

// parseSearchResults extracts result cards from a search page. Nature serves
// either c-card articles or app-article-list rows depending on template.
func parseSearchResults(pageHTML, fallbackJournal string, maxResults int) ([]SearchHit, error) {
	doc, err := parseHTML(pageHTML)
	if err != nil {
		return nil, fmt.Errorf("parse search page: %w", err)
	}

	items := findAll(doc, func(n *html.Node) bool {
		return isElem(n, "article") && hasClass(n, "c-card")
	})
	if len(items) == 0 {
		items = findAll(doc, func(n *html.Node) bool {
			return isElem(n, "li") && hasClass(n, "app-article-list-row__item")
		})
	}
	if len(items) > maxResults {
		items = items[:maxResults]
	}

	var hits []SearchHit
	for _, item := range items {
		heading := findFirst(item, func(n *html.Node) bool {
			return isElem(n, "h3") || isElem(n, "h2")
		})
		if heading == nil {
			continue
		}

		hit := SearchHit{Title: nodeText(heading, " "), Journal: fallbackJournal}

		if link := findFirst(heading, func(n *html.Node) bool { return isElem(n, "a") }); link != nil {
			if href := attr(link, "href"); href != "" {
				if strings.HasPrefix(href, "http") {
					hit.URL = href
				} else {
					hit.URL = baseURL + href
				}
			}
		}

		if t := findFirst(item, func(n *html.Node) bool { return isElem(n, "time") }); t != nil {
			if date := attr(t, "datetime"); len(date) >= 10 {
				hit.Date = date[:10]
			} else {
				hit.Date = date
			}
		}

		journalTag := findFirst(item, func(n *html.Node) bool {
			return isElem(n, "span") && attr(n, "data-test") == "journal-title"
		})
		if journalTag == nil {
			journalTag = findFirst(item, func(n *html.Node) bool {
				return isElem(n, "p") && hasClass(n, "c-card__journal-title")
			})
		}
		if journalTag != nil {
			hit.Journal = nodeText(journalTag, " ")
		}

		hits = append(hits, hit)
	}
	return hits, nil
}
