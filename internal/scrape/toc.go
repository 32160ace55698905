package scrape

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/ndrozd/exordium/internal/model"
)

// volumeYearOffset converts calendar years to nature.com volume numbers:
// Nature Photonics volume 1 appeared in 2007.
const volumeYearOffset = 2006

// IssueRef locates one monthly journal issue.
type IssueRef struct {
	URL    string
	Volume int
	Issue  int
	Year   int
	Month  int
}

// IssueURLs returns references to the last months issues of a journal,
// newest first, anchored at ref.
func IssueURLs(journal string, months int, ref time.Time) []IssueRef {
	path, ok := journalPaths[journal]
	if !ok {
		path = "/" + journal
	}

	refs := make([]IssueRef, 0, months)
	for i := 0; i < months; i++ {
		year, month := ref.Year(), int(ref.Month())-i
		for month <= 0 {
			month += 12
			year--
		}
		volume := year - volumeYearOffset
		refs = append(refs, IssueRef{
			URL:    fmt.Sprintf("%s%s/volumes/%d/issues/%d", baseURL, path, volume, month),
			Volume: volume,
			Issue:  month,
			Year:   year,
			Month:  month,
		})
	}
	return refs
}

// doiRe extracts the article identifier from a nature.com article path; the
// DOI is the identifier under the 10.1038 prefix.
var doiRe = regexp.MustCompile(`/articles/(s\d+[-\w]+)`)

// ParseTOC extracts article metadata from an issue table-of-contents page.
// Each <article> card yields one entry; cards without a recognizable title
// link are skipped.
func ParseTOC(pageHTML string, issue IssueRef) ([]model.Article, error) {
	doc, err := parseHTML(pageHTML)
	if err != nil {
		return nil, fmt.Errorf("parse TOC: %w", err)
	}

	var articles []model.Article
	for _, card := range findAll(doc, func(n *html.Node) bool { return isElem(n, "article") }) {
		titleLink := findFirst(card, func(n *html.Node) bool {
			return isElem(n, "a") && attr(n, "data-track-action") == "view article"
		})
		if titleLink == nil {
			if h3 := findFirst(card, func(n *html.Node) bool { return isElem(n, "h3") }); h3 != nil {
				titleLink = findFirst(h3, func(n *html.Node) bool { return isElem(n, "a") })
			}
		}
		if titleLink == nil {
			continue
		}

		entry := model.Article{
			Title:       nodeText(titleLink, " "),
			ArticleType: "Article",
			Volume:      issue.Volume,
			Issue:       issue.Issue,
			Year:        issue.Year,
			Month:       issue.Month,
		}

		href := attr(titleLink, "href")
		if strings.HasPrefix(href, "/") {
			entry.URL = baseURL + href
		} else {
			entry.URL = href
		}
		if m := doiRe.FindStringSubmatch(href); m != nil {
			entry.DOI = "10.1038/" + m[1]
		}

		if span := findFirst(card, func(n *html.Node) bool {
			return isElem(n, "span") && hasClass(n, "c-meta__type")
		}); span != nil {
			entry.ArticleType = nodeText(span, " ")
		}

		if summary := findFirst(card, func(n *html.Node) bool {
			return isElem(n, "div") && hasClass(n, "c-card__summary")
		}); summary != nil {
			if p := findFirst(summary, func(n *html.Node) bool { return isElem(n, "p") }); p != nil {
				entry.AbstractSnippet = nodeText(p, " ")
			} else {
				entry.AbstractSnippet = nodeText(summary, " ")
			}
		}

		for _, span := range findAll(card, func(n *html.Node) bool {
			return isElem(n, "span") && attr(n, "itemprop") == "name"
		}) {
			entry.Authors = append(entry.Authors, nodeText(span, " "))
		}

		if t := findFirst(card, func(n *html.Node) bool { return isElem(n, "time") }); t != nil {
			entry.Date = attr(t, "datetime")
			if entry.Date == "" {
				entry.Date = nodeText(t, " ")
			}
		} else if span := findFirst(card, func(n *html.Node) bool {
			return isElem(n, "span") && hasClassMatch(n, "date")
		}); span != nil {
			entry.Date = nodeText(span, " ")
		}

		oa := findFirst(card, func(n *html.Node) bool {
			return isElem(n, "span") && hasClassMatch(n, "open-access", "oa-label")
		})
		if oa == nil {
			oa = findFirst(card, func(n *html.Node) bool {
				return isElem(n, "span") &&
					strings.Contains(strings.ToLower(nodeText(n, " ")), "open access")
			})
		}
		entry.OpenAccess = oa != nil

		articles = append(articles, entry)
	}
	return articles, nil
}
