package scrape

import (
	"regexp"
	"strings"
	"time"

	"github.com/ndrozd/exordium/internal/analyze"
	"github.com/ndrozd/exordium/internal/model"
	"github.com/ndrozd/exordium/internal/util"
)

// titleStopwords is the minimal function-word set for title and snippet
// tokenization. Most entries are shorter than the four-character token floor
// and only matter for compound handling, but the set mirrors what trend
// counts were tuned against.
var titleStopwords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "of": true,
	"in": true, "for": true, "to": true, "with": true, "on": true, "at": true,
	"by": true, "from": true, "is": true, "are": true, "was": true,
	"were": true, "be": true, "been": true, "being": true, "that": true,
	"this": true, "its": true, "via": true, "using": true, "based": true,
	"under": true, "through": true, "between": true, "into": true, "as": true,
	"not": true, "can": true, "has": true, "have": true, "their": true,
	"more": true, "than": true, "both": true, "each": true, "all": true,
	"also": true, "but": true, "if": true, "it": true, "we": true,
	"our": true, "how": true, "new": true, "non": true, "high": true,
	"low": true, "large": true, "small": true, "two": true, "single": true,
	"very": true, "here": true, "show": true, "use": true, "may": true,
	"about": true, "which": true, "up": true, "out": true, "no": true,
	"over": true, "such": true, "first": true, "second": true, "do": true,
	"does": true, "did": true, "only": true,
}

// structuralNoise lists keywords that appear every issue regardless of
// trends. They are filtered from trending so real signals surface; the
// trailing entries suppress corrigendum titles ("Author Correction",
// "Publisher Correction").
var structuralNoise = []string{
	"optical", "light", "photonic", "photonics", "laser", "device", "devices",
	"performance", "efficiency", "demonstrated", "enables", "enabling",
	"design", "researchers", "approach", "results", "shows", "report",
	"method", "study", "system", "systems", "measurement", "measurements",
	"structure", "structures", "application", "applications", "properties",
	"material", "materials", "energy", "surface", "wavelength", "emission",
	"spectrum", "fabrication", "resolution", "detection", "operation",
	"correction", "author", "publisher",
}

// DefaultStructuralNoise returns a fresh copy of the built-in noise set so
// callers can extend it without sharing state.
func DefaultStructuralNoise() map[string]bool {
	noise := make(map[string]bool, len(structuralNoise))
	for _, w := range structuralNoise {
		noise[w] = true
	}
	return noise
}

var (
	compoundRe  = regexp.MustCompile(`[a-zA-Z]{3,}(?:-[a-zA-Z]{3,})+`)
	titleWordRe = regexp.MustCompile(`\b[a-zA-Z][a-zA-Z]{3,}\b`)
)

// TitleKeywords tokenizes title or snippet text for trend counting.
// Hyphenated compounds survive as single tokens; plain words need at least
// four characters and must not be stopwords. Compound parts also appear as
// separate word tokens when they qualify on their own.
func TitleKeywords(text string) []string {
	lowered := strings.ToLower(text)
	tokens := compoundRe.FindAllString(lowered, -1)
	for _, w := range titleWordRe.FindAllString(lowered, -1) {
		if !titleStopwords[w] {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

// Trend direction labels.
const (
	TrendNew       = "▴ new"
	TrendRising    = "▴ rising"
	TrendDeclining = "▾ declining"
	TrendStable    = "▸ stable"
)

// KeywordTrend summarizes one keyword's trajectory across the scraped
// window, split at the median article date.
type KeywordTrend struct {
	Keyword string
	Recent  int
	Older   int
	Total   int
	Trend   string
}

// UserKeywordStatus reports whether one of the user's manuscript keywords
// appears anywhere in the scraped window.
type UserKeywordStatus struct {
	Keyword string
	Present bool
}

// TrendAnalysis aggregates a scraped window: overall keyword counts, article
// type and snippet framing distributions, per-keyword trend labels, and the
// presence of the user's manuscript keywords.
type TrendAnalysis struct {
	KeywordCounts []util.Pair
	TypeCounts    []util.Pair
	FramingCounts []util.Pair
	Trending      []KeywordTrend
	UserKeywords  []UserKeywordStatus
}

// AnalyzeTrends derives trend signals from scraped articles. The window is
// split at the midpoint between the oldest and newest article dates; a
// keyword counted only after the midpoint is new, one whose recent count
// exceeds 1.3x its older count is rising, one below 0.7x is declining.
// Keywords in the noise set are kept in the overall counts but excluded
// from trending.
func AnalyzeTrends(articles []model.Article, userKeywords []string, noise map[string]bool) TrendAnalysis {
	keywords := util.NewCounter()
	types := util.NewCounter()
	framings := util.NewCounter()
	recent := util.NewCounter()
	older := util.NewCounter()

	midDate := midpointDate(articles)

	for _, a := range articles {
		atype := a.ArticleType
		if atype == "" {
			atype = "Article"
		}
		types.Add(atype)

		tokens := TitleKeywords(a.Title + " " + a.AbstractSnippet)
		keywords.AddAll(tokens)

		if d, ok := parseArticleDate(a.Date); ok {
			if d.After(midDate) {
				recent.AddAll(tokens)
			} else {
				older.AddAll(tokens)
			}
		}

		if label := analyze.ClassifyFraming(a.AbstractSnippet); label != model.FramingNone {
			framings.Add(string(label))
		}
	}

	// Trend labels over the union of both halves, in first-seen order so the
	// output is stable across runs.
	var trending []KeywordTrend
	for _, kw := range keywords.Keys() {
		if noise[kw] {
			continue
		}
		r, o := recent.Count(kw), older.Count(kw)
		if r == 0 && o == 0 {
			continue
		}
		trend := TrendStable
		switch {
		case o == 0 && r > 0:
			trend = TrendNew
		case float64(r) > float64(o)*1.3:
			trend = TrendRising
		case float64(r) < float64(o)*0.7:
			trend = TrendDeclining
		}
		trending = append(trending, KeywordTrend{
			Keyword: kw,
			Recent:  r,
			Older:   o,
			Total:   r + o,
			Trend:   trend,
		})
	}

	var status []UserKeywordStatus
	for _, ukw := range userKeywords {
		lowered := strings.ToLower(strings.TrimSpace(ukw))
		status = append(status, UserKeywordStatus{
			Keyword: ukw,
			Present: keywords.Count(lowered) > 0,
		})
	}

	return TrendAnalysis{
		KeywordCounts: keywords.MostCommon(30),
		TypeCounts:    types.MostCommon(-1),
		FramingCounts: framings.MostCommon(-1),
		Trending:      trending,
		UserKeywords:  status,
	}
}

// midpointDate returns the midpoint between the oldest and newest parseable
// article dates, or the current time when none parse.
func midpointDate(articles []model.Article) time.Time {
	var min, max time.Time
	for _, a := range articles {
		d, ok := parseArticleDate(a.Date)
		if !ok {
			continue
		}
		if min.IsZero() || d.Before(min) {
			min = d
		}
		if max.IsZero() || d.After(max) {
			max = d
		}
	}
	if min.IsZero() {
		return time.Now()
	}
	return min.Add(max.Sub(min) / 2)
}

// parseArticleDate parses the date strings nature.com emits: bare ISO dates
// in <time datetime> attributes, or full RFC 3339 timestamps.
func parseArticleDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if d, err := time.Parse("2006-01-02", s); err == nil {
		return d, true
	}
	if d, err := time.Parse(time.RFC3339, s); err == nil {
		return d, true
	}
	return time.Time{}, false
}

// RelevanceScore counts keyword overlap with an article: +2 per keyword
// found in the title, +1 per keyword found in the snippet. Matching is
// case-insensitive substring, so multi-word keywords work.
func RelevanceScore(article model.Article, keywords []string) int {
	if len(keywords) == 0 {
		return 0
	}
	title := strings.ToLower(article.Title)
	snippet := strings.ToLower(article.AbstractSnippet)

	score := 0
	for _, kw := range keywords {
		k := strings.ToLower(strings.TrimSpace(kw))
		if k == "" {
			continue
		}
		if strings.Contains(title, k) {
			score += 2
		}
		if strings.Contains(snippet, k) {
			score++
		}
	}
	return score
}
