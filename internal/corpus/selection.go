package corpus

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ndrozd/exordium/internal/model"
)

// Article types that read as primary research versus style archetypes.
// Matching is case-insensitive substring, so "Research Article" and
// "Article (Open Access)" both count as research.
var (
	researchTypes  = []string{"Article", "Research", "Letter", "Brief Communication"}
	archetypeTypes = []string{
		"Review Article", "Review", "Perspective", "Comment",
		"News & Views", "Editorial", "Correspondence", "Analysis",
	}
)

// AutoSelect is the mechanical fallback used when no curated selection file
// exists: the newest research articles become the topic-relevant half and the
// newest reviews/perspectives the archetype-relevant half, n/2 each, with
// shortfalls in one group backfilled from the other. Articles without a DOI
// are skipped; unrecognized article types count as research.
func AutoSelect(articles []model.Article, n int) model.Selection {
	if n <= 0 {
		n = 20
	}
	half := n / 2

	var research, archetype []model.Article
	for _, a := range articles {
		if a.DOI == "" {
			continue
		}
		switch {
		case matchesType(a.ArticleType, researchTypes):
			research = append(research, a)
		case matchesType(a.ArticleType, archetypeTypes):
			archetype = append(archetype, a)
		default:
			research = append(research, a)
		}
	}

	sortByDateDesc(research)
	sortByDateDesc(archetype)

	topicPicks := takeUpTo(research, half)
	archPicks := takeUpTo(archetype, half)

	// Backfill shortfalls from the other group's overflow.
	if len(topicPicks) < half {
		topicPicks = append(topicPicks, takeUpTo(overflow(archetype, half), half-len(topicPicks))...)
	}
	if len(archPicks) < half {
		archPicks = append(archPicks, takeUpTo(overflow(research, half), half-len(archPicks))...)
	}

	sel := model.Selection{
		TopicRelevant:     make([]model.SelectionEntry, 0, len(topicPicks)),
		ArchetypeRelevant: make([]model.SelectionEntry, 0, len(archPicks)),
	}
	for _, a := range topicPicks {
		sel.TopicRelevant = append(sel.TopicRelevant, model.SelectionEntry{
			DOI: a.DOI,
			Why: fmt.Sprintf("Auto-selected: newest %s", typeOrDefault(a.ArticleType, "Article")),
		})
	}
	for _, a := range archPicks {
		sel.ArchetypeRelevant = append(sel.ArchetypeRelevant, model.SelectionEntry{
			DOI: a.DOI,
			Why: fmt.Sprintf("Auto-selected: %s for style", typeOrDefault(a.ArticleType, "Review/Perspective")),
		})
	}
	return sel
}

func matchesType(articleType string, candidates []string) bool {
	lower := strings.ToLower(articleType)
	for _, c := range candidates {
		if strings.Contains(lower, strings.ToLower(c)) {
			return true
		}
	}
	return false
}

// sortByDateDesc sorts newest first. The sort is stable, so articles sharing
// a date keep their scrape order.
func sortByDateDesc(articles []model.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].Date > articles[j].Date
	})
}

// takeUpTo returns a copy of the first n articles.
func takeUpTo(articles []model.Article, n int) []model.Article {
	if n > len(articles) {
		n = len(articles)
	}
	return append([]model.Article(nil), articles[:n]...)
}

func overflow(articles []model.Article, n int) []model.Article {
	if len(articles) > n {
		return articles[n:]
	}
	return nil
}

func typeOrDefault(articleType, def string) string {
	if articleType == "" {
		return def
	}
	return articleType
}
