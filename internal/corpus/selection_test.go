package corpus

import (
	"fmt"
	"strings"
	"testing"

	"github.com/ndrozd/exordium/internal/model"
)

func article(doi, articleType, date string) model.Article {
	return model.Article{DOI: doi, Title: "T-" + doi, ArticleType: articleType, Date: date}
}

func TestAutoSelect_SplitsByArticleType(t *testing.T) {
	articles := []model.Article{
		article("10.1038/r1", "Article", "2025-05-01"),
		article("10.1038/v1", "Review Article", "2025-05-02"),
		article("10.1038/r2", "Article", "2025-06-01"),
		article("10.1038/v2", "Perspective", "2025-06-02"),
		article("10.1038/r3", "Letter", "2025-04-01"),
		article("10.1038/v3", "News & Views", "2025-04-02"),
	}

	sel := AutoSelect(articles, 4)

	if len(sel.TopicRelevant) != 2 {
		t.Fatalf("Expected 2 topic picks, got %d", len(sel.TopicRelevant))
	}
	if len(sel.ArchetypeRelevant) != 2 {
		t.Fatalf("Expected 2 archetype picks, got %d", len(sel.ArchetypeRelevant))
	}

	// Newest first within each group.
	if sel.TopicRelevant[0].DOI != "10.1038/r2" || sel.TopicRelevant[1].DOI != "10.1038/r1" {
		t.Errorf("Expected newest research articles first, got %+v", sel.TopicRelevant)
	}
	if sel.ArchetypeRelevant[0].DOI != "10.1038/v2" || sel.ArchetypeRelevant[1].DOI != "10.1038/v1" {
		t.Errorf("Expected newest archetype articles first, got %+v", sel.ArchetypeRelevant)
	}
}

func TestAutoSelect_SelectionReasons(t *testing.T) {
	articles := []model.Article{
		article("10.1038/r1", "Article", "2025-05-01"),
		article("10.1038/v1", "Review Article", "2025-05-02"),
	}

	sel := AutoSelect(articles, 2)

	if len(sel.TopicRelevant) != 1 || len(sel.ArchetypeRelevant) != 1 {
		t.Fatalf("Expected 1 pick per group, got %d/%d", len(sel.TopicRelevant), len(sel.ArchetypeRelevant))
	}
	if sel.TopicRelevant[0].Why != "Auto-selected: newest Article" {
		t.Errorf("Unexpected topic reason: %q", sel.TopicRelevant[0].Why)
	}
	if sel.ArchetypeRelevant[0].Why != "Auto-selected: Review Article for style" {
		t.Errorf("Unexpected archetype reason: %q", sel.ArchetypeRelevant[0].Why)
	}
}

func TestAutoSelect_BackfillsShortfall(t *testing.T) {
	articles := []model.Article{
		article("10.1038/r1", "Article", "2025-06-01"),
		article("10.1038/v1", "Review", "2025-06-05"),
		article("10.1038/v2", "Review", "2025-06-04"),
		article("10.1038/v3", "Review", "2025-06-03"),
		article("10.1038/v4", "Review", "2025-06-02"),
	}

	sel := AutoSelect(articles, 4)

	if len(sel.TopicRelevant) != 2 {
		t.Fatalf("Expected topic group backfilled to 2, got %d", len(sel.TopicRelevant))
	}
	if sel.TopicRelevant[0].DOI != "10.1038/r1" {
		t.Errorf("Expected the lone research article first, got %s", sel.TopicRelevant[0].DOI)
	}
	// The backfill takes the archetype overflow, newest first, without
	// touching the archetype group's own picks.
	if sel.TopicRelevant[1].DOI != "10.1038/v3" {
		t.Errorf("Expected backfill from archetype overflow, got %s", sel.TopicRelevant[1].DOI)
	}
	if len(sel.ArchetypeRelevant) != 2 {
		t.Fatalf("Expected 2 archetype picks, got %d", len(sel.ArchetypeRelevant))
	}
	if sel.ArchetypeRelevant[0].DOI != "10.1038/v1" || sel.ArchetypeRelevant[1].DOI != "10.1038/v2" {
		t.Errorf("Expected newest reviews kept in archetype group, got %+v", sel.ArchetypeRelevant)
	}
}

func TestAutoSelect_SkipsArticlesWithoutDOI(t *testing.T) {
	articles := []model.Article{
		{Title: "No DOI", ArticleType: "Article", Date: "2025-06-01"},
		article("10.1038/r1", "Article", "2025-05-01"),
	}

	sel := AutoSelect(articles, 4)

	if len(sel.TopicRelevant) != 1 {
		t.Fatalf("Expected 1 topic pick, got %d", len(sel.TopicRelevant))
	}
	if sel.TopicRelevant[0].DOI != "10.1038/r1" {
		t.Errorf("Expected the article with a DOI, got %s", sel.TopicRelevant[0].DOI)
	}
}

func TestAutoSelect_UnknownTypeCountsAsResearch(t *testing.T) {
	articles := []model.Article{
		article("10.1038/x1", "Matters Arising", "2025-05-01"),
	}

	sel := AutoSelect(articles, 2)

	if len(sel.TopicRelevant) != 1 {
		t.Fatalf("Expected unknown type in topic group, got %d picks", len(sel.TopicRelevant))
	}
	if !strings.Contains(sel.TopicRelevant[0].Why, "Matters Arising") {
		t.Errorf("Expected article type in reason, got %q", sel.TopicRelevant[0].Why)
	}
}

func TestAutoSelect_DefaultSize(t *testing.T) {
	var articles []model.Article
	for i := 0; i < 30; i++ {
		doi := fmt.Sprintf("10.1038/r%02d", i)
		articles = append(articles, article(doi, "Article", "2025-01-01"))
	}

	sel := AutoSelect(articles, 0)

	// Default size is 20. With no archetype articles at all, the archetype
	// half is backfilled entirely from the research overflow.
	if len(sel.TopicRelevant) != 10 {
		t.Errorf("Expected 10 topic picks, got %d", len(sel.TopicRelevant))
	}
	if len(sel.ArchetypeRelevant) != 10 {
		t.Errorf("Expected 10 backfilled archetype picks, got %d", len(sel.ArchetypeRelevant))
	}
}
