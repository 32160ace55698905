package corpus

import (
	"os"
	"testing"

	"github.com/ndrozd/exordium/internal/model"
)

func tempYAMLFile(t *testing.T, content string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp("", "corpus")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Remove(tmpfile.Name()) })

	if _, err := tmpfile.WriteString(content); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}
	return tmpfile.Name()
}

func TestAbstracts_RoundTrip(t *testing.T) {
	records := []model.AbstractRecord{
		{
			DOI:         "10.1038/s41566-025-01001-2",
			Title:       "Label-free imaging of live cells",
			URL:         "https://www.nature.com/articles/s41566-025-01001-2",
			ArticleType: "Article",
			Date:        "2025-07-14",
			Group:       model.GroupTopicRelevant,
			FullText:    "Here we demonstrate label-free imaging. The method resolves single cells.",
			Sentences: []model.Sentence{
				{Position: "S1", Text: "Here we demonstrate label-free imaging."},
				{Position: "S2", Text: "The method resolves single cells."},
			},
			SentenceCount: 2,
		},
		{
			DOI:      "10.1038/s41566-025-01002-9",
			Title:    "No abstract yet",
			FullText: "",
		},
	}

	path := tempYAMLFile(t, "")
	if err := SaveAbstracts(path, records); err != nil {
		t.Fatalf("SaveAbstracts failed: %v", err)
	}

	loaded, err := LoadAbstracts(path)
	if err != nil {
		t.Fatalf("LoadAbstracts failed: %v", err)
	}

	if len(loaded) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(loaded))
	}
	if loaded[0].DOI != records[0].DOI {
		t.Errorf("Expected DOI %s, got %s", records[0].DOI, loaded[0].DOI)
	}
	if loaded[0].SentenceCount != 2 {
		t.Errorf("Expected sentence count 2, got %d", loaded[0].SentenceCount)
	}
	if len(loaded[0].Sentences) != 2 || loaded[0].Sentences[1].Position != "S2" {
		t.Errorf("Expected sentence positions to survive the round trip, got %+v", loaded[0].Sentences)
	}
	if loaded[1].HasText() {
		t.Error("Expected second record to have no text")
	}
}

func TestLoadAbstracts_MissingFile(t *testing.T) {
	_, err := LoadAbstracts("no_such_corpus.yaml")
	if err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}

func TestLoadAbstracts_MalformedYAML(t *testing.T) {
	path := tempYAMLFile(t, "[unclosed")
	_, err := LoadAbstracts(path)
	if err == nil {
		t.Error("Expected parse error, got nil")
	}
}

func TestArticles_RoundTrip(t *testing.T) {
	articles := []model.Article{
		{
			Title:           "Quantum sensing in diamond",
			URL:             "https://www.nature.com/articles/s41566-025-01003-6",
			DOI:             "10.1038/s41566-025-01003-6",
			ArticleType:     "Article",
			AbstractSnippet: "Nitrogen-vacancy centers enable quantum sensing.",
			Authors:         []string{"A. Author", "B. Author"},
			Date:            "2025-06-02",
			OpenAccess:      true,
			Volume:          19,
			Issue:           6,
			Year:            2025,
			Month:           6,
		},
	}

	path := tempYAMLFile(t, "")
	if err := SaveArticles(path, articles); err != nil {
		t.Fatalf("SaveArticles failed: %v", err)
	}

	loaded, err := LoadArticles(path)
	if err != nil {
		t.Fatalf("LoadArticles failed: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("Expected 1 article, got %d", len(loaded))
	}
	if loaded[0].Volume != 19 || loaded[0].Issue != 6 {
		t.Errorf("Expected volume 19 issue 6, got %d/%d", loaded[0].Volume, loaded[0].Issue)
	}
	if !loaded[0].OpenAccess {
		t.Error("Expected open access flag to survive the round trip")
	}
	if loaded[0].FullAbstract != "" {
		t.Errorf("Expected empty full abstract, got %q", loaded[0].FullAbstract)
	}
}

func TestSelection_RoundTrip(t *testing.T) {
	sel := model.Selection{
		TopicRelevant: []model.SelectionEntry{
			{DOI: "10.1038/a", Why: "newest Article"},
		},
		ArchetypeRelevant: []model.SelectionEntry{
			{DOI: "10.1038/b", Why: "Review for style"},
			{DOI: "10.1038/c", Why: "Perspective for style"},
		},
	}

	path := tempYAMLFile(t, "")
	if err := SaveSelection(path, sel); err != nil {
		t.Fatalf("SaveSelection failed: %v", err)
	}

	loaded, err := LoadSelection(path)
	if err != nil {
		t.Fatalf("LoadSelection failed: %v", err)
	}
	if loaded.Count() != 3 {
		t.Errorf("Expected 3 entries, got %d", loaded.Count())
	}

	group, why := loaded.Lookup("10.1038/c")
	if group != model.GroupArchetypeRelevant {
		t.Errorf("Expected group %s, got %s", model.GroupArchetypeRelevant, group)
	}
	if why != "Perspective for style" {
		t.Errorf("Expected selection reason to survive, got %q", why)
	}

	dois := loaded.DOIs()
	expected := []string{"10.1038/a", "10.1038/b", "10.1038/c"}
	if len(dois) != len(expected) {
		t.Fatalf("Expected %d DOIs, got %d", len(expected), len(dois))
	}
	for i, doi := range dois {
		if doi != expected[i] {
			t.Errorf("Expected DOI %s at index %d, got %s", expected[i], i, doi)
		}
	}
}
