package model

// Corpus group names used in selection files and abstract records.
const (
	GroupTopicRelevant     = "topic_relevant"
	GroupArchetypeRelevant = "archetype_relevant"
	GroupUnknown           = "unknown"
)

// AbstractRecord is one learning-corpus entry: a fetched abstract plus the
// selection metadata that explains why it is in the corpus.
type AbstractRecord struct {
	DOI             string     `yaml:"doi"`
	Title           string     `yaml:"title"`
	URL             string     `yaml:"url"`
	ArticleType     string     `yaml:"article_type"`
	Date            string     `yaml:"date"`
	Group           string     `yaml:"group"`
	SelectionReason string     `yaml:"selection_reason"`
	FullText        string     `yaml:"full_abstract"`
	Sentences       []Sentence `yaml:"sentences"`
	SentenceCount   int        `yaml:"sentence_count"`
}

// HasText reports whether the record carries abstract text to analyze.
func (a AbstractRecord) HasText() bool {
	return a.FullText != ""
}

// Sentence is one pre-segmented sentence with its 1-based position label
// ("S1", "S2", ...).
type Sentence struct {
	Position string `yaml:"position"`
	Text     string `yaml:"text"`
}

// Article is one scraped table-of-contents entry. Records are persisted as a
// plain YAML list; the trailing fields are enrichment written back after
// relevance scoring, abstract fetching, or citation lookup.
type Article struct {
	Title           string   `yaml:"title"`
	URL             string   `yaml:"url"`
	DOI             string   `yaml:"doi"`
	ArticleType     string   `yaml:"article_type"`
	AbstractSnippet string   `yaml:"abstract_snippet"`
	Authors         []string `yaml:"authors"`
	Date            string   `yaml:"date"`
	OpenAccess      bool     `yaml:"open_access"`
	Volume          int      `yaml:"volume"`
	Issue           int      `yaml:"issue"`
	Year            int      `yaml:"year"`
	Month           int      `yaml:"month"`
	FullAbstract    string   `yaml:"full_abstract,omitempty"`
	RelevanceScore  int      `yaml:"relevance_score,omitempty"`
	// CitationCount is a pointer so an article with zero citations is still
	// distinguishable from one that was never looked up.
	CitationCount *int     `yaml:"citation_count,omitempty"`
	TopReferences []string `yaml:"top_references,omitempty"`
}

// Selection lists the chosen learning articles by DOI, split into the two
// corpus groups.
type Selection struct {
	TopicRelevant     []SelectionEntry `yaml:"topic_relevant"`
	ArchetypeRelevant []SelectionEntry `yaml:"archetype_relevant"`
}

// SelectionEntry names one selected article and the reason it was picked.
type SelectionEntry struct {
	DOI string `yaml:"doi"`
	Why string `yaml:"why"`
}

// DOIs returns every selected DOI, topic-relevant entries first.
func (s Selection) DOIs() []string {
	dois := make([]string, 0, len(s.TopicRelevant)+len(s.ArchetypeRelevant))
	for _, e := range s.TopicRelevant {
		if e.DOI != "" {
			dois = append(dois, e.DOI)
		}
	}
	for _, e := range s.ArchetypeRelevant {
		if e.DOI != "" {
			dois = append(dois, e.DOI)
		}
	}
	return dois
}

// Lookup returns the group name and selection reason for a DOI, or
// GroupUnknown and an empty reason when the DOI was not selected.
func (s Selection) Lookup(doi string) (group, why string) {
	for _, e := range s.TopicRelevant {
		if e.DOI == doi {
			return GroupTopicRelevant, e.Why
		}
	}
	for _, e := range s.ArchetypeRelevant {
		if e.DOI == doi {
			return GroupArchetypeRelevant, e.Why
		}
	}
	return GroupUnknown, ""
}

// Count returns the total number of selected entries.
func (s Selection) Count() int {
	return len(s.TopicRelevant) + len(s.ArchetypeRelevant)
}
