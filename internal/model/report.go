package model

// Report is the complete analysis artifact written at the end of a run.
// Every section has a fixed shape: closed label sets are struct fields, so
// two runs over the same corpus produce byte-identical JSON.
type Report struct {
	Meta              ReportMeta        `json:"_meta"`
	VerbFrequency     []VerbRank        `json:"verb_frequency"`
	HereWePivot       HereWePivot       `json:"here_we_pivot"`
	DomainTerminology DomainTerminology `json:"domain_terminology"`
	SentenceStats     SentenceStats     `json:"sentence_statistics"`
	OpeningPatterns   OpeningSummary    `json:"opening_patterns"`
	ClosingPatterns   ClosingSummary    `json:"closing_patterns"`
	TopicAlignment    AlignmentSummary  `json:"topic_alignment"`
	Hedging           HedgingSummary    `json:"discourse_hedging"`
	InfoDensity       DensitySummary    `json:"discourse_info_density"`
	DomainShift       ShiftSummary      `json:"discourse_domain_shift"`
}

// ReportMeta identifies the analyzed corpus and how the numbers were made.
type ReportMeta struct {
	Source    string `json:"source"`     // path of the analyzed corpus file
	NAnalyzed int    `json:"n_analyzed"` // records with abstract text
	NTotal    int    `json:"n_total"`    // all records in the corpus file
	Tool      string `json:"tool"`
	Note      string `json:"note"`
}

// VerbRank is one entry of the corpus verb-frequency ranking.
type VerbRank struct {
	Verb  string `json:"verb"`
	Count int    `json:"count"`
	Rank  int    `json:"rank"`
}

// VerbCount pairs a verb with its corpus count.
type VerbCount struct {
	Verb  string `json:"verb"`
	Count int    `json:"count"`
}

// TermCount pairs an n-gram with its corpus count.
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// LabelCount pairs a classification label with its count.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// HereWePivot summarizes "Here we <verb>" usage across the corpus.
type HereWePivot struct {
	AbstractsWithHereWe int         `json:"abstracts_with_here_we"`
	Percentage          float64     `json:"percentage"`
	VerbAfterHereWe     []VerbCount `json:"verb_after_here_we"`
}

// DomainTerminology holds the ranked recurring word sequences.
type DomainTerminology struct {
	Bigrams  []TermCount `json:"bigrams"`
	Trigrams []TermCount `json:"trigrams"`
}

// WordStats describes the word-count distribution across abstracts.
type WordStats struct {
	Mean   float64 `json:"mean"`
	Median int     `json:"median"`
	Min    int     `json:"min"`
	Max    int     `json:"max"`
	Std    float64 `json:"std"`
}

// SentenceCountStats describes the sentence-count distribution.
type SentenceCountStats struct {
	Mean   float64 `json:"mean"`
	Median int     `json:"median"`
	Min    int     `json:"min"`
	Max    int     `json:"max"`
}

// SentenceStats aggregates length statistics over the analyzed corpus.
type SentenceStats struct {
	NAbstracts       int                `json:"n_abstracts"`
	WordCount        WordStats          `json:"word_count"`
	SentenceCount    SentenceCountStats `json:"sentence_count"`
	WordsPerSentence float64            `json:"words_per_sentence"`
}

// OpeningDistribution counts classified abstracts per opening label.
type OpeningDistribution struct {
	ProblemFirst  int `json:"problem-first"`
	BoldClaim     int `json:"bold-claim"`
	FunctionFirst int `json:"function-first"`
	ObjectFirst   int `json:"object-first"`
}

// Add increments the counter for the given label.
func (d *OpeningDistribution) Add(label OpeningLabel) {
	switch label {
	case OpeningProblemFirst:
		d.ProblemFirst++
	case OpeningBoldClaim:
		d.BoldClaim++
	case OpeningFunctionFirst:
		d.FunctionFirst++
	case OpeningObjectFirst:
		d.ObjectFirst++
	}
}

// OpeningExamples keeps one example first sentence per opening label, trimmed
// to 100 characters. Labels never seen in the corpus are omitted.
type OpeningExamples struct {
	ProblemFirst  string `json:"problem-first,omitempty"`
	BoldClaim     string `json:"bold-claim,omitempty"`
	FunctionFirst string `json:"function-first,omitempty"`
	ObjectFirst   string `json:"object-first,omitempty"`
}

// Set stores the example for a label if none is recorded yet.
func (e *OpeningExamples) Set(label OpeningLabel, text string) {
	switch label {
	case OpeningProblemFirst:
		if e.ProblemFirst == "" {
			e.ProblemFirst = text
		}
	case OpeningBoldClaim:
		if e.BoldClaim == "" {
			e.BoldClaim = text
		}
	case OpeningFunctionFirst:
		if e.FunctionFirst == "" {
			e.FunctionFirst = text
		}
	case OpeningObjectFirst:
		if e.ObjectFirst == "" {
			e.ObjectFirst = text
		}
	}
}

// OpeningSummary reports how corpus abstracts open.
type OpeningSummary struct {
	Distribution OpeningDistribution `json:"distribution"`
	Total        int                 `json:"total"`
	Dominant     LabelCount          `json:"dominant"`
	Examples     OpeningExamples     `json:"examples"`
}

// ClosingDistribution counts classified abstracts per closing label.
type ClosingDistribution struct {
	Pathway           int `json:"pathway"`
	Promise           int `json:"promise"`
	Paradigm          int `json:"paradigm"`
	Application       int `json:"application"`
	QuantitativeRecap int `json:"quantitative-recap"`
	Outlook           int `json:"outlook"`
	Other             int `json:"other"`
}

// Add increments the counter for the given label.
func (d *ClosingDistribution) Add(label ClosingLabel) {
	switch label {
	case ClosingPathway:
		d.Pathway++
	case ClosingPromise:
		d.Promise++
	case ClosingParadigm:
		d.Paradigm++
	case ClosingApplication:
		d.Application++
	case ClosingQuantitativeRecap:
		d.QuantitativeRecap++
	case ClosingOutlook:
		d.Outlook++
	case ClosingOther:
		d.Other++
	}
}

// ClosingExamples keeps one example last sentence per closing label, trimmed
// to 100 characters. Labels never seen in the corpus are omitted.
type ClosingExamples struct {
	Pathway           string `json:"pathway,omitempty"`
	Promise           string `json:"promise,omitempty"`
	Paradigm          string `json:"paradigm,omitempty"`
	Application       string `json:"application,omitempty"`
	QuantitativeRecap string `json:"quantitative-recap,omitempty"`
	Outlook           string `json:"outlook,omitempty"`
	Other             string `json:"other,omitempty"`
}

// Set stores the example for a label if none is recorded yet.
func (e *ClosingExamples) Set(label ClosingLabel, text string) {
	switch label {
	case ClosingPathway:
		if e.Pathway == "" {
			e.Pathway = text
		}
	case ClosingPromise:
		if e.Promise == "" {
			e.Promise = text
		}
	case ClosingParadigm:
		if e.Paradigm == "" {
			e.Paradigm = text
		}
	case ClosingApplication:
		if e.Application == "" {
			e.Application = text
		}
	case ClosingQuantitativeRecap:
		if e.QuantitativeRecap == "" {
			e.QuantitativeRecap = text
		}
	case ClosingOutlook:
		if e.Outlook == "" {
			e.Outlook = text
		}
	case ClosingOther:
		if e.Other == "" {
			e.Other = text
		}
	}
}

// ClosingSummary reports how corpus abstracts close.
type ClosingSummary struct {
	Distribution ClosingDistribution `json:"distribution"`
	Total        int                 `json:"total"`
	Dominant     LabelCount          `json:"dominant"`
	Examples     ClosingExamples     `json:"examples"`
}

// KeywordScore is the per-keyword alignment detail. The slice in
// AlignmentSummary preserves the order keywords were supplied in.
type KeywordScore struct {
	Keyword       string  `json:"keyword"`
	DocFrequency  int     `json:"doc_frequency"`
	TotalMentions int     `json:"total_mentions"`
	TFIDF         float64 `json:"tf_idf"`
	Coverage      string  `json:"coverage"`
}

// AlignmentSummary reports keyword overlap between the manuscript and the
// corpus.
type AlignmentSummary struct {
	ScorePct           float64        `json:"score_pct"`
	ManuscriptKeywords []string       `json:"manuscript_keywords"`
	KeywordDetail      []KeywordScore `json:"keyword_detail"`
}

// HedgeCategoryTotals sums hedge hits per category across the corpus.
type HedgeCategoryTotals struct {
	Ability       int `json:"ability"`
	Permission    int `json:"permission"`
	Promise       int `json:"promise"`
	Epistemic     int `json:"epistemic"`
	Approximation int `json:"approximation"`
	Tentative     int `json:"tentative"`
}

// AddProfile folds one abstract's hedge profile into the totals.
func (t *HedgeCategoryTotals) AddProfile(p HedgeProfile) {
	t.Ability += p.Ability.Count
	t.Permission += p.Permission.Count
	t.Promise += p.Promise.Count
	t.Epistemic += p.Epistemic.Count
	t.Approximation += p.Approximation.Count
	t.Tentative += p.Tentative.Count
}

// HedgingSummary aggregates hedging density across the corpus.
type HedgingSummary struct {
	MeanHedgesPerSentence float64             `json:"mean_hedges_per_sentence"`
	TotalHedges           int                 `json:"total_hedges"`
	CategoryTotals        HedgeCategoryTotals `json:"category_totals"`
	DensityPerAbstract    []float64           `json:"density_per_abstract"`
}

// ShapeDistribution counts abstracts per density shape.
type ShapeDistribution struct {
	Empty       int `json:"empty"`
	Short       int `json:"short"`
	Spiky       int `json:"spiky"`
	FrontLoaded int `json:"front-loaded"`
	BackLoaded  int `json:"back-loaded"`
	Bell        int `json:"bell"`
	Flat        int `json:"flat"`
}

// Add increments the counter for the given shape.
func (d *ShapeDistribution) Add(shape DensityShape) {
	switch shape {
	case ShapeEmpty:
		d.Empty++
	case ShapeShort:
		d.Short++
	case ShapeSpiky:
		d.Spiky++
	case ShapeFrontLoaded:
		d.FrontLoaded++
	case ShapeBackLoaded:
		d.BackLoaded++
	case ShapeBell:
		d.Bell++
	case ShapeFlat:
		d.Flat++
	}
}

// DensityExample is a sample per-sentence IU trace included in the report.
type DensityExample struct {
	DOI     string       `json:"doi"`
	Shape   DensityShape `json:"shape"`
	Profile []int        `json:"profile"`
}

// DensitySummary aggregates information density across the corpus.
type DensitySummary struct {
	MeanIUPerSentence float64           `json:"mean_iu_per_sentence"`
	MaxIUInCorpus     int               `json:"max_iu_in_corpus"`
	ShapeDistribution ShapeDistribution `json:"shape_distribution"`
	Examples          []DensityExample  `json:"examples"`
	Recommendation    string            `json:"recommendation"`
}

// ShiftExample lists the matched shift phrases of one abstract.
type ShiftExample struct {
	DOI     string   `json:"doi"`
	Markers []string `json:"markers"`
}

// ShiftSummary aggregates domain-shift marker usage across the corpus.
type ShiftSummary struct {
	AbstractsWithMarkers int            `json:"abstracts_with_markers"`
	Percentage           float64        `json:"percentage"`
	Examples             []ShiftExample `json:"examples"`
	Recommendation       string         `json:"recommendation"`
}
