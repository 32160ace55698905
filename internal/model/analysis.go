package model

import "errors"

// ErrEmptyCorpus reports that no record in the corpus carries abstract text.
var ErrEmptyCorpus = errors.New("no abstracts with text to analyze")

// OpeningLabel classifies how an abstract's first sentence is framed.
type OpeningLabel string

const (
	OpeningProblemFirst  OpeningLabel = "problem-first"
	OpeningBoldClaim     OpeningLabel = "bold-claim"
	OpeningFunctionFirst OpeningLabel = "function-first"
	OpeningObjectFirst   OpeningLabel = "object-first"
)

// ClosingLabel classifies how an abstract's last sentence lands.
type ClosingLabel string

const (
	ClosingPathway           ClosingLabel = "pathway"
	ClosingPromise           ClosingLabel = "promise"
	ClosingParadigm          ClosingLabel = "paradigm"
	ClosingApplication       ClosingLabel = "application"
	ClosingQuantitativeRecap ClosingLabel = "quantitative-recap"
	ClosingOutlook           ClosingLabel = "outlook"
	ClosingOther             ClosingLabel = "other"
)

// FramingLabel classifies the editorial framing of a TOC snippet.
type FramingLabel string

const (
	FramingProblemFirst        FramingLabel = "problem-first"
	FramingResultFirst         FramingLabel = "result-first"
	FramingPassiveDemonstrated FramingLabel = "passive-demonstrated"
	FramingMethodFirst         FramingLabel = "method-first"
	FramingVisionFirst         FramingLabel = "vision-first"
	FramingObjectFirst         FramingLabel = "object-first"
	FramingNone                FramingLabel = ""
)

// DensityShape classifies the per-sentence information-density curve of an
// abstract.
type DensityShape string

const (
	ShapeEmpty       DensityShape = "empty"
	ShapeShort       DensityShape = "short"
	ShapeSpiky       DensityShape = "spiky"
	ShapeFrontLoaded DensityShape = "front-loaded"
	ShapeBackLoaded  DensityShape = "back-loaded"
	ShapeBell        DensityShape = "bell"
	ShapeFlat        DensityShape = "flat"
)

// HedgeCategory names one class of hedging language.
type HedgeCategory string

const (
	HedgeAbility       HedgeCategory = "ability"
	HedgePermission    HedgeCategory = "permission"
	HedgePromise       HedgeCategory = "promise"
	HedgeEpistemic     HedgeCategory = "epistemic"
	HedgeApproximation HedgeCategory = "approximation"
	HedgeTentative     HedgeCategory = "tentative"
)

// HedgeMatch is one hedge-lexicon hit. Offset is the byte offset of the
// match in the lowercased abstract text.
type HedgeMatch struct {
	Category HedgeCategory `json:"category"`
	Text     string        `json:"text"`
	Offset   int           `json:"offset"`
}

// HedgeTally is a per-category hedge count with up to three example matches.
type HedgeTally struct {
	Count    int      `json:"count"`
	Examples []string `json:"examples"`
}

// HedgeProfile summarizes the hedging language of a single abstract. The six
// categories form a closed set; categories without hits stay at zero.
type HedgeProfile struct {
	Total         int        `json:"total"`
	Density       float64    `json:"density"`
	Ability       HedgeTally `json:"ability"`
	Permission    HedgeTally `json:"permission"`
	Promise       HedgeTally `json:"promise"`
	Epistemic     HedgeTally `json:"epistemic"`
	Approximation HedgeTally `json:"approximation"`
	Tentative     HedgeTally `json:"tentative"`
}

// SentenceDensity records the information units found in one sentence.
// Sentence keeps only the first 80 characters.
type SentenceDensity struct {
	Sentence string   `json:"sentence"`
	IUCount  int      `json:"iu_count"`
	IUItems  []string `json:"iu_items"`
}

// DensityProfile is the per-sentence information-density trace of one
// abstract. Counts and Detail are index-aligned with the split sentences.
type DensityProfile struct {
	Counts []int             `json:"counts"`
	Shape  DensityShape      `json:"shape"`
	Detail []SentenceDensity `json:"detail"`
}

// ShiftMarker is one domain-shift cue found in an abstract.
type ShiftMarker struct {
	Match    string `json:"match"`
	Position int    `json:"position"`
	Pattern  string `json:"pattern"`
}

// AbstractAnalysis is the per-abstract partial produced by the analysis fold.
// Partials are merged strictly in corpus order, which keeps every ranking
// tie-break independent of worker scheduling.
type AbstractAnalysis struct {
	DOI           string
	Title         string
	WordCount     int
	SentenceCount int

	Verbs       []string
	HereWeVerbs []string
	Bigrams     []string
	Trigrams    []string

	// Classified is false when the record's sentence list was malformed
	// (claimed count without sentences); such records are skipped by the
	// opening/closing classifiers but still contribute to all other metrics.
	Classified  bool
	Opening     OpeningLabel
	OpeningText string
	Closing     ClosingLabel
	ClosingText string

	Hedges  HedgeProfile
	Density DensityProfile
	Shifts  []ShiftMarker
}
