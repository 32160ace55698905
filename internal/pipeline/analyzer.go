package pipeline

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/ndrozd/exordium/internal/analyze"
	"github.com/ndrozd/exordium/internal/model"
	"github.com/ndrozd/exordium/internal/score"
	"github.com/ndrozd/exordium/internal/util"
)

// Analyzer runs every discourse pass over a corpus of abstracts and folds the
// per-abstract partials into a single report. The passes are independent per
// abstract and run on a bounded worker fan-out; the fold itself is sequential
// in corpus order, so rankings and tie-breaks never depend on scheduling.
type Analyzer struct {
	scorer      *score.Scorer
	workers     int
	topVerbs    int
	topBigrams  int
	topTrigrams int
}

// NewAnalyzer creates an analyzer. Non-positive limits fall back to the
// defaults.
func NewAnalyzer(cfg model.AnalyzeConfig) *Analyzer {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.TopVerbs <= 0 {
		cfg.TopVerbs = 20
	}
	if cfg.TopBigrams <= 0 {
		cfg.TopBigrams = 20
	}
	if cfg.TopTrigrams <= 0 {
		cfg.TopTrigrams = 15
	}
	return &Analyzer{
		scorer:      score.NewScorer(),
		workers:     cfg.Workers,
		topVerbs:    cfg.TopVerbs,
		topBigrams:  cfg.TopBigrams,
		topTrigrams: cfg.TopTrigrams,
	}
}

// Run analyzes the corpus and assembles the report. source names the corpus
// file recorded in the report metadata. keywords is the manuscript keyword
// list for topic alignment and may be empty. Records without abstract text are
// counted in the metadata but otherwise ignored; a corpus with no text at all
// returns model.ErrEmptyCorpus.
func (a *Analyzer) Run(ctx context.Context, source string, records []model.AbstractRecord, keywords []string) (*model.Report, error) {
	valid := make([]model.AbstractRecord, 0, len(records))
	for _, r := range records {
		if r.HasText() {
			valid = append(valid, r)
		}
	}
	if len(valid) == 0 {
		return nil, model.ErrEmptyCorpus
	}

	partials, err := a.analyzeAll(ctx, valid)
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(valid))
	for i, r := range valid {
		texts[i] = r.FullText
	}

	return a.merge(source, len(records), partials, keywords, texts), nil
}

// analyzeAll runs analyzeOne for every record on at most a.workers goroutines.
// Results land in an index-addressed slice, so the returned partials are in
// corpus order regardless of completion order.
func (a *Analyzer) analyzeAll(ctx context.Context, records []model.AbstractRecord) ([]model.AbstractAnalysis, error) {
	partials := make([]model.AbstractAnalysis, len(records))
	var wg sync.WaitGroup

	semaphore := make(chan struct{}, a.workers)

	for i, rec := range records {
		wg.Add(1)
		go func(idx int, r model.AbstractRecord) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			partials[idx] = analyzeOne(r)
		}(i, rec)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return partials, nil
}

// analyzeOne runs every per-abstract pass and returns the immutable partial.
func analyzeOne(r model.AbstractRecord) model.AbstractAnalysis {
	text := r.FullText
	sentences, count, classified := resolveSentences(r)

	p := model.AbstractAnalysis{
		DOI:           r.DOI,
		Title:         r.Title,
		WordCount:     len(strings.Fields(text)),
		SentenceCount: count,
		Verbs:         analyze.ExtractVerbs(text),
		HereWeVerbs:   analyze.HereWeVerbs(text),
		Bigrams:       analyze.NGrams(text, 2),
		Trigrams:      analyze.NGrams(text, 3),
		Classified:    classified,
		Hedges:        analyze.DetectHedges(text, count),
		Density:       analyze.InfoDensityProfile(text),
		Shifts:        analyze.DetectDomainShifts(text),
	}
	if classified {
		p.Opening = analyze.ClassifyOpening(sentences[0])
		p.OpeningText = sentences[0]
		p.Closing = analyze.ClassifyClosing(sentences[len(sentences)-1])
		p.ClosingText = sentences[len(sentences)-1]
	}
	return p
}

// resolveSentences picks the sentence view of a record, once, before any
// pass runs. Pre-segmented sentences win; a record that claims a count but
// carries no sentences keeps the claimed count for the statistics and is
// skipped by the opening/closing classifiers; otherwise sentences are derived
// with the splitter.
func resolveSentences(r model.AbstractRecord) (texts []string, count int, classified bool) {
	if len(r.Sentences) > 0 {
		texts = make([]string, len(r.Sentences))
		for i, s := range r.Sentences {
			texts[i] = s.Text
		}
		count = r.SentenceCount
		if count <= 0 {
			count = len(texts)
		}
		return texts, count, true
	}
	if r.SentenceCount > 0 {
		return nil, r.SentenceCount, false
	}
	texts = analyze.SplitSentences(r.FullText)
	return texts, len(texts), len(texts) > 0
}

// merge folds the partials, in corpus order, into the final report.
func (a *Analyzer) merge(source string, nTotal int, partials []model.AbstractAnalysis, keywords []string, texts []string) *model.Report {
	nValid := len(partials)

	verbs := util.NewCounter()
	hereWeVerbs := util.NewCounter()
	bigrams := util.NewCounter()
	trigrams := util.NewCounter()
	openingLabels := util.NewCounter()
	closingLabels := util.NewCounter()

	var openDist model.OpeningDistribution
	var openExamples model.OpeningExamples
	var closeDist model.ClosingDistribution
	var closeExamples model.ClosingExamples
	classifiedTotal := 0

	hereWeAbstracts := 0
	wordCounts := make([]int, 0, nValid)
	sentCounts := make([]int, 0, nValid)

	var hedgeTotals model.HedgeCategoryTotals
	totalHedges := 0
	densities := make([]float64, 0, nValid)

	var allIUCounts []int
	maxIU := 0
	var shapes model.ShapeDistribution
	densityExamples := make([]model.DensityExample, 0, 3)

	abstractsWithMarkers := 0
	shiftExamples := make([]model.ShiftExample, 0, 5)

	for _, p := range partials {
		verbs.AddAll(p.Verbs)
		bigrams.AddAll(p.Bigrams)
		trigrams.AddAll(p.Trigrams)

		wordCounts = append(wordCounts, p.WordCount)
		sentCounts = append(sentCounts, p.SentenceCount)

		if len(p.HereWeVerbs) > 0 {
			hereWeAbstracts++
			hereWeVerbs.AddAll(p.HereWeVerbs)
		}

		if p.Classified {
			classifiedTotal++
			openDist.Add(p.Opening)
			openingLabels.Add(string(p.Opening))
			openExamples.Set(p.Opening, util.TruncateRunes(p.OpeningText, 100))
			closeDist.Add(p.Closing)
			closingLabels.Add(string(p.Closing))
			closeExamples.Set(p.Closing, util.TruncateRunes(p.ClosingText, 100))
		}

		hedgeTotals.AddProfile(p.Hedges)
		totalHedges += p.Hedges.Total
		densities = append(densities, p.Hedges.Density)

		for _, c := range p.Density.Counts {
			allIUCounts = append(allIUCounts, c)
			if c > maxIU {
				maxIU = c
			}
		}
		shapes.Add(p.Density.Shape)
		if len(densityExamples) < 3 {
			densityExamples = append(densityExamples, model.DensityExample{
				DOI:     p.DOI,
				Shape:   p.Density.Shape,
				Profile: p.Density.Counts,
			})
		}

		if len(p.Shifts) > 0 {
			abstractsWithMarkers++
			if len(shiftExamples) < 5 {
				markers := make([]string, len(p.Shifts))
				for i, m := range p.Shifts {
					markers[i] = m.Match
				}
				shiftExamples = append(shiftExamples, model.ShiftExample{DOI: p.DOI, Markers: markers})
			}
		}
	}

	topVerbs := verbs.MostCommon(a.topVerbs)
	verbFrequency := make([]model.VerbRank, 0, len(topVerbs))
	for i, pr := range topVerbs {
		verbFrequency = append(verbFrequency, model.VerbRank{Verb: pr.Key, Count: pr.Count, Rank: i + 1})
	}

	totalWords := sumInts(wordCounts)
	totalSents := sumInts(sentCounts)

	alignPct, keywordDetail := a.scorer.Alignment(keywords, texts)
	if keywords == nil {
		keywords = []string{}
	}
	if keywordDetail == nil {
		keywordDetail = []model.KeywordScore{}
	}

	meanIU := util.Round1(float64(sumInts(allIUCounts)) / float64(max(len(allIUCounts), 1)))

	return &model.Report{
		Meta: model.ReportMeta{
			Source:    source,
			NAnalyzed: nValid,
			NTotal:    nTotal,
			Tool:      "exordium analyze",
			Note:      "All counts are exact (regex-based), not LLM estimates",
		},
		VerbFrequency: verbFrequency,
		HereWePivot: model.HereWePivot{
			AbstractsWithHereWe: hereWeAbstracts,
			Percentage:          util.Round1(100 * float64(hereWeAbstracts) / float64(nValid)),
			VerbAfterHereWe:     verbCounts(hereWeVerbs.MostCommon(10)),
		},
		DomainTerminology: model.DomainTerminology{
			Bigrams:  termCounts(bigrams.MostCommon(a.topBigrams)),
			Trigrams: termCounts(trigrams.MostCommon(a.topTrigrams)),
		},
		SentenceStats: model.SentenceStats{
			NAbstracts:       nValid,
			WordCount:        wordStats(wordCounts),
			SentenceCount:    sentenceCountStats(sentCounts),
			WordsPerSentence: util.Round1(float64(totalWords) / float64(max(totalSents, 1))),
		},
		OpeningPatterns: model.OpeningSummary{
			Distribution: openDist,
			Total:        classifiedTotal,
			Dominant:     dominantLabel(openingLabels),
			Examples:     openExamples,
		},
		ClosingPatterns: model.ClosingSummary{
			Distribution: closeDist,
			Total:        classifiedTotal,
			Dominant:     dominantLabel(closingLabels),
			Examples:     closeExamples,
		},
		TopicAlignment: model.AlignmentSummary{
			ScorePct:           alignPct,
			ManuscriptKeywords: keywords,
			KeywordDetail:      keywordDetail,
		},
		Hedging: model.HedgingSummary{
			MeanHedgesPerSentence: util.Round2(sumFloats(densities) / float64(max(len(densities), 1))),
			TotalHedges:           totalHedges,
			CategoryTotals:        hedgeTotals,
			DensityPerAbstract:    densities,
		},
		InfoDensity: model.DensitySummary{
			MeanIUPerSentence: meanIU,
			MaxIUInCorpus:     maxIU,
			ShapeDistribution: shapes,
			Examples:          densityExamples,
			Recommendation: fmt.Sprintf("Target: bell-shaped with peak ≤%d IU. Avoid >6 IU (packing).",
				max(5, int(meanIU+1.5))),
		},
		DomainShift: model.ShiftSummary{
			AbstractsWithMarkers: abstractsWithMarkers,
			Percentage:           util.Round1(100 * float64(abstractsWithMarkers) / float64(max(nValid, 1))),
			Examples:             shiftExamples,
			Recommendation:       "If manuscript has fundamental+applied results, use domain-shift marker sentence.",
		},
	}
}

// wordStats computes the word-count distribution. The median is the upper
// median of the sorted counts; the standard deviation is the population form.
func wordStats(counts []int) model.WordStats {
	mean := float64(sumInts(counts)) / float64(len(counts))
	variance := 0.0
	for _, c := range counts {
		d := float64(c) - mean
		variance += d * d
	}
	variance /= float64(len(counts))

	sorted := append([]int(nil), counts...)
	sort.Ints(sorted)
	return model.WordStats{
		Mean:   util.Round1(mean),
		Median: sorted[len(sorted)/2],
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Std:    util.Round1(math.Sqrt(variance)),
	}
}

func sentenceCountStats(counts []int) model.SentenceCountStats {
	sorted := append([]int(nil), counts...)
	sort.Ints(sorted)
	return model.SentenceCountStats{
		Mean:   util.Round1(float64(sumInts(counts)) / float64(len(counts))),
		Median: sorted[len(sorted)/2],
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}
}

// dominantLabel returns the highest-count label, or "unknown" with count zero
// when nothing was classified.
func dominantLabel(labels *util.Counter) model.LabelCount {
	top := labels.MostCommon(1)
	if len(top) == 0 {
		return model.LabelCount{Label: "unknown", Count: 0}
	}
	return model.LabelCount{Label: top[0].Key, Count: top[0].Count}
}

func verbCounts(pairs []util.Pair) []model.VerbCount {
	out := make([]model.VerbCount, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, model.VerbCount{Verb: p.Key, Count: p.Count})
	}
	return out
}

func termCounts(pairs []util.Pair) []model.TermCount {
	out := make([]model.TermCount, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, model.TermCount{Term: p.Key, Count: p.Count})
	}
	return out
}

func sumInts(vals []int) int {
	total := 0
	for _, v := range vals {
		total += v
	}
	return total
}

func sumFloats(vals []float64) float64 {
	total := 0.0
	for _, v := range vals {
		total += v
	}
	return total
}
