package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ndrozd/exordium/internal/model"
)

// Renderer writes analysis reports as JSON, Markdown, and console summaries.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON, creating parent directories
// as needed. HTML escaping is disabled so the comparison glyphs in the
// recommendation strings stay literal.
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// RenderMarkdown writes a human-readable summary of the report.
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	md := buildMarkdown(report, r.includeFooter)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return os.WriteFile(path, []byte(md), 0644)
}

// RenderSummary prints the key corpus numbers to stdout.
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Printf("\n%s\n", strings.Repeat("=", 50))
	fmt.Printf("  Corpus: %d abstracts analyzed (of %d total)\n",
		report.Meta.NAnalyzed, report.Meta.NTotal)
	if len(report.VerbFrequency) > 0 {
		top := report.VerbFrequency[0]
		fmt.Printf("  Verbs: %d ranked (top: %s=%d)\n", len(report.VerbFrequency), top.Verb, top.Count)
	}
	fmt.Printf("  Terms: %d bigrams, %d trigrams\n",
		len(report.DomainTerminology.Bigrams), len(report.DomainTerminology.Trigrams))
	fmt.Printf("  Words/abstract: %.1f±%.1f\n",
		report.SentenceStats.WordCount.Mean, report.SentenceStats.WordCount.Std)
	fmt.Printf("  Topic alignment: %.1f%%\n", report.TopicAlignment.ScorePct)
	fmt.Printf("%s\n", strings.Repeat("=", 50))
}

func buildMarkdown(report *model.Report, includeFooter bool) string {
	var b strings.Builder

	b.WriteString("# Abstract Discourse Analysis\n\n")
	fmt.Fprintf(&b, "**Source:** %s\n", report.Meta.Source)
	fmt.Fprintf(&b, "**Abstracts:** %d analyzed of %d total\n", report.Meta.NAnalyzed, report.Meta.NTotal)
	fmt.Fprintf(&b, "**Method:** %s\n\n", report.Meta.Note)

	b.WriteString("## Verb Frequency\n\n")
	if len(report.VerbFrequency) == 0 {
		b.WriteString("No main-clause verbs found.\n\n")
	} else {
		b.WriteString("| Rank | Verb | Count |\n|------|------|-------|\n")
		for _, v := range report.VerbFrequency {
			fmt.Fprintf(&b, "| %d | %s | %d |\n", v.Rank, v.Verb, v.Count)
		}
		b.WriteString("\n")
	}

	b.WriteString("## \"Here we\" Pivot\n\n")
	fmt.Fprintf(&b, "- Abstracts using the pivot: %d (%.1f%%)\n",
		report.HereWePivot.AbstractsWithHereWe, report.HereWePivot.Percentage)
	if len(report.HereWePivot.VerbAfterHereWe) > 0 {
		parts := make([]string, 0, len(report.HereWePivot.VerbAfterHereWe))
		for _, v := range report.HereWePivot.VerbAfterHereWe {
			parts = append(parts, fmt.Sprintf("%s (%d)", v.Verb, v.Count))
		}
		fmt.Fprintf(&b, "- Verbs after the pivot: %s\n", strings.Join(parts, ", "))
	}
	b.WriteString("\n")

	b.WriteString("## Domain Terminology\n\n")
	writeTermTable(&b, "Bigram", report.DomainTerminology.Bigrams)
	writeTermTable(&b, "Trigram", report.DomainTerminology.Trigrams)

	b.WriteString("## Sentence Statistics\n\n")
	wc := report.SentenceStats.WordCount
	sc := report.SentenceStats.SentenceCount
	fmt.Fprintf(&b, "- Words per abstract: mean %.1f ± %.1f (median %d, min %d, max %d)\n",
		wc.Mean, wc.Std, wc.Median, wc.Min, wc.Max)
	fmt.Fprintf(&b, "- Sentences per abstract: mean %.1f (median %d, min %d, max %d)\n",
		sc.Mean, sc.Median, sc.Min, sc.Max)
	fmt.Fprintf(&b, "- Words per sentence: %.1f\n\n", report.SentenceStats.WordsPerSentence)

	b.WriteString("## Opening Patterns\n\n")
	od := report.OpeningPatterns.Distribution
	writeLabelTable(&b, []labelRow{
		{"problem-first", od.ProblemFirst},
		{"bold-claim", od.BoldClaim},
		{"function-first", od.FunctionFirst},
		{"object-first", od.ObjectFirst},
	})
	fmt.Fprintf(&b, "Dominant: %s (%d of %d classified)\n\n",
		report.OpeningPatterns.Dominant.Label, report.OpeningPatterns.Dominant.Count, report.OpeningPatterns.Total)
	writeExamples(&b, []exampleRow{
		{"problem-first", report.OpeningPatterns.Examples.ProblemFirst},
		{"bold-claim", report.OpeningPatterns.Examples.BoldClaim},
		{"function-first", report.OpeningPatterns.Examples.FunctionFirst},
		{"object-first", report.OpeningPatterns.Examples.ObjectFirst},
	})

	b.WriteString("## Closing Patterns\n\n")
	cd := report.ClosingPatterns.Distribution
	writeLabelTable(&b, []labelRow{
		{"pathway", cd.Pathway},
		{"promise", cd.Promise},
		{"paradigm", cd.Paradigm},
		{"application", cd.Application},
		{"quantitative-recap", cd.QuantitativeRecap},
		{"outlook", cd.Outlook},
		{"other", cd.Other},
	})
	fmt.Fprintf(&b, "Dominant: %s (%d of %d classified)\n\n",
		report.ClosingPatterns.Dominant.Label, report.ClosingPatterns.Dominant.Count, report.ClosingPatterns.Total)
	writeExamples(&b, []exampleRow{
		{"pathway", report.ClosingPatterns.Examples.Pathway},
		{"promise", report.ClosingPatterns.Examples.Promise},
		{"paradigm", report.ClosingPatterns.Examples.Paradigm},
		{"application", report.ClosingPatterns.Examples.Application},
		{"quantitative-recap", report.ClosingPatterns.Examples.QuantitativeRecap},
		{"outlook", report.ClosingPatterns.Examples.Outlook},
		{"other", report.ClosingPatterns.Examples.Other},
	})

	b.WriteString("## Topic Alignment\n\n")
	fmt.Fprintf(&b, "Score: %.1f%%\n\n", report.TopicAlignment.ScorePct)
	if len(report.TopicAlignment.KeywordDetail) > 0 {
		b.WriteString("| Keyword | Coverage | Mentions | TF-IDF |\n|---------|----------|----------|--------|\n")
		for _, k := range report.TopicAlignment.KeywordDetail {
			fmt.Fprintf(&b, "| %s | %s | %d | %.2f |\n", k.Keyword, k.Coverage, k.TotalMentions, k.TFIDF)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Hedging\n\n")
	ct := report.Hedging.CategoryTotals
	fmt.Fprintf(&b, "- Mean hedges per sentence: %.2f\n", report.Hedging.MeanHedgesPerSentence)
	fmt.Fprintf(&b, "- Total hedges: %d\n", report.Hedging.TotalHedges)
	fmt.Fprintf(&b, "- By category: ability %d, permission %d, promise %d, epistemic %d, approximation %d, tentative %d\n\n",
		ct.Ability, ct.Permission, ct.Promise, ct.Epistemic, ct.Approximation, ct.Tentative)

	b.WriteString("## Information Density\n\n")
	sd := report.InfoDensity.ShapeDistribution
	fmt.Fprintf(&b, "- Mean IU per sentence: %.1f (max %d)\n",
		report.InfoDensity.MeanIUPerSentence, report.InfoDensity.MaxIUInCorpus)
	fmt.Fprintf(&b, "- Shapes: bell %d, front-loaded %d, back-loaded %d, flat %d, spiky %d, short %d, empty %d\n",
		sd.Bell, sd.FrontLoaded, sd.BackLoaded, sd.Flat, sd.Spiky, sd.Short, sd.Empty)
	for _, ex := range report.InfoDensity.Examples {
		fmt.Fprintf(&b, "- Example %s: %s %v\n", ex.DOI, ex.Shape, ex.Profile)
	}
	fmt.Fprintf(&b, "- %s\n\n", report.InfoDensity.Recommendation)

	b.WriteString("## Domain Shift\n\n")
	fmt.Fprintf(&b, "- Abstracts with markers: %d (%.1f%%)\n",
		report.DomainShift.AbstractsWithMarkers, report.DomainShift.Percentage)
	for _, ex := range report.DomainShift.Examples {
		fmt.Fprintf(&b, "- Example %s: %s\n", ex.DOI, strings.Join(ex.Markers, "; "))
	}
	fmt.Fprintf(&b, "- %s\n", report.DomainShift.Recommendation)

	if includeFooter {
		b.WriteString("\n---\n\n")
		b.WriteString("*Generated by exordium. All counts are exact regex matches over the corpus, not estimates.*\n")
	}

	return b.String()
}

type labelRow struct {
	label string
	count int
}

func writeLabelTable(b *strings.Builder, rows []labelRow) {
	b.WriteString("| Label | Count |\n|-------|-------|\n")
	for _, r := range rows {
		fmt.Fprintf(b, "| %s | %d |\n", r.label, r.count)
	}
	b.WriteString("\n")
}

type exampleRow struct {
	label string
	text  string
}

func writeExamples(b *strings.Builder, rows []exampleRow) {
	wrote := false
	for _, r := range rows {
		if r.text == "" {
			continue
		}
		if !wrote {
			b.WriteString("Examples:\n\n")
			wrote = true
		}
		fmt.Fprintf(b, "- **%s**: %s\n", r.label, r.text)
	}
	if wrote {
		b.WriteString("\n")
	}
}

func writeTermTable(b *strings.Builder, header string, terms []model.TermCount) {
	if len(terms) == 0 {
		return
	}
	fmt.Fprintf(b, "| %s | Count |\n|--------|-------|\n", header)
	for _, t := range terms {
		fmt.Fprintf(b, "| %s | %d |\n", t.Term, t.Count)
	}
	b.WriteString("\n")
}
