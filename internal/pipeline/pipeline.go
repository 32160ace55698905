package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/ndrozd/exordium/internal/analyze"
	"github.com/ndrozd/exordium/internal/corpus"
	"github.com/ndrozd/exordium/internal/model"
	"github.com/ndrozd/exordium/internal/worker"
)

// Pipeline orchestrates the complete analysis process
type Pipeline struct {
	analyzer *Analyzer
	renderer *Renderer
	config   *model.Config
	fetcher  worker.PageFetcher // lazily built; injectable for tests
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config) *Pipeline {
	return &Pipeline{
		analyzer: NewAnalyzer(cfg.Analyze),
		renderer: NewRenderer(cfg.Output.IncludeFooter),
		config:   cfg,
	}
}

// AnalyzeCorpus loads the learning corpus and produces a complete report.
// Explicit keywords take priority; otherwise they are extracted from the
// semantic core file at corePath. A missing core file is not an error, the
// report is simply built without topic alignment keywords.
func (p *Pipeline) AnalyzeCorpus(ctx context.Context, abstractsPath, corePath string, keywords []string) (*model.Report, error) {
	// 1. Load corpus
	records, err := corpus.LoadAbstracts(abstractsPath)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	// 2. Resolve manuscript keywords
	if len(keywords) == 0 && corePath != "" {
		content, err := os.ReadFile(corePath)
		switch {
		case os.IsNotExist(err):
			fmt.Fprintf(os.Stderr, "Warning: %s not found, topic alignment will be 0%%\n", corePath)
		case err != nil:
			return nil, fmt.Errorf("read semantic core: %w", err)
		default:
			keywords = analyze.ExtractKeywords(string(content), p.config.Analyze.TopKeywords)
			if p.config.Output.Verbose {
				fmt.Fprintf(os.Stderr, "📋 Manuscript keywords (%d): %v\n", len(keywords), keywords)
			}
		}
	}

	// 3. Analyze and fold
	report, err := p.analyzer.Run(ctx, abstractsPath, records, keywords)
	if err != nil {
		return nil, fmt.Errorf("analyze corpus: %w", err)
	}

	return report, nil
}

// RenderReport renders the report to the specified outputs
func (p *Pipeline) RenderReport(report *model.Report, jsonPath string, mdPath string, verbose bool) error {
	// Render JSON
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	// Render Markdown
	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	// Print summary to stdout
	p.renderer.RenderSummary(report)

	return nil
}
