package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ndrozd/exordium/internal/model"
	"github.com/ndrozd/exordium/internal/pipeline"
)

var (
	abstractsPath   string
	semanticCore    string
	analyzeJSON     string
	analyzeMD       string
	keywordOverride string
	analyzeWorkers  int
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Profile the learning corpus and write the style report",
	Long: `Analyze profiles the structured abstracts corpus:
- Opening and closing move classification per abstract
- Verb vocabulary, bigram and trigram frequency
- Hedging profile across six lexical categories
- Information density per sentence with shape classification
- Domain-shift markers and topic alignment against your manuscript

Manuscript keywords come from the semantic core file unless --keywords
overrides them.

Example:
  exordium analyze
  exordium analyze --abstracts knowledge_base/abstracts_20.yaml --json analysis.json
  exordium analyze --core manuscript_semantic_core.md --md style_report.md
  exordium analyze --keywords "nanowire,photodetector,quantum efficiency"`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&abstractsPath, "abstracts", "knowledge_base/abstracts_20.yaml", "structured abstracts corpus")
	analyzeCmd.Flags().StringVar(&semanticCore, "core", "manuscript_semantic_core.md", "manuscript semantic core for keyword extraction")
	analyzeCmd.Flags().StringVar(&analyzeJSON, "json", "knowledge_base/abstract_analysis.json", "output JSON path")
	analyzeCmd.Flags().StringVar(&analyzeMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().StringVar(&keywordOverride, "keywords", "", "comma-separated manuscript keywords (overrides --core)")
	analyzeCmd.Flags().IntVar(&analyzeWorkers, "workers", 0, "analysis workers (0 = config default)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose
	if analyzeWorkers > 0 {
		cfg.Analyze.Workers = analyzeWorkers
	}

	keywords := splitCommaList(keywordOverride)

	if verbose {
		fmt.Fprintf(os.Stderr, "Corpus: %s\n", abstractsPath)
		if len(keywords) > 0 {
			fmt.Fprintf(os.Stderr, "Keywords: %v (explicit)\n", keywords)
		} else {
			fmt.Fprintf(os.Stderr, "Semantic core: %s\n", semanticCore)
		}
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(cfg)

	report, err := p.AnalyzeCorpus(ctx, abstractsPath, semanticCore, keywords)
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Analyzed %d of %d abstracts\n", report.Meta.NAnalyzed, report.Meta.NTotal)
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderReport(report, analyzeJSON, analyzeMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

// splitCommaList splits a comma-separated flag into trimmed entries,
// dropping empty ones.
func splitCommaList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
