package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ndrozd/exordium/internal/model"
	"github.com/ndrozd/exordium/internal/pipeline"
)

var (
	fetchArticles  string
	fetchSelection string
	fetchOutput    string
	fetchTimeout   time.Duration
	fetchNoCache   bool
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch full abstracts for the selected learning articles",
	Long: `Fetch builds the structured learning corpus:
- Match the curated selection against scraped article metadata
- Pull full abstracts from article pages (cached ones are reused)
- Split abstracts into position-labelled sentences (S1, S2, ...)
- Write the corpus and feed fetched abstracts back into the metadata

When the selection file is missing, a mechanical selection of the newest
research and archetype articles is generated in its place.

Example:
  exordium fetch
  exordium fetch --articles trend_data/articles_raw.yaml --output knowledge_base/abstracts_20.yaml
  exordium fetch --selection knowledge_base/selected_20.yaml`,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVar(&fetchArticles, "articles", "trend_data/articles_raw.yaml", "scraped article metadata")
	fetchCmd.Flags().StringVar(&fetchSelection, "selection", "knowledge_base/selected_20.yaml", "curated selection file")
	fetchCmd.Flags().StringVar(&fetchOutput, "output", "knowledge_base/abstracts_20.yaml", "structured abstracts output")
	fetchCmd.Flags().DurationVar(&fetchTimeout, "timeout", 5*time.Minute, "overall fetch timeout")
	fetchCmd.Flags().BoolVar(&fetchNoCache, "no-cache", false, "disable the page cache (force fresh fetches)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = !fetchNoCache
	cfg.Output.Verbose = verbose

	p := pipeline.NewPipeline(cfg)

	stats, err := p.FetchAbstracts(ctx, pipeline.FetchOptions{
		ArticlesPath:  fetchArticles,
		SelectionPath: fetchSelection,
		OutputPath:    fetchOutput,
	})
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 50))
	fmt.Printf("📊 Summary: %d/%d abstracts fetched, avg %.1f sentences each\n",
		stats.WithText, stats.Targets, stats.AvgSentences)
	if stats.Failed > 0 {
		fmt.Printf("⚠  %d abstracts could not be fetched (network/paywall)\n", stats.Failed)
	}
	fmt.Printf("✅ Output: %s\n", fetchOutput)

	return nil
}
